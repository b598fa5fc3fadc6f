package chi

import (
	"context"
	"errors"

	"github.com/kailas-cloud/companysearch/internal/domain/region"
	"github.com/kailas-cloud/companysearch/internal/domain/search/request"
	"github.com/kailas-cloud/companysearch/internal/domain/search/result"
	domtag "github.com/kailas-cloud/companysearch/internal/domain/tag"
	healthuc "github.com/kailas-cloud/companysearch/internal/usecase/health"
	taguc "github.com/kailas-cloud/companysearch/internal/usecase/tag"
)

// --- Mocks ---

var errUnexpected = errors.New("unexpected call")

type mockSearch struct {
	searchFn func(ctx context.Context, req *request.Request) (*result.SearchResult, error)
}

func (m *mockSearch) Search(ctx context.Context, req *request.Request) (*result.SearchResult, error) {
	if m.searchFn == nil {
		return nil, errUnexpected
	}
	return m.searchFn(ctx, req)
}

type mockTags struct {
	createFn func(ctx context.Context, userID, name string, snap domtag.Snapshot) (domtag.Tag, error)
	listFn   func(ctx context.Context, userID string) ([]domtag.Tag, error)
	deleteFn func(ctx context.Context, userID, tagID string) error
	applyFn  func(ctx context.Context, userID, tagID string, p taguc.ApplyParams) (*result.SearchResult, error)
}

func (m *mockTags) Create(ctx context.Context, userID, name string, snap domtag.Snapshot) (domtag.Tag, error) {
	if m.createFn == nil {
		return domtag.Tag{}, errUnexpected
	}
	return m.createFn(ctx, userID, name, snap)
}

func (m *mockTags) List(ctx context.Context, userID string) ([]domtag.Tag, error) {
	if m.listFn == nil {
		return nil, errUnexpected
	}
	return m.listFn(ctx, userID)
}

func (m *mockTags) Delete(ctx context.Context, userID, tagID string) error {
	if m.deleteFn == nil {
		return errUnexpected
	}
	return m.deleteFn(ctx, userID, tagID)
}

func (m *mockTags) Apply(
	ctx context.Context, userID, tagID string, p taguc.ApplyParams,
) (*result.SearchResult, error) {
	if m.applyFn == nil {
		return nil, errUnexpected
	}
	return m.applyFn(ctx, userID, tagID, p)
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

type staticRegions []region.Region

func (s staticRegions) All() []region.Region { return s }
