package company

import (
	"context"
	"testing"

	"github.com/kailas-cloud/companysearch/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	createIndexFn    func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFn    func(ctx context.Context, name string) (bool, error)
	updateSynonymsFn func(ctx context.Context, index, groupID string, terms []string) error
	putDocumentsFn   func(ctx context.Context, index string, items []db.Record) error
	searchFn         func(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	aggregateFn      func(ctx context.Context, q *db.AggregateQuery) ([]db.Bucket, error)
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) UpdateSynonyms(ctx context.Context, index, groupID string, terms []string) error {
	if m.updateSynonymsFn != nil {
		return m.updateSynonymsFn(ctx, index, groupID, terms)
	}
	return nil
}

func (m *mockStore) PutDocuments(ctx context.Context, index string, items []db.Record) error {
	if m.putDocumentsFn != nil {
		return m.putDocumentsFn(ctx, index, items)
	}
	return nil
}

func (m *mockStore) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) Aggregate(ctx context.Context, q *db.AggregateQuery) ([]db.Bucket, error) {
	if m.aggregateFn != nil {
		return m.aggregateFn(ctx, q)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "companies"), ms
}

func int64p(v int64) *int64 { return &v }

func intp(v int) *int { return &v }
