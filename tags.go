package companysearch

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/companysearch/internal/domain/search/sortkey"
	domtag "github.com/kailas-cloud/companysearch/internal/domain/tag"
	taguc "github.com/kailas-cloud/companysearch/internal/usecase/tag"
)

// TagService manages the saved tags of one user.
type TagService struct {
	userID string
	svc    *taguc.Service
}

// Create saves a named snapshot. Names are unique per user, ignoring case.
func (s *TagService) Create(ctx context.Context, name string, snap Snapshot) (Tag, error) {
	t, err := s.svc.Create(ctx, s.userID, name, domtag.Snapshot{
		Filters:     toFilterSet(snap.Filters),
		RegionScope: snap.RegionScope,
	})
	if err != nil {
		return Tag{}, fmt.Errorf("create tag: %w", err)
	}
	return fromTag(&t), nil
}

// List returns the user's tags, oldest first.
func (s *TagService) List(ctx context.Context) ([]Tag, error) {
	tags, err := s.svc.List(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	out := make([]Tag, len(tags))
	for i := range tags {
		out[i] = fromTag(&tags[i])
	}
	return out, nil
}

// Delete removes a tag. Returns ErrNotFound when the user has no such tag.
func (s *TagService) Delete(ctx context.Context, tagID string) error {
	if err := s.svc.Delete(ctx, s.userID, tagID); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}

// Apply searches with the tag's snapshot. The request's filters and region
// scope are ignored; its query, locale, paging and sort are used.
func (s *TagService) Apply(ctx context.Context, tagID string, req SearchRequest) (*SearchResult, error) {
	res, err := s.svc.Apply(ctx, s.userID, tagID, taguc.ApplyParams{
		Query:  req.Query,
		Locale: req.Locale,
		Page:   req.Page,
		Size:   req.Size,
		Sort:   sortkey.Key(req.Sort),
	})
	if err != nil {
		return nil, fmt.Errorf("apply tag: %w", err)
	}
	return fromResult(res), nil
}
