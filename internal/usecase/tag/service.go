package tag

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/companysearch/internal/domain"
	"github.com/kailas-cloud/companysearch/internal/domain/search/request"
	"github.com/kailas-cloud/companysearch/internal/domain/search/result"
	"github.com/kailas-cloud/companysearch/internal/domain/search/sortkey"
	domtag "github.com/kailas-cloud/companysearch/internal/domain/tag"
)

// ApplyParams are the request parts a saved tag does not carry.
type ApplyParams struct {
	Query  string
	Locale string
	Page   int
	Size   int
	Sort   sortkey.Key
}

// Service manages saved filter tags.
type Service struct {
	repo     Repository
	searcher Searcher
	regions  RegionResolver
	newID    func() string
	now      func() time.Time
}

// New creates a tag service.
func New(repo Repository, searcher Searcher, regions RegionResolver) *Service {
	return &Service{
		repo:     repo,
		searcher: searcher,
		regions:  regions,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Create saves a snapshot under a name unique for the user (case-insensitive).
// The snapshot is validated like a search request and stored normalized.
func (s *Service) Create(ctx context.Context, userID, name string, snap domtag.Snapshot) (domtag.Tag, error) {
	filters, err := snap.Filters.Normalize()
	if err != nil {
		return domtag.Tag{}, err
	}
	snap.Filters = filters

	if scope := strings.TrimSpace(snap.RegionScope); scope != "" {
		r, ok := s.regions.Resolve(scope)
		if !ok {
			return domtag.Tag{}, domain.NewValidation("filter_snapshot.country_scope", "unknown region %q", scope)
		}
		snap.RegionScope = r.ID()
	}

	t, err := domtag.New(s.newID(), userID, name, snap, s.now())
	if err != nil {
		return domtag.Tag{}, err
	}

	err = s.repo.Update(ctx, userID, func(current []domtag.Tag) ([]domtag.Tag, error) {
		for i := range current {
			if domtag.SameName(current[i].Name(), t.Name()) {
				return nil, domain.NewConflict("tag %q already exists", t.Name())
			}
		}
		return append(current, t), nil
	})
	if err != nil {
		return domtag.Tag{}, fmt.Errorf("create tag: %w", err)
	}
	return t, nil
}

// List returns the user's tags, oldest first.
func (s *Service) List(ctx context.Context, userID string) ([]domtag.Tag, error) {
	if err := domtag.ValidateUserID(userID); err != nil {
		return nil, err
	}
	tags, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	slices.SortStableFunc(tags, func(a, b domtag.Tag) int {
		if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
			return c
		}
		return strings.Compare(a.ID(), b.ID())
	})
	return tags, nil
}

// Delete removes one tag. Missing tags yield domain.ErrNotFound.
func (s *Service) Delete(ctx context.Context, userID, tagID string) error {
	if err := domtag.ValidateUserID(userID); err != nil {
		return err
	}
	err := s.repo.Update(ctx, userID, func(current []domtag.Tag) ([]domtag.Tag, error) {
		idx := slices.IndexFunc(current, func(t domtag.Tag) bool { return t.ID() == tagID })
		if idx < 0 {
			return nil, domain.NewNotFound("tag %q not found", tagID)
		}
		return slices.Delete(current, idx, idx+1), nil
	})
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}

// Apply runs a search with the tag's filters and region scope.
func (s *Service) Apply(ctx context.Context, userID, tagID string, p ApplyParams) (*result.SearchResult, error) {
	t, err := s.get(ctx, userID, tagID)
	if err != nil {
		return nil, err
	}
	snap := t.Snapshot()
	req, err := request.New(request.Params{
		Query:       p.Query,
		Filters:     snap.Filters,
		RegionScope: snap.RegionScope,
		Locale:      p.Locale,
		Page:        p.Page,
		Size:        p.Size,
		Sort:        p.Sort,
	})
	if err != nil {
		return nil, err
	}
	res, err := s.searcher.Search(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("apply tag %s: %w", tagID, err)
	}
	return res, nil
}

func (s *Service) get(ctx context.Context, userID, tagID string) (domtag.Tag, error) {
	if err := domtag.ValidateUserID(userID); err != nil {
		return domtag.Tag{}, err
	}
	tags, err := s.repo.Load(ctx, userID)
	if err != nil {
		return domtag.Tag{}, fmt.Errorf("load tags: %w", err)
	}
	for _, t := range tags {
		if t.ID() == tagID {
			return t, nil
		}
	}
	return domtag.Tag{}, domain.NewNotFound("tag %q not found", tagID)
}
