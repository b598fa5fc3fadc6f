package tag

import (
	"context"

	"github.com/kailas-cloud/companysearch/internal/domain/region"
	"github.com/kailas-cloud/companysearch/internal/domain/search/request"
	"github.com/kailas-cloud/companysearch/internal/domain/search/result"
	domtag "github.com/kailas-cloud/companysearch/internal/domain/tag"
)

// Repository stores one tag list per user. Update applies fn atomically:
// concurrent updates of one user are serialized, fn may run more than once.
type Repository interface {
	Load(ctx context.Context, userID string) ([]domtag.Tag, error)
	Update(ctx context.Context, userID string, fn func([]domtag.Tag) ([]domtag.Tag, error)) error
}

// Searcher runs the search pipeline.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) (*result.SearchResult, error)
}

// RegionResolver resolves region input to a declared region.
type RegionResolver interface {
	Resolve(input string) (region.Region, bool)
}
