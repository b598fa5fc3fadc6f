package search

import (
	"context"

	"github.com/kailas-cloud/companysearch/internal/domain/region"
	"github.com/kailas-cloud/companysearch/internal/domain/search/intent"
	"github.com/kailas-cloud/companysearch/internal/domain/search/query"
	"github.com/kailas-cloud/companysearch/internal/domain/search/result"
)

// Engine runs structured queries against the company index.
type Engine interface {
	Search(ctx context.Context, q query.Bool, s query.Sort, limit int) (result.Window, error)
	Facet(ctx context.Context, q query.Bool, field query.Field, limit int) ([]result.Bucket, error)
}

// Understander extracts implicit filters from free text.
type Understander interface {
	Analyze(text string) intent.Intent
}

// RegionResolver resolves user region input against the declared region set.
type RegionResolver interface {
	Resolve(input string) (region.Region, bool)
}
