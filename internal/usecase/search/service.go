package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/companysearch/internal/domain/search/intent"
	"github.com/kailas-cloud/companysearch/internal/domain/search/request"
	"github.com/kailas-cloud/companysearch/internal/domain/search/result"
	"github.com/kailas-cloud/companysearch/internal/logger"
)

// Config tunes the search pipeline.
type Config struct {
	// MaxWindow caps page*size (default 1000).
	MaxWindow int
	// FacetSize is the bucket cap per facet (default 20).
	FacetSize int
	// FormatNumbers formats estimates with the region's locale when no locale is requested.
	FormatNumbers bool
}

// Service runs the company search pipeline.
type Service struct {
	engine       Engine
	understander Understander
	regions      RegionResolver
	cfg          Config
}

// New creates a search service.
func New(engine Engine, understander Understander, regions RegionResolver, cfg Config) *Service {
	if cfg.MaxWindow <= 0 {
		cfg.MaxWindow = DefaultMaxWindow
	}
	if cfg.FacetSize <= 0 {
		cfg.FacetSize = DefaultFacetSize
	}
	return &Service{engine: engine, understander: understander, regions: regions, cfg: cfg}
}

// Search runs free-text analysis, merges filters, queries the engine and its
// three facets concurrently, and assembles the requested page.
// Any engine failure fails the whole request.
func (s *Service) Search(ctx context.Context, req *request.Request) (*result.SearchResult, error) {
	var in intent.Intent
	if req.Query() != "" {
		in = s.understander.Analyze(req.Query())
	}

	merged, err := Merge(req, in, s.regions, s.cfg.MaxWindow)
	if err != nil {
		return nil, err
	}

	q := BuildQuery(merged.Filters, merged.Residual)
	order := SortFor(req.Sort())

	var window result.Window
	facets := make([]result.Facet, len(FacetFields))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		w, err := s.engine.Search(gctx, q, order, req.Window())
		if err != nil {
			return fmt.Errorf("search companies: %w", err)
		}
		window = w
		return nil
	})
	for i, f := range FacetFields {
		g.Go(func() error {
			buckets, err := s.engine.Facet(gctx, q.WithoutField(facetField(f)), facetField(f),
				facetRequestSize(s.cfg.FacetSize))
			if err != nil {
				return fmt.Errorf("facet %s: %w", f, err)
			}
			facets[i] = result.Facet{Field: f, Buckets: normalizeBuckets(buckets, s.cfg.FacetSize)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches := window.Matches
	sortMatches(matches, req.Sort())
	pageMatches := paginate(matches, req.Page(), req.Size())

	projector := NewProjector(projectionLocale(merged.Locale, merged.Region, s.cfg.FormatNumbers))
	hits := make([]result.Hit, 0, len(pageMatches))
	for _, m := range pageMatches {
		hits = append(hits, projector.Project(m, merged.Region))
	}

	meta := result.Meta{
		Page:     req.Page(),
		Size:     req.Size(),
		Sort:     req.Sort(),
		Implicit: merged.Implicit,
		Residual: merged.Residual,
	}
	if merged.Region != nil {
		meta.RegionScope = merged.Region.ID()
	}
	if merged.Locale != nil {
		meta.Locale = merged.Locale.String()
	}

	logger.FromContext(ctx).Debug("Search completed",
		zap.Int64("total", window.Total),
		zap.Int("window", len(window.Matches)),
		zap.Int("hits", len(hits)),
		zap.String("region", meta.RegionScope),
		zap.Strings("implicit_industry", merged.Implicit.Industry),
	)

	return &result.SearchResult{Hits: hits, Total: window.Total, Facets: facets, Meta: meta}, nil
}
