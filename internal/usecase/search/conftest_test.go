package search

import (
	"context"
	"sync"

	"github.com/kailas-cloud/companysearch/internal/domain/company"
	"github.com/kailas-cloud/companysearch/internal/domain/search/intent"
	"github.com/kailas-cloud/companysearch/internal/domain/search/query"
	"github.com/kailas-cloud/companysearch/internal/domain/search/result"
)

// mockEngine implements Engine with fn fields. Safe for concurrent calls.
type mockEngine struct {
	searchFn func(ctx context.Context, q query.Bool, s query.Sort, limit int) (result.Window, error)
	facetFn  func(ctx context.Context, q query.Bool, field query.Field, limit int) ([]result.Bucket, error)

	mu          sync.Mutex
	searchCalls int
	facetCalls  map[query.Field]query.Bool
}

func (m *mockEngine) Search(ctx context.Context, q query.Bool, s query.Sort, limit int) (result.Window, error) {
	m.mu.Lock()
	m.searchCalls++
	m.mu.Unlock()
	if m.searchFn != nil {
		return m.searchFn(ctx, q, s, limit)
	}
	return result.Window{}, nil
}

func (m *mockEngine) Facet(ctx context.Context, q query.Bool, field query.Field, limit int) ([]result.Bucket, error) {
	m.mu.Lock()
	if m.facetCalls == nil {
		m.facetCalls = map[query.Field]query.Bool{}
	}
	m.facetCalls[field] = q
	m.mu.Unlock()
	if m.facetFn != nil {
		return m.facetFn(ctx, q, field, limit)
	}
	return nil, nil
}

type stubUnderstander struct {
	in intent.Intent
}

func (s stubUnderstander) Analyze(string) intent.Intent { return s.in }

func i64(v int64) *int64 { return &v }

func intp(v int) *int { return &v }

func strp(s string) *string { return &s }

func doc(id, name string, score float64, size company.SizeRange, year *int) result.Match {
	return result.Match{
		Document: company.Reconstruct(company.Props{ID: id, Name: name, SizeRange: size, YearFounded: year}),
		Score:    score,
	}
}

func ids(ms []result.Match) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Document.ID())
	}
	return out
}
