package search

import (
	"cmp"
	"slices"

	"golang.org/x/text/cases"

	"github.com/kailas-cloud/companysearch/internal/domain/search/result"
	"github.com/kailas-cloud/companysearch/internal/domain/search/sortkey"
)

// relevanceOrder is score desc, then id asc.
func relevanceOrder(a, b result.Match) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	return cmp.Compare(a.Document.ID(), b.Document.ID())
}

// sortMatches orders matches by k. Every key breaks ties in relevance order;
// a missing year or unknown size sorts last in both directions.
func sortMatches(ms []result.Match, k sortkey.Key) {
	desc := k.Descending()
	var primary func(a, b result.Match) int

	switch k {
	case sortkey.NameAsc, sortkey.NameDesc:
		fold := cases.Fold()
		primary = func(a, b result.Match) int {
			c := cmp.Compare(fold.String(a.Document.Name()), fold.String(b.Document.Name()))
			if desc {
				return -c
			}
			return c
		}
	case sortkey.SizeAsc, sortkey.SizeDesc:
		primary = func(a, b result.Match) int {
			return compareMissingLast(a.Document.SizeRange().Ordinal(), b.Document.SizeRange().Ordinal(), desc)
		}
	case sortkey.YearAsc, sortkey.YearDesc:
		primary = func(a, b result.Match) int {
			return compareMissingLast(yearOrd(a), yearOrd(b), desc)
		}
	default:
		slices.SortStableFunc(ms, relevanceOrder)
		return
	}

	slices.SortStableFunc(ms, func(a, b result.Match) int {
		if c := primary(a, b); c != 0 {
			return c
		}
		return relevanceOrder(a, b)
	})
}

// compareMissingLast compares non-negative ordinals; negative means missing.
// desc reverses present values only.
func compareMissingLast(a, b int, desc bool) int {
	switch {
	case a < 0 && b < 0:
		return 0
	case a < 0:
		return 1
	case b < 0:
		return -1
	case desc:
		return cmp.Compare(b, a)
	default:
		return cmp.Compare(a, b)
	}
}

func yearOrd(m result.Match) int {
	if y := m.Document.YearFounded(); y != nil && *y >= 0 {
		return *y
	}
	return -1
}

// paginate returns the 1-based page of ms; a page past the end is empty.
func paginate(ms []result.Match, page, size int) []result.Match {
	if page < 1 || size < 1 || page-1 > (len(ms)-1)/size {
		return nil
	}
	start := (page - 1) * size
	if start >= len(ms) {
		return nil
	}
	end := min(start+size, len(ms))
	return ms[start:end]
}
