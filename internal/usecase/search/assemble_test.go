package search

import (
	"math"
	"slices"
	"testing"

	"github.com/kailas-cloud/companysearch/internal/domain/company"
	"github.com/kailas-cloud/companysearch/internal/domain/search/result"
	"github.com/kailas-cloud/companysearch/internal/domain/search/sortkey"
)

func sampleMatches() []result.Match {
	return []result.Match{
		doc("c", "beta", 1.0, company.Size11To50, intp(2001)),
		doc("a", "Alpha", 2.0, company.Size1001To5000, nil),
		doc("b", "alpha", 2.0, company.Size11To50, intp(1999)),
		doc("d", "Gamma", 3.0, "", intp(2001)),
	}
}

func TestSortMatches(t *testing.T) {
	tests := []struct {
		key  sortkey.Key
		want []string
	}{
		{sortkey.Relevance, []string{"d", "a", "b", "c"}},
		// Case-folded name ties break by relevance: a and b share score, id order.
		{sortkey.NameAsc, []string{"a", "b", "c", "d"}},
		{sortkey.NameDesc, []string{"d", "c", "a", "b"}},
		// Unknown size sorts last both ways.
		{sortkey.SizeAsc, []string{"b", "c", "a", "d"}},
		{sortkey.SizeDesc, []string{"a", "b", "c", "d"}},
		// Missing year sorts last both ways; 2001 tie breaks by score.
		{sortkey.YearAsc, []string{"b", "d", "c", "a"}},
		{sortkey.YearDesc, []string{"d", "c", "b", "a"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			ms := sampleMatches()
			sortMatches(ms, tt.key)
			if got := ids(ms); !slices.Equal(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	ms := sampleMatches()
	tests := []struct {
		page, size int
		want       []string
	}{
		{1, 2, []string{"c", "a"}},
		{2, 2, []string{"b", "d"}},
		{2, 3, []string{"d"}},
		{3, 2, nil},
		{9, 20, nil},
		{math.MaxInt/10 + 1, 20, nil},
		{math.MaxInt, math.MaxInt, nil},
	}
	for _, tt := range tests {
		got := ids(paginate(ms, tt.page, tt.size))
		if len(got) != len(tt.want) || (len(got) > 0 && !slices.Equal(got, tt.want)) {
			t.Errorf("paginate(%d, %d) = %v, want %v", tt.page, tt.size, got, tt.want)
		}
	}
}
