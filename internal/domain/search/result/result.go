package result

import (
	"github.com/kailas-cloud/companysearch/internal/domain/company"
	"github.com/kailas-cloud/companysearch/internal/domain/search/filter"
	"github.com/kailas-cloud/companysearch/internal/domain/search/sortkey"
)

// Match is a raw engine hit.
type Match struct {
	Document company.Document
	Score    float64
}

// Window is the leading slice of engine matches plus the full matched count.
type Window struct {
	Matches []Match
	Total   int64
}

// EstimateSource tells which estimate pair a hit was projected from.
type EstimateSource string

// Estimate sources.
const (
	SourceGlobal   EstimateSource = "global"
	SourceRegional EstimateSource = "regional"
)

// Hit is a region-projected search hit.
type Hit struct {
	Document company.Document
	Score    float64
	// Current and Total are the projected employee estimates.
	Current *int64
	Total   *int64
	Source  EstimateSource
	// CurrentFormatted and TotalFormatted are set when a locale applies.
	CurrentFormatted *string
	TotalFormatted   *string
}

// Bucket is a facet value count.
type Bucket struct {
	Value string
	Count int64
}

// Facet is the bucket list of one field.
type Facet struct {
	Field   filter.Field
	Buckets []Bucket
}

// Meta describes how the request was interpreted.
type Meta struct {
	Page        int
	Size        int
	Sort        sortkey.Key
	RegionScope string
	Locale      string
	// Implicit holds the filter values contributed by free-text analysis.
	Implicit filter.Set
	// Residual is the free text used for relevance scoring.
	Residual string
}

// SearchResult is the assembled response.
type SearchResult struct {
	Hits   []Hit
	Total  int64
	Facets []Facet
	Meta   Meta
}

// Facet returns the facet for field f.
func (r *SearchResult) Facet(f filter.Field) (Facet, bool) {
	for _, fc := range r.Facets {
		if fc.Field == f {
			return fc, true
		}
	}
	return Facet{}, false
}
