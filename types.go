package companysearch

import "time"

// SizeRange is one of the fixed employee-count buckets.
type SizeRange string

// Size buckets, smallest to largest.
const (
	Size1To10        SizeRange = "1 - 10"
	Size11To50       SizeRange = "11 - 50"
	Size51To200      SizeRange = "51 - 200"
	Size201To500     SizeRange = "201 - 500"
	Size501To1000    SizeRange = "501 - 1000"
	Size1001To5000   SizeRange = "1001 - 5000"
	Size5001To10000  SizeRange = "5001 - 10000"
	Size10001AndMore SizeRange = "10001+"
)

// Sort orders search hits.
type Sort string

// Sort keys. Ties keep engine relevance order.
const (
	SortRelevance Sort = "relevance"
	SortNameAsc   Sort = "name_asc"
	SortNameDesc  Sort = "name_desc"
	SortSizeAsc   Sort = "size_asc"
	SortSizeDesc  Sort = "size_desc"
	SortYearAsc   Sort = "year_asc"
	SortYearDesc  Sort = "year_desc"
)

// EstimateSource tells which estimate pair a hit's counts come from.
type EstimateSource string

// Estimate sources.
const (
	SourceGlobal   EstimateSource = "global"
	SourceRegional EstimateSource = "regional"
)

// Estimate is an employee-count pair. Either side may be nil.
type Estimate struct {
	Current *int64
	Total   *int64
}

// Company is an indexed company record.
type Company struct {
	ID          string
	Name        string
	Domain      string
	Industry    string
	Country     string
	Locality    string
	YearFounded *int
	SizeRange   SizeRange
	LinkedInURL string
	Estimate    Estimate
	// Regional maps a region id to that region's estimates.
	Regional map[string]Estimate
}

// Filters narrows a search. Nil fields are not applied.
type Filters struct {
	Industry  []string
	SizeRange *SizeRange
	Country   *string
	Locality  *string
	YearMin   *int
	YearMax   *int
}

// SearchRequest is the input of Client.Search. Zero Page, Size and Sort select
// the defaults: page 1, 20 hits, relevance.
type SearchRequest struct {
	Query   string
	Filters Filters
	// RegionScope is a region id, alias or country name. Empty means global.
	RegionScope string
	Locale      string
	Page        int
	Size        int
	Sort        Sort
}

// Hit is one company in a result page, with counts projected for the region scope.
type Hit struct {
	Company          Company
	Score            float64
	Current          *int64
	Total            *int64
	CurrentFormatted *string
	TotalFormatted   *string
	Source           EstimateSource
}

// Bucket is a facet value and its count.
type Bucket struct {
	Value string
	Count int64
}

// Meta describes how a request was interpreted.
type Meta struct {
	Page        int
	Size        int
	Sort        Sort
	RegionScope string
	Locale      string
	// Implicit holds filter values taken from the free text.
	Implicit Filters
	// Residual is the free text left for relevance scoring.
	Residual string
}

// SearchResult is one page of hits plus facet counts over the whole match set.
type SearchResult struct {
	Hits  []Hit
	Total int64
	// Facets maps "industry", "size_range" and "country" to value counts.
	Facets map[string][]Bucket
	Meta   Meta
}

// Region is a supported search region.
type Region struct {
	ID      string
	Label   string
	Locale  string
	Country string
	Aliases []string
}

// Snapshot is the saved part of a tag.
type Snapshot struct {
	Filters     Filters
	RegionScope string
}

// Tag is a named snapshot owned by one user.
type Tag struct {
	ID        string
	UserID    string
	Name      string
	Snapshot  Snapshot
	CreatedAt time.Time
}

// String returns a pointer to s, for Filters fields.
func String(s string) *string { return &s }

// Int returns a pointer to n, for Filters fields.
func Int(n int) *int { return &n }
