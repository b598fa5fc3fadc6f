package db

import "github.com/kailas-cloud/companysearch/internal/domain/search/query"

// Sort is a push-down ordering on a sortable field. An empty Field means score order.
type Sort struct {
	Field string
	Desc  bool
}

// SearchQuery is the input for a structured boolean search.
// Field names in Query are physical index field names.
// Return lists the stored fields to load per hit; engines that keep whole
// documents may ignore it.
type SearchQuery struct {
	Index  string
	Query  query.Bool
	Sort   Sort
	Return []string
	Offset int
	Limit  int
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

// AggregateQuery counts matches of Query grouped by Field values. When Label
// is set, each bucket also reports one stored Label value of its group.
type AggregateQuery struct {
	Index string
	Query query.Bool
	Field string
	Label string
	Limit int
}

// Bucket is one group of an aggregation.
type Bucket struct {
	Value string
	Label string
	Count int64
}
