package db

import (
	"context"
	"time"
)

// Store is the search engine facade combining all sub-interfaces.
//
//nolint:interfacebloat // consumers depend on the narrow sub-interfaces
type Store interface {
	Pinger
	IndexManager
	Searcher
	DocumentWriter
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks engine connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Record holds a single key+fields pair. Multi-valued TAG fields are joined
// with the field's TagSeparator.
type Record struct {
	Key    string
	Fields map[string]string
}

// DocumentWriter loads documents into an index.
type DocumentWriter interface {
	PutDocuments(ctx context.Context, index string, items []Record) error
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}

// UpdateFunc receives the current value (nil when absent) and returns the new one.
// Returning an error aborts the update and leaves the key unchanged.
type UpdateFunc func(current []byte) ([]byte, error)

// AtomicKV applies read-modify-write updates atomically per key.
type AtomicKV interface {
	UpdateKey(ctx context.Context, key string, fn UpdateFunc) error
}

// IndexManager provides index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SynonymManager
}

// SynonymManager maintains synonym groups of an index.
type SynonymManager interface {
	UpdateSynonyms(ctx context.Context, index, groupID string, terms []string) error
}

// Searcher runs structured queries and aggregations.
type Searcher interface {
	Search(ctx context.Context, q *SearchQuery) (*SearchResult, error)
	Aggregate(ctx context.Context, q *AggregateQuery) ([]Bucket, error)
}
