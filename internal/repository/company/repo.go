// Package company adapts the search engine to company documents: it owns the
// physical index schema and translates logical queries onto it.
package company

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/kailas-cloud/companysearch/internal/db"
	domcompany "github.com/kailas-cloud/companysearch/internal/domain/company"
	"github.com/kailas-cloud/companysearch/internal/domain/search/query"
	"github.com/kailas-cloud/companysearch/internal/domain/search/result"
)

// store is the consumer interface for company operations (ISP).
type store interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	UpdateSynonyms(ctx context.Context, index, groupID string, terms []string) error
	PutDocuments(ctx context.Context, index string, items []db.Record) error
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	Aggregate(ctx context.Context, q *db.AggregateQuery) ([]db.Bucket, error)
}

// Repo implements usecase/search.Engine over one company index.
type Repo struct {
	store store
	index string
}

// New creates a company repository for the given index.
func New(s store, index string) *Repo {
	return &Repo{store: s, index: index}
}

// Index returns the index name.
func (r *Repo) Index() string { return r.index }

// EnsureIndex creates the company index unless it exists. Reports whether it was created.
func (r *Repo) EnsureIndex(ctx context.Context) (bool, error) {
	exists, err := r.store.IndexExists(ctx, r.index)
	if err != nil {
		return false, fmt.Errorf("check index %s: %w", r.index, err)
	}
	if exists {
		return false, nil
	}
	if err := r.store.CreateIndex(ctx, Schema(r.index)); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return false, nil
		}
		return false, fmt.Errorf("create index %s: %w", r.index, err)
	}
	return true, nil
}

// UpdateSynonyms installs synonym groups on the industry field, in group id order.
func (r *Repo) UpdateSynonyms(ctx context.Context, groups map[string][]string) error {
	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if len(groups[id]) == 0 {
			continue
		}
		if err := r.store.UpdateSynonyms(ctx, r.index, id, groups[id]); err != nil {
			return fmt.Errorf("update synonyms %s: %w", id, err)
		}
	}
	return nil
}

// Put indexes documents.
func (r *Repo) Put(ctx context.Context, docs []domcompany.Document) error {
	records := make([]db.Record, 0, len(docs))
	for i := range docs {
		rec, err := buildRecord(&docs[i])
		if err != nil {
			return fmt.Errorf("encode company %s: %w", docs[i].ID(), err)
		}
		records = append(records, rec)
	}
	if err := r.store.PutDocuments(ctx, r.index, records); err != nil {
		return fmt.Errorf("put companies: %w", err)
	}
	return nil
}

// Search returns the first limit matches of q in push-down order, plus the total match count.
func (r *Repo) Search(ctx context.Context, q query.Bool, s query.Sort, limit int) (result.Window, error) {
	sr, err := r.store.Search(ctx, &db.SearchQuery{
		Index:  r.index,
		Query:  q.Map(textField, filterField),
		Sort:   db.Sort{Field: sortField(s.Field), Desc: s.Desc},
		Return: returnFields,
		Limit:  limit,
	})
	if err != nil {
		return result.Window{}, fmt.Errorf("search %s: %w", r.index, err)
	}
	if sr == nil {
		return result.Window{}, nil
	}

	w := result.Window{Total: int64(sr.Total), Matches: make([]result.Match, 0, len(sr.Entries))}
	for _, e := range sr.Entries {
		w.Matches = append(w.Matches, result.Match{
			Document: parseRecord(e.Key, e.Fields),
			Score:    e.Score,
		})
	}
	return w, nil
}

// Facet counts the matches of q per value of field, at most limit buckets.
// Industry and country buckets carry the stored form of the value.
func (r *Repo) Facet(ctx context.Context, q query.Bool, field query.Field, limit int) ([]result.Bucket, error) {
	buckets, err := r.store.Aggregate(ctx, &db.AggregateQuery{
		Index: r.index,
		Query: q.Map(textField, filterField),
		Field: string(filterField(field)),
		Label: labelField(field),
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("facet %s on %s: %w", field, r.index, err)
	}

	out := make([]result.Bucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, result.Bucket{Value: cmp.Or(b.Label, b.Value), Count: b.Count})
	}
	return out, nil
}
