package bleve

import (
	"context"
	"fmt"
	"sort"
	"strings"

	blevesearch "github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search"
	bq "github.com/blevesearch/bleve/v2/search/query"

	"github.com/kailas-cloud/companysearch/internal/db"
	"github.com/kailas-cloud/companysearch/internal/domain/search/query"
)

// Search runs a structured boolean query. Ties in the push-down sort fall
// back to score desc, then document id asc.
func (s *Store) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	if q.Limit < 0 || q.Offset < 0 {
		return nil, fmt.Errorf("offset and limit must not be negative")
	}
	idx, err := s.get(q.Index)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	compiled, err := idx.compile(q.Query)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("%w: %w", db.ErrQueryRejected, err)}
	}

	req := blevesearch.NewSearchRequestOptions(compiled, q.Limit, q.Offset, false)
	req.Fields = []string{"*"}
	order := search.SortOrder{&search.SortScore{Desc: true}, &search.SortDocID{}}
	if q.Sort.Field != "" {
		order = append(search.SortOrder{&search.SortField{
			Field:   q.Sort.Field,
			Desc:    q.Sort.Desc,
			Type:    search.SortFieldAuto,
			Missing: search.SortFieldMissingLast,
		}}, order...)
	}
	req.SortByCustom(order)

	res, err := idx.bleve.SearchInContext(ctx, req)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	out := &db.SearchResult{Total: int(res.Total), Entries: make([]db.SearchEntry, 0, len(res.Hits))}
	for _, hit := range res.Hits {
		out.Entries = append(out.Entries, db.SearchEntry{
			Key:    hit.ID,
			Score:  hit.Score,
			Fields: fromHit(idx.def, hit.Fields),
		})
	}
	return out, nil
}

// Aggregate computes a terms facet over the matches of q.
func (s *Store) Aggregate(ctx context.Context, q *db.AggregateQuery) ([]db.Bucket, error) {
	if q.Field == "" || q.Limit <= 0 {
		return nil, fmt.Errorf("field and positive limit are required")
	}
	idx, err := s.get(q.Index)
	if err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}

	compiled, err := idx.compile(q.Query)
	if err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: fmt.Errorf("%w: %w", db.ErrQueryRejected, err)}
	}

	req := blevesearch.NewSearchRequestOptions(compiled, 0, 0, false)
	req.AddFacet(q.Field, blevesearch.NewFacetRequest(q.Field, q.Limit))

	res, err := idx.bleve.SearchInContext(ctx, req)
	if err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}

	facet, ok := res.Facets[q.Field]
	if !ok || facet.Terms == nil {
		return nil, nil
	}
	terms := facet.Terms.Terms()
	buckets := make([]db.Bucket, 0, len(terms))
	for _, t := range terms {
		b := db.Bucket{Value: t.Term, Count: int64(t.Count)}
		if q.Label != "" {
			if b.Label, err = idx.label(ctx, compiled, q.Field, t.Term, q.Label); err != nil {
				return nil, &db.Error{Op: db.OpAggregate, Err: err}
			}
		}
		buckets = append(buckets, b)
	}
	return buckets, nil
}

// label returns the stored label of the lowest-id match of q whose field holds term.
func (idx *index) label(ctx context.Context, q bq.Query, field, term, label string) (string, error) {
	tq := blevesearch.NewTermQuery(term)
	tq.SetField(field)
	req := blevesearch.NewSearchRequestOptions(blevesearch.NewConjunctionQuery(q, tq), 1, 0, false)
	req.Fields = []string{label}
	req.SortBy([]string{"_id"})

	res, err := idx.bleve.SearchInContext(ctx, req)
	if err != nil {
		return "", err
	}
	if len(res.Hits) == 0 {
		return "", nil
	}
	v, _ := res.Hits[0].Fields[label].(string)
	return v, nil
}

func (idx *index) compile(b query.Bool) (bq.Query, error) {
	if b.IsMatchAll() {
		return blevesearch.NewMatchAllQuery(), nil
	}

	boolean := blevesearch.NewBooleanQuery()
	for _, c := range b.Filter() {
		fq, err := idx.compileClause(c)
		if err != nil {
			return nil, err
		}
		boolean.AddMust(fq)
	}

	var should []bq.Query
	for _, t := range b.Should() {
		should = append(should, idx.compileText(t)...)
	}
	if len(should) > 0 {
		boolean.AddShould(should...)
		boolean.SetMinShould(float64(b.MinShould()))
	}
	if len(b.Filter()) == 0 && len(should) == 0 {
		return blevesearch.NewMatchNoneQuery(), nil
	}
	return boolean, nil
}

func (idx *index) compileClause(c query.Clause) (bq.Query, error) {
	f, ok := idx.def.Field(string(c.Field))
	if !ok {
		return nil, fmt.Errorf("unknown field %q", c.Field)
	}

	switch c.Kind {
	case query.Terms:
		if len(c.Values) == 0 {
			return nil, fmt.Errorf("terms clause on %q without values", c.Field)
		}
		terms := make([]bq.Query, 0, len(c.Values))
		for _, v := range c.Values {
			tq := blevesearch.NewTermQuery(tagValue(v, f))
			tq.SetField(f.Name)
			terms = append(terms, tq)
		}
		if len(terms) == 1 {
			return terms[0], nil
		}
		return blevesearch.NewDisjunctionQuery(terms...), nil

	case query.Range:
		inclusive := true
		rq := blevesearch.NewNumericRangeInclusiveQuery(c.Min, c.Max, &inclusive, &inclusive)
		rq.SetField(f.Name)
		return rq, nil

	case query.Prefix:
		pq := blevesearch.NewPrefixQuery(tagValue(c.Prefix, f))
		pq.SetField(f.Name)
		return pq, nil
	}
	return nil, fmt.Errorf("unknown clause kind %d", c.Kind)
}

// compileText builds match queries for a text clause plus one more per
// synonym of the text when the field takes synonyms.
func (idx *index) compileText(t query.Text) []bq.Query {
	text := strings.TrimSpace(t.Text)
	if text == "" {
		return nil
	}
	phrases := []string{text}
	if f, ok := idx.def.Field(string(t.Field)); ok && f.Synonyms {
		phrases = append(phrases, idx.expand(text)...)
	}

	out := make([]bq.Query, 0, len(phrases))
	for _, p := range phrases {
		mq := blevesearch.NewMatchQuery(p)
		mq.SetField(string(t.Field))
		if t.Boost > 0 {
			mq.SetBoost(t.Boost)
		}
		out = append(out, mq)
	}
	return out
}

// expand returns the synonyms of every group with a term occurring in text as
// whole words.
func (idx *index) expand(text string) []string {
	idx.synMu.RLock()
	defer idx.synMu.RUnlock()
	if len(idx.synonyms) == 0 {
		return nil
	}

	padded := " " + strings.Join(strings.Fields(strings.ToLower(text)), " ") + " "
	seen := map[string]bool{}
	var out []string
	for _, group := range idx.synonyms {
		hit := false
		for _, term := range group {
			if strings.Contains(padded, " "+term+" ") {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}
		for _, term := range group {
			if !seen[term] && !strings.Contains(padded, " "+term+" ") {
				seen[term] = true
				out = append(out, term)
			}
		}
	}
	sort.Strings(out)
	return out
}
