package bleve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/companysearch/internal/db"
	"github.com/kailas-cloud/companysearch/internal/domain/search/query"
)

func f64(v float64) *float64 { return &v }

func testIndex() *db.IndexDefinition {
	return db.NewIndex("company").
		Prefix("company:").
		Text("name", 3).
		Text("industry", 2).WithSynonyms().
		Tag("industry_tag").
		Tag("country").
		TagWithOpts("locality_tag", ",", false).
		Numeric("year_founded").Sortable().
		Stored("linkedin_url").
		MustBuild()
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(Config{})
	require.NoError(t, err)
	t.Cleanup(s.Close)

	ctx := context.Background()
	require.NoError(t, s.CreateIndex(ctx, testIndex()))
	require.NoError(t, s.PutDocuments(ctx, "company", []db.Record{
		{Key: "company:1", Fields: map[string]string{
			"name": "Acme Software", "industry": "computer software", "industry_tag": "computer software",
			"country": "united states", "locality_tag": "san francisco, california, united states",
			"year_founded": "2001", "linkedin_url": "linkedin.com/company/acme",
		}},
		{Key: "company:2", Fields: map[string]string{
			"name": "Bolt Bank", "industry": "banking", "industry_tag": "banking",
			"country": "germany", "locality_tag": "berlin, germany", "year_founded": "1990",
		}},
		{Key: "company:3", Fields: map[string]string{
			"name": "Cloud Acme", "industry": "internet", "industry_tag": "internet",
			"country": "united states", "locality_tag": "austin, texas, united states",
		}},
	}))
	return s
}

func keys(res *db.SearchResult) []string {
	out := make([]string, 0, len(res.Entries))
	for _, e := range res.Entries {
		out = append(out, e.Key)
	}
	return out
}

func TestCreateIndex_Duplicate(t *testing.T) {
	s := newTestStore(t)
	err := s.CreateIndex(context.Background(), testIndex())
	assert.ErrorIs(t, err, db.ErrIndexExists)

	exists, err := s.IndexExists(context.Background(), "company")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSearch_MatchAllSortedByID(t *testing.T) {
	s := newTestStore(t)
	res, err := s.Search(context.Background(), &db.SearchQuery{
		Index: "company", Query: query.NewBool(nil, nil), Limit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, []string{"company:1", "company:2", "company:3"}, keys(res))
}

func TestSearch_Filters(t *testing.T) {
	s := newTestStore(t)
	tests := []struct {
		name   string
		clause query.Clause
		want   []string
	}{
		{"terms any-of", query.Clause{Kind: query.Terms, Field: "industry_tag", Values: []string{"internet", "Banking"}}, []string{"company:2", "company:3"}},
		{"country", query.Clause{Kind: query.Terms, Field: "country", Values: []string{"germany"}}, []string{"company:2"}},
		{"locality prefix", query.Clause{Kind: query.Prefix, Field: "locality_tag", Prefix: "Califor"}, []string{"company:1"}},
		{"year range", query.Clause{Kind: query.Range, Field: "year_founded", Min: f64(1995), Max: f64(2001)}, []string{"company:1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Search(context.Background(), &db.SearchQuery{
				Index: "company", Query: query.NewBool(nil, []query.Clause{tt.clause}), Limit: 10,
			})
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, keys(res))
			assert.Equal(t, len(tt.want), res.Total)
		})
	}
}

func TestSearch_ShouldRequiredWithoutFilters(t *testing.T) {
	s := newTestStore(t)
	res, err := s.Search(context.Background(), &db.SearchQuery{
		Index: "company",
		Query: query.NewBool([]query.Text{{Field: "name", Text: "acme", Boost: 3}}, nil),
		Limit: 10,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"company:1", "company:3"}, keys(res))
}

func TestSearch_FilterNarrowsTextQuery(t *testing.T) {
	s := newTestStore(t)
	us := []query.Clause{{Kind: query.Terms, Field: "country", Values: []string{"united states"}}}

	filtered, err := s.Search(context.Background(), &db.SearchQuery{
		Index: "company", Query: query.NewBool(nil, us), Limit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, filtered.Total)

	res, err := s.Search(context.Background(), &db.SearchQuery{
		Index: "company",
		Query: query.NewBool([]query.Text{{Field: "name", Text: "cloud", Boost: 3}}, us),
		Limit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"company:3"}, keys(res))
	assert.Equal(t, 1, res.Total)

	none, err := s.Search(context.Background(), &db.SearchQuery{
		Index: "company",
		Query: query.NewBool([]query.Text{{Field: "name", Text: "bolt", Boost: 3}}, us),
		Limit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, none.Total, "text must still match when filters are present")
}

func TestSearch_SortMissingLast(t *testing.T) {
	s := newTestStore(t)
	for _, desc := range []bool{false, true} {
		res, err := s.Search(context.Background(), &db.SearchQuery{
			Index: "company", Query: query.NewBool(nil, nil),
			Sort: db.Sort{Field: "year_founded", Desc: desc}, Limit: 10,
		})
		require.NoError(t, err)
		got := keys(res)
		require.Len(t, got, 3)
		assert.Equal(t, "company:3", got[2], "document without year sorts last (desc=%v)", desc)
	}
}

func TestSearch_StoredFieldsReturned(t *testing.T) {
	s := newTestStore(t)
	res, err := s.Search(context.Background(), &db.SearchQuery{
		Index: "company",
		Query: query.NewBool(nil, []query.Clause{{Kind: query.Terms, Field: "country", Values: []string{"germany"}}}),
		Limit: 1,
	})
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	f := res.Entries[0].Fields
	assert.Equal(t, "Bolt Bank", f["name"])
	assert.Equal(t, "1990", f["year_founded"])
	assert.Equal(t, "berlin,germany", f["locality_tag"])
}

func TestSearch_SynonymExpansion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.UpdateSynonyms(ctx, "company", "software", []string{"software", "computer software", "internet"}))

	res, err := s.Search(ctx, &db.SearchQuery{
		Index: "company",
		Query: query.NewBool([]query.Text{{Field: "industry", Text: "software"}}, nil),
		Limit: 10,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"company:1", "company:3"}, keys(res))
}

func TestAggregate(t *testing.T) {
	s := newTestStore(t)
	buckets, err := s.Aggregate(context.Background(), &db.AggregateQuery{
		Index: "company", Query: query.NewBool(nil, nil), Field: "country", Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, db.Bucket{Value: "united states", Count: 2}, buckets[0])
	assert.Equal(t, db.Bucket{Value: "germany", Count: 1}, buckets[1])
}

func TestAggregate_Label(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.PutDocuments(ctx, "company", []db.Record{
		{Key: "company:4", Fields: map[string]string{
			"name": "Delta Bank", "industry": "Banking", "industry_tag": "banking", "country": "france",
		}},
		{Key: "company:5", Fields: map[string]string{
			"name": "Echo Bank", "industry": "banking", "industry_tag": "banking", "country": "france",
		}},
	}))

	buckets, err := s.Aggregate(ctx, &db.AggregateQuery{
		Index: "company",
		Query: query.NewBool(nil, []query.Clause{{Kind: query.Terms, Field: "country", Values: []string{"france"}}}),
		Field: "industry_tag",
		Label: "industry",
		Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, db.Bucket{Value: "banking", Label: "Banking", Count: 2}, buckets[0])
}

func TestSearch_UnknownIndex(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Search(context.Background(), &db.SearchQuery{Index: "nope", Limit: 1})
	assert.ErrorIs(t, err, db.ErrIndexNotFound)
}

func TestSearch_UnknownFieldRejected(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Search(context.Background(), &db.SearchQuery{
		Index: "company",
		Query: query.NewBool(nil, []query.Clause{{Kind: query.Terms, Field: "nope", Values: []string{"x"}}}),
		Limit: 1,
	})
	assert.ErrorIs(t, err, db.ErrQueryRejected)
}

func TestDropIndex(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.DropIndex(ctx, "company"))
	assert.ErrorIs(t, s.DropIndex(ctx, "company"), db.ErrIndexNotFound)
}

func TestPing_Closed(t *testing.T) {
	s, err := NewStore(Config{})
	require.NoError(t, err)
	require.NoError(t, s.Ping(context.Background()))
	s.Close()
	assert.Error(t, s.Ping(context.Background()))
}
