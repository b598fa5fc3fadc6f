package app

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/companysearch/internal/config"
	"github.com/kailas-cloud/companysearch/internal/domain/search/filter"
	"github.com/kailas-cloud/companysearch/internal/domain/search/request"
	"github.com/kailas-cloud/companysearch/internal/domain/search/sortkey"
	domtag "github.com/kailas-cloud/companysearch/internal/domain/tag"
	taguc "github.com/kailas-cloud/companysearch/internal/usecase/tag"
)

const fixture = `
{"id":"c1","name":"Acme Cloud","domain":"acme.io","industry":"internet","country":"united states","locality":"san francisco, california, united states","year_founded":2004,"size_range":"1001 - 5000","current_employee_estimate":3400,"total_employee_estimate":5000,"regional_estimates":{"de":{"current":120,"total":150}}}
{"id":"c2","name":"Beta Soft","domain":"betasoft.com","industry":"computer software","country":"united states","locality":"los angeles, california, united states","year_founded":1999,"size_range":"51 - 200","current_employee_estimate":80,"total_employee_estimate":120}

{"id":"c3","name":"Gamma Bank","industry":"banking","country":"united states","locality":"san francisco, california, united states","size_range":"10001+","current_employee_estimate":20000}
{"id":"c4","name":"Delta Tech","industry":"information technology and services","country":"united states","locality":"austin, texas, united states","year_founded":2012,"size_range":"11 - 50"}
{"id":"c5","name":"Epsilon GmbH","industry":"computer software","country":"germany","locality":"berlin, berlin, germany","year_founded":2015,"size_range":"201 - 500","current_employee_estimate":300}
`

func newBleveApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Config{
		Engine: config.EngineConfig{Driver: config.EngineBleve},
		Synonyms: map[string][]string{
			"software": {"software", "computer software", "information technology and services"},
		},
	}
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())

	ctx := context.Background()
	a, err := New(ctx, cfg, nil)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	require.NoError(t, a.WaitForEngine(ctx))
	created, err := a.EnsureIndex(ctx)
	require.NoError(t, err)
	require.True(t, created)

	docs, err := DecodeCompanies(strings.NewReader(fixture))
	require.NoError(t, err)
	require.Len(t, docs, 5)
	require.NoError(t, a.Load(ctx, docs, 2))
	return a
}

func search(t *testing.T, a *App, p request.Params) []string {
	t.Helper()
	req, err := request.New(p)
	require.NoError(t, err)
	res, err := a.Search().Search(context.Background(), &req)
	require.NoError(t, err)
	ids := make([]string, len(res.Hits))
	for i := range res.Hits {
		ids[i] = res.Hits[i].Document.ID()
	}
	return ids
}

func TestApp_TechCompaniesInCalifornia(t *testing.T) {
	a := newBleveApp(t)

	req, err := request.New(request.Params{Query: "tech companies in california"})
	require.NoError(t, err)
	res, err := a.Search().Search(context.Background(), &req)
	require.NoError(t, err)

	assert.EqualValues(t, 2, res.Total)
	require.Len(t, res.Hits, 2)
	assert.ElementsMatch(t, []string{"c1", "c2"},
		[]string{res.Hits[0].Document.ID(), res.Hits[1].Document.ID()})

	require.NotNil(t, res.Meta.Implicit.Locality)
	assert.Equal(t, "california", *res.Meta.Implicit.Locality)
	assert.Contains(t, res.Meta.Implicit.Industry, "internet")
	assert.Empty(t, res.Meta.Residual)

	industry, ok := res.Facet(filter.Industry)
	require.True(t, ok)
	values := map[string]int64{}
	for _, b := range industry.Buckets {
		values[b.Value] = b.Count
	}
	assert.Equal(t, map[string]int64{"internet": 1, "computer software": 1, "banking": 1}, values,
		"industry facet ignores its own filter")

	country, ok := res.Facet(filter.Country)
	require.True(t, ok)
	require.Len(t, country.Buckets, 1)
	assert.Equal(t, "united states", country.Buckets[0].Value)
	assert.EqualValues(t, 2, country.Buckets[0].Count)
}

func TestApp_FiltersAndSorts(t *testing.T) {
	a := newBleveApp(t)
	us := "United States"
	since := 2000

	assert.Equal(t, []string{"c4", "c1"},
		search(t, a, request.Params{
			Filters: filter.Set{Country: &us, YearMin: &since},
			Sort:    sortkey.YearDesc,
		}))

	assert.Equal(t, []string{"c1", "c2", "c4", "c5", "c3"},
		search(t, a, request.Params{Sort: sortkey.NameAsc}))

	assert.Equal(t, []string{"c3", "c1", "c5", "c2", "c4"},
		search(t, a, request.Params{Sort: sortkey.SizeDesc}))

	assert.Equal(t, []string{"c2", "c1", "c4", "c5", "c3"},
		search(t, a, request.Params{Sort: sortkey.YearAsc}), "missing year sorts last")

	assert.Empty(t, search(t, a, request.Params{Page: 10, Size: 5}))
}

func TestApp_FreeTextMatchesName(t *testing.T) {
	a := newBleveApp(t)
	ids := search(t, a, request.Params{Query: "acme"})
	require.NotEmpty(t, ids)
	assert.Equal(t, "c1", ids[0])
}

func TestApp_TextWithFilterNarrows(t *testing.T) {
	a := newBleveApp(t)
	us := "united states"

	assert.Len(t, search(t, a, request.Params{Filters: filter.Set{Country: &us}}), 4)
	assert.Equal(t, []string{"c1"},
		search(t, a, request.Params{Query: "acme", Filters: filter.Set{Country: &us}}))
}

func TestApp_RegionalProjection(t *testing.T) {
	a := newBleveApp(t)
	req, err := request.New(request.Params{Query: "acme", RegionScope: "Germany"})
	require.NoError(t, err)
	res, err := a.Search().Search(context.Background(), &req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Hits)

	hit := res.Hits[0]
	require.Equal(t, "c1", hit.Document.ID())
	require.NotNil(t, hit.Current)
	assert.EqualValues(t, 120, *hit.Current)
	assert.EqualValues(t, 150, *hit.Total)
	assert.Equal(t, "de", res.Meta.RegionScope)
}

func TestApp_TagRoundTrip(t *testing.T) {
	a := newBleveApp(t)
	ctx := context.Background()
	de := "germany"

	tg, err := a.Tags().Create(ctx, "alice", "German software", domtag.Snapshot{
		Filters: filter.Set{Country: &de},
	})
	require.NoError(t, err)

	res, err := a.Tags().Apply(ctx, "alice", tg.ID(), taguc.ApplyParams{})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, "c5", res.Hits[0].Document.ID())

	require.NoError(t, a.Tags().Delete(ctx, "alice", tg.ID()))
	tags, err := a.Tags().List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestApp_Health(t *testing.T) {
	a := newBleveApp(t)
	r := a.Health().Check(context.Background())
	assert.Equal(t, "ok", string(r.Status))
	assert.Len(t, r.Checks, 2)
}

func TestRegionRegistry(t *testing.T) {
	reg, err := RegionRegistry(nil)
	require.NoError(t, err)
	assert.Len(t, reg.All(), 16)

	reg, err = RegionRegistry([]config.RegionConfig{
		{ID: "us", Label: "United States", Locale: "en-US", Country: "United States", Aliases: []string{"usa"}},
		{ID: "de", Label: "Germany", Locale: "de-DE", Country: "germany"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"de", "us"}, reg.IDs())
	r, ok := reg.Resolve("USA")
	require.True(t, ok)
	assert.Equal(t, "united states", r.Country())
}

func TestDecodeCompanies_Errors(t *testing.T) {
	_, err := DecodeCompanies(strings.NewReader(`{"id":"x","size_range":"huge"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")

	_, err = DecodeCompanies(strings.NewReader("\n{\"name\":\"no id\"}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = DecodeCompanies(strings.NewReader("{not json"))
	require.Error(t, err)
}

func TestNew_UnknownTagDriver(t *testing.T) {
	cfg := config.Config{Engine: config.EngineConfig{Driver: config.EngineBleve}, Tags: config.TagsConfig{Driver: "mongo"}}
	cfg.ApplyDefaults()
	_, err := New(context.Background(), cfg, nil)
	require.Error(t, err)
}
