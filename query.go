package companysearch

import "context"

// QueryBuilder is a fluent builder for search requests.
type QueryBuilder struct {
	client *Client
	req    SearchRequest
}

// Industry adds industries to the any-of industry filter.
func (b *QueryBuilder) Industry(industries ...string) *QueryBuilder {
	b.req.Filters.Industry = append(b.req.Filters.Industry, industries...)
	return b
}

// Size restricts hits to one size bucket.
func (b *QueryBuilder) Size(s SizeRange) *QueryBuilder {
	b.req.Filters.SizeRange = &s
	return b
}

// Country restricts hits to one country.
func (b *QueryBuilder) Country(country string) *QueryBuilder {
	b.req.Filters.Country = &country
	return b
}

// Locality restricts hits to a locality prefix, e.g. "california".
func (b *QueryBuilder) Locality(locality string) *QueryBuilder {
	b.req.Filters.Locality = &locality
	return b
}

// Founded restricts the founding year to [from, to]. Zero leaves a side open.
func (b *QueryBuilder) Founded(from, to int) *QueryBuilder {
	if from != 0 {
		b.req.Filters.YearMin = &from
	}
	if to != 0 {
		b.req.Filters.YearMax = &to
	}
	return b
}

// In scopes the search to a region and projects its employee counts.
func (b *QueryBuilder) In(regionScope string) *QueryBuilder {
	b.req.RegionScope = regionScope
	return b
}

// Locale sets the number-formatting locale.
func (b *QueryBuilder) Locale(locale string) *QueryBuilder {
	b.req.Locale = locale
	return b
}

// Page selects a 1-based page of n hits.
func (b *QueryBuilder) Page(page, n int) *QueryBuilder {
	b.req.Page = page
	b.req.Size = n
	return b
}

// SortBy sets the hit order.
func (b *QueryBuilder) SortBy(s Sort) *QueryBuilder {
	b.req.Sort = s
	return b
}

// Request returns the built request.
func (b *QueryBuilder) Request() SearchRequest { return b.req }

// Do executes the search.
func (b *QueryBuilder) Do(ctx context.Context) (*SearchResult, error) {
	return b.client.Search(ctx, b.req)
}
