// Package companysearch is an embedded client for company search: free-text
// understanding, structured filters, region-scoped employee counts, facets and
// saved per-user filter tags.
//
//	c, err := companysearch.New(ctx)
//	if err != nil { ... }
//	defer c.Close()
//	res, err := c.Query("tech companies in california").SortBy(companysearch.SortNameAsc).Do(ctx)
package companysearch
