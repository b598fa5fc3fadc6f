package search

import (
	"strings"

	"github.com/kailas-cloud/companysearch/internal/domain/search/filter"
	"github.com/kailas-cloud/companysearch/internal/domain/search/query"
	"github.com/kailas-cloud/companysearch/internal/domain/search/sortkey"
)

// Relevance boosts of the scored fields.
const (
	BoostName     = 3
	BoostIndustry = 2
	BoostDomain   = 1
)

// BuildQuery turns merged filters and residual text into one boolean query.
// When residual text exists at least one text clause must match, filters or not.
// Region scope never becomes a filter.
func BuildQuery(f filter.Set, residual string) query.Bool {
	var should []query.Text
	if text := strings.TrimSpace(residual); text != "" {
		should = []query.Text{
			{Field: query.Name, Text: text, Boost: BoostName},
			{Field: query.Industry, Text: text, Boost: BoostIndustry},
			{Field: query.Domain, Text: text, Boost: BoostDomain},
		}
	}

	var clauses []query.Clause
	if len(f.Industry) > 0 {
		clauses = append(clauses, query.Clause{Kind: query.Terms, Field: query.Industry, Values: f.Industry})
	}
	if f.Country != nil {
		clauses = append(clauses, query.Clause{Kind: query.Terms, Field: query.Country, Values: []string{*f.Country}})
	}
	if f.SizeRange != nil {
		clauses = append(clauses, query.Clause{
			Kind: query.Terms, Field: query.SizeRange, Values: []string{string(*f.SizeRange)},
		})
	}
	if f.YearMin != nil || f.YearMax != nil {
		c := query.Clause{Kind: query.Range, Field: query.Year}
		if f.YearMin != nil {
			v := float64(*f.YearMin)
			c.Min = &v
		}
		if f.YearMax != nil {
			v := float64(*f.YearMax)
			c.Max = &v
		}
		clauses = append(clauses, c)
	}
	if f.Locality != nil {
		clauses = append(clauses, query.Clause{Kind: query.Prefix, Field: query.Locality, Prefix: *f.Locality})
	}

	return query.NewBool(should, clauses)
}

// SortFor returns the engine push-down order for a sort key.
func SortFor(k sortkey.Key) query.Sort {
	switch k {
	case sortkey.NameAsc, sortkey.NameDesc:
		return query.Sort{Field: query.ByName, Desc: k.Descending()}
	case sortkey.SizeAsc, sortkey.SizeDesc:
		return query.Sort{Field: query.BySize, Desc: k.Descending()}
	case sortkey.YearAsc, sortkey.YearDesc:
		return query.Sort{Field: query.ByYear, Desc: k.Descending()}
	}
	return query.Sort{Field: query.ByScore}
}

// facetField maps a facet field to its query field.
func facetField(f filter.Field) query.Field {
	switch f {
	case filter.Industry:
		return query.Industry
	case filter.SizeRange:
		return query.SizeRange
	case filter.Country:
		return query.Country
	case filter.Locality:
		return query.Locality
	case filter.Year:
		return query.Year
	}
	return query.Field(f)
}
