package company

import (
	"github.com/kailas-cloud/companysearch/internal/db"
	"github.com/kailas-cloud/companysearch/internal/domain/search/query"
)

// KeyPrefix is the key namespace of company documents.
const KeyPrefix = "company:"

// Physical index fields.
const (
	fieldName        = "name"
	fieldIndustry    = "industry"
	fieldDomain      = "domain"
	fieldIndustryTag = "industry_tag"
	fieldCountry     = "country"
	fieldSizeRange   = "size_range"
	fieldLocalityTag = "locality_tag"
	fieldNameSort    = "name_sort"
	fieldSizeRank    = "size_rank"
	fieldYear        = "year_founded"

	fieldCountryName = "country_name"
	fieldLocality    = "locality"
	fieldLinkedIn    = "linkedin_url"
	fieldCurrent     = "current_employee_estimate"
	fieldTotal       = "total_employee_estimate"
	fieldRegional    = "regional_estimates"
)

// returnFields are the stored fields parseRecord reads back.
var returnFields = []string{
	fieldName, fieldIndustry, fieldDomain, fieldCountry, fieldCountryName, fieldSizeRange, fieldYear,
	fieldLocality, fieldLinkedIn, fieldCurrent, fieldTotal, fieldRegional,
}

// Text weights of the scored fields.
const (
	weightName     = 3
	weightIndustry = 2
	weightDomain   = 1
)

// localitySeparator joins locality components in the locality tag.
const localitySeparator = ","

// Schema returns the index definition for company documents.
func Schema(index string) *db.IndexDefinition {
	return db.NewIndex(index).
		Prefix(KeyPrefix).
		Text(fieldName, weightName).
		Text(fieldIndustry, weightIndustry).WithSynonyms().
		Text(fieldDomain, weightDomain).
		Tag(fieldIndustryTag).
		Tag(fieldCountry).
		Tag(fieldSizeRange).
		TagWithOpts(fieldLocalityTag, localitySeparator, false).
		Tag(fieldNameSort).Sortable().
		Numeric(fieldSizeRank).Sortable().
		Numeric(fieldYear).Sortable().
		Stored(fieldCountryName, fieldLocality, fieldLinkedIn, fieldCurrent, fieldTotal, fieldRegional).
		MustBuild()
}

// textField maps a logical scored field to its TEXT field.
func textField(f query.Field) query.Field {
	switch f {
	case query.Name:
		return fieldName
	case query.Industry:
		return fieldIndustry
	case query.Domain:
		return fieldDomain
	}
	return f
}

// filterField maps a logical filter field to its exact-match field.
func filterField(f query.Field) query.Field {
	switch f {
	case query.Industry:
		return fieldIndustryTag
	case query.Country:
		return fieldCountry
	case query.SizeRange:
		return fieldSizeRange
	case query.Locality:
		return fieldLocalityTag
	case query.Year:
		return fieldYear
	}
	return f
}

// labelField maps a facet field to the stored field carrying its display form;
// empty means the facet value is already displayable.
func labelField(f query.Field) string {
	switch f {
	case query.Industry:
		return fieldIndustry
	case query.Country:
		return fieldCountryName
	}
	return ""
}

// sortField maps a push-down sort to its sortable field; empty means score.
func sortField(f query.SortField) string {
	switch f {
	case query.ByName:
		return fieldNameSort
	case query.BySize:
		return fieldSizeRank
	case query.ByYear:
		return fieldYear
	}
	return ""
}
