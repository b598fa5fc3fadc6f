package search

import (
	"golang.org/x/text/language"

	"github.com/kailas-cloud/companysearch/internal/domain"
	"github.com/kailas-cloud/companysearch/internal/domain/region"
	"github.com/kailas-cloud/companysearch/internal/domain/search/filter"
	"github.com/kailas-cloud/companysearch/internal/domain/search/intent"
	"github.com/kailas-cloud/companysearch/internal/domain/search/request"
)

// DefaultMaxWindow caps page*size.
const DefaultMaxWindow = 1000

// Merged is the effective interpretation of a request.
type Merged struct {
	Filters filter.Set
	// Implicit holds only the implicit values that took effect.
	Implicit filter.Set
	Region   *region.Region
	Locale   *language.Tag
	Residual string
}

// Merge combines explicit filters with implicit ones: an explicit value wins
// per field, industry is the union of both.
func Merge(req *request.Request, in intent.Intent, regions RegionResolver, maxWindow int) (Merged, error) {
	if maxWindow > 0 && req.Window() > maxWindow {
		return Merged{}, domain.NewValidation("page",
			"page*size (%d) exceeds the result window (%d)", req.Window(), maxWindow)
	}

	var m Merged
	if scope := req.RegionScope(); scope != "" {
		r, ok := regions.Resolve(scope)
		if !ok {
			return Merged{}, domain.NewValidation("country_scope", "unknown region %q", scope)
		}
		m.Region = &r
	}

	if loc := req.Locale(); loc != "" {
		tag, err := language.Parse(loc)
		if err != nil {
			return Merged{}, domain.NewValidation("locale", "invalid locale %q", loc)
		}
		m.Locale = &tag
	}

	explicit := req.Filters()
	merged := explicit
	merged.Industry = append([]string(nil), explicit.Industry...)

	has := make(map[string]bool, len(explicit.Industry))
	for _, v := range explicit.Industry {
		has[v] = true
	}
	for _, v := range in.Industries {
		if !has[v] {
			has[v] = true
			m.Implicit.Industry = append(m.Implicit.Industry, v)
			merged.Industry = append(merged.Industry, v)
		}
	}
	if explicit.Country == nil && in.Country != "" {
		c := in.Country
		merged.Country, m.Implicit.Country = &c, &c
	}
	if explicit.Locality == nil && in.Locality != "" {
		l := in.Locality
		merged.Locality, m.Implicit.Locality = &l, &l
	}

	normalized, err := merged.Normalize()
	if err != nil {
		return Merged{}, err
	}
	m.Filters = normalized
	m.Residual = in.Residual
	return m, nil
}
