package filter

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/companysearch/internal/domain"
	"github.com/kailas-cloud/companysearch/internal/domain/company"
)

// Field names a filterable company attribute.
type Field string

// Filterable fields.
const (
	Industry  Field = "industry"
	SizeRange Field = "size_range"
	Country   Field = "country"
	Locality  Field = "locality"
	Year      Field = "year_founded"
)

// MaxIndustries caps the industry any-of set.
const MaxIndustries = 64

// Set is the structured filter set of a search. Nil pointers mean "not set".
type Set struct {
	Industry  []string
	SizeRange *company.SizeRange
	Country   *string
	Locality  *string
	YearMin   *int
	YearMax   *int
}

// Normalize validates the set and returns a canonical copy:
// strings lower-cased and trimmed, empty values dropped, industries deduplicated and sorted,
// size range canonicalized to its bucket spelling.
func (s Set) Normalize() (Set, error) {
	out := Set{
		Country:  normString(s.Country),
		Locality: normString(s.Locality),
		YearMin:  s.YearMin,
		YearMax:  s.YearMax,
	}

	if len(s.Industry) > MaxIndustries {
		return Set{}, domain.NewValidation("filters.industry", "too many values (max %d)", MaxIndustries)
	}
	out.Industry = normIndustries(s.Industry)

	if s.SizeRange != nil && strings.TrimSpace(string(*s.SizeRange)) != "" {
		sr, ok := company.ParseSizeRange(string(*s.SizeRange))
		if !ok {
			return Set{}, domain.NewValidation("filters.size_range", "unknown size range %q", string(*s.SizeRange))
		}
		out.SizeRange = &sr
	}

	if out.YearMin != nil && out.YearMax != nil && *out.YearMin > *out.YearMax {
		return Set{}, domain.NewValidation("filters.year_min",
			"year_min (%d) must not exceed year_max (%d)", *out.YearMin, *out.YearMax)
	}
	return out, nil
}

// IsEmpty reports whether no filter is active.
func (s Set) IsEmpty() bool { return len(s.Active()) == 0 }

// Active returns the fields with an active filter, in canonical order.
func (s Set) Active() []Field {
	var out []Field
	if len(s.Industry) > 0 {
		out = append(out, Industry)
	}
	if s.SizeRange != nil {
		out = append(out, SizeRange)
	}
	if s.Country != nil {
		out = append(out, Country)
	}
	if s.Locality != nil {
		out = append(out, Locality)
	}
	if s.YearMin != nil || s.YearMax != nil {
		out = append(out, Year)
	}
	return out
}

// Without returns a copy with f's filter cleared.
func (s Set) Without(f Field) Set {
	out := s
	out.Industry = append([]string(nil), s.Industry...)
	switch f {
	case Industry:
		out.Industry = nil
	case SizeRange:
		out.SizeRange = nil
	case Country:
		out.Country = nil
	case Locality:
		out.Locality = nil
	case Year:
		out.YearMin, out.YearMax = nil, nil
	}
	return out
}

// Matches evaluates the set against a document the way the engines do.
// Locality is a prefix match on any comma-separated component of the document's locality.
func (s Set) Matches(d *company.Document) bool {
	if len(s.Industry) > 0 {
		ind := strings.ToLower(d.Industry())
		found := false
		for _, v := range s.Industry {
			if v == ind {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if s.SizeRange != nil && d.SizeRange() != *s.SizeRange {
		return false
	}
	if s.Country != nil && strings.ToLower(d.Country()) != *s.Country {
		return false
	}
	if s.Locality != nil && !LocalityMatches(d.Locality(), *s.Locality) {
		return false
	}
	if s.YearMin != nil || s.YearMax != nil {
		y := d.YearFounded()
		if y == nil {
			return false
		}
		if s.YearMin != nil && *y < *s.YearMin {
			return false
		}
		if s.YearMax != nil && *y > *s.YearMax {
			return false
		}
	}
	return true
}

// LocalityComponents splits a locality into its lower-cased comma-separated parts.
func LocalityComponents(locality string) []string {
	parts := strings.Split(strings.ToLower(locality), ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LocalityMatches reports whether any locality component starts with prefix.
func LocalityMatches(locality, prefix string) bool {
	for _, c := range LocalityComponents(locality) {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

func normString(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.Join(strings.Fields(strings.ToLower(*p)), " ")
	if v == "" {
		return nil
	}
	return &v
}

func normIndustries(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.Join(strings.Fields(strings.ToLower(v)), " ")
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}
