package region

import (
	"fmt"
	"sort"
	"strings"
)

// Region is one entry of the declared region set.
type Region struct {
	id      string
	label   string
	locale  string
	country string
	aliases []string
}

// New validates and creates a Region. The id is the lower-case region code ("us").
// Country is the canonical lower-case country name as stored in company documents.
func New(id, label, locale, country string, aliases ...string) (Region, error) {
	id = normalize(id)
	if id == "" {
		return Region{}, fmt.Errorf("region id is required")
	}
	if strings.TrimSpace(label) == "" {
		return Region{}, fmt.Errorf("region %q: label is required", id)
	}
	country = normalize(country)
	if country == "" {
		return Region{}, fmt.Errorf("region %q: country is required", id)
	}
	norm := make([]string, 0, len(aliases))
	for _, a := range aliases {
		if a = normalize(a); a != "" {
			norm = append(norm, a)
		}
	}
	return Region{id: id, label: strings.TrimSpace(label), locale: strings.TrimSpace(locale), country: country, aliases: norm}, nil
}

// ID returns the region code.
func (r Region) ID() string { return r.id }

// Label returns the display name.
func (r Region) Label() string { return r.label }

// Locale returns the BCP 47 locale used for number formatting ("en-US").
func (r Region) Locale() string { return r.locale }

// Country returns the canonical country value used in documents.
func (r Region) Country() string { return r.country }

// Aliases returns extra inputs that resolve to this region (ISO-3 codes etc.).
func (r Region) Aliases() []string { return r.aliases }

// Registry is the immutable declared region set.
type Registry struct {
	regions []Region
	lookup  map[string]int
}

// NewRegistry builds a registry. Ids and every resolvable key must be unique.
func NewRegistry(regions []Region) (*Registry, error) {
	reg := &Registry{
		regions: make([]Region, 0, len(regions)),
		lookup:  make(map[string]int, len(regions)*4),
	}
	for _, r := range regions {
		if r.id == "" {
			return nil, fmt.Errorf("region with empty id")
		}
		idx := len(reg.regions)
		keys := append([]string{r.id, r.country, normalize(r.label)}, r.aliases...)
		for _, k := range keys {
			if prev, ok := reg.lookup[k]; ok && prev != idx {
				return nil, fmt.Errorf("region %q: key %q already used by %q", r.id, k, reg.regions[prev].id)
			}
			reg.lookup[k] = idx
		}
		reg.regions = append(reg.regions, r)
	}
	return reg, nil
}

// All returns the declared regions in declaration order.
func (r *Registry) All() []Region {
	out := make([]Region, len(r.regions))
	copy(out, r.regions)
	return out
}

// Get returns a region by id only.
func (r *Registry) Get(id string) (Region, bool) {
	idx, ok := r.lookup[normalize(id)]
	if !ok || r.regions[idx].id != normalize(id) {
		return Region{}, false
	}
	return r.regions[idx], true
}

// Resolve accepts a region code, an alias, a country name or a label.
func (r *Registry) Resolve(input string) (Region, bool) {
	idx, ok := r.lookup[normalize(input)]
	if !ok {
		return Region{}, false
	}
	return r.regions[idx], true
}

// IDs returns the sorted region ids.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.regions))
	for i, reg := range r.regions {
		ids[i] = reg.id
	}
	sort.Strings(ids)
	return ids
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
