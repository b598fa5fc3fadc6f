package understanding

import (
	"strings"

	"github.com/kailas-cloud/companysearch/internal/domain/region"
)

// Vocabulary holds the phrases free-text analysis recognizes. Keys are
// lower-case phrases; industry values are indexed industry spellings and
// country values are stored country names.
type Vocabulary struct {
	Industries map[string][]string
	Localities []string
	Countries  map[string]string
}

// Merge returns a copy of v extended with other. Entries of other win.
func (v Vocabulary) Merge(other Vocabulary) Vocabulary {
	out := Vocabulary{
		Industries: make(map[string][]string, len(v.Industries)+len(other.Industries)),
		Countries:  make(map[string]string, len(v.Countries)+len(other.Countries)),
	}
	for k, vals := range v.Industries {
		out.Industries[k] = vals
	}
	for k, vals := range other.Industries {
		out.Industries[k] = vals
	}
	out.Localities = append(append(out.Localities, v.Localities...), other.Localities...)
	for k, c := range v.Countries {
		out.Countries[k] = c
	}
	for k, c := range other.Countries {
		out.Countries[k] = c
	}
	return out
}

// DefaultVocabulary returns the built-in industry and location phrases.
// Country phrases come from the region registry's labels and country names.
func DefaultVocabulary(reg *region.Registry) Vocabulary {
	v := Vocabulary{
		Industries: make(map[string][]string, len(industryExpansion)),
		Localities: append(append([]string(nil), usStates...), cities...),
		Countries:  make(map[string]string, len(countryAliases)),
	}
	for k, vals := range industryExpansion {
		v.Industries[k] = vals
	}
	for alias, country := range countryAliases {
		v.Countries[alias] = country
	}
	if reg != nil {
		for _, r := range reg.All() {
			v.Countries[r.Country()] = r.Country()
			v.Countries[strings.ToLower(r.Label())] = r.Country()
		}
	}
	return v
}

// industryExpansion maps what users type to indexed industry values.
var industryExpansion = map[string][]string{
	"tech": {"technology", "software", "information technology", "information technology and services",
		"computer", "it services", "computer software", "internet"},
	"technology": {"technology", "software", "information technology", "information technology and services",
		"computer", "computer software", "internet"},
	"software": {"software", "information technology", "information technology and services",
		"computer software", "it services"},
	"it": {"information technology", "information technology and services", "it services",
		"computer", "computer software"},
	"internet":      {"internet"},
	"fintech":       {"financial", "fintech", "banking", "financial services"},
	"finance":       {"financial", "finance", "banking", "investment"},
	"healthcare":    {"healthcare", "hospital", "medical", "health"},
	"health":        {"healthcare", "health", "medical"},
	"retail":        {"retail", "consumer", "e-commerce", "ecommerce"},
	"manufacturing": {"manufacturing", "industrial", "production"},
	"consulting":    {"consulting", "professional services", "business services"},
	"education":     {"education", "e-learning", "edtech", "training"},
	"media":         {"media", "entertainment", "publishing", "broadcast"},
	"real estate":   {"real estate", "real estate development", "property"},
	"energy":        {"energy", "oil", "gas", "renewable", "utilities"},
	"transport":     {"transport", "transportation", "logistics", "shipping"},
	"food":          {"food", "restaurant", "food & beverage", "hospitality"},
	"marketing":     {"marketing", "advertising", "market research"},
	"hr":            {"human resources", "hr", "staffing", "recruiting"},
	"recruiting":    {"recruiting", "staffing", "human resources", "talent"},
}

// countryAliases are unambiguous informal country names.
var countryAliases = map[string]string{
	"usa":           "united states",
	"america":       "united states",
	"uk":            "united kingdom",
	"britain":       "united kingdom",
	"great britain": "united kingdom",
	"holland":       "netherlands",
}

var usStates = []string{
	"alabama", "alaska", "arizona", "arkansas", "california", "colorado", "connecticut",
	"delaware", "florida", "georgia", "hawaii", "idaho", "illinois", "indiana", "iowa",
	"kansas", "kentucky", "louisiana", "maine", "maryland", "massachusetts", "michigan",
	"minnesota", "mississippi", "missouri", "montana", "nebraska", "nevada", "new hampshire",
	"new jersey", "new mexico", "new york", "north carolina", "north dakota", "ohio",
	"oklahoma", "oregon", "pennsylvania", "rhode island", "south carolina", "south dakota",
	"tennessee", "texas", "utah", "vermont", "virginia", "washington", "west virginia",
	"wisconsin", "wyoming",
}

var cities = []string{
	"san francisco", "los angeles", "san diego", "san jose", "seattle", "boston", "chicago",
	"austin", "denver", "atlanta", "miami", "new york city", "brooklyn", "dallas", "houston",
	"philadelphia", "toronto", "vancouver", "montreal", "london", "manchester", "dublin",
	"berlin", "munich", "hamburg", "paris", "lyon", "amsterdam", "rotterdam", "madrid",
	"barcelona", "bangalore", "bengaluru", "mumbai", "delhi", "new delhi", "hyderabad", "pune",
	"chennai", "tokyo", "osaka", "beijing", "shanghai", "shenzhen", "sydney", "melbourne",
	"sao paulo", "rio de janeiro", "mexico city", "buenos aires",
}
