// Package understanding extracts implicit filters from free-text queries.
package understanding

import (
	"sort"
	"strings"
	"unicode"

	"github.com/kailas-cloud/companysearch/internal/domain/search/intent"
)

// fillers are connective words dropped from the residual text.
var fillers = map[string]bool{
	"companies": true, "company": true, "firms": true, "in": true, "based": true,
	"located": true, "near": true, "from": true, "the": true, "of": true,
}

type matchKind int

const (
	kindNone matchKind = iota
	kindIndustry
	kindLocality
	kindCountry
)

// segment is one scanned span: either a matched phrase or a single kept token.
type segment struct {
	kind   matchKind
	tokens []string
	value  string
	values []string
}

// Analyzer matches query phrases against a vocabulary, longest phrase first.
// Safe for concurrent use.
type Analyzer struct {
	industries map[string][]string
	localities map[string]bool
	countries  map[string]string
	maxPhrase  int
}

// New compiles a vocabulary. Phrases are normalized the way query text is tokenized.
func New(v Vocabulary) *Analyzer {
	a := &Analyzer{
		industries: make(map[string][]string, len(v.Industries)),
		localities: make(map[string]bool, len(v.Localities)),
		countries:  make(map[string]string, len(v.Countries)),
		maxPhrase:  1,
	}
	for phrase, values := range v.Industries {
		if key := a.key(phrase); key != "" {
			a.industries[key] = normalizeValues(values)
		}
	}
	for _, phrase := range v.Localities {
		if key := a.key(phrase); key != "" {
			a.localities[key] = true
		}
	}
	for phrase, country := range v.Countries {
		if key := a.key(phrase); key != "" {
			a.countries[key] = strings.ToLower(strings.TrimSpace(country))
		}
	}
	return a
}

// key tokenizes a vocabulary phrase and tracks the longest phrase length.
func (a *Analyzer) key(phrase string) string {
	toks := tokenize(phrase)
	if len(toks) > a.maxPhrase {
		a.maxPhrase = len(toks)
	}
	return strings.Join(toks, " ")
}

// Analyze returns the implicit filters found in text and the residual text.
// A field matched with more than one distinct value yields no implicit value,
// and the phrases of that field stay in the residual.
func (a *Analyzer) Analyze(text string) intent.Intent {
	tokens := tokenize(text)
	segs := make([]segment, 0, len(tokens))

	for i := 0; i < len(tokens); {
		seg, n := a.longestMatch(tokens[i:])
		if n == 0 {
			if !fillers[tokens[i]] {
				segs = append(segs, segment{kind: kindNone, tokens: tokens[i : i+1]})
			}
			i++
			continue
		}
		segs = append(segs, seg)
		i += n
	}

	out := intent.Intent{}
	localities := distinct(segs, kindLocality)
	countries := distinct(segs, kindCountry)
	if len(localities) == 1 {
		out.Locality = localities[0]
	}
	if len(countries) == 1 {
		out.Country = countries[0]
	}

	seen := map[string]bool{}
	var residual []string
	for _, s := range segs {
		switch {
		case s.kind == kindIndustry:
			for _, v := range s.values {
				if !seen[v] {
					seen[v] = true
					out.Industries = append(out.Industries, v)
				}
			}
		case s.kind == kindLocality && len(localities) == 1,
			s.kind == kindCountry && len(countries) == 1:
		default:
			residual = append(residual, s.tokens...)
		}
	}
	sort.Strings(out.Industries)
	out.Residual = strings.Join(residual, " ")
	return out
}

// longestMatch tries the longest phrase at the start of tokens first.
// Industry phrases are tried before locations of the same length.
func (a *Analyzer) longestMatch(tokens []string) (segment, int) {
	if fillers[tokens[0]] && !a.startsPhrase(tokens) {
		return segment{}, 0
	}
	for n := min(a.maxPhrase, len(tokens)); n > 0; n-- {
		span := tokens[:n]
		phrase := strings.Join(span, " ")
		if values, ok := a.industry(phrase); ok {
			return segment{kind: kindIndustry, tokens: span, values: values}, n
		}
		if country, ok := a.countries[phrase]; ok {
			return segment{kind: kindCountry, tokens: span, value: country}, n
		}
		if a.localities[phrase] {
			return segment{kind: kindLocality, tokens: span, value: phrase}, n
		}
	}
	return segment{}, 0
}

// startsPhrase reports whether a multi-word vocabulary phrase begins with a filler, e.g. "the netherlands".
func (a *Analyzer) startsPhrase(tokens []string) bool {
	for n := min(a.maxPhrase, len(tokens)); n > 1; n-- {
		phrase := strings.Join(tokens[:n], " ")
		if _, ok := a.countries[phrase]; ok || a.localities[phrase] {
			return true
		}
		if _, ok := a.industries[phrase]; ok {
			return true
		}
	}
	return false
}

// industry looks a phrase up, folding a plural "s" on the last word.
func (a *Analyzer) industry(phrase string) ([]string, bool) {
	if values, ok := a.industries[phrase]; ok {
		return values, true
	}
	if strings.HasSuffix(phrase, "s") {
		if values, ok := a.industries[strings.TrimSuffix(phrase, "s")]; ok {
			return values, true
		}
	}
	return nil, false
}

func distinct(segs []segment, kind matchKind) []string {
	var out []string
	seen := map[string]bool{}
	for _, s := range segs {
		if s.kind == kind && !seen[s.value] {
			seen[s.value] = true
			out = append(out, s.value)
		}
	}
	return out
}

// tokenize lower-cases text and splits it on anything but letters, digits, '&' and '-'.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '&' && r != '-'
	})
}

func normalizeValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
