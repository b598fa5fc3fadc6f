package region

type seed struct {
	id, label, locale, country string
	aliases                    []string
}

var defaultSeeds = []seed{
	{"us", "United States", "en-US", "united states", []string{"usa", "united states of america"}},
	{"in", "India", "en-IN", "india", []string{"ind"}},
	{"br", "Brazil", "pt-BR", "brazil", []string{"bra"}},
	{"uk", "United Kingdom", "en-GB", "united kingdom", []string{"gb", "gbr"}},
	{"de", "Germany", "de-DE", "germany", []string{"deu"}},
	{"fr", "France", "fr-FR", "france", []string{"fra"}},
	{"jp", "Japan", "ja-JP", "japan", []string{"jpn"}},
	{"cn", "China", "zh-CN", "china", []string{"chn"}},
	{"ca", "Canada", "en-CA", "canada", []string{"can"}},
	{"au", "Australia", "en-AU", "australia", []string{"aus"}},
	{"mx", "Mexico", "es-MX", "mexico", []string{"mex"}},
	{"es", "Spain", "es-ES", "spain", []string{"esp"}},
	{"ie", "Ireland", "en-IE", "ireland", []string{"irl"}},
	{"nl", "Netherlands", "nl-NL", "netherlands", []string{"nld"}},
	{"sg", "Singapore", "en-SG", "singapore", []string{"sgp"}},
	{"ar", "Argentina", "es-AR", "argentina", []string{"arg"}},
}

// Defaults returns the built-in sixteen regions.
func Defaults() []Region {
	out := make([]Region, 0, len(defaultSeeds))
	for _, s := range defaultSeeds {
		r, err := New(s.id, s.label, s.locale, s.country, s.aliases...)
		if err != nil {
			panic(err)
		}
		out = append(out, r)
	}
	return out
}

// DefaultRegistry returns a registry over Defaults.
func DefaultRegistry() *Registry {
	reg, err := NewRegistry(Defaults())
	if err != nil {
		panic(err)
	}
	return reg
}
