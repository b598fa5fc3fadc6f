package intent

// Intent is what free-text analysis inferred: implicit filter values plus the
// tokens left over for relevance scoring.
type Intent struct {
	Industries []string
	Country    string
	Locality   string
	// Residual is the free text with consumed phrases and filler words removed.
	Residual string
}

// IsEmpty reports whether no implicit filter was found.
func (i Intent) IsEmpty() bool {
	return len(i.Industries) == 0 && i.Country == "" && i.Locality == ""
}
