package sortkey

// Key is a result ordering policy.
type Key string

// Sort keys.
const (
	Relevance Key = "relevance"
	NameAsc   Key = "name_asc"
	NameDesc  Key = "name_desc"
	SizeAsc   Key = "size_asc"
	SizeDesc  Key = "size_desc"
	YearAsc   Key = "year_asc"
	YearDesc  Key = "year_desc"
)

var all = []Key{Relevance, NameAsc, NameDesc, SizeAsc, SizeDesc, YearAsc, YearDesc}

// All returns every supported key.
func All() []Key {
	out := make([]Key, len(all))
	copy(out, all)
	return out
}

// IsValid checks if the key is one of the supported values.
func (k Key) IsValid() bool {
	for _, v := range all {
		if v == k {
			return true
		}
	}
	return false
}

// Descending reports whether the key orders its attribute high to low.
func (k Key) Descending() bool {
	return k == NameDesc || k == SizeDesc || k == YearDesc
}
