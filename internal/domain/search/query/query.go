package query

// Field names a query attribute. Builders use logical names; engine adapters
// rename them to physical index fields through Bool.Map.
type Field string

// Logical fields.
const (
	Name      Field = "name"
	Industry  Field = "industry"
	Domain    Field = "domain"
	Country   Field = "country"
	SizeRange Field = "size_range"
	Locality  Field = "locality"
	Year      Field = "year_founded"
)

// Text is a scored full-text clause.
type Text struct {
	Field Field
	Text  string
	Boost float64
}

// Kind is the filter clause type.
type Kind int

// Filter clause kinds.
const (
	// Terms matches when the field equals any of Values.
	Terms Kind = iota
	// Range matches Min <= field <= Max; a nil bound is open.
	Range
	// Prefix matches when any field value starts with Prefix.
	Prefix
)

// Clause is an unscored exact filter clause.
type Clause struct {
	Kind   Kind
	Field  Field
	Values []string
	Prefix string
	Min    *float64
	Max    *float64
}

// Bool is a boolean query: a conjunction of filter clauses plus scored should clauses.
// When should clauses are present at least one must match, so filters only narrow
// a text query. No clauses at all means match-all.
type Bool struct {
	should    []Text
	filter    []Clause
	minShould int
}

// NewBool creates a Bool, deriving the minimum should-match from the clause mix.
func NewBool(should []Text, filter []Clause) Bool {
	b := Bool{
		should: append([]Text(nil), should...),
		filter: append([]Clause(nil), filter...),
	}
	if len(b.should) > 0 {
		b.minShould = 1
	}
	return b
}

// Should returns the scored clauses.
func (b Bool) Should() []Text { return b.should }

// Filter returns the filter conjunction.
func (b Bool) Filter() []Clause { return b.filter }

// MinShould returns how many should clauses must match (0 or 1).
func (b Bool) MinShould() int { return b.minShould }

// IsMatchAll reports whether the query has no clauses.
func (b Bool) IsMatchAll() bool { return len(b.should) == 0 && len(b.filter) == 0 }

// HasFilter reports whether a filter clause targets f.
func (b Bool) HasFilter(f Field) bool {
	for _, c := range b.filter {
		if c.Field == f {
			return true
		}
	}
	return false
}

// WithoutField returns a copy without f's filter clauses. Should clauses are kept.
func (b Bool) WithoutField(f Field) Bool {
	out := Bool{should: append([]Text(nil), b.should...), minShould: b.minShould}
	for _, c := range b.filter {
		if c.Field != f {
			out.filter = append(out.filter, c)
		}
	}
	return out
}

// Map renames fields: text for should clauses, filter for filter clauses.
func (b Bool) Map(text, filter func(Field) Field) Bool {
	out := Bool{minShould: b.minShould}
	for _, t := range b.should {
		t.Field = text(t.Field)
		out.should = append(out.should, t)
	}
	for _, c := range b.filter {
		c.Field = filter(c.Field)
		out.filter = append(out.filter, c)
	}
	return out
}

// SortField is a push-down sort attribute.
type SortField string

// Sort fields. Score is the engine's relevance order.
const (
	ByScore SortField = ""
	ByName  SortField = "name"
	BySize  SortField = "size"
	ByYear  SortField = "year"
)

// Sort is the engine-side ordering hint.
type Sort struct {
	Field SortField
	Desc  bool
}
