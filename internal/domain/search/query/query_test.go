package query

import "testing"

func TestNewBool_MinShould(t *testing.T) {
	text := []Text{{Field: Name, Text: "acme", Boost: 3}}
	filter := []Clause{{Kind: Terms, Field: Country, Values: []string{"germany"}}}

	if got := NewBool(text, nil).MinShould(); got != 1 {
		t.Errorf("text only: MinShould() = %d, want 1", got)
	}
	if got := NewBool(text, filter).MinShould(); got != 1 {
		t.Errorf("text + filter: MinShould() = %d, want 1", got)
	}
	if got := NewBool(nil, filter).MinShould(); got != 0 {
		t.Errorf("filter only: MinShould() = %d, want 0", got)
	}
	if !NewBool(nil, nil).IsMatchAll() {
		t.Error("empty Bool should be match-all")
	}
}

func TestBool_WithoutField(t *testing.T) {
	text := []Text{{Field: Name, Text: "acme", Boost: 3}}
	b := NewBool(text, []Clause{
		{Kind: Terms, Field: Country, Values: []string{"germany"}},
		{Kind: Terms, Field: Industry, Values: []string{"internet"}},
	})

	w := b.WithoutField(Country)
	if w.HasFilter(Country) {
		t.Error("country filter still present")
	}
	if !w.HasFilter(Industry) {
		t.Error("industry filter removed")
	}
	if len(w.Should()) != 1 || w.MinShould() != 1 {
		t.Errorf("required should clauses must survive: %+v", w)
	}
	if !b.HasFilter(Country) {
		t.Error("WithoutField mutated receiver")
	}

	filterOnly := NewBool(nil, []Clause{{Kind: Terms, Field: Country, Values: []string{"germany"}}})
	if !filterOnly.WithoutField(Country).IsMatchAll() {
		t.Error("removing the only filter should leave match-all")
	}
}

func TestBool_Map(t *testing.T) {
	b := NewBool(
		[]Text{{Field: Industry, Text: "tech"}},
		[]Clause{{Kind: Terms, Field: Industry, Values: []string{"internet"}}},
	)
	m := b.Map(
		func(f Field) Field { return f },
		func(f Field) Field { return f + "_tag" },
	)
	if m.Should()[0].Field != Industry {
		t.Errorf("text field = %q", m.Should()[0].Field)
	}
	if m.Filter()[0].Field != "industry_tag" {
		t.Errorf("filter field = %q", m.Filter()[0].Field)
	}
}
