package sortkey

import "testing"

func TestKey_IsValid(t *testing.T) {
	for _, k := range All() {
		if !k.IsValid() {
			t.Errorf("%q should be valid", k)
		}
	}
	for _, k := range []Key{"", "size", "RELEVANCE"} {
		if k.IsValid() {
			t.Errorf("%q should be invalid", k)
		}
	}
}

func TestKey_Descending(t *testing.T) {
	if !YearDesc.Descending() || YearAsc.Descending() || Relevance.Descending() {
		t.Error("unexpected Descending() result")
	}
}
