package filter

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kailas-cloud/companysearch/internal/domain"
	"github.com/kailas-cloud/companysearch/internal/domain/company"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func sizePtr(s string) *company.SizeRange {
	sr := company.SizeRange(s)
	return &sr
}

func TestNormalize_Canonicalizes(t *testing.T) {
	s := Set{
		Industry:  []string{" Computer Software", "internet", "computer software", ""},
		SizeRange: sizePtr("11-50"),
		Country:   strPtr("  United   States "),
		Locality:  strPtr(""),
	}
	got, err := s.Normalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"computer software", "internet"}; !reflect.DeepEqual(got.Industry, want) {
		t.Errorf("Industry = %v, want %v", got.Industry, want)
	}
	if got.SizeRange == nil || *got.SizeRange != company.Size11To50 {
		t.Errorf("SizeRange = %v", got.SizeRange)
	}
	if got.Country == nil || *got.Country != "united states" {
		t.Errorf("Country = %v", got.Country)
	}
	if got.Locality != nil {
		t.Errorf("empty locality should be dropped, got %q", *got.Locality)
	}
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name  string
		set   Set
		field string
	}{
		{"unknown size", Set{SizeRange: sizePtr("enormous")}, "filters.size_range"},
		{"inverted years", Set{YearMin: intPtr(2010), YearMax: intPtr(2000)}, "filters.year_min"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.set.Normalize()
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			de, _ := domain.AsError(err)
			if de.Field != tt.field {
				t.Errorf("Field = %q, want %q", de.Field, tt.field)
			}
		})
	}
}

func TestNormalize_EqualYearsAllowed(t *testing.T) {
	got, err := Set{YearMin: intPtr(2000), YearMax: intPtr(2000)}.Normalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *got.YearMin != 2000 || *got.YearMax != 2000 {
		t.Errorf("years = %d..%d", *got.YearMin, *got.YearMax)
	}
}

func TestActiveAndWithout(t *testing.T) {
	s := Set{
		Industry:  []string{"internet"},
		SizeRange: sizePtr(string(company.Size1To10)),
		YearMax:   intPtr(2020),
	}
	if got := s.Active(); !reflect.DeepEqual(got, []Field{Industry, SizeRange, Year}) {
		t.Errorf("Active() = %v", got)
	}
	w := s.Without(Industry)
	if len(w.Industry) != 0 || w.SizeRange == nil {
		t.Errorf("Without(Industry) = %+v", w)
	}
	if len(s.Industry) != 1 {
		t.Error("Without mutated the receiver")
	}
	if !(Set{}).IsEmpty() {
		t.Error("zero Set should be empty")
	}
}

func TestMatches(t *testing.T) {
	year := 2005
	doc := company.Reconstruct(company.Props{
		ID: "c1", Industry: "Internet", Country: "united states",
		Locality: "san francisco, california, united states",
		SizeRange: company.Size51To200, YearFounded: &year,
	})
	tests := []struct {
		name string
		set  Set
		want bool
	}{
		{"empty", Set{}, true},
		{"industry any-of", Set{Industry: []string{"computer software", "internet"}}, true},
		{"industry miss", Set{Industry: []string{"banking"}}, false},
		{"size", Set{SizeRange: sizePtr(string(company.Size51To200))}, true},
		{"size miss", Set{SizeRange: sizePtr(string(company.Size1To10))}, false},
		{"country", Set{Country: strPtr("united states")}, true},
		{"locality component", Set{Locality: strPtr("california")}, true},
		{"locality prefix", Set{Locality: strPtr("san fran")}, true},
		{"locality miss", Set{Locality: strPtr("texas")}, false},
		{"year inside", Set{YearMin: intPtr(2000), YearMax: intPtr(2005)}, true},
		{"year outside", Set{YearMin: intPtr(2006)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.Matches(&doc); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}

	noYear := company.Reconstruct(company.Props{ID: "c2"})
	if (Set{YearMin: intPtr(1900)}).Matches(&noYear) {
		t.Error("document without year must not match a year filter")
	}
}
