package region

import "testing"

func TestDefaultRegistry_Resolve(t *testing.T) {
	reg := DefaultRegistry()
	tests := []struct {
		in   string
		want string
	}{
		{"us", "us"},
		{"US", "us"},
		{"usa", "us"},
		{"United States", "us"},
		{"  united   states of america ", "us"},
		{"gb", "uk"},
		{"deu", "de"},
		{"Germany", "de"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, ok := reg.Resolve(tt.in)
			if !ok {
				t.Fatalf("Resolve(%q) not found", tt.in)
			}
			if r.ID() != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.in, r.ID(), tt.want)
			}
		})
	}

	if _, ok := reg.Resolve("atlantis"); ok {
		t.Error("unknown region resolved")
	}
}

func TestDefaultRegistry_All(t *testing.T) {
	all := DefaultRegistry().All()
	if len(all) != 16 {
		t.Fatalf("len(All()) = %d, want 16", len(all))
	}
	if all[0].ID() != "us" || all[0].Locale() != "en-US" || all[0].Country() != "united states" {
		t.Errorf("first region = %+v", all[0])
	}
}

func TestRegistry_Get_IDOnly(t *testing.T) {
	reg := DefaultRegistry()
	if _, ok := reg.Get("usa"); ok {
		t.Error("Get should not resolve aliases")
	}
	if r, ok := reg.Get("us"); !ok || r.Label() != "United States" {
		t.Errorf("Get(us) = %+v, %v", r, ok)
	}
}

func TestNewRegistry_DuplicateKey(t *testing.T) {
	a, _ := New("aa", "Alpha", "en-US", "alpha")
	b, _ := New("bb", "Beta", "en-US", "alpha")
	if _, err := NewRegistry([]Region{a, b}); err == nil {
		t.Fatal("expected duplicate country error")
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New("", "X", "", "x"); err == nil {
		t.Error("expected error for empty id")
	}
	if _, err := New("x", " ", "", "x"); err == nil {
		t.Error("expected error for empty label")
	}
	if _, err := New("x", "X", "", ""); err == nil {
		t.Error("expected error for empty country")
	}
}
