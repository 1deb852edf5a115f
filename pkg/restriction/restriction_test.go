package restriction

import (
	"reflect"
	"testing"
)

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	if len(catalog) != 2 {
		t.Fatalf("Catalog() returned %d restrictions, want 2", len(catalog))
	}

	names := make(map[string]bool)
	for _, r := range catalog {
		if !r.IsValid() {
			t.Errorf("catalog restriction %q is not valid", r)
		}
		if r.Description() == "" {
			t.Errorf("catalog restriction %q has no description", r)
		}
		names[r.AttributeName()] = true
	}

	if !names["addl-restrict-disallow-concurrent"] {
		t.Error("catalog missing addl-restrict-disallow-concurrent")
	}
	if !names["addl-restrict-force-read-only"] {
		t.Error("catalog missing addl-restrict-force-read-only")
	}
}

func TestIsEnabled_ExactTruthValueOnly(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"exact true", "true", true},
		{"capitalized", "True", false},
		{"uppercase", "TRUE", false},
		{"yes", "yes", false},
		{"one", "1", false},
		{"empty", "", false},
		{"padded", " true", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := map[string]string{
				ForceReadOnly.AttributeName(): tt.value,
			}
			if got := ForceReadOnly.IsEnabled(attrs); got != tt.want {
				t.Errorf("IsEnabled with value %q = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestIsEnabled_MissingAttribute(t *testing.T) {
	if ForceReadOnly.IsEnabled(map[string]string{}) {
		t.Error("IsEnabled should be false when the attribute is absent")
	}
	if ForceReadOnly.IsEnabled(nil) {
		t.Error("IsEnabled should be false on a nil attribute map")
	}
}

func TestSet_AttributeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		set  Set
	}{
		{"empty", NewSet()},
		{"single", NewSet(ForceReadOnly)},
		{"both", NewSet(ForceReadOnly, DisallowConcurrent)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromAttributes(AsAttributeMap(tt.set))
			if !got.Equal(tt.set) {
				t.Errorf("FromAttributes(AsAttributeMap(%v)) = %v", tt.set, got)
			}
		})
	}
}

func TestFromAttributes_IgnoresUnknownAndInactive(t *testing.T) {
	set := FromAttributes(map[string]string{
		"addl-restrict-force-read-only":      "true",
		"addl-restrict-disallow-concurrent":  "True",
		"some-unrelated-extension-attribute": "true",
	})

	if !set.Contains(ForceReadOnly) {
		t.Error("expected ForceReadOnly to be active")
	}
	if set.Contains(DisallowConcurrent) {
		t.Error("DisallowConcurrent should be inactive for value \"True\"")
	}
	if len(set) != 1 {
		t.Errorf("expected exactly 1 restriction, got %v", set)
	}
}

func TestSet_Union(t *testing.T) {
	a := NewSet(ForceReadOnly)
	b := NewSet(DisallowConcurrent)

	u := a.Union(b)
	if !u.Contains(ForceReadOnly) || !u.Contains(DisallowConcurrent) {
		t.Errorf("Union = %v, want both restrictions", u)
	}

	// Union must not mutate its operands.
	if len(a) != 1 || len(b) != 1 {
		t.Error("Union mutated an operand")
	}
}

func TestSet_List_Sorted(t *testing.T) {
	s := NewSet(ForceReadOnly, DisallowConcurrent)
	list := s.List()

	want := []Restriction{DisallowConcurrent, ForceReadOnly}
	if !reflect.DeepEqual(list, want) {
		t.Errorf("List() = %v, want %v", list, want)
	}
}

func TestFilterAttributes(t *testing.T) {
	attrs := map[string]string{
		"addl-restrict-force-read-only": "true",
		"unrelated":                     "kept",
	}

	// Non-admins never see restriction attributes.
	filtered := FilterAttributes(false, attrs)
	if _, ok := filtered["addl-restrict-force-read-only"]; ok {
		t.Error("non-admin view should not contain restriction attributes")
	}
	if filtered["unrelated"] != "kept" {
		t.Error("non-admin view should keep unrelated attributes")
	}

	// Admins see every restriction attribute, present or not.
	filtered = FilterAttributes(true, map[string]string{"unrelated": "kept"})
	for _, r := range Catalog() {
		if _, ok := filtered[r.AttributeName()]; !ok {
			t.Errorf("admin view missing attribute %q", r.AttributeName())
		}
	}
}
