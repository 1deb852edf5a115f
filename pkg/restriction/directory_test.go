package restriction

import (
	"context"
	"testing"
)

func TestStaticDirectory_OverlappingLists(t *testing.T) {
	directory := NewStaticDirectory(
		[]string{"auditors", "kiosk-users"},
		[]string{"kiosk-users"},
	)

	groups, err := directory.Groups(context.Background(), []string{"kiosk-users"})
	if err != nil {
		t.Fatalf("Groups() error: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("Groups() returned %d groups, want 1", len(groups))
	}

	restrictions := groups[0].Restrictions()
	if !restrictions.Contains(ForceReadOnly) || !restrictions.Contains(DisallowConcurrent) {
		t.Errorf("kiosk-users restrictions = %v, want both", restrictions)
	}
}

func TestStaticDirectory_UnknownNamesOmitted(t *testing.T) {
	directory := NewStaticDirectory([]string{"auditors"}, nil)

	groups, err := directory.Groups(context.Background(), []string{"staff", "auditors", "interns"})
	if err != nil {
		t.Fatalf("Groups() error: %v", err)
	}
	if len(groups) != 1 || groups[0].Name() != "auditors" {
		t.Errorf("Groups() = %v, want only auditors", groups)
	}
}

func TestStaticDirectory_All_Sorted(t *testing.T) {
	directory := NewStaticDirectory([]string{"zeta", "alpha"}, []string{"mid"})

	all := directory.All()
	if len(all) != 3 {
		t.Fatalf("All() returned %d groups, want 3", len(all))
	}
	for i, want := range []string{"alpha", "mid", "zeta"} {
		if all[i].Name() != want {
			t.Errorf("All()[%d] = %q, want %q", i, all[i].Name(), want)
		}
	}
}

func TestGroup_AttributesExposeRestrictions(t *testing.T) {
	g := NewGroup("auditors", ForceReadOnly)

	attrs := g.Attributes()
	if attrs["addl-restrict-force-read-only"] != TruthValue {
		t.Errorf("Attributes() = %v, want force-read-only set to %q", attrs, TruthValue)
	}
	if _, ok := attrs["addl-restrict-disallow-concurrent"]; ok {
		t.Error("Attributes() should not contain inactive restrictions")
	}
}
