package connection

import "testing"

func TestGlobalID_Equality(t *testing.T) {
	origin := NewOrigin("primary")

	a := ConnectionID(origin, "desk-1")
	b := ConnectionID(origin, "desk-1")
	if a != b {
		t.Error("identical origin, kind, and name should compare equal")
	}

	if a == ConnectionGroupID(origin, "desk-1") {
		t.Error("connection and connection group must never collide")
	}
	if a == ConnectionID(origin, "desk-2") {
		t.Error("different local names must not collide")
	}

	// Two provider instances are distinct even under the same display name.
	if a == ConnectionID(NewOrigin("primary"), "desk-1") {
		t.Error("distinct provider instances must not collide")
	}
}

func TestGlobalID_String(t *testing.T) {
	origin := NewOrigin("primary")

	id := ConnectionID(origin, "desk-1")
	if got := id.String(); got != "primary/connection/desk-1" {
		t.Errorf("String() = %q", got)
	}

	group := ConnectionGroupID(origin, "floor-2")
	if got := group.String(); got != "primary/connection_group/floor-2" {
		t.Errorf("String() = %q", got)
	}

	var zero GlobalID
	if got := zero.String(); got == "" {
		t.Error("zero GlobalID should still render a diagnostic string")
	}
}
