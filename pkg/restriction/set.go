package restriction

import (
	"sort"
	"strings"
)

// Set is an unordered set of restrictions associated with a subject (a user
// or a group) at a point in time. Sets are derived from attribute maps, never
// stored; a restriction is present iff its canonical attribute carried the
// enabled encoding when the set was computed.
type Set map[Restriction]struct{}

// NewSet returns a Set containing the given restrictions.
func NewSet(restrictions ...Restriction) Set {
	s := make(Set, len(restrictions))
	for _, r := range restrictions {
		s[r] = struct{}{}
	}
	return s
}

// FromAttributes returns the subset of the catalog enabled by the given
// attribute map. Absent or malformed attributes simply leave a restriction
// out of the set.
func FromAttributes(attributes map[string]string) Set {
	s := make(Set)
	for _, r := range catalog {
		if r.IsEnabled(attributes) {
			s[r] = struct{}{}
		}
	}
	return s
}

// AsAttributeMap produces the attribute map exposing that the restrictions
// in s apply: each member maps its canonical attribute name to TruthValue.
// Restrictions not in s are absent from the map, never explicitly false.
func AsAttributeMap(s Set) map[string]string {
	attributes := make(map[string]string, len(s))
	for r := range s {
		attributes[r.AttributeName()] = TruthValue
	}
	return attributes
}

// Contains reports whether r is a member of the set. Safe on a nil Set.
func (s Set) Contains(r Restriction) bool {
	_, ok := s[r]
	return ok
}

// Add inserts the given restrictions into the set.
func (s Set) Add(restrictions ...Restriction) {
	for _, r := range restrictions {
		s[r] = struct{}{}
	}
}

// Union returns a new Set containing every restriction present in s or in
// other. Neither operand is modified.
func (s Set) Union(other Set) Set {
	merged := make(Set, len(s)+len(other))
	for r := range s {
		merged[r] = struct{}{}
	}
	for r := range other {
		merged[r] = struct{}{}
	}
	return merged
}

// Equal reports whether s and other contain exactly the same restrictions.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for r := range s {
		if !other.Contains(r) {
			return false
		}
	}
	return true
}

// Clone returns a copy of the set. A nil Set clones to an empty Set.
func (s Set) Clone() Set {
	clone := make(Set, len(s))
	for r := range s {
		clone[r] = struct{}{}
	}
	return clone
}

// List returns the members of the set in stable (attribute name) order.
func (s Set) List() []Restriction {
	list := make([]Restriction, 0, len(s))
	for r := range s {
		list = append(list, r)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return list
}

// String renders the set for logging, e.g. "{addl-restrict-force-read-only}".
func (s Set) String() string {
	names := make([]string, 0, len(s))
	for _, r := range s.List() {
		names = append(names, string(r))
	}
	return "{" + strings.Join(names, ", ") + "}"
}
