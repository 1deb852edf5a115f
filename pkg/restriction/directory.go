package restriction

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrGroupLookup indicates that a group restriction lookup failed because
// the backing store could not be reached. Callers match it with errors.Is.
var ErrGroupLookup = errors.New("group restriction lookup failed")

// Group is a named group carrying the restrictions that apply to its
// members. Groups produced by this package are immutable after creation.
type Group struct {
	name         string
	restrictions Set
}

// NewGroup creates a group with the given name and restrictions. The
// restriction set is copied; later changes to the argument do not affect the
// group.
func NewGroup(name string, restrictions ...Restriction) *Group {
	return &Group{
		name:         name,
		restrictions: NewSet(restrictions...),
	}
}

// Name returns the group identifier as reported by the identity layer.
func (g *Group) Name() string {
	return g.name
}

// Restrictions returns a copy of the restrictions applying to members of
// this group.
func (g *Group) Restrictions() Set {
	return g.restrictions.Clone()
}

// Attributes returns the attribute map exposing this group's restrictions,
// so hosts can list administratively defined groups alongside their own.
func (g *Group) Attributes() map[string]string {
	return AsAttributeMap(g.restrictions)
}

// GroupDirectory is the single contract through which the Resolver looks up
// restricted groups, regardless of whether group restrictions live in a
// backing directory's attributes or in static process configuration.
//
// Implementations return only the groups they know about; requested names
// with no match are simply omitted, never an error. An error return means
// the lookup itself failed (for example, the backing directory was
// unreachable) and resolution should degrade to partial data.
type GroupDirectory interface {
	// Groups returns the known groups among the given names.
	Groups(ctx context.Context, names []string) ([]*Group, error)
}

// StaticDirectory is a GroupDirectory over a fixed list of administratively
// defined groups, built once from process configuration and read-only
// afterwards. Safe for concurrent use.
type StaticDirectory struct {
	groups map[string]*Group
}

// NewStaticDirectory builds a directory from per-restriction group name
// lists: every name in readOnly gets ForceReadOnly, every name in
// noConcurrent gets DisallowConcurrent, and a name appearing in both lists
// gets both. Empty lists yield an empty directory.
func NewStaticDirectory(readOnly, noConcurrent []string) *StaticDirectory {
	restrictions := make(map[string]Set)
	for _, name := range readOnly {
		setFor(restrictions, name).Add(ForceReadOnly)
	}
	for _, name := range noConcurrent {
		setFor(restrictions, name).Add(DisallowConcurrent)
	}

	groups := make(map[string]*Group, len(restrictions))
	for name, set := range restrictions {
		groups[name] = &Group{name: name, restrictions: set}
	}
	return &StaticDirectory{groups: groups}
}

func setFor(m map[string]Set, name string) Set {
	s, ok := m[name]
	if !ok {
		s = make(Set)
		m[name] = s
	}
	return s
}

// Groups returns the defined groups among the given names. Unmatched names
// yield no groups, not an error.
func (d *StaticDirectory) Groups(_ context.Context, names []string) ([]*Group, error) {
	var groups []*Group
	for _, name := range names {
		if g, ok := d.groups[name]; ok {
			groups = append(groups, g)
		}
	}
	return groups, nil
}

// All returns every defined group sorted by name, for listing surfaces.
func (d *StaticDirectory) All() []*Group {
	groups := make([]*Group, 0, len(d.groups))
	for _, g := range d.groups {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].name < groups[j].name })
	return groups
}

// AttributeStore supplies per-group attribute maps from a host directory or
// identity layer. It is an external collaborator: SessionGate neither stores
// nor edits group attributes.
type AttributeStore interface {
	// GroupAttributes returns the attribute map of the named group, or an
	// error if the backing store cannot be reached. A group that exists but
	// has no attributes returns an empty map.
	GroupAttributes(ctx context.Context, name string) (map[string]string, error)
}

// AttributeDirectory is a GroupDirectory whose restrictions derive from
// group attribute maps held by a host attribute store.
type AttributeDirectory struct {
	store AttributeStore
}

// NewAttributeDirectory wraps the given attribute store as a GroupDirectory.
func NewAttributeDirectory(store AttributeStore) *AttributeDirectory {
	return &AttributeDirectory{store: store}
}

// Groups resolves each named group's attributes into its restriction set.
// A failed attribute lookup fails the whole call so the Resolver can degrade
// explicitly rather than silently miss restrictions.
func (d *AttributeDirectory) Groups(ctx context.Context, names []string) ([]*Group, error) {
	groups := make([]*Group, 0, len(names))
	for _, name := range names {
		attributes, err := d.store.GroupAttributes(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("%w: attributes of group %q: %w", ErrGroupLookup, name, err)
		}
		groups = append(groups, &Group{
			name:         name,
			restrictions: FromAttributes(attributes),
		})
	}
	return groups, nil
}
