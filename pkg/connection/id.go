package connection

import "fmt"

// Kind is the type of connectable resource a GlobalID refers to.
type Kind string

const (
	// KindConnection is a single connection to a remote resource.
	KindConnection Kind = "connection"

	// KindConnectionGroup is a group of connections balanced or organized
	// by the resource provider.
	KindConnectionGroup Kind = "connection_group"
)

// Origin is an opaque handle identifying one resource-provider instance.
// Hosts create exactly one Origin per provider at start-up and reuse it for
// every identifier that provider produces.
//
// Origins are compared by identity, not by name: two providers configured
// with the same display name still have distinct origins, so resources with
// coincidentally equal local identifiers are tracked independently.
type Origin struct {
	name string
}

// NewOrigin creates a provider handle with the given display name. The name
// is used for logs only and carries no identity semantics.
func NewOrigin(name string) *Origin {
	return &Origin{name: name}
}

// Name returns the display name the origin was created with.
func (o *Origin) Name() string {
	return o.name
}

// GlobalID uniquely identifies a connectable resource across every resource
// provider in the process. Unlike the local identifier, which is only unique
// among resources of the same kind within one provider, a GlobalID is unique
// process-wide and usable as a map key.
//
// Two GlobalIDs are equal iff their origin (by identity), kind, and local
// name are all equal. A GlobalID is an immutable value, created fresh for
// each connection attempt.
type GlobalID struct {
	origin *Origin
	kind   Kind
	name   string
}

// ConnectionID returns the GlobalID of the connection with the given local
// identifier within the given provider.
func ConnectionID(origin *Origin, name string) GlobalID {
	return GlobalID{origin: origin, kind: KindConnection, name: name}
}

// ConnectionGroupID returns the GlobalID of the connection group with the
// given local identifier within the given provider.
func ConnectionGroupID(origin *Origin, name string) GlobalID {
	return GlobalID{origin: origin, kind: KindConnectionGroup, name: name}
}

// Origin returns the provider handle that owns the resource.
func (id GlobalID) Origin() *Origin {
	return id.origin
}

// Kind returns the resource kind.
func (id GlobalID) Kind() Kind {
	return id.kind
}

// Name returns the provider-local identifier.
func (id GlobalID) Name() string {
	return id.name
}

// String renders the identifier for logs, e.g. "ldap/connection/vnc-lab-1".
func (id GlobalID) String() string {
	origin := "?"
	if id.origin != nil {
		origin = id.origin.name
	}
	return fmt.Sprintf("%s/%s/%s", origin, id.kind, id.name)
}
