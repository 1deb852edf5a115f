// Package restriction defines the closed catalog of additional access
// restrictions enforced by SessionGate and the resolution of effective
// restriction sets for authenticated sessions.
//
// This package provides:
//
//   - Restriction: A named, boolean capability limitation bound to a
//     canonical attribute name ("addl-restrict-*")
//   - Set: An unordered set of restrictions derived from attribute maps
//   - Resolver: Computes the effective restriction set for a session by
//     unioning the user's own restrictions with those of every group the
//     user effectively belongs to
//   - GroupDirectory: Pluggable source of restricted groups, with static
//     (configuration-driven) and attribute-backed implementations
//
// Restrictions are never stored by this package. A Set is recomputed from
// attribute maps on each resolution and treated as immutable for the
// lifetime of the session it was computed for.
package restriction
