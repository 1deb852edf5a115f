package restriction

import (
	"context"

	"github.com/marmos91/sessiongate/internal/logger"
	"github.com/marmos91/sessiongate/pkg/metrics"
)

// Resolver computes the effective restriction set for a session: the union
// of the restrictions declared on the user's own attributes and of those
// attached to every group the user effectively belongs to.
//
// Resolution is read-only and safe to call concurrently for different
// sessions. The result is monotonic in its inputs: adding group memberships
// or enabling more attributes can only add restrictions, never remove them.
// Hosts compute the set once per session and treat it as immutable for that
// session's lifetime.
type Resolver struct {
	groups  GroupDirectory
	metrics metrics.AccessMetrics
}

// NewResolver creates a Resolver using the given group directory. A nil
// directory resolves from user attributes only; a nil metrics interface
// disables metrics collection with zero overhead.
func NewResolver(groups GroupDirectory, m metrics.AccessMetrics) *Resolver {
	return &Resolver{groups: groups, metrics: m}
}

// Resolve returns the effective restrictions for a user with the given
// attribute map and effective group memberships (as reported by the identity
// layer).
//
// A group-directory failure is a degradation, not a fatal condition: the
// partial result computed from already-available data is returned and a
// warning is logged. A partial restriction set is preferable to blocking
// the session outright.
func (r *Resolver) Resolve(ctx context.Context, userAttributes map[string]string, memberOf []string) Set {
	effective := FromAttributes(userAttributes)

	if r.groups == nil || len(memberOf) == 0 {
		r.recordResolution(false)
		return effective
	}

	groups, err := r.groups.Groups(ctx, memberOf)
	if err != nil {
		logger.Warn("group restriction lookup failed, continuing with user restrictions only",
			logger.KeyError, err,
			logger.KeyGroups, memberOf,
		)
		r.recordResolution(true)
		return effective
	}

	for _, g := range groups {
		effective = effective.Union(g.restrictions)
	}
	r.recordResolution(false)
	return effective
}

func (r *Resolver) recordResolution(degraded bool) {
	if r.metrics != nil {
		r.metrics.RecordResolution(degraded)
	}
}

// ResolveAttributes computes the pure union contract with no collaborators:
// the restrictions enabled by the user's attributes plus those enabled by
// each group attribute map. Order and duplicates of the group maps are
// irrelevant.
func ResolveAttributes(userAttributes map[string]string, groupAttributes ...map[string]string) Set {
	effective := FromAttributes(userAttributes)
	for _, attributes := range groupAttributes {
		effective = effective.Union(FromAttributes(attributes))
	}
	return effective
}
