package connection

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/marmos91/sessiongate/internal/logger"
	"github.com/marmos91/sessiongate/internal/telemetry"
	"github.com/marmos91/sessiongate/pkg/metrics"
	"github.com/marmos91/sessiongate/pkg/restriction"
	"github.com/marmos91/sessiongate/pkg/tunnel"
)

// ErrConcurrentAccess is returned by Manager.Connect when the requested
// resource is already in use and the session's restrictions prohibit
// concurrent access. Hosts surface it to the end user as "resource busy";
// it is an expected policy outcome, not a system fault.
var ErrConcurrentAccess = errors.New("concurrent access to this connection is not allowed")

// Session is the restriction-relevant view of an authenticated session: who
// the user is and the effective restriction set computed for them at session
// establishment. The set is immutable for the session's lifetime;
// recomputation requires re-establishing the session.
type Session struct {
	// User is the session's authenticated username, for logs and traces.
	User string

	// Restrictions is the session's effective restriction set.
	Restrictions restriction.Set
}

// CanConnectConcurrently reports whether the session may connect to a
// resource that is already in use.
func (s *Session) CanConnectConcurrently() bool {
	return !s.Restrictions.Contains(restriction.DisallowConcurrent)
}

// Connectable is a resource the lower transport layer can establish a
// stream to. Connections and connection groups both implement it; tracked
// resources need not come from the same provider.
type Connectable interface {
	// Connect establishes the stream, applying the given parameter tokens.
	// Blocking; honors ctx cancellation.
	Connect(ctx context.Context, params map[string]string) (tunnel.Tunnel, error)
}

// Manager ties admission tracking and instruction filtering into the
// connect path. One Manager is created at provider start-up; its tracker
// state lives for the process lifetime.
type Manager struct {
	tracker *Tracker
	metrics metrics.AccessMetrics
}

// NewManager creates a Manager with a fresh tracker. A nil metrics
// interface disables instrumentation.
func NewManager(m metrics.AccessMetrics) *Manager {
	return &Manager{
		tracker: NewTracker(m),
		metrics: m,
	}
}

// Tracker exposes the underlying access tracker, for operational surfaces.
func (m *Manager) Tracker() *Tracker {
	return m.tracker
}

// Connect establishes a tracked, restriction-filtered connection to the
// given resource on behalf of the session.
//
// The session's restrictions decide both the admission policy (whether the
// resource may be shared) and the stream filtering (whether interactive
// instructions pass through). On admission denial, ErrConcurrentAccess is
// returned. If the downstream transport fails after admission - including by
// panicking - the reservation is released before the original failure
// propagates unchanged. On success, closing the returned tunnel releases the
// reservation exactly once.
func (m *Manager) Connect(ctx context.Context, sess *Session, id GlobalID, target Connectable, params map[string]string) (tunnel.Tunnel, error) {
	ctx, span := telemetry.StartSpan(ctx, "sessiongate.connect")
	defer span.End()
	telemetry.SetAttributes(ctx,
		attribute.String("sessiongate.user", sess.User),
		attribute.String("sessiongate.resource", id.String()),
	)
	ctx = logger.WithContext(ctx, logger.NewLogContext(sess.User).
		WithResource(id.String()).
		WithTrace(telemetry.TraceID(ctx), telemetry.SpanID(ctx)))

	if !m.tracker.Acquire(id, sess.CanConnectConcurrently()) {
		logger.InfoCtx(ctx, "connection denied, resource in use")
		telemetry.RecordError(ctx, ErrConcurrentAccess)
		return nil, ErrConcurrentAccess
	}

	// The reservation must not leak if the transport fails, no matter how.
	// connected stays false on both error returns and panics.
	connected := false
	defer func() {
		if !connected {
			m.tracker.Release(id)
		}
	}()

	raw, err := target.Connect(ctx, params)
	if err != nil {
		telemetry.RecordError(ctx, err)
		return nil, fmt.Errorf("connecting to %s: %w", id, err)
	}
	connected = true

	logger.DebugCtx(ctx, "connection established",
		logger.KeyRestrictions, sess.Restrictions.String(),
		logger.KeyAllowConcurrent, sess.CanConnectConcurrently(),
	)

	return tunnel.Restrict(raw, sess.Restrictions, m.metrics, func() {
		m.tracker.Release(id)
	}), nil
}
