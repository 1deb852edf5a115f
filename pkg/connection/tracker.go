package connection

import (
	"sync"
	"sync/atomic"

	"github.com/marmos91/sessiongate/internal/logger"
	"github.com/marmos91/sessiongate/pkg/metrics"
)

// Tracker counts in-progress uses of connectable resources, admitting or
// rejecting each new use based on whether the requesting session may share
// the resource.
//
// Each resource gets its own atomic counter, so sessions acquiring unrelated
// resources never contend; Acquire and Release are linearizable per key and
// complete in constant time. One Tracker is created at provider start-up and
// owns its usage map for the process lifetime - the counts are never
// persisted.
type Tracker struct {
	// active maps GlobalID to *atomic.Int64. Counters that drop back to
	// zero stay in the map; a later Acquire on the same identifier behaves
	// as if starting fresh.
	active sync.Map

	metrics metrics.AccessMetrics
}

// NewTracker creates an empty tracker. A nil metrics interface disables
// instrumentation with zero overhead.
func NewTracker(m metrics.AccessMetrics) *Tracker {
	return &Tracker{metrics: m}
}

func (t *Tracker) counter(id GlobalID) *atomic.Int64 {
	if c, ok := t.active.Load(id); ok {
		return c.(*atomic.Int64)
	}
	c, _ := t.active.LoadOrStore(id, new(atomic.Int64))
	return c.(*atomic.Int64)
}

// Acquire attempts to mark the resource with the given identifier as in use.
//
// The usage count is incremented first; if allowConcurrent is false and the
// resulting count is not exactly one, some other session already holds the
// resource, so the increment is rolled back and admission is denied. Denial
// leaves the tracker's state exactly as if the call never happened.
//
// A true return means the caller holds one reference and must eventually
// call Release exactly once. Denial is an expected outcome, not an error:
// the caller turns it into a user-visible "resource busy" condition.
func (t *Tracker) Acquire(id GlobalID, allowConcurrent bool) bool {
	c := t.counter(id)

	if n := c.Add(1); !allowConcurrent && n != 1 {
		c.Add(-1)
		if t.metrics != nil {
			t.metrics.RecordAdmissionDenied(string(id.Kind()))
		}
		return false
	}

	if t.metrics != nil {
		t.metrics.RecordAdmissionGranted(string(id.Kind()))
	}
	return true
}

// Release unmarks the resource as in use. It must be called exactly once for
// every Acquire that returned true, and never otherwise. Releasing an
// identifier that is not held is a contract violation; it is logged and the
// count is restored so it never goes negative.
func (t *Tracker) Release(id GlobalID) {
	c, ok := t.active.Load(id)
	if !ok {
		logger.Error("release of resource that was never acquired", logger.KeyResource, id.String())
		return
	}

	if n := c.(*atomic.Int64).Add(-1); n < 0 {
		c.(*atomic.Int64).Add(1)
		logger.Error("unbalanced release detected", logger.KeyResource, id.String())
		return
	}

	if t.metrics != nil {
		t.metrics.RecordRelease(string(id.Kind()))
	}
}

// InUse reports whether the resource currently has at least one holder.
func (t *Tracker) InUse(id GlobalID) bool {
	if c, ok := t.active.Load(id); ok {
		return c.(*atomic.Int64).Load() > 0
	}
	return false
}

// Active returns a snapshot of every resource with a non-zero usage count.
// The snapshot is not atomic across resources; it is intended for
// operational visibility, not for admission decisions.
func (t *Tracker) Active() map[GlobalID]int64 {
	snapshot := make(map[GlobalID]int64)
	t.active.Range(func(key, value any) bool {
		if n := value.(*atomic.Int64).Load(); n > 0 {
			snapshot[key.(GlobalID)] = n
		}
		return true
	})
	return snapshot
}
