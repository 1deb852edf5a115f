package tunnel

import (
	"sync"

	"github.com/marmos91/sessiongate/internal/logger"
	"github.com/marmos91/sessiongate/pkg/metrics"
	"github.com/marmos91/sessiongate/pkg/restriction"
)

// FilterFunc decides the fate of a single outbound instruction: return the
// instruction (typically unchanged) to forward it, or nil to drop it
// silently. The decision must depend only on the instruction itself; the
// filter is applied statelessly, in arrival order, with no buffering.
type FilterFunc func(*Instruction) *Instruction

// FilteredWriter applies a FilterFunc to every instruction before handing it
// to the wrapped writer. It is the single interception point for outbound
// traffic; dropped instructions produce no error and no substitute.
type FilteredWriter struct {
	w      Writer
	filter FilterFunc
}

// NewFilteredWriter wraps w so that every written instruction passes through
// filter first.
func NewFilteredWriter(w Writer, filter FilterFunc) *FilteredWriter {
	return &FilteredWriter{w: w, filter: filter}
}

// Write forwards the instruction unless the filter drops it.
func (fw *FilteredWriter) Write(in *Instruction) error {
	if filtered := fw.filter(in); filtered != nil {
		return fw.w.Write(filtered)
	}
	return nil
}

// safeOpcodes lists the instructions that carry no interactive effect and
// are therefore forwarded even for read-only sessions.
var safeOpcodes = map[string]struct{}{
	// "ack" acknowledges receipt of streams, including the image and audio
	// streams the client needs for rendering. It informs the server that
	// data was received; it cannot interact with the remote desktop.
	"ack": {},

	// "disconnect" signals a normal client disconnect.
	"disconnect": {},

	// "nop" is a no-op, sent occasionally as a keep-alive ping.
	"nop": {},

	// "sync" tells the server a frame has been fully processed, letting it
	// adjust frame timing and compression relative to client responsiveness.
	// Required for rendering to proceed.
	"sync": {},
}

// Restricted wraps an established tunnel, enforcing the given restrictions
// on the client-to-resource direction. The resource-to-client direction is
// passed through unfiltered.
type Restricted struct {
	inner        Tunnel
	restrictions restriction.Set
	metrics      metrics.AccessMetrics

	closeOnce sync.Once
	onClose   func()
	closeErr  error
}

// Restrict wraps t with the instruction filter for the given restriction
// set. onClose, if non-nil, runs exactly once when the tunnel is closed,
// regardless of how many times Close is called; the connection manager uses
// it to release the access tracker. A nil metrics interface disables
// instrumentation.
func Restrict(t Tunnel, restrictions restriction.Set, m metrics.AccessMetrics, onClose func()) *Restricted {
	return &Restricted{
		inner:        t,
		restrictions: restrictions,
		metrics:      m,
		onClose:      onClose,
	}
}

// canWrite reports whether the session may send the given instruction.
func (r *Restricted) canWrite(in *Instruction) bool {
	if _, ok := safeOpcodes[in.Opcode]; ok {
		return true
	}
	return !r.restrictions.Contains(restriction.ForceReadOnly)
}

// Reader returns the unfiltered resource-to-client stream: restrictions
// never suppress what the resource sends back.
func (r *Restricted) Reader() Reader {
	return r.inner.Reader()
}

// Writer returns the client-to-resource stream with the restriction filter
// applied.
func (r *Restricted) Writer() Writer {
	return NewFilteredWriter(r.inner.Writer(), func(in *Instruction) *Instruction {
		if r.canWrite(in) {
			return in
		}
		// Dropped silently at the protocol level: no error, no response.
		if r.metrics != nil {
			r.metrics.RecordInstructionDropped(in.Opcode)
		}
		logger.Debug("instruction dropped by read-only restriction", logger.KeyOpcode, in.Opcode)
		return nil
	})
}

// Close closes the underlying tunnel and fires the close hook. Safe to call
// multiple times; the underlying Close and the hook each run once, and every
// call reports the first Close's error.
func (r *Restricted) Close() error {
	r.closeOnce.Do(func() {
		r.closeErr = r.inner.Close()
		if r.onClose != nil {
			r.onClose()
		}
	})
	return r.closeErr
}
