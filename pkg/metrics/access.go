// Package metrics defines the observability interfaces for SessionGate and
// the shared Prometheus registry backing their implementations.
//
// All interfaces follow the same contract: a nil value disables collection
// with zero overhead, so hosts that do not care about metrics simply pass
// nil.
package metrics

// AccessMetrics provides observability for restriction enforcement: resource
// admission, active usage, and instruction filtering.
//
// Implementations must be safe for concurrent use. This interface is
// optional - pass nil to disable metrics collection with zero overhead.
type AccessMetrics interface {
	// RecordAdmissionGranted records a successful acquisition of a resource.
	//
	// Parameters:
	//   - kind: Resource kind ("connection" or "connection_group")
	RecordAdmissionGranted(kind string)

	// RecordAdmissionDenied records an acquisition rejected because the
	// resource was already in use and concurrent use was not permitted.
	RecordAdmissionDenied(kind string)

	// RecordRelease records the release of a previously acquired resource.
	RecordRelease(kind string)

	// RecordInstructionDropped records an outbound instruction suppressed by
	// the read-only filter.
	//
	// Parameters:
	//   - opcode: Opcode of the dropped instruction
	RecordInstructionDropped(opcode string)

	// RecordResolution records a completed restriction resolution.
	//
	// Parameters:
	//   - degraded: Whether group lookup failed and the result is partial
	RecordResolution(degraded bool)
}
