package logger

// Standard field keys for structured logging. Use these consistently across
// all log statements so aggregated logs can be queried by key.
const (
	// Distributed tracing
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// Subject identification
	KeyUser     = "user"      // Username of the session's authenticated identity
	KeyGroups   = "groups"    // Effective group memberships
	KeyClientIP = "client_ip" // Client IP address

	// Resources
	KeyOrigin       = "origin"        // Identity/resource provider that owns the resource
	KeyResource     = "resource"      // Local resource identifier
	KeyResourceKind = "resource_kind" // connection or connection_group

	// Restriction enforcement
	KeyRestrictions    = "restrictions"     // Effective restriction set
	KeyAllowConcurrent = "allow_concurrent" // Whether concurrent use was permitted
	KeyOpcode          = "opcode"           // Instruction opcode
	KeyActive          = "active"           // Current usage count of a resource

	// Operation metadata
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeyComponent  = "component"   // Subsystem emitting the record
)
