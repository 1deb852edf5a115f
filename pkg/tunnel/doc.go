// Package tunnel provides the instruction-level view of an established
// session stream and the restriction-aware filtering applied to it.
//
// SessionGate does not implement the wire protocol: the transport layer
// below hands this package already-framed instructions through the Reader
// and Writer contracts, and receives them back unchanged. The only decision
// this package makes is, per outbound instruction, whether to forward it or
// silently drop it according to the session's effective restrictions.
package tunnel
