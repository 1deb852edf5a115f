// Package connection tracks concurrent use of connectable resources and
// orchestrates restriction-aware connection establishment.
//
// This package provides:
//
//   - GlobalID: A value uniquely naming a connection or connection group
//     across multiple independent resource providers
//   - Tracker: A process-wide, lock-free reference counter used to admit or
//     reject a new use of a shared resource
//   - Manager: The connect path tying admission, the downstream transport,
//     and the instruction filter together, with the acquire/release pairing
//     guaranteed on every exit path
//
// Admission denial is an expected outcome ("resource busy"), reported as
// ErrConcurrentAccess, never a tracker fault.
package connection
