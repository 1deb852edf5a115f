package restriction

// Restriction identifies a single additional access restriction that may be
// applied to a user or group on top of whatever permission system
// authenticated them.
//
// Each restriction is exposed through a custom attribute whose presence with
// the value "true" puts the restriction in effect. Restrictions are stateless
// values; the catalog is closed and fixed for the lifetime of the process.
type Restriction string

const (
	// DisallowConcurrent forbids connecting to a connection or connection
	// group that is already in use, regardless of any restrictions enforced
	// by other layers.
	DisallowConcurrent Restriction = "addl-restrict-disallow-concurrent"

	// ForceReadOnly forces all connections to be read-only for affected
	// users. When in effect, interactive instructions sent toward the remote
	// resource are dropped; only protocol-safe instructions pass through.
	ForceReadOnly Restriction = "addl-restrict-force-read-only"
)

// TruthValue is the exact attribute value denoting that a restriction is
// enabled. Any other value, including case variants and absence, means the
// restriction is not in effect. Malformed attributes are never an error.
const TruthValue = "true"

// catalog lists every restriction known to SessionGate, in display order.
var catalog = []Restriction{
	DisallowConcurrent,
	ForceReadOnly,
}

// Catalog returns every restriction in the closed catalog. The returned
// slice is a fresh copy; callers may modify it freely.
func Catalog() []Restriction {
	return append([]Restriction(nil), catalog...)
}

// AttributeName returns the name of the custom attribute storing whether
// this restriction is enabled for the associated user or group.
func (r Restriction) AttributeName() string {
	return string(r)
}

// IsValid reports whether r is a member of the catalog.
func (r Restriction) IsValid() bool {
	switch r {
	case DisallowConcurrent, ForceReadOnly:
		return true
	}
	return false
}

// Description returns a short human-readable description of the restriction,
// suitable for CLI and admin surfaces.
func (r Restriction) Description() string {
	switch r {
	case DisallowConcurrent:
		return "Disallow concurrent access to connections already in use"
	case ForceReadOnly:
		return "Force connections to be read-only"
	default:
		return "Unknown restriction"
	}
}

// IsEnabled reports whether this restriction is in effect according to the
// given attribute map. Only an exact TruthValue match enables a restriction.
func (r Restriction) IsEnabled(attributes map[string]string) bool {
	return attributes[r.AttributeName()] == TruthValue
}
