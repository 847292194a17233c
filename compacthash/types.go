// Package compacthash defines kinds, policies, options, and sentinel errors
// for the integer hash substrate.
package compacthash

import "errors"

// Sentinel errors for table construction and mutation.
var (
	// ErrBadOptions indicates an invalid Options combination.
	ErrBadOptions = errors.New("compacthash: invalid options")

	// ErrBadHint indicates a non-positive keyspace hint or negative count hint.
	ErrBadHint = errors.New("compacthash: size hint must be positive and count hint non-negative")

	// ErrKeyRange indicates a key outside the table's keyspace.
	ErrKeyRange = errors.New("compacthash: key out of range")

	// ErrValueRange indicates a value that collides with a reserved marker.
	ErrValueRange = errors.New("compacthash: value collides with reserved slot marker")

	// ErrCapacityExceeded indicates the probe chain exhausted a too-full table.
	ErrCapacityExceeded = errors.New("compacthash: table capacity exceeded")

	// ErrContentionTimeout indicates a lock-free insert ran out of retries.
	ErrContentionTimeout = errors.New("compacthash: concurrent insert retry budget exceeded")
)

// Kind selects the table backend.
type Kind int

const (
	// Auto lets the factory choose: Perfect when the keyspace is within
	// MemFactor of the compact size, Quadratic otherwise.
	Auto Kind = iota

	// Perfect is a direct-indexed array over the whole keyspace.
	Perfect

	// Linear is open addressing with step 1.
	Linear

	// Quadratic is open addressing with cumulative n² steps.
	Quadratic

	// PrimeJump is open addressing with a key-dependent prime stride.
	PrimeJump
)

// String returns the backend name, for diagnostics.
func (k Kind) String() string {
	switch k {
	case Auto:
		return "Auto"
	case Perfect:
		return "Perfect"
	case Linear:
		return "Linear"
	case Quadratic:
		return "Quadratic"
	case PrimeJump:
		return "PrimeJump"
	default:
		return "Unknown"
	}
}

// Policy selects how Insert coordinates concurrent writers.
type Policy int

const (
	// Serial performs plain unsynchronized writes; the caller guarantees a
	// single writer.
	Serial Policy = iota

	// LockFree claims slots with compare-and-swap; losers re-examine the
	// slot and move on. Bounded by the probe cap.
	LockFree

	// LockPerSlot takes a per-slot mutex around test-and-set.
	LockPerSlot
)

// Options configures a Factory.
//
//	Kind         - backend, default Auto.
//	Policy       - insert coordination, default Serial.
//	HashMult     - compact capacity multiplier: capacity = ⌈ncells·HashMult⌉.
//	               Governs sizing; default 3.0.
//	LoadFactor   - target occupancy. Zero means "derived from HashMult"
//	               (1/HashMult); a non-zero value takes over sizing and
//	               HashMult becomes its reciprocal.
//	MemFactor    - Auto boundary: Perfect is chosen while
//	               keyspace/compact < MemFactor. Default 20.
//	MemOptFactor - optional memory-optimization scale applied to MemFactor;
//	               1.0 disables. Any other value m sets the Auto boundary to
//	               MemFactor/(0.2·m): values above 5 bias Auto toward
//	               compact tables, values below 5 toward Perfect.
//	ReportLevel  - collision diagnostics verbosity 0–3.
//	Seed         - non-zero fixes the per-table hash constants for
//	               reproducible probe sequences; 0 draws them randomly.
type Options struct {
	Kind         Kind
	Policy       Policy
	HashMult     float64
	LoadFactor   float64
	MemFactor    float64
	MemOptFactor float64
	ReportLevel  int
	Seed         uint64
}

// DefaultOptions returns Options pre-populated with the canonical defaults:
//
//	Kind:         Auto
//	Policy:       Serial
//	HashMult:     3.0      // compact tables sized to 3× the element count
//	LoadFactor:   0        // derived: 1/HashMult ≈ 0.333
//	MemFactor:    20.0
//	MemOptFactor: 1.0
//	ReportLevel:  0
func DefaultOptions() Options {
	return Options{
		Kind:         Auto,
		Policy:       Serial,
		HashMult:     3.0,
		LoadFactor:   0,
		MemFactor:    20.0,
		MemOptFactor: 1.0,
		ReportLevel:  0,
	}
}

// Validate checks that the Options hold a consistent combination.
// It returns ErrBadOptions when a field is outside its domain.
func (o *Options) Validate() error {
	if o.Kind < Auto || o.Kind > PrimeJump {
		return ErrBadOptions
	}
	if o.Policy < Serial || o.Policy > LockPerSlot {
		return ErrBadOptions
	}
	// Compact tables must be strictly larger than their content.
	if o.HashMult <= 1.0 {
		return ErrBadOptions
	}
	if o.LoadFactor < 0 || o.LoadFactor >= 1.0 {
		return ErrBadOptions
	}
	if o.MemFactor <= 0 || o.MemOptFactor <= 0 {
		return ErrBadOptions
	}
	if o.ReportLevel < 0 || o.ReportLevel > 3 {
		return ErrBadOptions
	}
	return nil
}

// mult resolves the sizing multiplier: LoadFactor governs when set,
// otherwise HashMult does and LoadFactor is its implied reciprocal.
func (o *Options) mult() float64 {
	if o.LoadFactor > 0 {
		return 1.0 / o.LoadFactor
	}
	return o.HashMult
}

// Stats is a snapshot of a table's insert/query accounting. Collision
// counters are only maintained when ReportLevel ≥ 1.
type Stats struct {
	// Inserts is the number of Insert calls that reached the backend.
	Inserts uint64

	// Queries is the number of Query calls.
	Queries uint64

	// WriteCollisions is the total extra probes spent inserting.
	WriteCollisions uint64

	// ReadCollisions is the total extra probes spent querying.
	ReadCollisions uint64
}
