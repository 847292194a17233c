package compacthash

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"sync/atomic"
)

const (
	// hashPrime is the modulus of the multiplicative-congruential hash.
	hashPrime uint64 = 4294967291

	// jumpPrime parameterizes the PrimeJump stride: 1 + key mod jumpPrime.
	jumpPrime = 41

	// maxProbes bounds every compact probe chain. A healthy table at the
	// default sizing never comes close; hitting the cap means the table is
	// oversubscribed or pathologically contended.
	maxProbes = 1000

	// emptyKey marks an unoccupied compact slot.
	emptyKey int64 = -1

	// emptyValue marks an unoccupied perfect slot. Stored values must not
	// equal it; -1 stays available for caller-level markers.
	emptyValue int64 = -2
)

// Factory creates tables that share one validated Options set. It carries
// no other state; tables are independent of the factory and of each other.
type Factory struct {
	opts Options
}

// NewFactory validates opts and returns a Factory producing tables with
// those settings. Complexity: O(1).
func NewFactory(opts Options) (*Factory, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Factory{opts: opts}, nil
}

// Options returns a copy of the factory's settings.
func (f *Factory) Options() Options { return f.opts }

// Table is an integer→integer map over a fixed keyspace. Storage is owned
// by the table and reused across Reset calls; the whole table is rebuilt
// per remap, so slots never return to empty between Reset and teardown.
type Table struct {
	kind   Kind
	policy Policy

	// keyspace is the exclusive upper bound on keys (perfect backend size).
	keyspace int

	// capacity is the slot count of the compact backends.
	capacity int

	// a, b are the per-table hash constants: h0 = ((k·a+b) mod P) mod capacity.
	a, b uint64

	// slots is the perfect backend storage, emptyValue when unoccupied.
	slots []int64

	// keys/vals are the compact backend storage, keys[i] == emptyKey when free.
	keys []int64
	vals []int64

	// locks is allocated only under the LockPerSlot policy.
	locks []sync.Mutex

	reportLevel int

	inserts         atomic.Uint64
	queries         atomic.Uint64
	writeCollisions atomic.Uint64
	readCollisions  atomic.Uint64

	// report-level-1 running sums, maintained by the *CollisionReport calls.
	writeRunsum, readRunsum   float64
	writeReports, readReports int
}

// NewTable creates a table for keys in [0, sizeHint) expected to hold about
// ncellsHint entries. The backend is the factory's Kind; Auto compares the
// keyspace against the compact size ⌈ncellsHint·mult⌉ and picks Perfect
// while keyspace/compact < MemFactor (scaled by MemOptFactor when not 1),
// Quadratic otherwise.
//
// The returned table is empty and ready for Insert.
// Complexity: O(capacity) for the initial clear.
func (f *Factory) NewTable(sizeHint, ncellsHint int) (*Table, error) {
	if sizeHint <= 0 || ncellsHint < 0 {
		return nil, ErrBadHint
	}

	compact := int(math.Ceil(float64(ncellsHint) * f.opts.mult()))
	if compact < 1 {
		compact = 1
	}

	kind := f.opts.Kind
	if kind == Auto {
		memFactor := f.opts.MemFactor
		if f.opts.MemOptFactor != 1.0 {
			memFactor /= f.opts.MemOptFactor * 0.2
		}
		if float64(sizeHint)/float64(compact) < memFactor {
			kind = Perfect
		} else {
			kind = Quadratic
		}
		if f.opts.ReportLevel >= 2 {
			fmt.Printf("compacthash: auto-selected %s (keyspace %d, compact %d, mem factor %g)\n",
				kind, sizeHint, compact, memFactor)
		}
	}

	t := &Table{
		kind:        kind,
		policy:      f.opts.Policy,
		keyspace:    sizeHint,
		capacity:    compact,
		reportLevel: f.opts.ReportLevel,
	}

	if kind == Perfect {
		t.slots = make([]int64, sizeHint)
	} else {
		seed := f.opts.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		t.a = 1 + rng.Uint64N(hashPrime-1)
		t.b = 1 + rng.Uint64N(hashPrime-1)
		if f.opts.ReportLevel >= 2 {
			fmt.Printf("compacthash: factors A %d B %d\n", t.a, t.b)
		}
		t.keys = make([]int64, compact)
		t.vals = make([]int64, compact)
		if f.opts.Policy == LockPerSlot {
			t.locks = make([]sync.Mutex, compact)
		}
	}

	t.Reset()
	return t, nil
}

// Kind reports the backend chosen at creation.
func (t *Table) Kind() Kind { return t.kind }

// Cap reports the slot count: keyspace for Perfect, compact capacity otherwise.
func (t *Table) Cap() int {
	if t.kind == Perfect {
		return t.keyspace
	}
	return t.capacity
}

// Reset clears the table to empty, reusing its storage. It must not run
// concurrently with Insert or Query. Complexity: O(capacity).
func (t *Table) Reset() {
	if t.kind == Perfect {
		for i := range t.slots {
			t.slots[i] = emptyValue
		}
	} else {
		for i := range t.keys {
			t.keys[i] = emptyKey
		}
	}
	t.inserts.Store(0)
	t.queries.Store(0)
	t.writeCollisions.Store(0)
	t.readCollisions.Store(0)
}

// home returns the initial probe slot for a key.
func (t *Table) home(key int) int {
	// Reducing the key mod P first keeps the product below 2^64 for any key.
	return int((((uint64(key)%hashPrime)*t.a + t.b) % hashPrime) % uint64(t.capacity))
}

// next advances a probe chain to its n-th step (n counts collisions so far,
// starting at 1 on the first collision).
func (t *Table) next(pos, n, jump int) int {
	switch t.kind {
	case Linear:
		pos++
	case Quadratic:
		pos += n * n
	default: // PrimeJump
		pos += n * jump
	}
	return pos % t.capacity
}

// jumpFor returns the PrimeJump stride for a key; 1 for the other kinds so
// the probe loop stays branch-free.
func (t *Table) jumpFor(key int) int {
	if t.kind == PrimeJump {
		return 1 + key%jumpPrime
	}
	return 1
}

// Insert upserts (key → value): an existing key has its value overwritten.
// The write path is selected by the factory's Policy. Errors:
//
//   - ErrKeyRange when the key is outside the keyspace (Perfect) or negative,
//   - ErrValueRange when the value equals a reserved marker,
//   - ErrCapacityExceeded when a Serial/LockPerSlot probe chain exhausts,
//   - ErrContentionTimeout when the LockFree retry budget exhausts.
//
// Complexity: O(1) expected at the default sizing.
func (t *Table) Insert(key, value int) error {
	if key < 0 {
		return ErrKeyRange
	}
	if t.kind == Perfect {
		if key >= t.keyspace {
			return ErrKeyRange
		}
		if int64(value) == emptyValue {
			return ErrValueRange
		}
		t.inserts.Add(1)
		// A plain store would do for a single writer, but the parallel
		// build phase funnels through here too.
		atomic.StoreInt64(&t.slots[key], int64(value))
		return nil
	}
	t.inserts.Add(1)
	switch t.policy {
	case LockFree:
		return t.insertLockFree(key, value)
	case LockPerSlot:
		return t.insertLocked(key, value)
	default:
		return t.insertSerial(key, value)
	}
}

// insertSerial is the single-writer compact path.
func (t *Table) insertSerial(key, value int) error {
	jump := t.jumpFor(key)
	pos := t.home(key)
	for n := 0; ; {
		switch t.keys[pos] {
		case emptyKey:
			t.keys[pos] = int64(key)
			t.vals[pos] = int64(value)
			return nil
		case int64(key):
			t.vals[pos] = int64(value)
			return nil
		}
		n++
		if t.reportLevel >= 1 {
			t.writeCollisions.Add(1)
		}
		if n > maxProbes {
			return ErrCapacityExceeded
		}
		pos = t.next(pos, n, jump)
	}
}

// Query probes for a key and returns its value. The read path never locks:
// slot keys are monotonic (empty → claimed, never back) within a build, so
// atomic loads suffice under every policy. A probe chain that exhausts the
// cap reports absence.
//
// Complexity: O(1) expected at the default sizing.
func (t *Table) Query(key int) (int, bool) {
	t.queries.Add(1)
	if t.kind == Perfect {
		if key < 0 || key >= t.keyspace {
			return 0, false
		}
		v := atomic.LoadInt64(&t.slots[key])
		if v == emptyValue {
			return 0, false
		}
		return int(v), true
	}
	if key < 0 {
		return 0, false
	}
	jump := t.jumpFor(key)
	pos := t.home(key)
	for n := 0; ; {
		k := atomic.LoadInt64(&t.keys[pos])
		if k == int64(key) {
			return int(atomic.LoadInt64(&t.vals[pos])), true
		}
		if k == emptyKey {
			return 0, false
		}
		n++
		if t.reportLevel >= 1 {
			t.readCollisions.Add(1)
		}
		if t.reportLevel >= 3 {
			fmt.Printf("compacthash: probe %d key %d slot %d holds %d\n", n, key, pos, k)
		}
		if n > maxProbes {
			return 0, false
		}
		pos = t.next(pos, n, jump)
	}
}

// Stats returns a snapshot of the table's accounting counters.
func (t *Table) Stats() Stats {
	return Stats{
		Inserts:         t.inserts.Load(),
		Queries:         t.queries.Load(),
		WriteCollisions: t.writeCollisions.Load(),
		ReadCollisions:  t.readCollisions.Load(),
	}
}
