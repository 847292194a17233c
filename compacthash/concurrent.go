package compacthash

import "sync/atomic"

// insertLockFree claims slots by compare-and-swap on the slot key. Winning
// the CAS (or finding our own key already present) makes the slot ours to
// update; losing it to another key moves the probe along. The whole chain
// is bounded: exhausting the budget under contention surfaces
// ErrContentionTimeout instead of dropping the write.
//
// A reader racing the tail of an insert may observe the claimed key before
// the value store lands; build phases must complete (happens-before, e.g.
// errgroup.Wait) before unsynchronized readers rely on the values.
func (t *Table) insertLockFree(key, value int) error {
	jump := t.jumpFor(key)
	pos := t.home(key)
	for n := 0; ; {
		k := atomic.LoadInt64(&t.keys[pos])
		switch {
		case k == int64(key):
			atomic.StoreInt64(&t.vals[pos], int64(value))
			return nil
		case k == emptyKey:
			if atomic.CompareAndSwapInt64(&t.keys[pos], emptyKey, int64(key)) {
				atomic.StoreInt64(&t.vals[pos], int64(value))
				return nil
			}
			// Lost the race: re-read the slot, the winner may hold our key.
			continue
		}
		n++
		if t.reportLevel >= 1 {
			t.writeCollisions.Add(1)
		}
		if n > maxProbes {
			return ErrContentionTimeout
		}
		pos = t.next(pos, n, jump)
	}
}

// insertLocked serializes each slot behind its own mutex: acquire, test,
// set or move on. Coarser than CAS but portable to workloads where values
// must be visible the instant the key is.
func (t *Table) insertLocked(key, value int) error {
	jump := t.jumpFor(key)
	pos := t.home(key)
	for n := 0; ; {
		t.locks[pos].Lock()
		k := t.keys[pos]
		if k == emptyKey || k == int64(key) {
			// Value first: a lock-free reader that sees the key sees its value.
			atomic.StoreInt64(&t.vals[pos], int64(value))
			atomic.StoreInt64(&t.keys[pos], int64(key))
			t.locks[pos].Unlock()
			return nil
		}
		t.locks[pos].Unlock()
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
