package compacthash

import "fmt"

// Collision reporting mirrors the three diagnostic levels the substrate is
// tuned with: level 1 folds per-build collision rates into running sums for
// a final summary, level 2 prints each report as it happens, level 3 adds
// the per-probe traces emitted by Query. Perfect tables never collide, so
// the write and read reports are no-ops for them and the final report
// prints only the table size.

// WriteCollisionReport folds or prints the insert-side collision rate for
// the entries written since the last Reset. Call it once per build phase.
func (t *Table) WriteCollisionReport() {
	if t.kind == Perfect || t.reportLevel == 0 {
		return
	}
	inserts := t.inserts.Load()
	if inserts == 0 {
		return
	}
	rate := float64(t.writeCollisions.Load()) / float64(inserts)
	if t.reportLevel == 1 {
		t.writeRunsum += rate
		t.writeReports++
		return
	}
	fmt.Printf("compacthash: write collision report -- collisions per entry %f, collisions %d entries %d\n",
		rate, t.writeCollisions.Load(), inserts)
}

// ReadCollisionReport folds or prints the query-side collision rate for the
// queries issued since the last Reset.
func (t *Table) ReadCollisionReport() {
	if t.kind == Perfect || t.reportLevel == 0 {
		return
	}
	queries := t.queries.Load()
	if queries == 0 {
		return
	}
	rate := float64(t.readCollisions.Load()) / float64(queries)
	if t.reportLevel == 1 {
		t.readRunsum += rate
		t.readReports++
		return
	}
	fmt.Printf("compacthash: read collision report -- collisions per query %f, collisions %d queries %d\n",
		rate, t.readCollisions.Load(), queries)
}

// FinalCollisionReport prints the averaged write/read collision rates
// accumulated by level-1 reporting, plus the table footprint.
func (t *Table) FinalCollisionReport() {
	if t.reportLevel == 0 {
		return
	}
	fmt.Printf("compacthash: table size %d slots\n", t.Cap())
	if t.writeReports > 0 && t.readReports > 0 {
		fmt.Printf("compacthash: final collision report -- write/read collisions per entry %f/%f\n",
			t.writeRunsum/float64(t.writeReports), t.readRunsum/float64(t.readReports))
	}
}
