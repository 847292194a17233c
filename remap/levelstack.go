package remap

import (
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/amremap/cells"
	"github.com/katalvlaran/amremap/compacthash"
)

// LevelStack indexes every cell of one input mesh by (level, key), with one
// hash table per refinement level. A table entry is either a non-negative
// index into the input CellList (a leaf) or the sentinel -1 marking "this
// key is an ancestor of refined cells; descend". Absence is the third
// state: no leaf and no refined descendant.
//
// The stack is built once per remap, read-only afterwards, and garbage
// collected with the tables when dropped.
type LevelStack struct {
	tables    []*compacthash.Table
	ibasesize int
	levmax    int
}

// sentinelEntry marks a table key as an ancestor of refined cells.
const sentinelEntry = -1

// BuildLevelStack validates the input mesh and indexes it level by level
// using tables from f (nil f means a default Auto factory).
//
// Sizing: each level's expected occupancy is its own cell count plus a
// quarter of the level below, propagated finest→coarsest — exactly the
// headroom sentinels need, since at most one in four child keys seeds an
// ancestor entry.
//
// Population: every cell is inserted as a leaf at its own level, then its
// coordinates are halved while both stay even, planting sentinel entries on
// the ancestor chain. Only the lower-left child of each parent walks up,
// which covers every ancestor exactly once when the mesh tiles its domain.
//
// Complexity: O(N·levmax) worst case, O(total table capacity) memory.
func BuildLevelStack(in *cells.CellList, f *compacthash.Factory) (*LevelStack, error) {
	return buildLevelStack(in, f, 1)
}

// BuildLevelStackParallel is BuildLevelStack with the population fanned out
// across workers goroutines. The factory's insert policy must tolerate
// concurrent writers (LockFree or LockPerSlot).
func BuildLevelStackParallel(in *cells.CellList, f *compacthash.Factory, workers int) (*LevelStack, error) {
	if workers < 1 {
		return nil, ErrBadWorkers
	}
	return buildLevelStack(in, f, workers)
}

func buildLevelStack(in *cells.CellList, f *compacthash.Factory, workers int) (*LevelStack, error) {
	if in == nil {
		return nil, ErrNilMesh
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Levmax >= maxDepth-1 {
		return nil, ErrTooDeep
	}
	if f == nil {
		var err error
		if f, err = compacthash.NewFactory(compacthash.DefaultOptions()); err != nil {
			return nil, err
		}
	}

	ls := &LevelStack{
		tables:    make([]*compacthash.Table, in.Levmax+1),
		ibasesize: in.Ibasesize,
		levmax:    in.Levmax,
	}

	// Expected occupancy per level: own cells plus sentinel headroom.
	numAtLevel := make([]int, in.Levmax+1)
	for n := 0; n < in.Len(); n++ {
		numAtLevel[in.Level[n]]++
	}
	for lev := in.Levmax - 1; lev >= 0; lev-- {
		numAtLevel[lev] += numAtLevel[lev+1] / 4
	}

	for lev := 0; lev <= in.Levmax; lev++ {
		edge := cells.Stride(in.Ibasesize, lev)
		t, err := f.NewTable(edge*edge, numAtLevel[lev])
		if err != nil {
			return nil, err
		}
		ls.tables[lev] = t
	}

	if workers == 1 {
		if err := ls.populateRange(in, 0, in.Len()); err != nil {
			return nil, err
		}
		return ls, nil
	}

	var g errgroup.Group
	chunk := (in.Len() + workers - 1) / workers
	for lo := 0; lo < in.Len(); lo += chunk {
		hi := min(lo+chunk, in.Len())
		g.Go(func() error { return ls.populateRange(in, lo, hi) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ls, nil
}

// populateRange indexes input cells [lo, hi): one leaf entry per cell plus
// the sentinel chain above it.
func (ls *LevelStack) populateRange(in *cells.CellList, lo, hi int) error {
	for n := lo; n < hi; n++ {
		i, j, lev := in.I[n], in.J[n], in.Level[n]
		key := cells.Key(i, j, cells.Stride(ls.ibasesize, lev))
		if err := ls.tables[lev].Insert(key, n); err != nil {
			return err
		}
		// Walk the ancestor chain while this cell is the lower-left child
		// of its parent, planting breadcrumbs for the descent to follow.
		for i%2 == 0 && j%2 == 0 && lev > 0 {
			i >>= 1
			j >>= 1
			lev--
			key = cells.Key(i, j, cells.Stride(ls.ibasesize, lev))
			if err := ls.tables[lev].Insert(key, sentinelEntry); err != nil {
				return err
			}
		}
	}
	return nil
}

// Query looks up a key on one level. The boolean reports presence; a
// present value is either a non-negative input-cell index or the sentinel
// -1. Out-of-range levels read as absent. Complexity: O(1) expected.
func (ls *LevelStack) Query(level, key int) (int, bool) {
	if level < 0 || level > ls.levmax {
		return 0, false
	}
	return ls.tables[level].Query(key)
}

// Levmax reports the deepest indexed level.
func (ls *LevelStack) Levmax() int { return ls.levmax }

// Table exposes one level's table, for diagnostics such as collision
// reports. The returned table must be treated as read-only.
func (ls *LevelStack) Table(level int) *compacthash.Table { return ls.tables[level] }

// lookup runs the coarse→fine containment probe for an output cell at
// (oi, oj, olev): starting from the base grid, query the ancestor key of
// the output cell on each level until a leaf (non-negative index) appears.
// Sentinel hits and misses keep descending. Returns -1 when no input leaf
// at or above olev contains the cell, i.e. the input is locally finer.
func (ls *LevelStack) lookup(oi, oj, olev int) int {
	probe := sentinelEntry
	for probeLev := 0; probe < 0 && probeLev <= olev; probeLev++ {
		levdiff := olev - probeLev
		key := cells.Key(oi>>levdiff, oj>>levdiff, cells.Stride(ls.ibasesize, probeLev))
		// Query bounds the level: an output mesh refined past the input's
		// deepest level reads absent there instead of walking off the stack.
		if v, ok := ls.Query(probeLev, key); ok {
			probe = v
		}
	}
	return probe
}
