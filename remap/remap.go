package remap

import (
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/amremap/cells"
	"github.com/katalvlaran/amremap/compacthash"
)

// Remap transfers values from the input mesh onto the output mesh using
// direct-indexed (perfect) per-level tables: every level allocates its full
// keyspace, which is the fastest choice while the grids stay modest.
//
// Preconditions: both lists validate, share the base grid size, and the
// output's Values slice is in place (it is overwritten, one slot per cell).
//
// Complexity: O(N_in + N_out) time, O(Σ (ibasesize·2^L)²) table memory.
func Remap(in, out *cells.CellList) error {
	opts := DefaultOptions()
	opts.Hash.Kind = compacthash.Perfect
	return RemapWith(in, out, &opts)
}

// RemapCompact is Remap with the compact hash substrate requested
// explicitly through f. A nil f builds a default Auto factory, which keeps
// memory proportional to the cell count on deeply refined meshes.
func RemapCompact(in, out *cells.CellList, f *compacthash.Factory) error {
	if in == nil || out == nil {
		return ErrNilMesh
	}
	if err := checkPair(in, out); err != nil {
		return err
	}
	ls, err := BuildLevelStack(in, f)
	if err != nil {
		return err
	}
	return ls.sweepRange(in, out, 0, out.Len())
}

// RemapWith runs a remap under full Options control: backend selection via
// opts.Hash and fork-join width via opts.Workers. Workers > 1 parallelizes
// both the build and the sweep over contiguous cell blocks; a Serial hash
// policy is promoted to LockFree so the build tolerates concurrent writers.
func RemapWith(in, out *cells.CellList, opts *Options) error {
	if in == nil || out == nil {
		return ErrNilMesh
	}
	if opts == nil {
		o := DefaultOptions()
		opts = &o
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	if err := checkPair(in, out); err != nil {
		return err
	}

	hashOpts := opts.Hash
	if opts.Workers > 1 && hashOpts.Policy == compacthash.Serial {
		hashOpts.Policy = compacthash.LockFree
	}
	f, err := compacthash.NewFactory(hashOpts)
	if err != nil {
		return err
	}

	ls, err := buildLevelStack(in, f, opts.Workers)
	if err != nil {
		return err
	}

	if opts.Workers == 1 {
		return ls.sweepRange(in, out, 0, out.Len())
	}
	var g errgroup.Group
	chunk := (out.Len() + opts.Workers - 1) / opts.Workers
	for lo := 0; lo < out.Len(); lo += chunk {
		hi := min(lo+chunk, out.Len())
		g.Go(func() error { return ls.sweepRange(in, out, lo, hi) })
	}
	return g.Wait()
}

// checkPair validates both meshes and their shared domain.
func checkPair(in, out *cells.CellList) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if err := out.Validate(); err != nil {
		return err
	}
	if in.Ibasesize != out.Ibasesize {
		return ErrDomainMismatch
	}
	if out.Levmax >= maxDepth-1 {
		return ErrTooDeep
	}
	return nil
}

// sweepRange assigns output cells [lo, hi): probe coarse→fine for a
// containing input leaf, else average the finer input leaves tiling the
// cell. Each iteration writes exactly one distinct Values slot, so ranges
// may run concurrently.
func (ls *LevelStack) sweepRange(in, out *cells.CellList, lo, hi int) error {
	for n := lo; n < hi; n++ {
		oi, oj, olev := out.I[n], out.J[n], out.Level[n]

		probe := ls.lookup(oi, oj, olev)
		if probe >= 0 {
			out.Values[n] = in.Values[probe]
			continue
		}
		v, err := ls.avgSubCells(in, oi, oj, olev)
		if err != nil {
			return err
		}
		out.Values[n] = v
	}
	return nil
}
