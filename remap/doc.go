// Package remap transfers cell-centered scalar values between two
// quadtree-structured AMR meshes covering the same logical domain.
//
// 🚀 What is remap?
//
//	Given an input and an output cells.CellList over a shared base grid,
//	the engine assigns every output cell a value from the input mesh:
//
//	  • output at or below the input's local refinement — the value of the
//	    coarsest input leaf containing it (a coarse→fine hash probe);
//	  • output coarser than the input — the area-weighted mean of all
//	    input leaves tiling it (an explicit-stack quadtree descent).
//
//	The whole transform is O(N) with small constants regardless of how
//	irregularly either mesh is refined, thanks to a per-level hash index
//	(LevelStack) in which every refined region leaves "breadcrumb"
//	sentinels on its ancestor keys.
//
// ⚙️ Usage:
//
//	out := cells.Uniform(ibasesize, 0, nil) // target mesh, values zeroed
//	if err := remap.Remap(in, out); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Explicit compact hashing and a parallel sweep:
//	opts := remap.DefaultOptions()
//	opts.Hash.Kind = compacthash.Quadratic
//	opts.Workers = runtime.NumCPU()
//	err := remap.RemapWith(in, out, &opts)
//
// Phases:
//
//  1. Build — size each level's table from the per-level cell counts
//     (propagating a quarter of each finer level upward for sentinel
//     headroom), then index every input cell and its ancestor chain.
//  2. Sweep — probe coarse→fine per output cell; fall back to sub-cell
//     averaging when the input is locally finer. Read-only, and
//     embarrassingly parallel across output cells.
//
// Complexity:
//
//   - Build: O(N_in · levmax) worst case, O(N_in) for meshes whose
//     refinement chains are short.
//   - Sweep: O(N_out) probes plus O(leaves under cell) per averaged cell;
//     every input leaf is visited at most once across the sweep.
//   - Memory: one table per level, sized by the factory's backend choice.
//
// Determinism: values are a pure function of the input mesh. Backend
// choice (Perfect/Linear/Quadratic/PrimeJump) and worker count never
// change the floating-point result: the descent accumulates in quadtree
// order, not hash order.
//
// Errors:
//
//   - ErrNilMesh:        input or output list is nil.
//   - ErrDomainMismatch: meshes disagree on the base grid size.
//   - ErrTooDeep:        refinement exceeds the descent stack bound (30).
//   - ErrMeshIntegrity:  a declared sub-tree is missing a leaf; the input
//     does not tile its domain.
//   - ErrBadWorkers:     Options.Workers < 1.
//
// plus anything cells.Validate or the compacthash factory reports.
package remap
