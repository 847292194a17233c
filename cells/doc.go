// Package cells defines the structure-of-arrays cell list shared by every
// adaptive-mesh-refinement (AMR) routine in amremap, together with the key
// encoding that maps a cell's logical coordinates onto a single integer.
//
// What:
//
//   - CellList holds N cells as parallel slices: I, J, Level and Values.
//   - Every cell lives on a quadtree over a square Ibasesize×Ibasesize base
//     grid; a cell at level L has coordinates 0 ≤ i,j < Ibasesize·2^L.
//   - Key/Stride implement the canonical row-major encoding
//     key = j·stride + i with stride = Ibasesize·2^L.
//   - Uniform and RefineAt build well-formed meshes for tests and examples.
//
// Why:
//
//   - Structure-of-arrays keeps the hot remap loops cache-friendly and lets
//     callers own the storage; the engine only reads input and writes output.
//   - A single integer key per (level, i, j) is what the per-level hash
//     tables in package remap index on.
//
// Invariants:
//
//   - A well-formed list tiles the logical domain without overlap or gap.
//   - Coordinates at a given level are unique.
//   - Every cell's level lies in [0, Levmax].
//
// Validate checks the cheap per-cell range invariants; the tiling property
// is a documented precondition of the remap engine, not something this
// package can verify in O(N).
//
// Complexity:
//
//   - Validate:  O(N) time, O(1) memory.
//   - Uniform:   O((Ibasesize·2^L)²) time and memory.
//   - RefineAt:  O(N) time (linear scan), amortized O(1) memory per child.
//
// Errors:
//
//   - ErrBadBaseSize:   Ibasesize < 1.
//   - ErrBadLevel:      Levmax out of range, or a cell's level outside [0, Levmax].
//   - ErrCoordRange:    a cell coordinate outside [0, Ibasesize·2^level).
//   - ErrLengthMismatch: parallel slices of differing lengths.
//   - ErrCellNotFound:  RefineAt target does not exist.
package cells
