// Package amremap is a hierarchical remap engine for adaptive mesh
// refinement (AMR): it transfers cell-centered scalar values between two
// quadtree-structured 2D meshes covering the same logical domain.
//
// 🚀 What is amremap?
//
//	A numerical kernel built around a multi-level spatial hash:
//
//	  • cells/       — structure-of-arrays cell lists, key encoding, mesh builders
//	  • compacthash/ — the hash substrate: perfect, linear, quadratic and
//	                   prime-jump backends with serial, lock-free and
//	                   lock-per-slot insertion
//	  • remap/       — the engine: per-level breadcrumb index, coarse→fine
//	                   containment probe, explicit-stack sub-cell averaging
//
// ✨ Why amremap?
//
//   - O(N) remap with small constants, however irregular the refinement
//   - Bit-identical results across hash backends and worker counts
//   - Explicit errors for oversubscribed tables, contended inserts, and
//     meshes that fail to tile their domain — never a silent NaN
//   - Pure Go data-parallel core; no cgo, no global state
//
// Quick ASCII example — one coarse input cell remapped onto its four
// refined children, and four fine cells averaged back down:
//
//	in (level 0)     out (level 1)        in (level 1)    out (level 0)
//	┌───────┐        ┌───┬───┐            ┌───┬───┐       ┌───────┐
//	│  10   │   →    │10 │10 │            │ 1 │ 3 │   →   │   4   │
//	│       │        ├───┼───┤            ├───┼───┤       │       │
//	└───────┘        │10 │10 │            │ 5 │ 7 │       └───────┘
//	                 └───┴───┘            └───┴───┘
//
// Start with remap.Remap for the direct-indexed fast path, or
// remap.RemapWith to choose a compact backend and a parallel sweep.
//
//	go get github.com/katalvlaran/amremap
package amremap
