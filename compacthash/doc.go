// Package compacthash provides the integer→integer hash substrate behind
// the amremap level index: a table with a selectable open-addressing
// backend, optional concurrent insertion, and collision diagnostics.
//
// 🚀 What is compacthash?
//
//	A purpose-built map[int]int for dense integer keyspaces that are only
//	sparsely occupied. A Factory chooses between:
//
//	  • Perfect    — direct-indexed array over the whole keyspace
//	  • Linear     — open addressing, step 1
//	  • Quadratic  — open addressing, cumulative n² steps
//	  • PrimeJump  — open addressing, key-dependent prime stride
//
//	The Auto kind picks Perfect when the keyspace is within a memory
//	factor of the compact size (cheap and collision-free), and Quadratic
//	otherwise.
//
// ✨ Why not map[int]int?
//
//   - The probe sequence is fixed and branch-light, so inserts and queries
//     stay O(1) with small constants under the ~0.33 load the callers size
//     tables for.
//   - Slots are flat int64 arrays: no per-entry allocation, trivially
//     shared read-only across goroutines.
//   - Insertion supports lock-free (compare-and-swap) and lock-per-slot
//     policies for data-parallel table builds.
//
// Probe math:
//
//	h0(k)   = ((k·A + B) mod P) mod capacity,  P = 4294967291
//	linear    step 1
//	quadratic cumulative: pos += n·n on the n-th collision
//	primejump pos += n·(1 + k mod 41)
//
// A and B are drawn per table at creation (never process-global). A
// non-zero Options.Seed gives every table of a factory the same A and B.
//
// Failure bounds: every compact probe chain is capped at 1000 steps.
// Insert surfaces ErrCapacityExceeded when a serial or locked probe chain
// exhausts, and ErrContentionTimeout when the lock-free path does; Query
// reports absence instead of an error.
//
// Diagnostics: Options.ReportLevel 0–3 controls collision accounting —
// 0 off, 1 accumulate counters, 2 print summary reports, 3 trace probes.
// Collision counts never affect correctness.
//
// Errors:
//
//   - ErrBadOptions:         invalid Options combination.
//   - ErrBadHint:            non-positive size or negative count hint.
//   - ErrKeyRange:           key outside [0, sizeHint) for a Perfect table,
//     or negative for a compact one.
//   - ErrValueRange:         value collides with a reserved slot marker.
//   - ErrCapacityExceeded:   probe chain exhausted, table is too full.
//   - ErrContentionTimeout:  lock-free insert exceeded its retry budget.
package compacthash
