package cells

import "golang.org/x/exp/constraints"

// TwoToThe returns 2^n for a non-negative integer n of any integer type.
// The generic signature lets int and int64 callers share one helper.
// Complexity: O(1).
func TwoToThe[T constraints.Integer](n T) T {
	return 1 << n
}

// FourToThe returns 4^n for a non-negative integer n of any integer type.
// Each refinement level multiplies the cell count under a fixed region by
// four, so 4^Δ is the sub-cell count Δ levels down. Complexity: O(1).
func FourToThe[T constraints.Integer](n T) T {
	return 1 << (2 * n)
}

// Stride returns the linear grid dimension at a refinement level:
// ibasesize·2^level. Complexity: O(1).
func Stride(ibasesize, level int) int {
	return ibasesize * TwoToThe(level)
}

// Key encodes logical coordinates (i, j) on a grid of the given stride into
// the row-major integer key used by the per-level hash tables:
// key = j·stride + i. Complexity: O(1).
func Key(i, j, stride int) int {
	return j*stride + i
}

// Coords decodes a row-major key back into (i, j) on a grid of the given
// stride. It is the inverse of Key. Complexity: O(1).
func Coords(key, stride int) (i, j int) {
	return key % stride, key / stride
}
