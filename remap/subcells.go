package remap

import (
	"fmt"

	"github.com/katalvlaran/amremap/cells"
)

// avgSubCells computes the area-weighted mean of every input leaf tiling
// the output cell at (i, j, lev): a leaf Δ levels below the cell covers a
// 1/4^Δ share of its area and contributes value/4^Δ to the sum.
//
// The traversal is an explicit-stack depth-first walk of the input
// quadtree under the cell. The premise: descend to finer levels, and at
// each one sweep the square of four child keys below the previous
// position. queue[lev] records which child to examine next on each level,
// so the walk can resume above after finishing the sub-cells of a
// sentinel entry.
//
// An absent key inside the walk means the mesh declared a refined region
// it does not tile; that surfaces as ErrMeshIntegrity with the offending
// coordinates, never as a silently short sum.
//
// Complexity: O(leaves under the cell) queries, O(levmax) stack.
func (ls *LevelStack) avgSubCells(in *cells.CellList, i, j, lev int) (float64, error) {
	var (
		sum      float64
		startlev = lev
		queue    [maxDepth]int
		keyNew   [4]int
	)

	queue[startlev+1] = 0

	lev++
	i *= 2
	j *= 2

	for lev > startlev {
		// When returning from a finer level, land on even coordinates so
		// the four children share the same reference corner as the queue.
		i -= i % 2
		j -= j % 2

		// queue[lev] is left at 4 when the last child of this level was a
		// sentinel; on return there is nothing left here, pop again.
		if queue[lev] > 3 {
			lev--
			i /= 2
			j /= 2
			continue
		}

		istride := cells.Stride(ls.ibasesize, lev)
		key := cells.Key(i, j, istride)

		keyNew[0] = key
		keyNew[1] = key + 1
		keyNew[2] = key + istride
		keyNew[3] = key + istride + 1

		for ic := queue[lev]; ic < 4; ic++ {
			key = keyNew[ic]

			probe, ok := ls.Query(lev, key)
			if !ok {
				ki, kj := cells.Coords(key, istride)
				return 0, fmt.Errorf("%w: missing leaf at (i=%d, j=%d, level=%d)",
					ErrMeshIntegrity, ki, kj, lev)
			}
			if probe >= 0 {
				sum += in.Values[probe] / float64(cells.FourToThe(lev-startlev))
			} else {
				// Sentinel: remember where to resume and move down a level.
				queue[lev] = ic + 1
				i, j = cells.Coords(key, istride)
				lev++
				i *= 2
				j *= 2
				queue[lev] = 0
				break
			}
			if ic == 3 {
				lev--
				i /= 2
				j /= 2
			}
		}
	}

	return sum, nil
}
