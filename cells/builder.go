package cells

// Uniform builds a fully populated mesh in which every cell sits at the
// same refinement level. fill is called once per cell with its logical
// coordinates and supplies the cell value; a nil fill leaves values at zero.
//
// Cells are appended in row-major order, so cell n has coordinates
// (n mod edge, n / edge) with edge = ibasesize·2^level.
//
// Complexity: O(edge²) time and memory.
func Uniform(ibasesize, level int, fill func(i, j int) float64) *CellList {
	edge := Stride(ibasesize, level)
	c := New(ibasesize, level)
	c.I = make([]int, 0, edge*edge)
	c.J = make([]int, 0, edge*edge)
	c.Level = make([]int, 0, edge*edge)
	c.Values = make([]float64, 0, edge*edge)
	for j := 0; j < edge; j++ {
		for i := 0; i < edge; i++ {
			v := 0.0
			if fill != nil {
				v = fill(i, j)
			}
			c.Add(i, j, level, v)
		}
	}
	return c
}

// RefineAt splits the leaf at (i, j, level) into its four level+1 children,
// each inheriting the parent's value. The parent entry is replaced in place
// by the lower-left child and the remaining three children are appended, so
// existing cell indices other than the target stay stable. Levmax grows if
// the children exceed it.
//
// Returns ErrCellNotFound if no cell matches (i, j, level).
// Complexity: O(N) scan plus O(1) appends.
func (c *CellList) RefineAt(i, j, level int) error {
	n := -1
	for k := 0; k < c.Len(); k++ {
		if c.I[k] == i && c.J[k] == j && c.Level[k] == level {
			n = k
			break
		}
	}
	if n < 0 {
		return ErrCellNotFound
	}
	v := c.Values[n]
	// Lower-left child takes over the parent's slot.
	c.I[n], c.J[n], c.Level[n] = 2*i, 2*j, level+1
	c.Add(2*i+1, 2*j, level+1, v)
	c.Add(2*i, 2*j+1, level+1, v)
	c.Add(2*i+1, 2*j+1, level+1, v)
	if level+1 > c.Levmax {
		c.Levmax = level + 1
	}
	return nil
}
