package remap_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/amremap/cells"
	"github.com/katalvlaran/amremap/compacthash"
	"github.com/katalvlaran/amremap/remap"
)

// cloneLayout copies a mesh's cell layout with zeroed values, the shape an
// output list arrives in.
func cloneLayout(c *cells.CellList) *cells.CellList {
	out := cells.New(c.Ibasesize, c.Levmax)
	out.I = append([]int(nil), c.I...)
	out.J = append([]int(nil), c.J...)
	out.Level = append([]int(nil), c.Level...)
	out.Values = make([]float64, c.Len())
	return out
}

// randomMesh builds a valid AMR layout by refining random leaves of a
// uniform base grid, then assigns each cell a distinct value.
func randomMesh(rng *rand.Rand, ibasesize, maxLevel, refines int) *cells.CellList {
	c := cells.Uniform(ibasesize, 0, nil)
	for r := 0; r < refines; r++ {
		n := rng.Intn(c.Len())
		if c.Level[n] >= maxLevel {
			continue
		}
		if err := c.RefineAt(c.I[n], c.J[n], c.Level[n]); err != nil {
			panic(err)
		}
	}
	for n := 0; n < c.Len(); n++ {
		c.Values[n] = float64(n) + 0.5
	}
	return c
}

// areaWeightedSum integrates a mesh: a level-L cell covers 4^-L level-0 units.
func areaWeightedSum(c *cells.CellList) float64 {
	sum := 0.0
	for n := 0; n < c.Len(); n++ {
		sum += c.Values[n] / float64(cells.FourToThe(c.Level[n]))
	}
	return sum
}

// TestRemap_SameGrid remaps a 2×2 level-0 mesh onto itself cell for cell.
func TestRemap_SameGrid(t *testing.T) {
	in := cells.New(2, 0)
	in.Add(0, 0, 0, 1.0)
	in.Add(1, 0, 0, 2.0)
	in.Add(0, 1, 0, 3.0)
	in.Add(1, 1, 0, 4.0)
	out := cloneLayout(in)

	require.NoError(t, remap.Remap(in, out))
	assert.Equal(t, []float64{1, 2, 3, 4}, out.Values)
}

// TestRemap_CoarseToFine assigns one coarse input value to all four refined
// output children (the coarse probe hits at level 0).
func TestRemap_CoarseToFine(t *testing.T) {
	in := cells.New(1, 0)
	in.Add(0, 0, 0, 10.0)

	out := cells.New(1, 1)
	out.Add(0, 0, 1, 0)
	out.Add(1, 0, 1, 0)
	out.Add(0, 1, 1, 0)
	out.Add(1, 1, 1, 0)

	require.NoError(t, remap.Remap(in, out))
	assert.Equal(t, []float64{10, 10, 10, 10}, out.Values)
}

// TestRemap_FineToCoarse averages four fine input cells into one coarse
// output cell.
func TestRemap_FineToCoarse(t *testing.T) {
	in := cells.New(1, 1)
	in.Add(0, 0, 1, 1.0)
	in.Add(1, 0, 1, 3.0)
	in.Add(0, 1, 1, 5.0)
	in.Add(1, 1, 1, 7.0)

	out := cells.New(1, 0)
	out.Add(0, 0, 0, 0)

	require.NoError(t, remap.Remap(in, out))
	assert.Equal(t, 4.0, out.Values[0], "(1+3+5+7)/4")
}

// TestRemap_MixedDescent averages the four children of a split base cell
// while the neighboring coarse cell stays untouched by the descent.
func TestRemap_MixedDescent(t *testing.T) {
	in := cells.New(2, 1)
	in.Add(0, 0, 0, 10.0)
	in.Add(2, 0, 1, 2.0)
	in.Add(3, 0, 1, 4.0)
	in.Add(2, 1, 1, 6.0)
	in.Add(3, 1, 1, 8.0)

	out := cells.New(2, 0)
	out.Add(1, 0, 0, 0)

	require.NoError(t, remap.Remap(in, out))
	assert.Equal(t, 5.0, out.Values[0], "(2+4+6+8)/4")
}

// TestRemap_DeepDescent spans a two-level sub-tree: sixteen level-2 leaves
// valued 1..16 under a single level-0 output cell.
func TestRemap_DeepDescent(t *testing.T) {
	in := cells.New(1, 2)
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			in.Add(i, j, 2, float64(j*4+i+1))
		}
	}
	out := cells.New(1, 0)
	out.Add(0, 0, 0, 0)

	require.NoError(t, remap.Remap(in, out))
	assert.Equal(t, 8.5, out.Values[0], "(1+2+...+16)/16")
}

// TestRemap_Identity leaves every value untouched when a mesh is remapped
// onto its own layout, for both dense and compact substrates.
func TestRemap_Identity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	in := randomMesh(rng, 4, 3, 24)

	for name, run := range map[string]func(in, out *cells.CellList) error{
		"dense":   remap.Remap,
		"compact": func(i, o *cells.CellList) error { return remap.RemapCompact(i, o, nil) },
	} {
		out := cloneLayout(in)
		require.NoError(t, run(in, out), name)
		assert.Equal(t, in.Values, out.Values, "%s: identity remap must preserve values", name)
	}
}

// TestRemap_Conservation integrates the mesh before and after remapping
// onto the coarse base grid; the area-weighted sums must agree.
func TestRemap_Conservation(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	in := randomMesh(rng, 4, 3, 30)
	out := cells.Uniform(4, 0, nil)

	require.NoError(t, remap.Remap(in, out))
	assert.InDelta(t, areaWeightedSum(in), areaWeightedSum(out), 1e-9)
}

// TestRemap_Totality writes every output slot: none of the pre-seeded NaNs
// survive the sweep.
func TestRemap_Totality(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	in := randomMesh(rng, 2, 4, 40)
	out := cells.Uniform(2, 1, nil)
	for n := range out.Values {
		out.Values[n] = math.NaN()
	}

	require.NoError(t, remap.Remap(in, out))
	for n, v := range out.Values {
		assert.False(t, math.IsNaN(v), "output cell %d left unwritten", n)
	}
}

// TestRemap_RoundTrip refines every input leaf one level, remaps onto the
// fine layout and back, and expects the original values: coarse→fine
// replicates, fine→coarse averages equal children.
func TestRemap_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(19))
	in := randomMesh(rng, 2, 2, 10)

	fine := cloneLayout(in)
	for n := range fine.Level {
		// Children of cell n tile exactly cell n, so the meshes subsume
		// each other's refinement.
		fine.I[n] *= 2
		fine.J[n] *= 2
		fine.Level[n]++
	}
	fine.Levmax = in.Levmax + 1
	grown := cells.New(fine.Ibasesize, fine.Levmax)
	for n := 0; n < fine.Len(); n++ {
		i, j, lev := fine.I[n], fine.J[n], fine.Level[n]
		grown.Add(i, j, lev, 0)
		grown.Add(i+1, j, lev, 0)
		grown.Add(i, j+1, lev, 0)
		grown.Add(i+1, j+1, lev, 0)
	}

	require.NoError(t, remap.Remap(in, grown))
	back := cloneLayout(in)
	require.NoError(t, remap.Remap(grown, back))
	assert.Equal(t, in.Values, back.Values)
}

// TestRemap_BackendEquivalence demands bit-identical outputs from every
// backend: probe order never reaches the accumulator.
func TestRemap_BackendEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	in := randomMesh(rng, 4, 3, 20)

	var want []float64
	for _, kind := range []compacthash.Kind{
		compacthash.Perfect, compacthash.Linear, compacthash.Quadratic, compacthash.PrimeJump,
	} {
		opts := remap.DefaultOptions()
		opts.Hash.Kind = kind
		out := cloneLayout(in)
		require.NoError(t, remap.RemapWith(in, out, &opts), kind.String())
		if want == nil {
			want = out.Values
			continue
		}
		assert.Equal(t, want, out.Values, "%s diverged", kind)
	}
}

// TestRemapWith_Parallel matches the serial result across worker counts,
// on both the lock-free and lock-per-slot insert policies.
func TestRemapWith_Parallel(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	in := randomMesh(rng, 4, 3, 40)

	serial := cloneLayout(in)
	require.NoError(t, remap.Remap(in, serial))

	for _, policy := range []compacthash.Policy{compacthash.LockFree, compacthash.LockPerSlot} {
		for _, workers := range []int{2, 4, 7} {
			opts := remap.DefaultOptions()
			opts.Hash.Kind = compacthash.Quadratic
			opts.Hash.Policy = policy
			opts.Workers = workers

			out := cloneLayout(in)
			require.NoError(t, remap.RemapWith(in, out, &opts))
			assert.Equal(t, serial.Values, out.Values, "policy %v workers %d", policy, workers)
		}
	}
}

// TestRemap_MeshIntegrity feeds a mesh whose breadcrumbs promise leaves
// that are missing; the descent must fail loudly instead of short-summing.
func TestRemap_MeshIntegrity(t *testing.T) {
	in := cells.New(1, 1)
	in.Add(0, 0, 1, 1.0) // plants a breadcrumb at level 0...
	in.Add(0, 1, 1, 5.0) // ...but (1,0,1) and (1,1,1) never arrive

	out := cells.New(1, 0)
	out.Add(0, 0, 0, 0)

	err := remap.Remap(in, out)
	assert.ErrorIs(t, err, remap.ErrMeshIntegrity)
}

// TestRemap_ArgumentErrors covers nil meshes, mismatched domains, and the
// worker/depth bounds.
func TestRemap_ArgumentErrors(t *testing.T) {
	in := cells.Uniform(2, 0, nil)
	out := cloneLayout(in)

	assert.ErrorIs(t, remap.Remap(nil, out), remap.ErrNilMesh)
	assert.ErrorIs(t, remap.Remap(in, nil), remap.ErrNilMesh)
	assert.ErrorIs(t, remap.RemapCompact(nil, out, nil), remap.ErrNilMesh)

	other := cells.Uniform(4, 0, nil)
	assert.ErrorIs(t, remap.Remap(in, other), remap.ErrDomainMismatch)

	opts := remap.DefaultOptions()
	opts.Workers = 0
	assert.ErrorIs(t, remap.RemapWith(in, out, &opts), remap.ErrBadWorkers)

	deep := cells.New(2, 31)
	deep.Add(0, 0, 0, 0)
	assert.ErrorIs(t, remap.Remap(in, deep), remap.ErrTooDeep)

	bad := cells.New(0, 0)
	assert.ErrorIs(t, remap.Remap(bad, out), cells.ErrBadBaseSize)
}

// TestRemapWith_NilOptions falls back to the defaults.
func TestRemapWith_NilOptions(t *testing.T) {
	in := cells.Uniform(2, 0, func(i, j int) float64 { return float64(i + j) })
	out := cloneLayout(in)
	require.NoError(t, remap.RemapWith(in, out, nil))
	assert.Equal(t, in.Values, out.Values)
}
