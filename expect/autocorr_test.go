package expect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statforge/epred/draws"
	"github.com/statforge/epred/expect"
	"github.com/statforge/epred/tensor"
)

// sarBundle builds a gaussian bundle with a 2x2 exchange weight matrix.
func sarBundle(t *testing.T, kind draws.AutoCorKind, rho []float64, mu *draws.Param) *draws.Bundle {
	t.Helper()
	w, err := tensor.FromRows([][]float64{{0, 1}, {1, 0}})
	require.NoError(t, err)

	return &draws.Bundle{
		Family:   draws.Gaussian,
		NSamples: mu.Rows(),
		NObs:     2,
		DPars:    map[string]*draws.Param{"mu": mu},
		AutoCor:  &draws.AutoCor{Kind: kind, W: w, Rho: rho},
	}
}

// TestSAR_Known solves the 2x2 spatial-lag system exactly:
// (I − 0.5W)·y = (1,1) has the solution y = (2,2).
func TestSAR_Known(t *testing.T) {
	b := sarBundle(t, draws.LagSAR, []float64{0.5}, vp(t, draws.Identity, 1, 2, 1, 1))

	res, err := expect.Expected(b)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, at(t, res, 0, 0), 1e-12)
	assert.InDelta(t, 2.0, at(t, res, 0, 1), 1e-12)
}

// TestSAR_ZeroRho leaves the mean untouched.
func TestSAR_ZeroRho(t *testing.T) {
	b := sarBundle(t, draws.LagSAR, []float64{0}, vp(t, draws.Identity, 1, 2, 3, 4))

	res, err := expect.Expected(b)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, at(t, res, 0, 0), 1e-12)
	assert.InDelta(t, 4.0, at(t, res, 0, 1), 1e-12)
}

// TestSAR_ErrorStructure is a no-op on the mean.
func TestSAR_ErrorStructure(t *testing.T) {
	b := sarBundle(t, draws.ErrorSAR, []float64{0.5}, vp(t, draws.Identity, 1, 2, 3, 4))

	res, err := expect.Expected(b)
	require.NoError(t, err)
	assert.Equal(t, 3.0, at(t, res, 0, 0))
	assert.Equal(t, 4.0, at(t, res, 0, 1))
}

// TestSAR_PerDrawRho solves each draw with its own coefficient.
func TestSAR_PerDrawRho(t *testing.T) {
	mu := vp(t, draws.Identity, 2, 2, 1, 1, 1, 1)
	b := sarBundle(t, draws.LagSAR, []float64{0, 0.5}, mu)

	res, err := expect.Expected(b)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, at(t, res, 0, 0), 1e-12, "rho 0 keeps mu")
	assert.InDelta(t, 2.0, at(t, res, 1, 0), 1e-12, "rho 0.5 doubles the exchange system")
}

// TestSAR_Workers produces identical results with a bounded pool.
func TestSAR_Workers(t *testing.T) {
	vals := make([]float64, 16)
	for i := range vals {
		vals[i] = float64(i + 1)
	}
	mu := vp(t, draws.Identity, 8, 2, vals...)

	seq, err := expect.Expected(sarBundle(t, draws.LagSAR, []float64{0.3}, mu))
	require.NoError(t, err)
	par, err := expect.Expected(sarBundle(t, draws.LagSAR, []float64{0.3}, mu), expect.WithWorkers(4))
	require.NoError(t, err)

	for s := 0; s < 8; s++ {
		for i := 0; i < 2; i++ {
			assert.Equal(t, at(t, seq, s, i), at(t, par, s, i), "draw %d obs %d", s, i)
		}
	}
}

// TestSAR_Singular surfaces an unsolvable system per draw.
func TestSAR_Singular(t *testing.T) {
	b := sarBundle(t, draws.LagSAR, []float64{1}, vp(t, draws.Identity, 1, 2, 1, 1))

	_, err := expect.Expected(b)
	assert.ErrorIs(t, err, expect.ErrSingularSystem)
}

// TestWithWorkers_Panic rejects a nonsensical pool size.
func TestWithWorkers_Panic(t *testing.T) {
	assert.Panics(t, func() { expect.WithWorkers(0) })
}
