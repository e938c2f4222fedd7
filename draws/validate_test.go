package draws_test

import (
	"math"
	"testing"

	"github.com/statforge/epred/draws"
	"github.com/statforge/epred/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bundle returns a minimal valid gaussian bundle for mutation in tests.
func bundle(t *testing.T) *draws.Bundle {
	t.Helper()
	mu, err := draws.NewParam([]float64{1, 2, 3, 4, 5, 6}, 2, 3, draws.Identity)
	require.NoError(t, err)
	sigma, err := draws.NewConstParam([]float64{1, 1}, draws.Log)
	require.NoError(t, err)

	return &draws.Bundle{
		Family:   draws.Gaussian,
		NSamples: 2,
		NObs:     3,
		DPars:    map[string]*draws.Param{"mu": mu, "sigma": sigma},
	}
}

// TestValidate_OK accepts a conforming bundle.
func TestValidate_OK(t *testing.T) {
	assert.NoError(t, bundle(t).Validate())
}

// TestValidate_NilBundle rejects nil.
func TestValidate_NilBundle(t *testing.T) {
	var b *draws.Bundle
	assert.ErrorIs(t, b.Validate(), draws.ErrNilBundle)
}

// TestValidate_ParamShape rejects a parameter whose column count is
// neither 1 nor nobs.
func TestValidate_ParamShape(t *testing.T) {
	b := bundle(t)
	bad, err := draws.NewParam([]float64{1, 2, 1, 2}, 2, 2, draws.Identity)
	require.NoError(t, err)
	b.DPars["shape"] = bad

	assert.ErrorIs(t, b.Validate(), draws.ErrShapeMismatch)
}

// TestValidate_ParamRows rejects a parameter with the wrong draw count.
func TestValidate_ParamRows(t *testing.T) {
	b := bundle(t)
	bad, err := draws.NewConstParam([]float64{1, 2, 3}, draws.Identity)
	require.NoError(t, err)
	b.DPars["nu"] = bad

	assert.ErrorIs(t, b.Validate(), draws.ErrShapeMismatch)
}

// TestValidate_BoundOrdering rejects lb > ub on finite pairs and
// accepts infinite sides.
func TestValidate_BoundOrdering(t *testing.T) {
	b := bundle(t)
	b.Data.LB = []float64{0, 5, math.Inf(-1)}
	b.Data.UB = []float64{1, 2, 4}
	assert.ErrorIs(t, b.Validate(), draws.ErrInvalidBounds, "obs 1 has lb>ub")

	b.Data.LB = []float64{0, 1, math.Inf(-1)}
	assert.NoError(t, b.Validate())
}

// TestValidate_Thresholds rejects metadata that misaddresses the
// threshold matrix.
func TestValidate_Thresholds(t *testing.T) {
	b := bundle(t)
	b.Data.NThres = []int{2, 3, 2}
	assert.ErrorIs(t, b.Validate(), draws.ErrBadThresholds, "nthres without matrix")

	th, err := tensor.NewDense(2, 3)
	require.NoError(t, err)
	b.Data.Thres = th
	assert.NoError(t, b.Validate(), "three columns cover max count 3")

	b.Data.NThres = []int{2, 4, 2}
	assert.ErrorIs(t, b.Validate(), draws.ErrBadThresholds, "count 4 exceeds matrix width")
}

// TestValidate_AutoCor rejects nonconforming spatial blocks.
func TestValidate_AutoCor(t *testing.T) {
	b := bundle(t)
	w, err := tensor.NewDense(2, 2)
	require.NoError(t, err)
	b.AutoCor = &draws.AutoCor{Kind: draws.LagSAR, W: w, Rho: []float64{0.5, 0.5}}
	assert.ErrorIs(t, b.Validate(), draws.ErrBadAutoCor, "W must be nobs x nobs")

	w3, err := tensor.NewDense(3, 3)
	require.NoError(t, err)
	b.AutoCor.W = w3
	b.AutoCor.Rho = []float64{0.5, 0.2, 0.1}
	assert.ErrorIs(t, b.Validate(), draws.ErrBadAutoCor, "rho must have 1 or nsamples entries")

	b.AutoCor.Rho = []float64{0.5}
	assert.NoError(t, b.Validate())
}

// TestValidate_Mixture enforces at least two non-mixture components.
func TestValidate_Mixture(t *testing.T) {
	b := bundle(t)
	b.Family = draws.Mixture
	b.Components = []draws.FamilyName{draws.Gaussian}
	assert.ErrorIs(t, b.Validate(), draws.ErrBadMixture, "one component is not a mixture")

	b.Components = []draws.FamilyName{draws.Gaussian, draws.Mixture}
	assert.ErrorIs(t, b.Validate(), draws.ErrBadMixture, "nested mixtures are disallowed")

	b.Components = []draws.FamilyName{draws.Gaussian, draws.Poisson}
	assert.NoError(t, b.Validate())
}

// TestBundle_BoundDefaults returns infinities for absent bounds and
// reports truncation only for finite bounds.
func TestBundle_BoundDefaults(t *testing.T) {
	b := bundle(t)
	assert.True(t, math.IsInf(b.LowerBound(0), -1))
	assert.True(t, math.IsInf(b.UpperBound(2), 1))
	assert.False(t, b.Truncated())

	b.Data.UB = []float64{10}
	assert.True(t, b.Truncated())
	assert.Equal(t, 10.0, b.UpperBound(2), "length-1 bound broadcasts")
}
