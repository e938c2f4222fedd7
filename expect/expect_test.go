package expect_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statforge/epred/draws"
	"github.com/statforge/epred/expect"
)

// cp builds a per-draw constant parameter or fails the test.
func cp(t *testing.T, link draws.Link, vals ...float64) *draws.Param {
	t.Helper()
	p, err := draws.NewConstParam(vals, link)
	require.NoError(t, err)

	return p
}

// vp builds a varying nsamples×nobs parameter or fails the test.
func vp(t *testing.T, link draws.Link, rows, cols int, vals ...float64) *draws.Param {
	t.Helper()
	p, err := draws.NewParam(vals, rows, cols, link)
	require.NoError(t, err)

	return p
}

// bundleOf assembles a bundle with the draw count taken from mu.
func bundleOf(t *testing.T, fam draws.FamilyName, nobs int, dpars map[string]*draws.Param) *draws.Bundle {
	t.Helper()
	mu, ok := dpars["mu"]
	require.True(t, ok, "bundleOf needs a mu parameter")

	return &draws.Bundle{
		Family:   fam,
		NSamples: mu.Rows(),
		NObs:     nobs,
		DPars:    dpars,
	}
}

// at reads one matrix cell or fails the test.
func at(t *testing.T, res *expect.Result, s, i int) float64 {
	t.Helper()
	v, err := res.Values.At(s, i)
	require.NoError(t, err)

	return v
}

// TestExpected_GaussianIsMu returns the mu draws unchanged for an
// identity-mean family.
func TestExpected_GaussianIsMu(t *testing.T) {
	b := bundleOf(t, draws.Gaussian, 3, map[string]*draws.Param{
		"mu":    vp(t, draws.Identity, 2, 3, 1, 2, 3, 4, 5, 6),
		"sigma": cp(t, draws.Log, 0, 0),
	})

	res, err := expect.Expected(b)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Values.Rows())
	assert.Equal(t, 3, res.Values.Cols())
	for s, want := range [][]float64{{1, 2, 3}, {4, 5, 6}} {
		for i, w := range want {
			assert.Equal(t, w, at(t, res, s, i))
		}
	}
}

// TestExpected_ConstantMuSquareBundle keeps the draws axis and the
// observation axis apart when their lengths coincide: a constant mu
// must fill each draw's row with that draw's value, not tile the draws
// vector across every row.
func TestExpected_ConstantMuSquareBundle(t *testing.T) {
	b := bundleOf(t, draws.Gaussian, 2, map[string]*draws.Param{
		"mu": cp(t, draws.Identity, 10, 20),
	})

	res, err := expect.Expected(b)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		assert.Equal(t, 10.0, at(t, res, 0, i), "draw 0 obs %d", i)
		assert.Equal(t, 20.0, at(t, res, 1, i), "draw 1 obs %d", i)
	}
}

// TestExpected_BinomialTrials scales the success probability by the
// per-observation trial count.
func TestExpected_BinomialTrials(t *testing.T) {
	b := bundleOf(t, draws.Binomial, 1, map[string]*draws.Param{
		"mu": cp(t, draws.Identity, 0.4),
	})
	b.Data.Trials = []float64{10}

	res, err := expect.Expected(b)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, at(t, res, 0, 0), 1e-12)
}

// TestExpected_LognormalMean applies the log-normal closed form.
func TestExpected_LognormalMean(t *testing.T) {
	b := bundleOf(t, draws.Lognormal, 1, map[string]*draws.Param{
		"mu":    cp(t, draws.Identity, 0),
		"sigma": cp(t, draws.Identity, 1),
	})

	res, err := expect.Expected(b)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(0.5), at(t, res, 0, 0), 1e-12)
}

// TestExpected_ZeroInflatedPoisson thins the base mean by the
// zero-inflation probability.
func TestExpected_ZeroInflatedPoisson(t *testing.T) {
	b := bundleOf(t, draws.ZeroInflatedPoisson, 1, map[string]*draws.Param{
		"mu": cp(t, draws.Identity, 5),
		"zi": cp(t, draws.Identity, 0.2),
	})

	res, err := expect.Expected(b)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, at(t, res, 0, 0), 1e-12)
}

// TestExpected_UnknownDPar names the requested and available parameters.
func TestExpected_UnknownDPar(t *testing.T) {
	b := bundleOf(t, draws.Gaussian, 1, map[string]*draws.Param{
		"mu":    cp(t, draws.Identity, 0),
		"sigma": cp(t, draws.Log, 0),
	})

	_, err := expect.Expected(b, expect.WithDPar("nope"))
	require.ErrorIs(t, err, expect.ErrInvalidParameter)
	assert.Contains(t, err.Error(), "nope")
	assert.Contains(t, err.Error(), "mu, sigma")
}

// TestExpected_ConflictingArguments rejects dpar together with nlpar.
func TestExpected_ConflictingArguments(t *testing.T) {
	b := bundleOf(t, draws.Gaussian, 1, map[string]*draws.Param{
		"mu": cp(t, draws.Identity, 0),
	})

	_, err := expect.Expected(b, expect.WithDPar("sigma"), expect.WithNLPar("a"))
	assert.ErrorIs(t, err, expect.ErrConflictingArguments)
}

// TestExpected_DParScales extracts one parameter on either scale.
func TestExpected_DParScales(t *testing.T) {
	b := bundleOf(t, draws.Gaussian, 2, map[string]*draws.Param{
		"mu":    cp(t, draws.Identity, 0, 0),
		"sigma": cp(t, draws.Log, 1, 2),
	})

	res, err := expect.Expected(b, expect.WithDPar("sigma"))
	require.NoError(t, err)
	assert.InDelta(t, math.E, at(t, res, 0, 0), 1e-12, "response scale applies the inverse link")
	assert.InDelta(t, math.E, at(t, res, 0, 1), 1e-12, "constants broadcast across observations")

	res, err = expect.Expected(b, expect.WithDPar("sigma"), expect.WithLinearScale())
	require.NoError(t, err)
	assert.Equal(t, 1.0, at(t, res, 0, 0), "linear scale skips the link")
	assert.Equal(t, 2.0, at(t, res, 1, 1))
}

// TestExpected_NLPar extracts a non-linear parameter by name.
func TestExpected_NLPar(t *testing.T) {
	b := bundleOf(t, draws.Gaussian, 1, map[string]*draws.Param{
		"mu": cp(t, draws.Identity, 0),
	})
	b.NLPars = map[string]*draws.Param{"a": cp(t, draws.Identity, 7)}

	res, err := expect.Expected(b, expect.WithNLPar("a"))
	require.NoError(t, err)
	assert.Equal(t, 7.0, at(t, res, 0, 0))

	_, err = expect.Expected(b, expect.WithNLPar("b"))
	assert.ErrorIs(t, err, expect.ErrInvalidParameter)
}

// TestExpected_LinearScale returns the untransformed predictor of mu,
// bypassing family dispatch entirely.
func TestExpected_LinearScale(t *testing.T) {
	b := bundleOf(t, draws.Poisson, 1, map[string]*draws.Param{
		"mu": cp(t, draws.Log, 2),
	})

	res, err := expect.Expected(b, expect.WithLinearScale())
	require.NoError(t, err)
	assert.Equal(t, 2.0, at(t, res, 0, 0), "no inverse link on the linear scale")

	res, err = expect.Expected(b)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(2), at(t, res, 0, 0), 1e-12)
}

// TestExpected_UnknownFamily fails fast at dispatch.
func TestExpected_UnknownFamily(t *testing.T) {
	b := bundleOf(t, draws.FamilyName("no_such_family"), 1, map[string]*draws.Param{
		"mu": cp(t, draws.Identity, 0),
	})

	_, err := expect.Expected(b)
	assert.ErrorIs(t, err, expect.ErrUnsupportedOperation)
}

// TestExpected_CoxUnsupported refuses the family with no defined mean.
func TestExpected_CoxUnsupported(t *testing.T) {
	b := bundleOf(t, draws.Cox, 1, map[string]*draws.Param{
		"mu": cp(t, draws.Identity, 0),
	})

	_, err := expect.Expected(b)
	assert.ErrorIs(t, err, expect.ErrUnsupportedOperation)
}

// TestExpected_OldOrder restores caller-visible observation order, and
// WithKeepSortedOrder leaves the internal order in place.
func TestExpected_OldOrder(t *testing.T) {
	b := bundleOf(t, draws.Gaussian, 3, map[string]*draws.Param{
		"mu": vp(t, draws.Identity, 1, 3, 10, 20, 30),
	})
	// Internal column j belongs at caller position OldOrder[j].
	b.OldOrder = []int{2, 0, 1}

	res, err := expect.Expected(b)
	require.NoError(t, err)
	assert.Equal(t, 20.0, at(t, res, 0, 0))
	assert.Equal(t, 30.0, at(t, res, 0, 1))
	assert.Equal(t, 10.0, at(t, res, 0, 2))

	res, err = expect.Expected(b, expect.WithKeepSortedOrder())
	require.NoError(t, err)
	assert.Equal(t, 10.0, at(t, res, 0, 0), "sorted order preserved on request")
}

// TestExpected_Summary reduces the draws axis to labeled statistics.
func TestExpected_Summary(t *testing.T) {
	b := bundleOf(t, draws.Gaussian, 1, map[string]*draws.Param{
		"mu": cp(t, draws.Identity, 1, 2, 3, 4),
	})

	res, err := expect.Expected(b, expect.WithSummary())
	require.NoError(t, err)
	require.Equal(t, []string{"Estimate", "Est.Error", "Q2.5", "Q97.5"}, res.SummaryLabels)
	assert.Equal(t, 4, res.Values.Rows())
	assert.InDelta(t, 2.5, at(t, res, 0, 0), 1e-12)
	assert.InDelta(t, 1.2909944487358056, at(t, res, 1, 0), 1e-12)

	res, err = expect.Expected(b, expect.WithSummary(), expect.WithProbs(0.5))
	require.NoError(t, err)
	assert.Equal(t, []string{"Estimate", "Est.Error", "Q50"}, res.SummaryLabels)

	_, err = expect.Expected(b, expect.WithSummary(), expect.WithProbs(1.5))
	assert.Error(t, err, "probs outside (0,1) are rejected")
}

// TestExpectedMV stacks responses along the trailing axis.
func TestExpectedMV(t *testing.T) {
	b1 := bundleOf(t, draws.Gaussian, 2, map[string]*draws.Param{
		"mu": vp(t, draws.Identity, 1, 2, 1, 2),
	})
	b2 := bundleOf(t, draws.Poisson, 2, map[string]*draws.Param{
		"mu": vp(t, draws.Identity, 1, 2, 3, 4),
	})

	res, err := expect.ExpectedMV([]draws.Response{
		{Name: "y1", Bundle: b1},
		{Name: "y2", Bundle: b2},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"y1", "y2"}, res.ResponseNames)
	assert.Equal(t, 2, res.Values.Cats())

	v, err := res.Values.At3(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
	v, err = res.Values.At3(0, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)
}

// TestExpectedMV_ShapeMismatch rejects responses with different
// dimensions.
func TestExpectedMV_ShapeMismatch(t *testing.T) {
	b1 := bundleOf(t, draws.Gaussian, 2, map[string]*draws.Param{
		"mu": vp(t, draws.Identity, 1, 2, 1, 2),
	})
	b2 := bundleOf(t, draws.Gaussian, 3, map[string]*draws.Param{
		"mu": vp(t, draws.Identity, 1, 3, 1, 2, 3),
	})

	_, err := expect.ExpectedMV([]draws.Response{
		{Name: "y1", Bundle: b1},
		{Name: "y2", Bundle: b2},
	})
	assert.ErrorIs(t, err, expect.ErrShapeMismatch)

	_, err = expect.ExpectedMV(nil)
	assert.ErrorIs(t, err, expect.ErrInvalidParameter)
}
