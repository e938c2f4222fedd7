package draws_test

import (
	"math"
	"testing"

	"github.com/statforge/epred/draws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewParam_ShapeChecks rejects storage that cannot hold the claimed
// shape.
func TestNewParam_ShapeChecks(t *testing.T) {
	_, err := draws.NewParam([]float64{1, 2, 3}, 2, 2, draws.Identity)
	assert.ErrorIs(t, err, draws.ErrShapeMismatch, "3 values cannot fill 2x2")

	_, err = draws.NewParam([]float64{1}, 0, 1, draws.Identity)
	assert.ErrorIs(t, err, draws.ErrShapeMismatch, "zero rows must error")
}

// TestParam_ConstantBroadcast verifies that a cols==1 parameter serves
// the same per-draw value for every observation without replication.
func TestParam_ConstantBroadcast(t *testing.T) {
	p, err := draws.NewConstParam([]float64{1.5, 2.5}, draws.Identity)
	require.NoError(t, err)

	assert.Equal(t, 1, p.Cols())
	assert.Equal(t, 1.5, p.At(0, 0))
	assert.Equal(t, 1.5, p.At(0, 7), "constant param broadcasts across observations")
	assert.Equal(t, 2.5, p.At(1, 3))
}

// TestParam_ConstantSquareBundle keeps the per-draw orientation when
// materializing a constant parameter on a bundle with as many draws as
// observations: draw s's value fills row s, never a column.
func TestParam_ConstantSquareBundle(t *testing.T) {
	p, err := draws.NewConstParam([]float64{10, 20}, draws.Identity)
	require.NoError(t, err)

	m, err := p.Linear(2)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		v, aerr := m.At(0, i)
		require.NoError(t, aerr)
		assert.Equal(t, 10.0, v, "draw 0 obs %d", i)
		v, aerr = m.At(1, i)
		require.NoError(t, aerr)
		assert.Equal(t, 20.0, v, "draw 1 obs %d", i)
	}
}

// TestParam_VaryingAccess reads a full draws×obs matrix.
func TestParam_VaryingAccess(t *testing.T) {
	p, err := draws.NewParam([]float64{1, 2, 3, 4}, 2, 2, draws.Identity)
	require.NoError(t, err)

	assert.Equal(t, 2.0, p.At(0, 1))
	assert.Equal(t, 3.0, p.At(1, 0))
}

// TestParam_Response applies the inverse link on read and on
// materialization.
func TestParam_Response(t *testing.T) {
	p, err := draws.NewConstParam([]float64{0}, draws.Log)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, p.Resp(0, 0), 1e-15, "exp(0) == 1")

	m, err := p.Response(3)
	require.NoError(t, err)
	v, _ := m.At(0, 2)
	assert.InDelta(t, 1.0, v, 1e-15)
}

// TestLink_Inverses spot-checks every inverse link at a known point.
func TestLink_Inverses(t *testing.T) {
	assert.Equal(t, 1.7, draws.Identity.Inv(1.7))
	assert.InDelta(t, math.E, draws.Log.Inv(1), 1e-12)
	assert.InDelta(t, 0.5, draws.Logit.Inv(0), 1e-12)
	assert.InDelta(t, 0.5, draws.Probit.Inv(0), 1e-12)
	assert.InDelta(t, 1-math.Exp(-1), draws.CLogLog.Inv(0), 1e-12)
	assert.InDelta(t, 0.5, draws.Cauchit.Inv(0), 1e-12)
	assert.InDelta(t, 0.25, draws.Inverse.Inv(4), 1e-12)
	assert.InDelta(t, 9.0, draws.Sqrt.Inv(3), 1e-12)
	assert.InDelta(t, math.Log(2), draws.Softplus.Inv(0), 1e-12)
	assert.InDelta(t, math.Pi/2, draws.TanHalf.Inv(1), 1e-12)
}

// TestLink_SoftplusLargeArgument stays finite where exp overflows.
func TestLink_SoftplusLargeArgument(t *testing.T) {
	assert.InDelta(t, 800.0, draws.Softplus.Inv(800), 1e-9)
}
