// Package expect: the truncation subsystem — continuous analytic path.
//
// Truncation to [lb, ub] requires recomputing the mean under the
// restricted support. Continuous families with a closed form follow the
// general pattern
//
//	mean = untruncated_mean + correction(z_lb, z_ub)
//
// with the correction built from the density/CDF at the standardized
// bounds. Bounds below a family's natural support floor are clamped to
// the floor. The degenerate window lb == ub is treated as a point mass:
// the truncated mean is the bound value itself (pending confirmation
// against reference behavior, see DESIGN.md).
//
// Families without a closed form route to the discrete summation path
// (truncation_discrete.go) or fail with ErrUnsupportedOperation.
package expect

import (
	"math"

	"github.com/statforge/epred/draws"
	"github.com/statforge/epred/tensor"
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// truncatedExpected routes a truncated bundle to the family's
// truncation capability.
func truncatedExpected(f ExpectationProvider, p *Params, o *Options) (*tensor.Dense, error) {
	if at, ok := f.(analyticTruncatable); ok {
		return at.truncExpected(p)
	}
	if dt, ok := f.(discreteTruncatable); ok {
		return discreteTruncExpected(dt, p, o)
	}

	return nil, errUnsupported(f.FamilyName(), "truncated mean not implemented")
}

// stdNormal backs the gaussian and lognormal corrections.
var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// analyticLoop iterates the (draw, observation) grid with per-obs
// bounds clamped to the family's support floor, short-circuiting the
// degenerate lb == ub window.
func analyticLoop(b *draws.Bundle, floor float64, cell func(s, i int, lb, ub float64) float64) (*tensor.Dense, error) {
	return mapCells(b, func(s, i int) float64 {
		lb := math.Max(b.LowerBound(i), floor)
		ub := b.UpperBound(i)
		if lb == ub {
			return lb
		}

		return cell(s, i, lb, ub)
	})
}

// truncExpected (gaussian): mu + sigma·(φ(a) − φ(b)) / (Φ(b) − Φ(a)).
func (f gaussianFamily) truncExpected(p *Params) (*tensor.Dense, error) {
	mu, err := p.DPar("mu")
	if err != nil {
		return nil, err
	}
	sigma, err := p.DPar("sigma")
	if err != nil {
		return nil, err
	}

	return analyticLoop(p.Bundle(), math.Inf(-1), func(s, i int, lb, ub float64) float64 {
		m, sd := mu.Resp(s, i), sigma.Resp(s, i)
		a, bz := (lb-m)/sd, (ub-m)/sd

		num := stdNormal.Prob(a) - stdNormal.Prob(bz)
		den := stdNormal.CDF(bz) - stdNormal.CDF(a)

		return m + sd*num/den
	})
}

// truncExpected (student): the t-density antiderivative
// ∫x·f(x)dx = −(ν+x²)/(ν−1)·f(x) gives
// mu + sigma·((ν+a²)f(a) − (ν+b²)f(b)) / ((ν−1)·(F(b) − F(a))).
// The first moment requires ν > 1.
func (f studentFamily) truncExpected(p *Params) (*tensor.Dense, error) {
	mu, err := p.DPar("mu")
	if err != nil {
		return nil, err
	}
	sigma, err := p.DPar("sigma")
	if err != nil {
		return nil, err
	}
	nuP, err := p.DPar("nu")
	if err != nil {
		return nil, err
	}

	var nuErr error
	out, err := analyticLoop(p.Bundle(), math.Inf(-1), func(s, i int, lb, ub float64) float64 {
		nu := nuP.Resp(s, i)
		if nu <= 1 {
			nuErr = errUnsupported(draws.Student, "truncated mean requires nu > 1")

			return math.NaN()
		}
		m, sd := mu.Resp(s, i), sigma.Resp(s, i)
		a, bz := (lb-m)/sd, (ub-m)/sd
		t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: nu}

		num := (tMomentTerm(t, nu, a) - tMomentTerm(t, nu, bz)) / (nu - 1)
		den := t.CDF(bz) - t.CDF(a)

		return m + sd*num/den
	})
	if err != nil {
		return nil, err
	}
	if nuErr != nil {
		return nil, nuErr
	}

	return out, nil
}

// tMomentTerm evaluates (ν+x²)·f(x), whose infinite-argument limit is 0
// for ν > 1.
func tMomentTerm(t distuv.StudentsT, nu, x float64) float64 {
	if math.IsInf(x, 0) {
		return 0
	}

	return (nu + x*x) * t.Prob(x)
}

// truncExpected (lognormal): with α=(ln lb−μ)/σ, β=(ln ub−μ)/σ,
// E = exp(μ+σ²/2)·(Φ(β−σ) − Φ(α−σ)) / (Φ(β) − Φ(α)).
// Negative lower bounds clamp to the support floor 0 (ln 0 = −∞).
// The shifted variant has no closed form under truncation.
func (f lognormalFamily) truncExpected(p *Params) (*tensor.Dense, error) {
	if f.shifted {
		return nil, errUnsupported(draws.ShiftedLognormal, "truncated mean not implemented")
	}
	mu, err := p.DPar("mu")
	if err != nil {
		return nil, err
	}
	sigma, err := p.DPar("sigma")
	if err != nil {
		return nil, err
	}

	return analyticLoop(p.Bundle(), 0, func(s, i int, lb, ub float64) float64 {
		m, sd := mu.Resp(s, i), sigma.Resp(s, i)
		alpha, beta := (math.Log(lb)-m)/sd, (math.Log(ub)-m)/sd

		num := stdNormal.CDF(beta-sd) - stdNormal.CDF(alpha-sd)
		den := stdNormal.CDF(beta) - stdNormal.CDF(alpha)

		return math.Exp(m+sd*sd/2) * num / den
	})
}

// gammaIncLower is the regularized lower incomplete gamma P(a, x) with
// the support edges handled explicitly.
func gammaIncLower(a, x float64) float64 {
	if x <= 0 {
		return 0
	}
	if math.IsInf(x, 1) {
		return 1
	}

	return mathext.GammaIncReg(a, x)
}

// gammaTruncMean is the shared gamma/exponential closed form: for
// shape k and mean m (scale θ = m/k),
// E = m·(P(k+1, ub/θ) − P(k+1, lb/θ)) / (P(k, ub/θ) − P(k, lb/θ)).
func gammaTruncMean(m, k, lb, ub float64) float64 {
	theta := m / k
	num := gammaIncLower(k+1, ub/theta) - gammaIncLower(k+1, lb/theta)
	den := gammaIncLower(k, ub/theta) - gammaIncLower(k, lb/theta)

	return m * num / den
}

// truncExpected (gamma): lower incomplete gamma at the scaled bounds.
func (f gammaFamily) truncExpected(p *Params) (*tensor.Dense, error) {
	mu, err := p.DPar("mu")
	if err != nil {
		return nil, err
	}
	shape, err := p.DPar("shape")
	if err != nil {
		return nil, err
	}

	return analyticLoop(p.Bundle(), 0, func(s, i int, lb, ub float64) float64 {
		return gammaTruncMean(mu.Resp(s, i), shape.Resp(s, i), lb, ub)
	})
}

// truncExpected (exponential): the gamma form with shape 1.
func (f exponentialFamily) truncExpected(p *Params) (*tensor.Dense, error) {
	mu, err := p.DPar("mu")
	if err != nil {
		return nil, err
	}

	return analyticLoop(p.Bundle(), 0, func(s, i int, lb, ub float64) float64 {
		return gammaTruncMean(mu.Resp(s, i), 1, lb, ub)
	})
}

// truncExpected (weibull): with scale λ = m/Γ(1+1/k) and t(x)=(x/λ)^k,
// E = m·(P(1+1/k, t(ub)) − P(1+1/k, t(lb))) / (e^(−t(lb)) − e^(−t(ub))).
func (f weibullFamily) truncExpected(p *Params) (*tensor.Dense, error) {
	mu, err := p.DPar("mu")
	if err != nil {
		return nil, err
	}
	shape, err := p.DPar("shape")
	if err != nil {
		return nil, err
	}

	return analyticLoop(p.Bundle(), 0, func(s, i int, lb, ub float64) float64 {
		m, k := mu.Resp(s, i), shape.Resp(s, i)
		lambda := m / math.Gamma(1+1/k)
		tl := math.Pow(lb/lambda, k)
		tu := math.Pow(ub/lambda, k)

		num := gammaIncLower(1+1/k, tu) - gammaIncLower(1+1/k, tl)
		den := math.Exp(-tl) - math.Exp(-tu)

		return m * num / den
	})
}
