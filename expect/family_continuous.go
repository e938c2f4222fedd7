// Package expect: continuous-family expectations.
//
// Each family is a pure, total function from its parameter draws to the
// (draws × observations) expected-value matrix. Families whose mean is
// exactly the location parameter share identityFamily; everything else
// carries its closed form here. Families with a closed-form truncated
// mean additionally implement analyticTruncatable (see truncation.go).
package expect

import (
	"math"

	"github.com/statforge/epred/draws"
	"github.com/statforge/epred/tensor"
)

// identityFamily serves every family whose expectation is the
// response-scale location parameter unchanged: skew_normal, exgaussian,
// frechet, inverse_gaussian, beta, von_mises (and, via embedding, the
// plain count families).
type identityFamily struct {
	name draws.FamilyName
}

func (f identityFamily) FamilyName() draws.FamilyName { return f.name }

func (f identityFamily) Expected(p *Params) (*tensor.Dense, error) {
	mu, err := p.DPar("mu")
	if err != nil {
		return nil, err
	}

	return mu.Response(p.Bundle().NObs)
}

// gaussianFamily: mean mu; truncated mean via the standard-normal
// density/CDF correction.
type gaussianFamily struct{ identityFamily }

func (gaussianFamily) FamilyName() draws.FamilyName { return draws.Gaussian }

// studentFamily: mean mu; truncated mean via the t density/CDF
// correction (requires ν > 1).
type studentFamily struct{ identityFamily }

func (studentFamily) FamilyName() draws.FamilyName { return draws.Student }

// lognormalFamily covers lognormal and shifted_lognormal:
// E = exp(mu + sigma²/2) (+ ndt when shifted).
type lognormalFamily struct {
	shifted bool
}

func (f lognormalFamily) FamilyName() draws.FamilyName {
	if f.shifted {
		return draws.ShiftedLognormal
	}

	return draws.Lognormal
}

func (f lognormalFamily) Expected(p *Params) (*tensor.Dense, error) {
	mu, err := p.DPar("mu")
	if err != nil {
		return nil, err
	}
	sigma, err := p.DPar("sigma")
	if err != nil {
		return nil, err
	}
	var ndt *draws.Param
	if f.shifted {
		if ndt, err = p.DPar("ndt"); err != nil {
			return nil, err
		}
	}

	return mapCells(p.Bundle(), func(s, i int) float64 {
		sd := sigma.Resp(s, i)
		v := math.Exp(mu.Resp(s, i) + sd*sd/2)
		if ndt != nil {
			v += ndt.Resp(s, i)
		}

		return v
	})
}

// gammaFamily: mean mu (shape k enters only under truncation).
type gammaFamily struct{ identityFamily }

func (gammaFamily) FamilyName() draws.FamilyName { return draws.Gamma }

// exponentialFamily: mean mu.
type exponentialFamily struct{ identityFamily }

func (exponentialFamily) FamilyName() draws.FamilyName { return draws.Exponential }

// weibullFamily: mean mu (the scale is derived as mu/Γ(1+1/k)).
type weibullFamily struct{ identityFamily }

func (weibullFamily) FamilyName() draws.FamilyName { return draws.Weibull }

// asymLaplaceFamily is the quantile-regression family:
// E = mu + sigma·(1−2q)/(q·(1−q)) with q the fixed quantile parameter.
type asymLaplaceFamily struct{}

func (asymLaplaceFamily) FamilyName() draws.FamilyName { return draws.AsymLaplace }

func (asymLaplaceFamily) Expected(p *Params) (*tensor.Dense, error) {
	mu, err := p.DPar("mu")
	if err != nil {
		return nil, err
	}
	sigma, err := p.DPar("sigma")
	if err != nil {
		return nil, err
	}
	quantile, err := p.DPar("quantile")
	if err != nil {
		return nil, err
	}

	return mapCells(p.Bundle(), func(s, i int) float64 {
		q := quantile.Resp(s, i)

		return mu.Resp(s, i) + sigma.Resp(s, i)*(1-2*q)/(q*(1-q))
	})
}

// genExtremeValueFamily: E = mu + sigma·(Γ(1−ξ)−1)/ξ, with the ξ→0
// Gumbel limit mu + sigma·γ. The mean is infinite for ξ ≥ 1; the
// formula then propagates +Inf rather than failing.
type genExtremeValueFamily struct{}

func (genExtremeValueFamily) FamilyName() draws.FamilyName { return draws.GenExtremeValue }

// gevXiZeroEps is the |ξ| below which the Gumbel limit is used.
const gevXiZeroEps = 1e-10

func (genExtremeValueFamily) Expected(p *Params) (*tensor.Dense, error) {
	mu, err := p.DPar("mu")
	if err != nil {
		return nil, err
	}
	sigma, err := p.DPar("sigma")
	if err != nil {
		return nil, err
	}
	xi, err := p.DPar("xi")
	if err != nil {
		return nil, err
	}

	return mapCells(p.Bundle(), func(s, i int) float64 {
		x := xi.Resp(s, i)
		if math.Abs(x) < gevXiZeroEps {
			return mu.Resp(s, i) + sigma.Resp(s, i)*eulerGamma
		}

		return mu.Resp(s, i) + sigma.Resp(s, i)*(math.Gamma(1-x)-1)/x
	})
}

// coxFamily has no closed-form mean: the proportional-hazards partial
// likelihood leaves the baseline hazard unspecified. Requesting its
// expectation fails explicitly rather than returning a silently wrong
// value.
type coxFamily struct{}

func (coxFamily) FamilyName() draws.FamilyName { return draws.Cox }

func (coxFamily) Expected(*Params) (*tensor.Dense, error) {
	return nil, errUnsupported(draws.Cox, "no closed-form mean")
}
