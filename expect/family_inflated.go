// Package expect: hurdle and zero-inflated family expectations.
//
// Hurdle families scale the base-family mean by (1 − hu) after the
// family-specific renormalization that removes the base distribution's
// own zero mass; zero-inflated families scale by (1 − zi) directly
// because the base distribution keeps its zeros.
package expect

import (
	"math"

	"github.com/statforge/epred/draws"
	"github.com/statforge/epred/tensor"
)

// hurdlePoissonFamily: E = (1 − hu) · mu / (1 − exp(−mu)).
type hurdlePoissonFamily struct{}

func (hurdlePoissonFamily) FamilyName() draws.FamilyName { return draws.HurdlePoisson }

func (hurdlePoissonFamily) Expected(p *Params) (*tensor.Dense, error) {
	mu, hu, err := baseAndHurdle(p)
	if err != nil {
		return nil, err
	}

	return mapCells(p.Bundle(), func(s, i int) float64 {
		m := mu.Resp(s, i)

		return m / (1 - math.Exp(-m)) * (1 - hu.Resp(s, i))
	})
}

// hurdleNegBinomialFamily: E = (1 − hu) · mu / (1 − (k/(k+mu))^k).
type hurdleNegBinomialFamily struct{}

func (hurdleNegBinomialFamily) FamilyName() draws.FamilyName { return draws.HurdleNegBinomial }

func (hurdleNegBinomialFamily) Expected(p *Params) (*tensor.Dense, error) {
	mu, hu, err := baseAndHurdle(p)
	if err != nil {
		return nil, err
	}
	shape, err := p.DPar("shape")
	if err != nil {
		return nil, err
	}

	return mapCells(p.Bundle(), func(s, i int) float64 {
		m, k := mu.Resp(s, i), shape.Resp(s, i)

		return m / (1 - math.Pow(k/(k+m), k)) * (1 - hu.Resp(s, i))
	})
}

// hurdleGammaFamily: the base gamma carries no mass at zero, so the
// mean is simply mu·(1 − hu).
type hurdleGammaFamily struct{}

func (hurdleGammaFamily) FamilyName() draws.FamilyName { return draws.HurdleGamma }

func (hurdleGammaFamily) Expected(p *Params) (*tensor.Dense, error) {
	mu, hu, err := baseAndHurdle(p)
	if err != nil {
		return nil, err
	}

	return mapCells(p.Bundle(), func(s, i int) float64 {
		return mu.Resp(s, i) * (1 - hu.Resp(s, i))
	})
}

// hurdleLognormalFamily: E = exp(mu + sigma²/2)·(1 − hu).
type hurdleLognormalFamily struct{}

func (hurdleLognormalFamily) FamilyName() draws.FamilyName { return draws.HurdleLognormal }

func (hurdleLognormalFamily) Expected(p *Params) (*tensor.Dense, error) {
	mu, hu, err := baseAndHurdle(p)
	if err != nil {
		return nil, err
	}
	sigma, err := p.DPar("sigma")
	if err != nil {
		return nil, err
	}

	return mapCells(p.Bundle(), func(s, i int) float64 {
		sd := sigma.Resp(s, i)

		return math.Exp(mu.Resp(s, i)+sd*sd/2) * (1 - hu.Resp(s, i))
	})
}

// zeroInflatedFamily serves every family whose zero-inflated mean is
// the base mean scaled by (1 − zi): poisson, negbinomial, beta, and —
// with the trials factor — binomial and beta_binomial.
type zeroInflatedFamily struct {
	name   draws.FamilyName
	trials bool
}

func (f zeroInflatedFamily) FamilyName() draws.FamilyName { return f.name }

func (f zeroInflatedFamily) Expected(p *Params) (*tensor.Dense, error) {
	mu, err := p.DPar("mu")
	if err != nil {
		return nil, err
	}
	zi, err := p.DPar("zi")
	if err != nil {
		return nil, err
	}
	b := p.Bundle()

	return mapCells(b, func(s, i int) float64 {
		v := mu.Resp(s, i) * (1 - zi.Resp(s, i))
		if f.trials {
			v *= b.Trials(i)
		}

		return v
	})
}

// zeroOneInflatedBetaFamily: E = zoi·coi + (1 − zoi)·mu, where zoi is
// the zero-or-one mass and coi the conditional probability of one.
type zeroOneInflatedBetaFamily struct{}

func (zeroOneInflatedBetaFamily) FamilyName() draws.FamilyName { return draws.ZeroOneInflatedBeta }

func (zeroOneInflatedBetaFamily) Expected(p *Params) (*tensor.Dense, error) {
	mu, err := p.DPar("mu")
	if err != nil {
		return nil, err
	}
	zoi, err := p.DPar("zoi")
	if err != nil {
		return nil, err
	}
	coi, err := p.DPar("coi")
	if err != nil {
		return nil, err
	}

	return mapCells(p.Bundle(), func(s, i int) float64 {
		z := zoi.Resp(s, i)

		return z*coi.Resp(s, i) + (1-z)*mu.Resp(s, i)
	})
}

// baseAndHurdle resolves the shared mu/hu pair of the hurdle families.
func baseAndHurdle(p *Params) (mu, hu *draws.Param, err error) {
	if mu, err = p.DPar("mu"); err != nil {
		return nil, nil, err
	}
	if hu, err = p.DPar("hu"); err != nil {
		return nil, nil, err
	}

	return mu, hu, nil
}
