// Package expect: count-family expectations.
//
// The plain count families all have identity means (mu, or mu·trials
// for binomial-type families); their real weight is the truncKernel
// capability backing the discrete truncation path. Densities come from
// gonum distuv where available (poisson, binomial) and from the local
// kernels otherwise (negative binomial, geometric).
package expect

import (
	"fmt"
	"math"

	"github.com/statforge/epred/draws"
	"github.com/statforge/epred/tensor"
	"gonum.org/v1/gonum/stat/distuv"
)

// errUnsupported wraps ErrUnsupportedOperation with the family tag and
// the reason.
func errUnsupported(name draws.FamilyName, why string) error {
	return fmt.Errorf("family %q: %s: %w", name, why, ErrUnsupportedOperation)
}

// bernoulliFamily: mean mu (a probability).
type bernoulliFamily struct{ identityFamily }

func (bernoulliFamily) FamilyName() draws.FamilyName { return draws.Bernoulli }

// poissonFamily: mean mu; discrete truncation via the Poisson pmf/CDF.
type poissonFamily struct{ identityFamily }

func (poissonFamily) FamilyName() draws.FamilyName { return draws.Poisson }

func (f poissonFamily) truncKernel(p *Params) (pmf, cdf func(s, i int, x float64) float64, supMax func(i int) float64, err error) {
	mu, err := p.Response("mu")
	if err != nil {
		return nil, nil, nil, err
	}

	at := func(s, i int) float64 { v, _ := mu.At(s, i); return v }
	pmf = func(s, i int, x float64) float64 {
		return distuv.Poisson{Lambda: at(s, i)}.Prob(x)
	}
	cdf = func(s, i int, x float64) float64 {
		if x < 0 {
			return 0
		}

		return distuv.Poisson{Lambda: at(s, i)}.CDF(x)
	}
	supMax = unboundedSupport

	return pmf, cdf, supMax, nil
}

// negBinomialFamily: mean mu; discrete truncation via the local
// negative-binomial kernels (shape k).
type negBinomialFamily struct{ identityFamily }

func (negBinomialFamily) FamilyName() draws.FamilyName { return draws.NegBinomial }

func (f negBinomialFamily) truncKernel(p *Params) (pmf, cdf func(s, i int, x float64) float64, supMax func(i int) float64, err error) {
	mu, err := p.Response("mu")
	if err != nil {
		return nil, nil, nil, err
	}
	shape, err := p.Response("shape")
	if err != nil {
		return nil, nil, nil, err
	}

	pmf = func(s, i int, x float64) float64 {
		m, _ := mu.At(s, i)
		k, _ := shape.At(s, i)

		return nbPMF(x, m, k)
	}
	cdf = func(s, i int, x float64) float64 {
		m, _ := mu.At(s, i)
		k, _ := shape.At(s, i)

		return nbCDF(x, m, k)
	}
	supMax = unboundedSupport

	return pmf, cdf, supMax, nil
}

// geometricFamily: mean mu; discrete truncation via the geometric
// kernels.
type geometricFamily struct{ identityFamily }

func (geometricFamily) FamilyName() draws.FamilyName { return draws.Geometric }

func (f geometricFamily) truncKernel(p *Params) (pmf, cdf func(s, i int, x float64) float64, supMax func(i int) float64, err error) {
	mu, err := p.Response("mu")
	if err != nil {
		return nil, nil, nil, err
	}

	pmf = func(s, i int, x float64) float64 {
		m, _ := mu.At(s, i)

		return geomPMF(x, m)
	}
	cdf = func(s, i int, x float64) float64 {
		m, _ := mu.At(s, i)

		return geomCDF(x, m)
	}
	supMax = unboundedSupport

	return pmf, cdf, supMax, nil
}

// binomialFamily: mean mu·trials; discrete truncation via the binomial
// pmf/CDF with the support capped at the observation's trial count.
type binomialFamily struct{}

func (binomialFamily) FamilyName() draws.FamilyName { return draws.Binomial }

func (binomialFamily) Expected(p *Params) (*tensor.Dense, error) {
	return trialsScaledMean(p)
}

func (f binomialFamily) truncKernel(p *Params) (pmf, cdf func(s, i int, x float64) float64, supMax func(i int) float64, err error) {
	mu, err := p.Response("mu")
	if err != nil {
		return nil, nil, nil, err
	}
	b := p.Bundle()

	pmf = func(s, i int, x float64) float64 {
		m, _ := mu.At(s, i)

		return distuv.Binomial{N: b.Trials(i), P: m}.Prob(x)
	}
	cdf = func(s, i int, x float64) float64 {
		if x < 0 {
			return 0
		}
		m, _ := mu.At(s, i)

		return distuv.Binomial{N: b.Trials(i), P: m}.CDF(x)
	}
	supMax = func(i int) float64 { return b.Trials(i) }

	return pmf, cdf, supMax, nil
}

// betaBinomialFamily: mean mu·trials.
type betaBinomialFamily struct{}

func (betaBinomialFamily) FamilyName() draws.FamilyName { return draws.BetaBinomial }

func (betaBinomialFamily) Expected(p *Params) (*tensor.Dense, error) {
	return trialsScaledMean(p)
}

// discreteWeibullFamily: mean by survival-series summation of the
// per-cell (q, shape) draws.
type discreteWeibullFamily struct{}

func (discreteWeibullFamily) FamilyName() draws.FamilyName { return draws.DiscreteWeibull }

func (discreteWeibullFamily) Expected(p *Params) (*tensor.Dense, error) {
	mu, err := p.DPar("mu")
	if err != nil {
		return nil, err
	}
	shape, err := p.DPar("shape")
	if err != nil {
		return nil, err
	}

	return mapCells(p.Bundle(), func(s, i int) float64 {
		return discreteWeibullMean(mu.Resp(s, i), shape.Resp(s, i))
	})
}

// comPoissonFamily: mean by normalized series summation of the
// Conway–Maxwell-Poisson mass.
type comPoissonFamily struct{}

func (comPoissonFamily) FamilyName() draws.FamilyName { return draws.COMPoisson }

func (comPoissonFamily) Expected(p *Params) (*tensor.Dense, error) {
	mu, err := p.DPar("mu")
	if err != nil {
		return nil, err
	}
	shape, err := p.DPar("shape")
	if err != nil {
		return nil, err
	}

	return mapCells(p.Bundle(), func(s, i int) float64 {
		return comPoissonMean(mu.Resp(s, i), shape.Resp(s, i))
	})
}

// trialsScaledMean is the shared binomial-type mean: the probability mu
// scaled by the per-observation trial count (broadcast from a length-1
// or length-nobs vector).
func trialsScaledMean(p *Params) (*tensor.Dense, error) {
	mu, err := p.DPar("mu")
	if err != nil {
		return nil, err
	}
	b := p.Bundle()

	return mapCells(b, func(s, i int) float64 {
		return mu.Resp(s, i) * b.Trials(i)
	})
}

// unboundedSupport is the supMax for count families on {0,1,...}.
func unboundedSupport(int) float64 { return math.Inf(1) }
