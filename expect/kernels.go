// Package expect: numeric kernels.
//
// Closed-form moment and distribution helpers shared by the family
// implementations and the truncation subsystem. Everything here is a
// pure scalar function; the array shaping lives with the callers.
// Densities and CDFs come from gonum (distuv, mathext) wherever gonum
// implements the distribution; the negative-binomial, geometric,
// discrete-Weibull and COM-Poisson kernels are assembled from lgamma
// and the regularized incomplete beta because no library carries them.
package expect

import (
	"math"

	"github.com/statforge/epred/draws"
	"github.com/statforge/epred/tensor"
	"gonum.org/v1/gonum/mathext"
)

// eulerGamma is the Euler–Mascheroni constant, the ξ→0 limit factor of
// the generalized-extreme-value mean.
const eulerGamma = 0.57721566490153286

// seriesEps terminates the discrete-Weibull and COM-Poisson series when
// a term drops below this fraction of the accumulated mass.
const seriesEps = 1e-13

// seriesMaxTerms caps the series summations defensively.
const seriesMaxTerms = 100000

// mapCells builds an nsamples×nobs matrix by evaluating fn for every
// (draw, observation) cell in deterministic s→i order.
func mapCells(b *draws.Bundle, fn func(s, i int) float64) (*tensor.Dense, error) {
	out, err := tensor.NewDense(b.NSamples, b.NObs)
	if err != nil {
		return nil, err
	}

	var s, i int
	for s = 0; s < b.NSamples; s++ {
		row := out.Row(s)
		for i = 0; i < b.NObs; i++ {
			row[i] = fn(s, i)
		}
	}

	return out, nil
}

// lgamma is math.Lgamma without the sign return; every argument here
// is positive.
func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)

	return v
}

// nbPMF is the negative-binomial probability mass at count x for mean
// mu and shape (size) k: C(x+k-1, x) · (k/(k+mu))^k · (mu/(k+mu))^x.
func nbPMF(x, mu, k float64) float64 {
	if x < 0 {
		return 0
	}
	p := k / (k + mu)
	logPMF := lgamma(x+k) - lgamma(k) - lgamma(x+1) +
		k*math.Log(p) + x*math.Log1p(-p)

	return math.Exp(logPMF)
}

// nbCDF is the negative-binomial CDF at count x: the regularized
// incomplete beta I_p(k, x+1) with p = k/(k+mu).
func nbCDF(x, mu, k float64) float64 {
	if x < 0 {
		return 0
	}

	return mathext.RegIncBeta(k, math.Floor(x)+1, k/(k+mu))
}

// geomPMF is the geometric (count of failures) mass at x for mean mu:
// p(1-p)^x with p = 1/(1+mu).
func geomPMF(x, mu float64) float64 {
	if x < 0 {
		return 0
	}
	p := 1 / (1 + mu)

	return p * math.Pow(1-p, x)
}

// geomCDF is the geometric CDF at count x: 1 - (1-p)^(x+1).
func geomCDF(x, mu float64) float64 {
	if x < 0 {
		return 0
	}
	p := 1 / (1 + mu)

	return 1 - math.Pow(1-p, math.Floor(x)+1)
}

// discreteWeibullMean sums the discrete-Weibull survival series
// E[X] = Σ_{x≥1} q^(x^k) for q ∈ (0,1), k > 0. Terms are strictly
// decreasing, so the tail cutoff is sound.
func discreteWeibullMean(q, k float64) float64 {
	var sum float64
	for x := 1; x <= seriesMaxTerms; x++ {
		term := math.Pow(q, math.Pow(float64(x), k))
		sum += term
		if term < seriesEps*(1+sum) {
			break
		}
	}

	return sum
}

// comPoissonMean computes the exact mean of the Conway–Maxwell-Poisson
// distribution with rate λ = mu^ν and dispersion ν by normalized series
// summation. Terms are evaluated in log space relative to the mode to
// stay finite for large mu.
func comPoissonMean(mu, nu float64) float64 {
	logLambda := nu * math.Log(mu)
	mode := math.Floor(mu)
	logPeak := mode*logLambda - nu*lgamma(mode+1)

	var mass, mean float64
	for x := 0; x <= seriesMaxTerms; x++ {
		fx := float64(x)
		w := math.Exp(fx*logLambda - nu*lgamma(fx+1) - logPeak)
		mass += w
		mean += fx * w
		// Past the mode the terms decay monotonically.
		if fx > mu && w < seriesEps*mass {
			break
		}
	}

	return mean / mass
}
