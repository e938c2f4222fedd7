// Package expect: the closed family registry.
//
// Dispatch is a static enumeration: one implementation per family tag,
// installed into the registry exactly once at process start. Unknown
// tags fail fast with ErrUnsupportedOperation — there is no name-based
// lookup of functions anywhere. Custom families join the same table
// through Register.
package expect

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/statforge/epred/draws"
	"github.com/statforge/epred/tensor"
)

// Params gives family implementations typed access to one bundle's
// parameters. For mixture components the suffix routes mu → muK etc.;
// for plain families it is empty. Params never mutates the bundle.
type Params struct {
	b      *draws.Bundle
	suffix string
}

// Bundle returns the underlying draws bundle (read-only by contract).
func (p *Params) Bundle() *draws.Bundle { return p.b }

// DPar resolves a distributional parameter under the component suffix.
// A missing parameter is an ErrInvalidParameter naming what was looked
// up — families are total over the parameters they claim, so this only
// fires on malformed bundles.
func (p *Params) DPar(name string) (*draws.Param, error) {
	q, ok := p.b.DPars[name+p.suffix]
	if !ok {
		return nil, fmt.Errorf("family %q: missing dpar %q: %w", p.b.Family, name+p.suffix, ErrInvalidParameter)
	}

	return q, nil
}

// Response materializes one parameter on the response scale as a full
// nsamples×nobs matrix.
func (p *Params) Response(name string) (*tensor.Dense, error) {
	q, err := p.DPar(name)
	if err != nil {
		return nil, err
	}

	return q.Response(p.b.NObs)
}

// ExpectationProvider is the capability a family must implement to
// serve posterior expectations. Built-in families and registered custom
// families share this interface; the engine calls it, never a name.
type ExpectationProvider interface {
	// FamilyName returns the tag the registry serves this provider
	// under.
	FamilyName() draws.FamilyName

	// Expected computes the (draws × observations [× categories])
	// posterior mean of the response distribution.
	Expected(p *Params) (*tensor.Dense, error)
}

// analyticTruncatable is the internal capability for continuous
// families with a closed-form truncated mean.
type analyticTruncatable interface {
	truncExpected(p *Params) (*tensor.Dense, error)
}

// discreteTruncatable is the internal capability for count families:
// the family materializes its response-scale parameters once and hands
// back cell kernels for the grid summation.
//
//   - pmf(s,i,x) and cdf(s,i,x) evaluate the untruncated distribution
//     for draw s and observation i at count x (cdf(x) == 0 for x < 0);
//   - supMax(i) is the per-observation support ceiling (+Inf when the
//     support is unbounded, trials for binomial-type families).
type discreteTruncatable interface {
	truncKernel(p *Params) (pmf, cdf func(s, i int, x float64) float64, supMax func(i int) float64, err error)
}

// registry is the process-wide family table. Built-ins install at
// package initialization; Register adds custom providers. Reads during
// computation take the read lock only.
var (
	registryMu sync.RWMutex
	registry   = builtinFamilies()
)

// Register installs a custom family provider. Registration happens at
// process start, before any computation; duplicate tags (including
// shadowing a built-in) fail with ErrDuplicateFamily.
func Register(f ExpectationProvider) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	name := f.FamilyName()
	if _, ok := registry[name]; ok {
		return fmt.Errorf("Register %q: %w", name, ErrDuplicateFamily)
	}
	registry[name] = f

	return nil
}

// lookup resolves a family tag or fails with ErrUnsupportedOperation.
func lookup(name draws.FamilyName) (ExpectationProvider, error) {
	registryMu.RLock()
	f, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("family %q is not registered: %w", name, ErrUnsupportedOperation)
	}

	return f, nil
}

// knownDPars renders the sorted parameter names of a bundle for
// error messages.
func knownDPars(m map[string]*draws.Param) string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}

// builtinFamilies assembles the closed registry. The mixture composite
// is intentionally absent: it is handled structurally by the
// orchestrator, which is what prevents mixtures of mixtures.
func builtinFamilies() map[draws.FamilyName]ExpectationProvider {
	fams := []ExpectationProvider{
		// continuous, mean == mu
		identityFamily{draws.SkewNormal},
		identityFamily{draws.ExGaussian},
		identityFamily{draws.Frechet},
		identityFamily{draws.InverseGaussian},
		identityFamily{draws.Beta},
		identityFamily{draws.VonMises},

		// continuous with truncation support
		gaussianFamily{},
		studentFamily{},
		lognormalFamily{shifted: false},
		lognormalFamily{shifted: true},
		gammaFamily{},
		exponentialFamily{},
		weibullFamily{},

		// other continuous closed forms
		asymLaplaceFamily{},
		genExtremeValueFamily{},

		// counts
		bernoulliFamily{},
		poissonFamily{},
		negBinomialFamily{},
		geometricFamily{},
		binomialFamily{},
		betaBinomialFamily{},
		discreteWeibullFamily{},
		comPoissonFamily{},

		// hurdle
		hurdlePoissonFamily{},
		hurdleNegBinomialFamily{},
		hurdleGammaFamily{},
		hurdleLognormalFamily{},

		// zero / zero-one inflated
		zeroInflatedFamily{draws.ZeroInflatedPoisson, false},
		zeroInflatedFamily{draws.ZeroInflatedNegBinomial, false},
		zeroInflatedFamily{draws.ZeroInflatedBinomial, true},
		zeroInflatedFamily{draws.ZeroInflatedBetaBinomial, true},
		zeroInflatedFamily{draws.ZeroInflatedBeta, false},
		zeroOneInflatedBetaFamily{},

		// category-valued
		categoricalFamily{},
		multinomialFamily{},
		dirichletFamily{},
		ordinalFamily{draws.Cumulative},
		ordinalFamily{draws.StoppingRatio},
		ordinalFamily{draws.ContinuationRatio},
		ordinalFamily{draws.AdjacentCategory},

		// no defined mean
		coxFamily{},
	}

	out := make(map[draws.FamilyName]ExpectationProvider, len(fams))
	for _, f := range fams {
		out[f.FamilyName()] = f
	}

	return out
}
