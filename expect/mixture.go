// Package expect: finite-mixture composition.
//
// The mixture mean is Σ_k θ_k · E_k, with per-draw, per-observation
// weights θ and each component's mean computed by its own family
// function through the suffix parameter convention (mu1, sigma1,
// theta1, ...). Mixtures of mixtures are impossible by construction:
// the mixture composite is not a registered family, so a component tag
// can never resolve to one (and Validate rejects the tag early).
package expect

import (
	"fmt"
	"math"
	"strconv"

	"github.com/statforge/epred/draws"
	"github.com/statforge/epred/tensor"
)

// mixWeightEps is the tolerance for the weights-sum-to-one invariant.
const mixWeightEps = 1e-6

// mixtureExpected composes the weighted component means.
func mixtureExpected(b *draws.Bundle) (*tensor.Dense, error) {
	out, err := tensor.NewDense(b.NSamples, b.NObs)
	if err != nil {
		return nil, err
	}
	// Accumulated weight per cell, checked against 1 at the end.
	wsum, err := tensor.NewDense(b.NSamples, b.NObs)
	if err != nil {
		return nil, err
	}

	for k, comp := range b.Components {
		f, err := lookup(comp)
		if err != nil {
			return nil, fmt.Errorf("mixture component %d: %w", k+1, err)
		}
		p := &Params{b: b, suffix: strconv.Itoa(k + 1)}

		mean, err := f.Expected(p)
		if err != nil {
			return nil, fmt.Errorf("mixture component %d (%s): %w", k+1, comp, err)
		}
		if mean.IsCube() {
			return nil, errUnsupported(comp, "category-valued mixture components")
		}

		theta, err := p.DPar("theta")
		if err != nil {
			return nil, err
		}

		var s, i int
		for s = 0; s < b.NSamples; s++ {
			row, wrow, mrow := out.Row(s), wsum.Row(s), mean.Row(s)
			for i = 0; i < b.NObs; i++ {
				w := theta.Resp(s, i)
				row[i] += w * mrow[i]
				wrow[i] += w
			}
		}
	}

	// Weights invariant: Σ_k θ_k == 1 for every (draw, observation).
	var s, i int
	for s = 0; s < b.NSamples; s++ {
		wrow := wsum.Row(s)
		for i = 0; i < b.NObs; i++ {
			if math.Abs(wrow[i]-1) > mixWeightEps {
				return nil, fmt.Errorf("draw %d obs %d: weights sum to %g: %w",
					s, i, wrow[i], ErrMixtureWeights)
			}
		}
	}

	return out, nil
}
