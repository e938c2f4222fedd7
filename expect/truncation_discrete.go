// Package expect: the truncation subsystem — discrete summation path.
//
// Count families have no closed-form truncated mean; instead
//
//	E = Σ_{x=lb+1}^{ub} x·pmf(x) / (cdf(ub) − cdf(lb))
//
// summed over the per-observation truncation window out of one shared
// dense grid spanning the union of all observations' windows (built
// once, then sliced per observation). The memory-for-speed trade is
// intentional; wide windows surface a diagnostic, not an error. Both
// bounds must be finite on this path — an infinite bound cannot be
// summed over and fails with ErrInvalidBounds.
package expect

import (
	"fmt"
	"math"

	"github.com/statforge/epred/tensor"
)

// discreteTruncExpected drives the grid summation for one count family.
func discreteTruncExpected(dt discreteTruncatable, p *Params, o *Options) (*tensor.Dense, error) {
	b := p.Bundle()
	pmf, cdf, supMax, err := dt.truncKernel(p)
	if err != nil {
		return nil, err
	}

	// Resolve per-observation windows: finite bounds only, floored to
	// the count support and capped at the family's support ceiling.
	lbs := make([]float64, b.NObs)
	ubs := make([]float64, b.NObs)
	gridLo, gridHi := math.Inf(1), math.Inf(-1)
	for i := 0; i < b.NObs; i++ {
		lb, ub := b.LowerBound(i), b.UpperBound(i)
		if math.IsInf(lb, 0) || math.IsInf(ub, 0) {
			return nil, fmt.Errorf("obs %d: discrete truncation requires finite bounds, got [%g,%g]: %w",
				i, lb, ub, ErrInvalidBounds)
		}
		lb = math.Max(math.Floor(lb), -1)
		ub = math.Min(math.Floor(ub), supMax(i))
		if lb > ub {
			return nil, fmt.Errorf("obs %d: empty truncation window [%g,%g]: %w", i, lb, ub, ErrInvalidBounds)
		}
		lbs[i], ubs[i] = lb, ub
		gridLo = math.Min(gridLo, lb+1)
		gridHi = math.Max(gridHi, ub)
	}

	if width := gridHi - gridLo + 1; width >= DefaultWindowWarn {
		o.warn("discrete truncation over a wide union window may be slow and memory-heavy",
			"width", int(width), "family", string(b.Family))
	}

	num, err := tensor.NewDense(b.NSamples, b.NObs)
	if err != nil {
		return nil, err
	}

	// Shared grid, sliced per observation: x contributes to every
	// observation whose window contains it.
	var s, i int
	for x := gridLo; x <= gridHi; x++ {
		for i = 0; i < b.NObs; i++ {
			if x < lbs[i]+1 || x > ubs[i] {
				continue
			}
			for s = 0; s < b.NSamples; s++ {
				row := num.Row(s)
				row[i] += x * pmf(s, i, x)
			}
		}
	}

	out, err := tensor.NewDense(b.NSamples, b.NObs)
	if err != nil {
		return nil, err
	}
	for s = 0; s < b.NSamples; s++ {
		nrow, orow := num.Row(s), out.Row(s)
		for i = 0; i < b.NObs; i++ {
			if lbs[i] == ubs[i] {
				// Degenerate point-mass window: the mean is the bound.
				orow[i] = ubs[i]

				continue
			}
			den := cdf(s, i, ubs[i]) - cdf(s, i, lbs[i])
			if den <= 0 {
				// A window deep in the tail can underflow to zero mass;
				// fail rather than propagate NaN.
				return nil, fmt.Errorf("draw %d obs %d: truncation window [%g,%g] carries no probability mass: %w",
					s, i, lbs[i], ubs[i], ErrInvalidBounds)
			}
			orow[i] = nrow[i] / den
		}
	}

	return out, nil
}
