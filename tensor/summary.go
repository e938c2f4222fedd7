// Package tensor: draws-axis summary reduction.
//
// Summarize collapses the draws axis into a small set of statistics per
// observation (and per category): a point estimate, a dispersion
// estimate, and requested posterior quantiles. Two estimators are
// offered, matching common reporting conventions:
//
//   - robust=false: mean / standard deviation;
//   - robust=true:  median / MAD (scaled by 1.4826 for normal
//     consistency).
package tensor

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// madConsistency rescales the median absolute deviation so it estimates
// the standard deviation under normality.
const madConsistency = 1.4826

// DefaultProbs are the quantiles reported when the caller passes none.
var DefaultProbs = []float64{0.025, 0.975}

// Summarize reduces the draws axis of m.
//
// The result has one row per statistic: row 0 is the point estimate,
// row 1 the dispersion estimate, rows 2.. the quantiles in the order
// given. The observation and category axes are preserved. The returned
// labels parallel the statistic rows ("Estimate", "Est.Error",
// "Q2.5", ...).
//
// probs entries must lie strictly inside (0,1); nil probs selects
// DefaultProbs.
//
// Complexity: O(rows log rows) per (observation, category) cell due to
// quantile sorting.
func Summarize(m *Dense, robust bool, probs []float64) (*Dense, []string, error) {
	if m == nil {
		return nil, nil, fmt.Errorf("Summarize: %w", ErrNilArray)
	}
	if probs == nil {
		probs = DefaultProbs
	}
	for _, p := range probs {
		if !(p > 0 && p < 1) {
			return nil, nil, fmt.Errorf("Summarize: prob %v: %w", p, ErrInvalidProbs)
		}
	}

	nstat := 2 + len(probs)
	out, err := NewCube(nstat, m.cols, m.cats)
	if err != nil {
		return nil, nil, fmt.Errorf("Summarize: %w", err)
	}

	labels := make([]string, nstat)
	labels[0], labels[1] = "Estimate", "Est.Error"
	for qi, p := range probs {
		labels[2+qi] = fmt.Sprintf("Q%g", 100*p)
	}

	// One scratch column of draws, reused across cells; sorted in place
	// for quantile extraction.
	col := make([]float64, m.rows)

	var s, i, k, qi int
	for i = 0; i < m.cols; i++ {
		for k = 0; k < m.cats; k++ {
			for s = 0; s < m.rows; s++ {
				col[s] = m.data[(s*m.cols+i)*m.cats+k]
			}
			sort.Float64s(col)

			var est, errEst float64
			if robust {
				est = stat.Quantile(0.5, stat.Empirical, col, nil)
				errEst = mad(col, est)
			} else {
				est = stat.Mean(col, nil)
				errEst = stat.StdDev(col, nil)
			}
			out.data[(0*m.cols+i)*m.cats+k] = est
			out.data[(1*m.cols+i)*m.cats+k] = errEst
			for qi = range probs {
				out.data[((2+qi)*m.cols+i)*m.cats+k] = stat.Quantile(probs[qi], stat.Empirical, col, nil)
			}
		}
	}

	return out, labels, nil
}

// mad computes the scaled median absolute deviation around center.
// Allocates its own scratch because the caller's slice must stay sorted
// for the subsequent quantile reads.
func mad(sorted []float64, center float64) float64 {
	dev := make([]float64, len(sorted))
	for i, v := range sorted {
		if v >= center {
			dev[i] = v - center
		} else {
			dev[i] = center - v
		}
	}
	sort.Float64s(dev)

	return madConsistency * stat.Quantile(0.5, stat.Empirical, dev, nil)
}
