// Package expect: spatial autocorrelation correction.
//
// A spatial-lag (SAR) term transforms the expected response: the model
// mean solves (I − ρ_s·W)·y = μ_s for every draw s, with W the fixed
// nobs×nobs spatial weight matrix and ρ the (possibly per-draw)
// autocorrelation. Error-structure SAR terms do not move the mean and
// pass through untouched.
package expect

import (
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/statforge/epred/draws"
	"github.com/statforge/epred/tensor"
)

// applySAR rewrites mu in place with the spatial-lag solution. A nil or
// error-structure autocorrelation term is a no-op.
func applySAR(b *draws.Bundle, mu *tensor.Dense, o *Options) error {
	ac := b.AutoCor
	if ac == nil || ac.Kind != draws.LagSAR {
		return nil
	}
	if mu.IsCube() {
		return errUnsupported(b.Family, "spatial-lag correction of category-valued means")
	}

	n := b.NObs
	if n >= DefaultSolveWarnObs {
		o.warn("spatial-lag correction solves a dense linear system per draw",
			"nobs", n, "nsamples", b.NSamples)
	}

	w := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		copy(w.RawRowView(i), ac.W.Row(i))
	}

	var g errgroup.Group
	g.SetLimit(o.workers)
	for s := 0; s < b.NSamples; s++ {
		s := s
		g.Go(func() error {
			// A = I − ρ_s·W, fresh per draw so workers never share state.
			a := mat.NewDense(n, n, nil)
			a.Scale(-ac.RhoAt(s), w)
			for i := 0; i < n; i++ {
				a.Set(i, i, a.At(i, i)+1)
			}

			var lu mat.LU
			lu.Factorize(a)

			row := mu.Row(s)
			rhs := mat.NewVecDense(n, row)
			var sol mat.VecDense
			if err := lu.SolveVecTo(&sol, false, rhs); err != nil {
				return fmt.Errorf("draw %d: (I - rho*W) is not solvable: %w: %v",
					s, ErrSingularSystem, err)
			}
			copy(row, sol.RawVector().Data)

			return nil
		})
	}

	return g.Wait()
}
