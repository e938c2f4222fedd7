// Package expect: categorical, multinomial and Dirichlet assembly.
//
// These families produce one probability simplex per (draw,
// observation) cell from the per-category linear predictors mu1..muK,
// stacked along a new trailing category axis. Multinomial scales the
// simplex by the observation's trial count; Dirichlet shares the
// categorical softmax (its precision parameter does not move the mean).
package expect

import (
	"fmt"
	"math"

	"github.com/statforge/epred/draws"
	"github.com/statforge/epred/tensor"
)

// categoryParams resolves the per-category linear predictors mu1..muK.
func categoryParams(p *Params) ([]*draws.Param, error) {
	b := p.Bundle()
	if b.Data.NCat < 2 {
		return nil, fmt.Errorf("family %q: ncat=%d: %w", b.Family, b.Data.NCat, ErrInvalidParameter)
	}
	mus := make([]*draws.Param, b.Data.NCat)
	for k := range mus {
		q, err := p.DPar(fmt.Sprintf("mu%d", k+1))
		if err != nil {
			return nil, err
		}
		mus[k] = q
	}

	return mus, nil
}

// simplexMean assembles the softmax probability cube shared by the
// categorical and Dirichlet families; scale multiplies every simplex
// entry (1, or the trial count for multinomial).
func simplexMean(p *Params, scale func(i int) float64) (*tensor.Dense, error) {
	mus, err := categoryParams(p)
	if err != nil {
		return nil, err
	}
	b := p.Bundle()
	out, err := tensor.NewCube(b.NSamples, b.NObs, len(mus))
	if err != nil {
		return nil, err
	}

	eta := make([]float64, len(mus))
	var s, i, k int
	for s = 0; s < b.NSamples; s++ {
		row := out.Row(s)
		for i = 0; i < b.NObs; i++ {
			// Max-shifted softmax for numerical stability.
			maxEta := math.Inf(-1)
			for k = range mus {
				eta[k] = mus[k].At(s, i)
				if eta[k] > maxEta {
					maxEta = eta[k]
				}
			}
			var norm float64
			for k = range eta {
				eta[k] = math.Exp(eta[k] - maxEta)
				norm += eta[k]
			}
			sc := scale(i)
			for k = range eta {
				row[i*len(mus)+k] = sc * eta[k] / norm
			}
		}
	}

	return out, nil
}

// categoricalFamily: softmax category probabilities.
type categoricalFamily struct{}

func (categoricalFamily) FamilyName() draws.FamilyName { return draws.Categorical }

func (categoricalFamily) Expected(p *Params) (*tensor.Dense, error) {
	return simplexMean(p, func(int) float64 { return 1 })
}

// multinomialFamily: the categorical simplex scaled by trials.
type multinomialFamily struct{}

func (multinomialFamily) FamilyName() draws.FamilyName { return draws.Multinomial }

func (multinomialFamily) Expected(p *Params) (*tensor.Dense, error) {
	b := p.Bundle()

	return simplexMean(p, b.Trials)
}

// dirichletFamily: one expected simplex per observation from the
// category-specific mu parameters.
type dirichletFamily struct{}

func (dirichletFamily) FamilyName() draws.FamilyName { return draws.Dirichlet }

func (dirichletFamily) Expected(p *Params) (*tensor.Dense, error) {
	return simplexMean(p, func(int) float64 { return 1 })
}
