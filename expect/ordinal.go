// Package expect: ordinal category-probability assembly.
//
// All four ordinal families share one driver: for each observation the
// per-draw cut-points (thresholds), the linear predictor and the
// optional discrimination parameter produce a probability vector over
// the observation's categories through the family's decomposition of
// the mu link. Observations may have different threshold counts; the
// category axis is padded to the global maximum and padded slots keep
// exact-zero mass (the cube is allocated zeroed and never written
// there).
//
// With q_j the link-inverse evaluated at the j-th standardized
// cut-point distance and K the observation's threshold count:
//
//	cumulative: p_k = q_k − q_(k−1)            q_j = F(disc·(θ_j − η))
//	sratio:     p_k = q_k·Π_(j<k)(1−q_j)       q_j = F(disc·(θ_j − η))
//	cratio:     p_k = (1−q_k)·Π_(j<k)q_j       q_j = F(disc·(η − θ_j))
//	acat:       p_k ∝ Π_(j<k)q_j·Π_(j≥k)(1−q_j) q_j = F(disc·(η − θ_j))
//
// with the K+1-th category taking the remaining mass (acat normalizes
// the full vector instead).
package expect

import (
	"fmt"

	"github.com/statforge/epred/draws"
	"github.com/statforge/epred/tensor"
)

// ordinalFamily serves cumulative, sratio, cratio and acat.
type ordinalFamily struct {
	name draws.FamilyName
}

func (f ordinalFamily) FamilyName() draws.FamilyName { return f.name }

func (f ordinalFamily) Expected(p *Params) (*tensor.Dense, error) {
	b := p.Bundle()
	if b.Data.Thres == nil || len(b.Data.NThres) == 0 {
		return nil, fmt.Errorf("family %q: ordinal thresholds required: %w", f.name, draws.ErrBadThresholds)
	}
	mu, err := p.DPar("mu")
	if err != nil {
		return nil, err
	}
	// Discrimination defaults to 1 when the model carries no disc dpar.
	disc := b.DPars["disc"]
	link := mu.Link()

	maxCat := b.MaxThres() + 1
	out, err := tensor.NewCube(b.NSamples, b.NObs, maxCat)
	if err != nil {
		return nil, err
	}

	q := make([]float64, b.MaxThres())
	probs := make([]float64, maxCat)

	var s, i, j int
	for i = 0; i < b.NObs; i++ {
		nth, off := b.ThresCount(i), b.ThresOffset(i)
		for s = 0; s < b.NSamples; s++ {
			eta := mu.At(s, i)
			d := 1.0
			if disc != nil {
				d = disc.Resp(s, i)
			}
			for j = 0; j < nth; j++ {
				th, aerr := b.Data.Thres.At(s, off+j)
				if aerr != nil {
					return nil, aerr
				}
				switch f.name {
				case draws.Cumulative, draws.StoppingRatio:
					q[j] = link.Inv(d * (th - eta))
				default: // cratio, acat
					q[j] = link.Inv(d * (eta - th))
				}
			}

			f.catProbs(q[:nth], probs[:nth+1])
			row := out.Row(s)
			for j = 0; j <= nth; j++ {
				row[i*maxCat+j] = probs[j]
			}
		}
	}

	return out, nil
}

// catProbs turns the q vector into category probabilities; len(probs)
// is len(q)+1.
func (f ordinalFamily) catProbs(q, probs []float64) {
	nth := len(q)
	switch f.name {
	case draws.Cumulative:
		prev := 0.0
		for k := 0; k < nth; k++ {
			probs[k] = q[k] - prev
			prev = q[k]
		}
		probs[nth] = 1 - prev

	case draws.StoppingRatio:
		keep := 1.0 // probability of having passed all earlier stops
		for k := 0; k < nth; k++ {
			probs[k] = q[k] * keep
			keep *= 1 - q[k]
		}
		probs[nth] = keep

	case draws.ContinuationRatio:
		cont := 1.0 // probability of having continued past earlier cuts
		for k := 0; k < nth; k++ {
			probs[k] = (1 - q[k]) * cont
			cont *= q[k]
		}
		probs[nth] = cont

	default: // acat: product form, then normalize
		var norm float64
		for k := 0; k <= nth; k++ {
			w := 1.0
			for j := 0; j < k; j++ {
				w *= q[j]
			}
			for j := k; j < nth; j++ {
				w *= 1 - q[j]
			}
			probs[k] = w
			norm += w
		}
		for k := 0; k <= nth; k++ {
			probs[k] /= norm
		}
	}
}
