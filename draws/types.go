// Package draws: the bundle and its auxiliary per-observation data.
package draws

import (
	"math"

	"github.com/statforge/epred/tensor"
)

// Bundle is the engine's sole input: one response's posterior draws and
// everything needed to turn them into expectations. It is consumed
// read-only; engine code computes derived parameters into local copies.
type Bundle struct {
	// Family tags the response distribution. For Family == Mixture the
	// component tags live in Components.
	Family FamilyName

	// Components lists the mixture component families in order.
	// Component k (1-based) reads its parameters through the suffix
	// convention: mu1, sigma1, theta1, ...
	Components []FamilyName

	// NSamples is the posterior draw count; every Param has exactly
	// this many rows.
	NSamples int

	// NObs is the observation count; every varying Param has exactly
	// this many columns.
	NObs int

	// DPars maps distributional-parameter names (mu, sigma, shape, nu,
	// zi, hu, disc, mu1..muK, ...) to their draws.
	DPars map[string]*Param

	// NLPars maps non-linear parameter names to their draws.
	NLPars map[string]*Param

	// Data carries family-specific per-observation auxiliaries.
	Data Data

	// AutoCor is the optional spatial autocorrelation structure.
	AutoCor *AutoCor

	// OldOrder restores caller-visible observation order: internal
	// column j belongs at caller position OldOrder[j]. Nil means the
	// internal order is the caller order.
	OldOrder []int
}

// Data holds auxiliary per-observation inputs required by specific
// families. All vectors are length 1 (constant) or NObs.
type Data struct {
	// Trials is the binomial/multinomial denominator.
	Trials []float64

	// LB and UB are truncation bounds; -Inf/+Inf (or a nil slice) mean
	// unbounded on that side.
	LB, UB []float64

	// Thres holds ordinal threshold draws: NSamples rows, one column
	// per cut-point. With per-observation threshold groups the matrix
	// concatenates all groups' cut-points and ThresStart/NThres address
	// the per-observation slice.
	Thres *tensor.Dense

	// NThres is the per-observation cut-point count (length 1 or NObs).
	NThres []int

	// ThresStart is the per-observation column offset into Thres
	// (length matching NThres); nil means every observation starts at
	// column 0.
	ThresStart []int

	// NCat is the category count for categorical/multinomial/dirichlet
	// families (the per-category parameters are mu1..muNCat).
	NCat int
}

// AutoCorKind distinguishes spatial autocorrelation structures.
type AutoCorKind uint8

const (
	// LagSAR is the spatial-lag model: the implied mean solves
	// (I − ρW)·y = μ and must be corrected per draw.
	LagSAR AutoCorKind = iota

	// ErrorSAR is the spatial-error model: the autocorrelation lives in
	// the residual and the mean is untouched.
	ErrorSAR
)

// AutoCor describes a spatial autocorrelation structure attached to a
// bundle.
type AutoCor struct {
	Kind AutoCorKind

	// W is the fixed NObs×NObs spatial weight matrix.
	W *tensor.Dense

	// Rho holds the per-draw autoregressive coefficient (length
	// NSamples, or 1 for a fixed coefficient).
	Rho []float64
}

// Response pairs a name with a single-response bundle for multivariate
// models.
type Response struct {
	Name   string
	Bundle *Bundle
}

// aux reads a length-1-or-nobs vector at observation i with a default
// for nil slices.
func aux(v []float64, i int, def float64) float64 {
	switch len(v) {
	case 0:
		return def
	case 1:
		return v[0]
	default:
		return v[i]
	}
}

// Trials returns the trial count for observation i (default 1).
func (b *Bundle) Trials(i int) float64 { return aux(b.Data.Trials, i, 1) }

// LowerBound returns the truncation lower bound for observation i
// (default -Inf).
func (b *Bundle) LowerBound(i int) float64 { return aux(b.Data.LB, i, math.Inf(-1)) }

// UpperBound returns the truncation upper bound for observation i
// (default +Inf).
func (b *Bundle) UpperBound(i int) float64 { return aux(b.Data.UB, i, math.Inf(1)) }

// Truncated reports whether any observation carries a finite bound.
func (b *Bundle) Truncated() bool {
	for _, v := range b.Data.LB {
		if !math.IsInf(v, -1) {
			return true
		}
	}
	for _, v := range b.Data.UB {
		if !math.IsInf(v, 1) {
			return true
		}
	}

	return false
}

// ThresCount returns the cut-point count for observation i.
func (b *Bundle) ThresCount(i int) int {
	switch len(b.Data.NThres) {
	case 0:
		return 0
	case 1:
		return b.Data.NThres[0]
	default:
		return b.Data.NThres[i]
	}
}

// ThresOffset returns the threshold-matrix column offset for
// observation i.
func (b *Bundle) ThresOffset(i int) int {
	switch len(b.Data.ThresStart) {
	case 0:
		return 0
	case 1:
		return b.Data.ThresStart[0]
	default:
		return b.Data.ThresStart[i]
	}
}

// MaxThres returns the maximum cut-point count across observations.
// The ordinal category axis is padded to MaxThres()+1.
func (b *Bundle) MaxThres() int {
	maxT := 0
	for i := 0; i < b.NObs; i++ {
		if t := b.ThresCount(i); t > maxT {
			maxT = t
		}
	}

	return maxT
}

// RhoAt returns the autoregressive coefficient for draw s.
func (a *AutoCor) RhoAt(s int) float64 {
	if len(a.Rho) == 1 {
		return a.Rho[0]
	}

	return a.Rho[s]
}
