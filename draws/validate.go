// Package draws: bundle validation.
// Validate is the single shape gate the engine runs before computing;
// everything downstream may assume these invariants and use unchecked
// fast paths.
package draws

import (
	"fmt"
	"math"
)

// Validate checks the bundle's structural invariants:
//
//   - NSamples and NObs are positive;
//   - every distributional and non-linear Param has exactly NSamples
//     rows and 1 or NObs columns;
//   - auxiliary vectors (trials, bounds, threshold metadata) are length
//     1 or NObs;
//   - finite bounds satisfy lb ≤ ub elementwise;
//   - threshold metadata addresses the threshold matrix;
//   - the autocorrelation block conforms to (NObs, NSamples);
//   - a mixture names at least two non-mixture components;
//   - OldOrder, when present, has NObs entries.
//
// Errors are sentinels wrapped with the offending name; no partial
// validation state is retained.
func (b *Bundle) Validate() error {
	if b == nil {
		return ErrNilBundle
	}
	if b.NSamples <= 0 || b.NObs <= 0 {
		return fmt.Errorf("Validate: nsamples=%d nobs=%d: %w", b.NSamples, b.NObs, ErrShapeMismatch)
	}

	for name, p := range b.DPars {
		if err := b.validateParam(name, p); err != nil {
			return err
		}
	}
	for name, p := range b.NLPars {
		if err := b.validateParam(name, p); err != nil {
			return err
		}
	}

	if err := b.validateAuxLen("trials", len(b.Data.Trials)); err != nil {
		return err
	}
	if err := b.validateAuxLen("lb", len(b.Data.LB)); err != nil {
		return err
	}
	if err := b.validateAuxLen("ub", len(b.Data.UB)); err != nil {
		return err
	}

	// Elementwise bound ordering wherever both sides are finite.
	if len(b.Data.LB) > 0 && len(b.Data.UB) > 0 {
		for i := 0; i < b.NObs; i++ {
			lb, ub := b.LowerBound(i), b.UpperBound(i)
			if !math.IsInf(lb, -1) && !math.IsInf(ub, 1) && lb > ub {
				return fmt.Errorf("Validate: obs %d: lb=%g > ub=%g: %w", i, lb, ub, ErrInvalidBounds)
			}
		}
	}

	if err := b.validateThres(); err != nil {
		return err
	}
	if err := b.validateAutoCor(); err != nil {
		return err
	}

	if b.Family == Mixture {
		if len(b.Components) < 2 {
			return fmt.Errorf("Validate: %d mixture components: %w", len(b.Components), ErrBadMixture)
		}
		for _, c := range b.Components {
			if c == Mixture {
				return fmt.Errorf("Validate: nested mixture component: %w", ErrBadMixture)
			}
		}
	}

	if b.OldOrder != nil && len(b.OldOrder) != b.NObs {
		return fmt.Errorf("Validate: old_order length %d for %d observations: %w",
			len(b.OldOrder), b.NObs, ErrShapeMismatch)
	}

	return nil
}

// validateParam enforces the nsamples-rows, 1-or-nobs-columns contract.
func (b *Bundle) validateParam(name string, p *Param) error {
	if p == nil {
		return fmt.Errorf("Validate: parameter %q is nil: %w", name, ErrShapeMismatch)
	}
	if p.Rows() != b.NSamples {
		return fmt.Errorf("Validate: parameter %q has %d rows, want %d: %w",
			name, p.Rows(), b.NSamples, ErrShapeMismatch)
	}
	if p.Cols() != 1 && p.Cols() != b.NObs {
		return fmt.Errorf("Validate: parameter %q has %d columns, want 1 or %d: %w",
			name, p.Cols(), b.NObs, ErrShapeMismatch)
	}

	return nil
}

// validateAuxLen enforces the 1-or-nobs contract on auxiliary vectors.
func (b *Bundle) validateAuxLen(name string, n int) error {
	if n != 0 && n != 1 && n != b.NObs {
		return fmt.Errorf("Validate: data %q has length %d, want 1 or %d: %w",
			name, n, b.NObs, ErrShapeMismatch)
	}

	return nil
}

// validateThres checks that threshold metadata addresses the threshold
// matrix for every observation.
func (b *Bundle) validateThres() error {
	if len(b.Data.NThres) == 0 {
		return nil
	}
	if n := len(b.Data.NThres); n != 1 && n != b.NObs {
		return fmt.Errorf("Validate: nthres length %d: %w", n, ErrBadThresholds)
	}
	if b.Data.Thres == nil {
		return fmt.Errorf("Validate: nthres without threshold matrix: %w", ErrBadThresholds)
	}
	if b.Data.Thres.Rows() != b.NSamples {
		return fmt.Errorf("Validate: threshold matrix has %d rows, want %d: %w",
			b.Data.Thres.Rows(), b.NSamples, ErrBadThresholds)
	}
	if s := len(b.Data.ThresStart); s != 0 && s != len(b.Data.NThres) && s != b.NObs {
		return fmt.Errorf("Validate: thres_start length %d: %w", s, ErrBadThresholds)
	}
	for i := 0; i < b.NObs; i++ {
		k, off := b.ThresCount(i), b.ThresOffset(i)
		if k <= 0 || off < 0 || off+k > b.Data.Thres.Cols() {
			return fmt.Errorf("Validate: obs %d thresholds [%d,%d) outside %d columns: %w",
				i, off, off+k, b.Data.Thres.Cols(), ErrBadThresholds)
		}
	}

	return nil
}

// validateAutoCor checks the spatial block against bundle dimensions.
func (b *Bundle) validateAutoCor() error {
	a := b.AutoCor
	if a == nil {
		return nil
	}
	if a.W == nil || a.W.Rows() != b.NObs || a.W.Cols() != b.NObs {
		return fmt.Errorf("Validate: spatial weight matrix must be %dx%d: %w", b.NObs, b.NObs, ErrBadAutoCor)
	}
	if n := len(a.Rho); n != 1 && n != b.NSamples {
		return fmt.Errorf("Validate: rho length %d, want 1 or %d: %w", n, b.NSamples, ErrBadAutoCor)
	}

	return nil
}
