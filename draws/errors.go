// SPDX-License-Identifier: MIT
// Package draws: sentinel error set.
// Validation failures are raised eagerly at bundle inspection time and
// matched by callers via errors.Is; nothing in this package panics on
// user input.

package draws

import "errors"

var (
	// ErrNilBundle indicates a nil *Bundle where a value is required.
	ErrNilBundle = errors.New("draws: nil bundle")

	// ErrShapeMismatch indicates a parameter or auxiliary vector whose
	// shape is neither constant (length 1) nor per-observation (length
	// nobs), or a draws matrix without exactly nsamples rows.
	ErrShapeMismatch = errors.New("draws: shape mismatch")

	// ErrInvalidBounds indicates truncation bounds with lb > ub where
	// both are finite, or a bound configuration a consumer cannot
	// serve (e.g. an infinite bound on a discrete-truncation path).
	ErrInvalidBounds = errors.New("draws: invalid truncation bounds")

	// ErrBadThresholds indicates ordinal threshold metadata that does
	// not address the threshold matrix (offset+count out of range, or a
	// missing matrix).
	ErrBadThresholds = errors.New("draws: invalid ordinal thresholds")

	// ErrBadAutoCor indicates an autocorrelation block whose weight
	// matrix or coefficient vector does not conform to the bundle
	// dimensions.
	ErrBadAutoCor = errors.New("draws: invalid autocorrelation structure")

	// ErrBadMixture indicates a mixture bundle without at least two
	// components, or with a nested mixture component.
	ErrBadMixture = errors.New("draws: invalid mixture specification")
)
