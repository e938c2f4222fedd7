// SPDX-License-Identifier: MIT
// Package tensor: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the
// tensor package. All functions MUST return these sentinels and tests
// MUST check them via errors.Is. No function panics on user-triggered
// error conditions.

package tensor

import "errors"

var (
	// ErrInvalidDimensions indicates that requested array dimensions are
	// non-positive. Constructors must validate before allocation.
	ErrInvalidDimensions = errors.New("tensor: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (draw, observation or
	// category) is outside valid bounds. Public indexers return this,
	// never panic.
	ErrOutOfRange = errors.New("tensor: index out of range")

	// ErrShapeMismatch indicates that a vector or array cannot be
	// conformed to the requested shape: a broadcast source whose length
	// is neither 1 nor the target column count, operands of different
	// shapes, or a permutation of the wrong length.
	ErrShapeMismatch = errors.New("tensor: shape mismatch")

	// ErrNilArray indicates that a nil *Dense was passed where a value
	// is required.
	ErrNilArray = errors.New("tensor: nil array")

	// ErrInvalidProbs indicates a summary quantile outside (0, 1).
	ErrInvalidProbs = errors.New("tensor: quantile probabilities must lie in (0,1)")

	// ErrBadPermutation indicates that a column-order slice is not a
	// permutation of 0..cols-1.
	ErrBadPermutation = errors.New("tensor: order is not a permutation")
)
