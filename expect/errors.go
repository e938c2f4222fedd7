// SPDX-License-Identifier: MIT
// Package expect: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the
// expect package. All computations MUST return these sentinels and tests
// MUST check them via errors.Is. Failures are deterministic given the
// same inputs and are never retried.

package expect

import (
	"errors"

	"github.com/statforge/epred/draws"
	"github.com/statforge/epred/tensor"
)

var (
	// ErrInvalidParameter is returned when a requested distributional or
	// non-linear parameter name is not part of the model.
	ErrInvalidParameter = errors.New("expect: unknown parameter name")

	// ErrConflictingArguments is returned when both a distributional and
	// a non-linear parameter are requested in one call.
	ErrConflictingArguments = errors.New("expect: dpar and nlpar are mutually exclusive")

	// ErrUnsupportedOperation is returned when a family has no defined
	// mean (e.g. cox), when a family tag is unknown to the registry, or
	// when a truncated mean is not implemented for the family.
	ErrUnsupportedOperation = errors.New("expect: operation not supported for this family")

	// ErrMixtureWeights is returned when mixture weights do not sum to 1
	// across components for some (draw, observation) pair.
	ErrMixtureWeights = errors.New("expect: mixture weights must sum to 1")

	// ErrSingularSystem is returned when the spatial-lag system
	// (I − ρW) is singular for some draw.
	ErrSingularSystem = errors.New("expect: spatial-lag system is singular")

	// ErrDuplicateFamily is returned by Register for a tag the registry
	// already serves.
	ErrDuplicateFamily = errors.New("expect: family already registered")
)

// Aliases re-exporting the sentinels raised by collaborating packages,
// so callers can match every engine failure through this package.

// ErrInvalidBounds aliases draws.ErrInvalidBounds: lb > ub, or an
// infinite bound handed to the discrete-truncation path.
var ErrInvalidBounds = draws.ErrInvalidBounds

// ErrShapeMismatch aliases tensor.ErrShapeMismatch.
var ErrShapeMismatch = tensor.ErrShapeMismatch
