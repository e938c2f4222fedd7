// Package tensor provides the dense numeric arrays the expectation
// engine computes over.
//
// The tensor package provides:
//
//   - Dense, a row-major (draws × observations [× categories]) float64
//     array with validated constructors and O(1) element access.
//   - BroadcastTo, the explicit broadcasting utility for scalar and
//     per-draw vectors (no implicit recycling anywhere).
//   - ReorderCols for restoring caller-visible observation order from a
//     stored permutation.
//   - Summarize for reducing the draws axis to point estimate,
//     dispersion and quantiles (mean/sd or median/MAD).
//
// All shapes are checked eagerly; violations surface as sentinel errors
// matched via errors.Is, never as panics.
package tensor
