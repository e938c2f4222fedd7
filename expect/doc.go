// Package expect computes posterior expectations of fitted response
// distributions.
//
// The expect package provides:
//
//   - Expected, the single entry point: draws bundle in, numeric array
//     out. Modes: a named distributional parameter, a named non-linear
//     parameter, or the full response mean (on the response or linear
//     scale), optionally reduced to summary statistics.
//   - ExpectedMV for multivariate models: per-response results stacked
//     along a new trailing axis.
//   - A closed family registry (~40 response distributions) resolved at
//     process start; unknown tags fail fast with ErrUnsupportedOperation.
//   - Ordinal/categorical/multinomial/Dirichlet probability assembly,
//     finite-mixture composition, truncation corrections (analytic for
//     continuous families, grid summation for count families) and the
//     spatial-lag mean correction.
//
// Custom families implement ExpectationProvider and register once via
// Register; the engine calls the interface, never reflects on names.
//
// The engine is a pure computation: single-threaded by default (the
// per-draw spatial solves can opt into a bounded worker pool), no I/O,
// no shared mutable state, and deterministic failures surfaced as
// sentinel errors.
package expect
