// Package draws defines the draws bundle — the posterior-sample
// container the expectation engine consumes.
//
// The draws package provides:
//
//   - Bundle, the read-only engine input: a family tag, named
//     distributional-parameter draws, auxiliary per-observation data
//     (trials, truncation bounds, ordinal thresholds, spatial
//     structure) and the stored caller observation order.
//   - Param, constant-or-varying parameter storage: a parameter that is
//     constant across observations is stored once per draw and
//     broadcast lazily, never replicated.
//   - Link, the inverse-link vocabulary applied when a parameter is
//     read on the response scale.
//   - Validate, the single shape gate: every parameter matrix must have
//     exactly nsamples rows and either 1 or nobs columns, and finite
//     bounds must satisfy lb ≤ ub.
//
// Bundles are constructed once per prediction request by the draws
// extraction collaborator and never mutated by the engine.
package draws
