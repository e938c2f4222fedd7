// SPDX-License-Identifier: MIT

// Package expect: functional configuration for the entry points.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package expect

import "log/slog"

// Scale selects the prediction scale for the full-mean mode.
type Scale uint8

const (
	// ScaleResponse computes the expected value of the response
	// distribution (truncation, mixtures and family dispatch apply).
	ScaleResponse Scale = iota

	// ScaleLinear returns the untransformed linear predictor of mu;
	// no inverse link, truncation or family dispatch applies.
	ScaleLinear
)

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultWorkers runs the per-draw spatial solves sequentially;
	// the engine is single-threaded unless explicitly told otherwise.
	DefaultWorkers = 1

	// DefaultWindowWarn is the union-window width at which the discrete
	// truncation path emits a slow-computation diagnostic.
	DefaultWindowWarn = 1024

	// DefaultSolveWarnObs is the observation count at which the
	// spatial-lag correction emits its O(nobs³)-per-draw diagnostic.
	DefaultSolveWarnObs = 512
)

// Internal panic messages (no magic strings).
const (
	panicWorkersInvalid = "expect: WithWorkers: n must be >= 1"
)

// Option mutates internal options. Safe to apply repeatedly.
type Option func(*Options)

// Options stores the effective configuration after applying Option
// setters. It is intentionally unexported-field-only; public entry
// points accept ...Option and resolve them via gatherOptions.
type Options struct {
	scale      Scale
	dpar       string
	nlpar      string
	summary    bool
	robust     bool
	probs      []float64
	keepSorted bool
	workers    int
	logger     *slog.Logger
}

// WithLinearScale returns the linear predictor of mu instead of the
// response-scale expectation.
func WithLinearScale() Option {
	return func(o *Options) { o.scale = ScaleLinear }
}

// WithResponseScale computes the response-scale expectation (default).
func WithResponseScale() Option {
	return func(o *Options) { o.scale = ScaleResponse }
}

// WithDPar requests the draws of one distributional parameter by name
// instead of the full response mean. Mutually exclusive with WithNLPar;
// requesting both fails with ErrConflictingArguments at call time.
func WithDPar(name string) Option {
	return func(o *Options) { o.dpar = name }
}

// WithNLPar requests the draws of one non-linear parameter by name.
// Mutually exclusive with WithDPar.
func WithNLPar(name string) Option {
	return func(o *Options) { o.nlpar = name }
}

// WithSummary reduces the draws axis to point estimate, dispersion and
// quantiles; the result rows become statistics instead of draws.
func WithSummary() Option {
	return func(o *Options) { o.summary = true }
}

// WithRobust switches the summary estimators to median / scaled MAD.
// Only meaningful together with WithSummary.
func WithRobust() Option {
	return func(o *Options) { o.robust = true }
}

// WithProbs sets the summary quantiles (default 2.5% and 97.5%).
// Values are validated at summary time; entries must lie in (0,1).
func WithProbs(probs ...float64) Option {
	return func(o *Options) { o.probs = probs }
}

// WithKeepSortedOrder skips the restoration of caller-visible
// observation order: the result stays in the bundle's internal order.
func WithKeepSortedOrder() Option {
	return func(o *Options) { o.keepSorted = true }
}

// WithWorkers bounds the worker pool for the per-draw spatial-lag
// solves. n == 1 (the default) keeps the engine single-threaded.
// Panics if n < 1 (programmer error).
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// WithLogger attaches a structured logger for non-fatal diagnostics
// (slow discrete-truncation windows, heavy spatial solves). The engine
// is silent without one; diagnostics never abort computation.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// gatherOptions applies user-provided setters on top of defaults.
// Last-writer-wins; derived invariants are finalized here in one place.
func gatherOptions(user ...Option) Options {
	o := Options{
		scale:   ScaleResponse,
		workers: DefaultWorkers,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}

// warn emits a non-fatal diagnostic when a logger is attached.
func (o *Options) warn(msg string, args ...any) {
	if o.logger != nil {
		o.logger.Warn(msg, args...)
	}
}
