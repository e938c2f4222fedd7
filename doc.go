// Package epred computes posterior expectations for fitted regression
// models — given posterior draws of a model's distributional parameters,
// it returns the expected value of the response distribution per draw
// and per observation.
//
// 🚀 What is epred?
//
//	A pure computation library that brings together:
//		• Per-family closed-form means for ~40 response distributions
//		• Ordinal, categorical, multinomial and Dirichlet probability assembly
//		• Finite-mixture composition with per-draw weights
//		• Truncation corrections: analytic (continuous) and grid summation (discrete)
//		• Spatial-lag (SAR) mean correction via per-draw dense solves
//		• Draws-axis summaries: mean/sd or median/MAD plus quantiles
//
// ✨ Why choose epred?
//
//   - Strict shape contracts – every array is (draws × observations [× categories])
//   - Sentinel errors, no panics – match failures with errors.Is
//   - Pure functions over immutable inputs – no hidden state, no I/O
//
// Everything is organized under three subpackages:
//
//	tensor/ — dense draws×observations arrays, broadcasting, summaries
//	draws/  — the draws bundle: parameters, links, bounds, validation
//	expect/ — family registry, truncation, mixtures, and the entry points
//
// The engine consumes an already-extracted draws bundle and returns a
// numeric array; sampling, formula parsing and output formatting live
// outside this module.
//
//	go get github.com/statforge/epred/expect
package epred
