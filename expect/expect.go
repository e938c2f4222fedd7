// SPDX-License-Identifier: MIT

// Package expect computes posterior expectations from fitted-model
// draws. This file holds the public entry points:
//
//   - Expected   — one response: the full response-scale mean, the
//     linear predictor, or the raw draws of one named parameter;
//   - ExpectedMV — several responses stacked along the trailing axis.
//
// Pipeline (Expected):
//
//	Stage 1 (Validate): bundle shape and option consistency.
//	Stage 2 (Compute):  parameter draws / linear predictor / family
//	                    dispatch with truncation, mixtures, spatial lag.
//	Stage 3 (Deliver):  observation-order restoration, optional summary.
package expect

import (
	"fmt"

	"github.com/statforge/epred/draws"
	"github.com/statforge/epred/tensor"
)

// Result is the outcome of one expectation run.
type Result struct {
	// Values is draws × observations (× categories). Under WithSummary
	// the first axis holds statistics instead of draws.
	Values *tensor.Dense

	// SummaryLabels names the statistic rows ("Estimate", "Est.Error",
	// quantiles); nil without WithSummary.
	SummaryLabels []string

	// ResponseNames names the trailing-axis entries for ExpectedMV
	// results; nil for single-response runs.
	ResponseNames []string
}

// Expected computes posterior expectations for one response bundle.
//
// By default it returns the expected value of the response distribution
// per draw and observation. WithLinearScale returns the untransformed
// linear predictor of mu instead; WithDPar / WithNLPar return the raw
// draws of one named parameter. WithSummary collapses the draws axis.
func Expected(b *draws.Bundle, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)

	return expected(b, &o)
}

// expected runs the pipeline against resolved options.
func expected(b *draws.Bundle, o *Options) (*Result, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("Expected: %w", err)
	}
	if o.dpar != "" && o.nlpar != "" {
		return nil, fmt.Errorf("Expected: dpar %q and nlpar %q are mutually exclusive: %w",
			o.dpar, o.nlpar, ErrConflictingArguments)
	}

	var (
		out *tensor.Dense
		err error
	)
	switch {
	case o.dpar != "":
		out, err = dparDraws(b, o)
	case o.nlpar != "":
		out, err = nlparDraws(b, o)
	default:
		out, err = responseMean(b, o)
	}
	if err != nil {
		return nil, fmt.Errorf("Expected: %w", err)
	}

	return deliver(out, b.OldOrder, o)
}

// deliver restores observation order and applies the optional summary
// reduction.
func deliver(out *tensor.Dense, oldOrder []int, o *Options) (*Result, error) {
	if !o.keepSorted {
		var err error
		out, err = tensor.ReorderCols(out, oldOrder)
		if err != nil {
			return nil, fmt.Errorf("Expected: %w", err)
		}
	}

	res := &Result{Values: out}
	if o.summary {
		sum, labels, err := tensor.Summarize(out, o.robust, o.probs)
		if err != nil {
			return nil, fmt.Errorf("Expected: %w", err)
		}
		res.Values, res.SummaryLabels = sum, labels
	}

	return res, nil
}

// dparDraws extracts the draws of one distributional parameter.
// ScaleLinear skips the inverse link; the default is response scale.
func dparDraws(b *draws.Bundle, o *Options) (*tensor.Dense, error) {
	p, ok := b.DPars[o.dpar]
	if !ok {
		return nil, fmt.Errorf("unknown dpar %q (have: %s): %w",
			o.dpar, knownDPars(b.DPars), ErrInvalidParameter)
	}
	if o.scale == ScaleLinear {
		return p.Linear(b.NObs)
	}

	return p.Response(b.NObs)
}

// nlparDraws extracts the draws of one non-linear parameter. Non-linear
// parameters carry no link, so scale does not apply.
func nlparDraws(b *draws.Bundle, o *Options) (*tensor.Dense, error) {
	p, ok := b.NLPars[o.nlpar]
	if !ok {
		return nil, fmt.Errorf("unknown nlpar %q (have: %s): %w",
			o.nlpar, knownDPars(b.NLPars), ErrInvalidParameter)
	}

	return p.Response(b.NObs)
}

// responseMean computes the full expectation: linear predictor
// short-circuit, mixture composition or family dispatch (with the
// truncation subsystem), then the spatial-lag correction.
func responseMean(b *draws.Bundle, o *Options) (*tensor.Dense, error) {
	if o.scale == ScaleLinear {
		mu, ok := b.DPars["mu"]
		if !ok {
			return nil, fmt.Errorf("linear scale requires dpar %q (have: %s): %w",
				"mu", knownDPars(b.DPars), ErrInvalidParameter)
		}

		return mu.Linear(b.NObs)
	}

	var (
		out *tensor.Dense
		err error
	)
	if b.Family == draws.Mixture {
		if b.Truncated() {
			return nil, errUnsupported(draws.Mixture, "truncation of mixture responses")
		}
		out, err = mixtureExpected(b)
	} else {
		f, lerr := lookup(b.Family)
		if lerr != nil {
			return nil, lerr
		}
		p := &Params{b: b}
		if b.Truncated() {
			out, err = truncatedExpected(f, p, o)
		} else {
			out, err = f.Expected(p)
		}
	}
	if err != nil {
		return nil, err
	}

	if err := applySAR(b, out, o); err != nil {
		return nil, err
	}

	return out, nil
}

// ExpectedMV computes expectations for several responses of one
// multivariate model and stacks them along the trailing axis, so the
// result is draws × observations × responses. Every response must share
// the draw and observation counts, and none may itself be
// category-valued. The summary reduction, when requested, runs on the
// stacked cube.
func ExpectedMV(resps []draws.Response, opts ...Option) (*Result, error) {
	if len(resps) == 0 {
		return nil, fmt.Errorf("ExpectedMV: no responses: %w", ErrInvalidParameter)
	}
	o := gatherOptions(opts...)

	// Compute each response unsummarized; the reduction applies to the
	// stacked cube so statistic rows align across responses.
	per := o
	per.summary = false

	parts := make([]*tensor.Dense, len(resps))
	names := make([]string, len(resps))
	for r, resp := range resps {
		res, err := expected(resp.Bundle, &per)
		if err != nil {
			return nil, fmt.Errorf("ExpectedMV: response %q: %w", resp.Name, err)
		}
		if res.Values.IsCube() {
			return nil, fmt.Errorf("ExpectedMV: response %q is category-valued: %w",
				resp.Name, ErrUnsupportedOperation)
		}
		if r > 0 && !parts[0].SameShape(res.Values) {
			return nil, fmt.Errorf("ExpectedMV: response %q: %d x %d does not match %d x %d: %w",
				resp.Name, res.Values.Rows(), res.Values.Cols(),
				parts[0].Rows(), parts[0].Cols(), ErrShapeMismatch)
		}
		parts[r], names[r] = res.Values, resp.Name
	}

	nsamples, nobs := parts[0].Rows(), parts[0].Cols()
	out, err := tensor.NewCube(nsamples, nobs, len(parts))
	if err != nil {
		return nil, fmt.Errorf("ExpectedMV: %w", err)
	}
	var s, i, r int
	for s = 0; s < nsamples; s++ {
		dst := out.Row(s)
		for r = range parts {
			src := parts[r].Row(s)
			for i = 0; i < nobs; i++ {
				dst[i*len(parts)+r] = src[i]
			}
		}
	}

	res := &Result{Values: out, ResponseNames: names}
	if o.summary {
		sum, labels, err := tensor.Summarize(out, o.robust, o.probs)
		if err != nil {
			return nil, fmt.Errorf("ExpectedMV: %w", err)
		}
		res.Values, res.SummaryLabels = sum, labels
	}

	return res, nil
}
