// Package draws: distributional-parameter storage.
package draws

import (
	"fmt"

	"github.com/statforge/epred/tensor"
)

// Param holds the posterior draws of one distributional parameter on
// the linear (pre-inverse-link) scale.
//
// Storage honors the bundle invariant: a parameter that is constant
// across observations keeps one value per draw (cols == 1) and is
// broadcast on read; a varying parameter keeps nsamples × nobs values
// row-major (cols == nobs). Replication happens only when an operation
// genuinely needs the full matrix.
type Param struct {
	vals []float64
	rows int
	cols int
	link Link
}

// NewParam builds a parameter from row-major draws.
// cols must be 1 (constant across observations) or the bundle's nobs;
// len(vals) must be rows*cols. Shape violations surface later through
// Bundle.Validate, which is the single gate — NewParam only rejects
// impossible storage.
func NewParam(vals []float64, rows, cols int, link Link) (*Param, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewParam: %d x %d: %w", rows, cols, ErrShapeMismatch)
	}
	if len(vals) != rows*cols {
		return nil, fmt.Errorf("NewParam: %d values for %d x %d: %w", len(vals), rows, cols, ErrShapeMismatch)
	}

	return &Param{vals: vals, rows: rows, cols: cols, link: link}, nil
}

// NewConstParam builds a per-draw constant parameter (one value per
// draw, broadcast across observations).
func NewConstParam(vals []float64, link Link) (*Param, error) {
	return NewParam(vals, len(vals), 1, link)
}

// Rows returns the draw count. O(1).
func (p *Param) Rows() int { return p.rows }

// Cols returns the stored column count: 1 or nobs. O(1).
func (p *Param) Cols() int { return p.cols }

// Link returns the parameter's link function. O(1).
func (p *Param) Link() Link { return p.link }

// At returns the linear-scale value for draw s and observation i,
// broadcasting constant parameters. Indices must be valid for the
// validated bundle shape; misuse is a programmer error.
// O(1).
func (p *Param) At(s, i int) float64 {
	if p.cols == 1 {
		return p.vals[s]
	}

	return p.vals[s*p.cols+i]
}

// Resp returns the response-scale value for draw s and observation i:
// At with the inverse link applied. O(1).
func (p *Param) Resp(s, i int) float64 {
	return p.link.Inv(p.At(s, i))
}

// Linear materializes the full rows×nobs linear-scale matrix. The
// stored column count fixes the orientation: a constant parameter
// (cols == 1) tiles each draw's value across all observations, a
// varying one is copied verbatim. The orientation is never inferred
// from the value count — on a square bundle (rows == nobs) the count
// alone cannot tell a per-draw column from a per-observation row.
func (p *Param) Linear(nobs int) (*tensor.Dense, error) {
	var (
		out *tensor.Dense
		err error
	)
	if p.cols == 1 {
		out, err = tensor.BroadcastTo(p.vals, p.rows, nobs)
	} else {
		out, err = tensor.BroadcastTo(p.vals, p.rows, p.cols)
	}
	if err != nil {
		return nil, fmt.Errorf("Param.Linear: %w", err)
	}

	return out, nil
}

// Response materializes the full rows×nobs response-scale matrix: the
// broadcast draws with the inverse link applied elementwise.
func (p *Param) Response(nobs int) (*tensor.Dense, error) {
	out, err := p.Linear(nobs)
	if err != nil {
		return nil, fmt.Errorf("Param.Response: %w", err)
	}
	if p.link == Identity {
		return out, nil
	}

	var s, i int
	for s = 0; s < out.Rows(); s++ {
		row := out.Row(s)
		for i = 0; i < nobs; i++ {
			row[i] = p.link.Inv(row[i])
		}
	}

	return out, nil
}
