// Package tensor: Dense is the concrete row-major array the engine
// computes over. The first axis is always posterior draws; the second is
// observations; the optional third axis holds categories for
// categorical/ordinal results and responses for multivariate stacking.
package tensor

import (
	"fmt"
	"strings"
)

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, err error) error {
	return fmt.Errorf("Dense.%s: %w", method, err)
}

// Dense is a row-major (rows × cols × cats) float64 array.
// rows is posterior draws, cols is observations, cats is 1 for
// matrix-shaped results and >1 for category-valued results.
// data holds rows*cols*cats elements; element (s,i,k) lives at
// (s*cols+i)*cats + k.
type Dense struct {
	rows, cols, cats int
	data             []float64
}

// NewDense creates a rows×cols Dense initialized to zeros (cats == 1).
// Stage 1 (Validate): ensure rows and cols > 0.
// Stage 2 (Prepare): allocate flat backing slice.
// Complexity: O(rows*cols) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	return NewCube(rows, cols, 1)
}

// NewCube creates a rows×cols×cats Dense initialized to zeros.
// The zero fill is load-bearing for ordinal assembly: padded category
// slots must carry exact-zero probability mass and are simply never
// written.
// Complexity: O(rows*cols*cats) time and memory.
func NewCube(rows, cols, cats int) (*Dense, error) {
	// Validate dimensions before allocating.
	if rows <= 0 || cols <= 0 || cats <= 0 {
		return nil, denseErrorf("NewCube", ErrInvalidDimensions)
	}

	return &Dense{rows: rows, cols: cols, cats: cats, data: make([]float64, rows*cols*cats)}, nil
}

// Rows returns the draws-axis length. O(1).
func (m *Dense) Rows() int { return m.rows }

// Cols returns the observations-axis length. O(1).
func (m *Dense) Cols() int { return m.cols }

// Cats returns the category-axis length (1 for matrix-shaped). O(1).
func (m *Dense) Cats() int { return m.cats }

// IsCube reports whether the array carries a real category axis. O(1).
func (m *Dense) IsCube() bool { return m.cats > 1 }

// indexOf computes the flat index for (row, col, cat) or returns
// ErrOutOfRange. O(1).
func (m *Dense) indexOf(row, col, cat int) (int, error) {
	if row < 0 || row >= m.rows {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.cols {
		return 0, ErrOutOfRange
	}
	if cat < 0 || cat >= m.cats {
		return 0, ErrOutOfRange
	}

	return (row*m.cols+col)*m.cats + cat, nil
}

// At retrieves the element at (row, col) on a matrix-shaped array; the
// category index is fixed to 0.
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf(row, col, 0)
	if err != nil {
		return 0, denseErrorf("At", err)
	}

	return m.data[idx], nil
}

// At3 retrieves the element at (row, col, cat).
func (m *Dense) At3(row, col, cat int) (float64, error) {
	idx, err := m.indexOf(row, col, cat)
	if err != nil {
		return 0, denseErrorf("At3", err)
	}

	return m.data[idx], nil
}

// Set assigns v at (row, col); the category index is fixed to 0.
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf(row, col, 0)
	if err != nil {
		return denseErrorf("Set", err)
	}
	m.data[idx] = v

	return nil
}

// Set3 assigns v at (row, col, cat).
func (m *Dense) Set3(row, col, cat int, v float64) error {
	idx, err := m.indexOf(row, col, cat)
	if err != nil {
		return denseErrorf("Set3", err)
	}
	m.data[idx] = v

	return nil
}

// Row returns the backing slice for one draw: cols*cats contiguous
// values. The slice aliases internal storage — callers may read and
// write elements but must never resize it. This is the vectorized
// fast path used by the engine's tight loops; out-of-range rows
// return nil.
func (m *Dense) Row(row int) []float64 {
	if row < 0 || row >= m.rows {
		return nil
	}
	base := row * m.cols * m.cats

	return m.data[base : base+m.cols*m.cats]
}

// Clone returns a deep copy. O(rows*cols*cats).
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{rows: m.rows, cols: m.cols, cats: m.cats, data: cp}
}

// SameShape reports whether m and other agree on all three axes.
func (m *Dense) SameShape(other *Dense) bool {
	return other != nil && m.rows == other.rows && m.cols == other.cols && m.cats == other.cats
}

// String implements fmt.Stringer for debugging; cube-shaped arrays
// render each draw as a cols×cats block.
func (m *Dense) String() string {
	var b strings.Builder
	var s, i, k int
	for s = 0; s < m.rows; s++ {
		b.WriteString("[")
		for i = 0; i < m.cols; i++ {
			if m.cats == 1 {
				fmt.Fprintf(&b, "%g", m.data[(s*m.cols+i)*m.cats])
			} else {
				b.WriteString("(")
				for k = 0; k < m.cats; k++ {
					if k > 0 {
						b.WriteString(" ")
					}
					fmt.Fprintf(&b, "%g", m.data[(s*m.cols+i)*m.cats+k])
				}
				b.WriteString(")")
			}
			if i < m.cols-1 {
				b.WriteString(", ")
			}
		}
		b.WriteString("]\n")
	}

	return b.String()
}

// FromRows builds a matrix-shaped Dense from explicit row data.
// Every row must have the same length; ragged input returns
// ErrShapeMismatch. Intended for tests and small fixtures.
func FromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, denseErrorf("FromRows", ErrInvalidDimensions)
	}
	cols := len(rows[0])
	out, err := NewDense(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for s, r := range rows {
		if len(r) != cols {
			return nil, denseErrorf("FromRows", ErrShapeMismatch)
		}
		copy(out.Row(s), r)
	}

	return out, nil
}
