// Package tensor: observation-order restoration.
package tensor

import "fmt"

// ReorderCols permutes the observation axis of m: internal column j is
// written to output column order[j]. The draws bundle records the
// caller's original observation order before any internal sorting; this
// is the inverse step that restores it. Category fibers move as a unit.
//
// A nil order is the identity (m is returned unchanged, not copied).
// order must be a permutation of 0..cols-1; anything else returns
// ErrShapeMismatch (wrong length) or ErrBadPermutation.
//
// Complexity: O(rows*cols*cats) time and memory.
func ReorderCols(m *Dense, order []int) (*Dense, error) {
	if m == nil {
		return nil, fmt.Errorf("ReorderCols: %w", ErrNilArray)
	}
	if order == nil {
		return m, nil
	}
	if len(order) != m.cols {
		return nil, fmt.Errorf("ReorderCols: order length %d for %d columns: %w",
			len(order), m.cols, ErrShapeMismatch)
	}

	// Validate the permutation: every destination hit exactly once.
	seen := make([]bool, m.cols)
	for _, dst := range order {
		if dst < 0 || dst >= m.cols || seen[dst] {
			return nil, fmt.Errorf("ReorderCols: %w", ErrBadPermutation)
		}
		seen[dst] = true
	}

	out, err := NewCube(m.rows, m.cols, m.cats)
	if err != nil {
		return nil, fmt.Errorf("ReorderCols: %w", err)
	}

	var s, j, k int
	for s = 0; s < m.rows; s++ {
		src, dst := m.Row(s), out.Row(s)
		for j = 0; j < m.cols; j++ {
			for k = 0; k < m.cats; k++ {
				dst[order[j]*m.cats+k] = src[j*m.cats+k]
			}
		}
	}

	return out, nil
}
