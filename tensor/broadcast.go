// Package tensor: explicit broadcasting.
// The engine never recycles vectors implicitly; every scalar or
// per-draw vector passes through BroadcastTo with a defined failure
// mode for anything else.
package tensor

import "fmt"

// BroadcastTo expands x into a rows×cols Dense.
//
// Accepted source lengths:
//   - 1:      the single value fills the whole array (a parameter that
//     is constant across draws and observations);
//   - rows:   x is one per-draw column, tiled across all observations
//     (a parameter constant across observations but varying by draw);
//   - rows*cols: x is copied verbatim in row-major order.
//
// A per-observation row (length cols) is deliberately not accepted: on
// a square array its length collides with the per-draw column and the
// two orientations produce different results, so the length alone
// cannot carry the intent. The remaining length collisions (rows == 1,
// or cols == 1) produce identical results whichever case matches.
//
// Any other length returns ErrShapeMismatch.
//
// Complexity: O(rows*cols) time and memory.
func BroadcastTo(x []float64, rows, cols int) (*Dense, error) {
	out, err := NewDense(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("BroadcastTo: %w", err)
	}

	var s, i int
	switch len(x) {
	case 1:
		for s = 0; s < rows; s++ {
			row := out.Row(s)
			for i = 0; i < cols; i++ {
				row[i] = x[0]
			}
		}
	case rows:
		for s = 0; s < rows; s++ {
			row := out.Row(s)
			for i = 0; i < cols; i++ {
				row[i] = x[s]
			}
		}
	case rows * cols:
		copy(out.data, x)
	default:
		return nil, fmt.Errorf("BroadcastTo: source length %d does not conform to %dx%d: %w",
			len(x), rows, cols, ErrShapeMismatch)
	}

	return out, nil
}
