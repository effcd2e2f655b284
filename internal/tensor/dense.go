package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// FromColumns builds a matrix whose j-th column is cols[j].
//
// Activations are laid out features × batch, so each column is one sample.
// All columns must have the same, non-zero length.
func FromColumns(cols ...[]float64) (*mat.Dense, error) {
	if len(cols) == 0 || len(cols[0]) == 0 {
		return nil, fmt.Errorf("FromColumns: %w", ErrEmpty)
	}
	rows := len(cols[0])
	m := mat.NewDense(rows, len(cols), nil)
	for j, col := range cols {
		if len(col) != rows {
			return nil, &ShapeError{Op: "FromColumns", Want: Shape{rows}, Got: Shape{len(col)}}
		}
		m.SetCol(j, col)
	}
	return m, nil
}

// RowSums writes the sum of each row of m into dst, growing it if empty.
func RowSums(dst *mat.VecDense, m mat.Matrix) *mat.VecDense {
	rows, _ := m.Dims()
	if dst == nil || dst.IsEmpty() {
		dst = mat.NewVecDense(rows, nil)
	}
	for i := 0; i < rows; i++ {
		dst.SetVec(i, floats.Sum(mat.Row(nil, i, m)))
	}
	return dst
}

// ArgmaxColumns returns, for every column of m, the row holding its largest
// value. Ties resolve to the lowest row index.
func ArgmaxColumns(m mat.Matrix) []int {
	rows, cols := m.Dims()
	idx := make([]int, cols)
	col := make([]float64, rows)
	for j := range idx {
		mat.Col(col, j, m)
		idx[j] = floats.MaxIdx(col)
	}
	return idx
}
