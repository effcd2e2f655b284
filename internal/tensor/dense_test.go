package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestFromColumns(t *testing.T) {
	m, err := FromColumns([]float64{2, 3}, []float64{1, 4})
	require.NoError(t, err)

	want := mat.NewDense(2, 2, []float64{
		2, 1,
		3, 4,
	})
	assert.True(t, mat.Equal(want, m))
}

func TestFromColumns_Errors(t *testing.T) {
	_, err := FromColumns()
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = FromColumns([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestRowSums(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		-1, 0, 4,
	})

	sums := RowSums(nil, m)
	assert.Equal(t, []float64{6, 3}, sums.RawVector().Data)

	dst := mat.NewVecDense(2, nil)
	RowSums(dst, m)
	assert.Equal(t, []float64{6, 3}, dst.RawVector().Data)
}

func TestArgmaxColumns(t *testing.T) {
	m := mat.NewDense(3, 3, []float64{
		0.1, 5, 1,
		0.7, 2, 1,
		0.2, 9, 0,
	})

	assert.Equal(t, []int{1, 2, 0}, ArgmaxColumns(m))
}
