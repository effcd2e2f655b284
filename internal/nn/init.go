package nn

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// XavierInitializer sets parameters with Xavier (Glorot) normal
// initialization.
//
// Weight matrices of shape [rows, cols] are drawn element-wise from
// N(0, sqrt(2 / (rows + cols))). Bias vectors are set to zero. Gradients
// are ignored.
//
// The random source is owned by the caller, so runs are reproducible by
// seeding it.
//
// Example:
//
//	xavier, err := nn.NewXavierInitializer(rand.NewPCG(42, 0))
//	err = model.VisitParams(xavier)
type XavierInitializer struct {
	src rand.Source
}

// NewXavierInitializer creates an initializer drawing from src.
func NewXavierInitializer(src rand.Source) (*XavierInitializer, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	return &XavierInitializer{src: src}, nil
}

// VisitMatrix fills param with Xavier normal samples.
func (x *XavierInitializer) VisitMatrix(param, _ *mat.Dense) error {
	rows, cols := param.Dims()
	normal := distuv.Normal{
		Mu:    0,
		Sigma: math.Sqrt(2 / float64(rows+cols)),
		Src:   x.src,
	}

	for i := 0; i < rows; i++ {
		row := param.RawRowView(i)
		for j := range row {
			row[j] = normal.Rand()
		}
	}
	return nil
}

// VisitVector sets param to zero.
func (x *XavierInitializer) VisitVector(param, _ *mat.VecDense) error {
	param.Zero()
	return nil
}
