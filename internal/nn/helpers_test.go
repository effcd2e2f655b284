package nn_test

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// visit records one ParamVisitor call.
type visit struct {
	rank  int
	shape [2]int
}

// recordingVisitor remembers the order and shape of every visit.
type recordingVisitor struct {
	visits []visit
	err    error // returned from every visit when set
}

func (r *recordingVisitor) VisitMatrix(param, _ *mat.Dense) error {
	rows, cols := param.Dims()
	r.visits = append(r.visits, visit{rank: 2, shape: [2]int{rows, cols}})
	return r.err
}

func (r *recordingVisitor) VisitVector(param, _ *mat.VecDense) error {
	r.visits = append(r.visits, visit{rank: 1, shape: [2]int{param.Len(), 0}})
	return r.err
}

// randDense returns a rows×cols matrix of standard normal samples.
func randDense(rng *rand.Rand, rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	return mat.NewDense(rows, cols, data)
}

// oneHot builds a [classes, len(labels)] one-hot matrix.
func oneHot(classes int, labels ...int) *mat.Dense {
	m := mat.NewDense(classes, len(labels), nil)
	for j, label := range labels {
		m.Set(label, j, 1)
	}
	return m
}
