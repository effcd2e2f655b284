package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/INDA25PlusPlus/puhl-ml/internal/tensor"
)

// ReLU is a Rectified Linear Unit activation layer.
//
// Applies the element-wise function: f(x) = max(0, x)
//
// ReLU owns no parameters and does not implement Parameterized, so
// Sequential skips it when visiting parameters.
type ReLU struct {
	lastInput *mat.Dense
}

// NewReLU creates a new ReLU activation layer.
func NewReLU() *ReLU {
	return &ReLU{}
}

// Forward applies max(0, x) and caches a copy of input.
func (r *ReLU) Forward(input *mat.Dense) (*mat.Dense, error) {
	r.lastInput = nil
	if err := tensor.CheckNonEmpty("ReLU.Forward", tensor.Of(input)); err != nil {
		return nil, err
	}
	r.lastInput = mat.DenseCopyOf(input)

	var output mat.Dense
	output.Apply(func(_, _ int, v float64) float64 {
		if v > 0 {
			return v
		}
		return 0
	}, input)
	return &output, nil
}

// Backward passes outputGrad through where the cached input was positive.
// The subgradient at exactly zero is 0.
func (r *ReLU) Backward(outputGrad *mat.Dense) (*mat.Dense, error) {
	if r.lastInput == nil {
		return nil, fmt.Errorf("ReLU.Backward: %w", ErrBackwardBeforeForward)
	}
	if err := tensor.Check("ReLU.Backward", tensor.Of(r.lastInput), tensor.Of(outputGrad)); err != nil {
		return nil, err
	}

	var inputGrad mat.Dense
	inputGrad.Apply(func(i, j int, g float64) float64 {
		if r.lastInput.At(i, j) > 0 {
			return g
		}
		return 0
	}, outputGrad)
	return &inputGrad, nil
}
