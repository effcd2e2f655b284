package nn

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/INDA25PlusPlus/puhl-ml/internal/tensor"
)

// GradReduction selects how Linear folds the batch axis into its
// parameter gradients.
type GradReduction int

const (
	// ReduceSum adds the per-sample contributions unscaled. Both loss
	// functions in this package already return batch-averaged gradients,
	// so this is the default.
	ReduceSum GradReduction = iota

	// ReduceMean divides the per-sample contributions by the batch size.
	ReduceMean
)

// String returns the reduction name.
func (r GradReduction) String() string {
	switch r {
	case ReduceSum:
		return "sum"
	case ReduceMean:
		return "mean"
	default:
		return fmt.Sprintf("GradReduction(%d)", int(r))
	}
}

func (r GradReduction) scale(batch int) float64 {
	if r == ReduceMean {
		return 1 / float64(batch)
	}
	return 1
}

// LinearOption configures a Linear layer.
type LinearOption func(*Linear)

// WithGradReduction sets the batch reduction of the parameter gradients.
func WithGradReduction(r GradReduction) LinearOption {
	return func(l *Linear) {
		l.reduction = r
	}
}

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = W @ x + b
// where:
//   - x is the input with shape [in_features, batch_size]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features], broadcast over the batch
//   - y is the output with shape [out_features, batch_size]
//
// Parameters start at zero; run an initializer such as XavierInitializer
// over the layer (or the network containing it) before training.
//
// Example:
//
//	layer := nn.NewLinear(784, 128)
//	xavier, _ := nn.NewXavierInitializer(rand.NewPCG(1, 2))
//	_ = layer.VisitParams(xavier)
//
//	output, err := layer.Forward(input) // input: [784, 32] → output: [128, 32]
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *mat.Dense    // [out_features, in_features]
	bias        *mat.VecDense // [out_features]
	weightGrad  *mat.Dense    // same shape as weight
	biasGrad    *mat.VecDense // same shape as bias
	reduction   GradReduction
	lastInput   *mat.Dense // cached by Forward
}

// NewLinear creates a Linear layer with zeroed parameters and gradients.
//
// Panics if either feature count is not positive.
func NewLinear(inFeatures, outFeatures int, opts ...LinearOption) *Linear {
	if err := (tensor.Shape{outFeatures, inFeatures}).Validate(); err != nil {
		panic(fmt.Sprintf("nn.NewLinear: %v", err))
	}

	l := &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      mat.NewDense(outFeatures, inFeatures, nil),
		bias:        mat.NewVecDense(outFeatures, nil),
		weightGrad:  mat.NewDense(outFeatures, inFeatures, nil),
		biasGrad:    mat.NewVecDense(outFeatures, nil),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewLinearFrom creates a Linear layer holding copies of weight and bias.
func NewLinearFrom(weight *mat.Dense, bias *mat.VecDense, opts ...LinearOption) (*Linear, error) {
	if weight.IsEmpty() {
		return nil, fmt.Errorf("nn.NewLinearFrom: weight: %w", tensor.ErrEmpty)
	}
	out, in := weight.Dims()
	if err := tensor.Check("nn.NewLinearFrom", tensor.Shape{out}, tensor.OfVec(bias)); err != nil {
		return nil, err
	}

	l := NewLinear(in, out, opts...)
	l.weight.Copy(weight)
	l.bias.CopyVec(bias)
	return l, nil
}

// Forward computes W @ input + b and caches a copy of input.
//
// Input shape: [in_features, batch_size]
// Output shape: [out_features, batch_size]
func (l *Linear) Forward(input *mat.Dense) (*mat.Dense, error) {
	l.lastInput = nil
	rows, batch := input.Dims()
	if rows != l.inFeatures || batch == 0 {
		return nil, &tensor.ShapeError{
			Op:   "Linear.Forward",
			Want: tensor.Shape{l.inFeatures, max(batch, 1)},
			Got:  tensor.Shape{rows, batch},
		}
	}

	l.lastInput = mat.DenseCopyOf(input)

	output := mat.NewDense(l.outFeatures, batch, nil)
	output.Mul(l.weight, input)
	for o := 0; o < l.outFeatures; o++ {
		floats.AddConst(l.bias.AtVec(o), output.RawRowView(o))
	}

	return output, nil
}

// Backward accumulates the parameter gradients for outputGrad and returns
// the gradient with respect to the cached input.
//
//	weight_grad += outputGrad @ x.T * s
//	bias_grad   += rowsum(outputGrad) * s
//	input_grad   = W.T @ outputGrad
//
// where s is 1 for ReduceSum and 1/batch_size for ReduceMean. The input
// gradient is never scaled.
func (l *Linear) Backward(outputGrad *mat.Dense) (*mat.Dense, error) {
	if l.lastInput == nil {
		return nil, fmt.Errorf("Linear.Backward: %w", ErrBackwardBeforeForward)
	}
	_, batch := l.lastInput.Dims()
	if err := tensor.Check("Linear.Backward", tensor.Shape{l.outFeatures, batch}, tensor.Of(outputGrad)); err != nil {
		return nil, err
	}
	s := l.reduction.scale(batch)

	var dW mat.Dense
	dW.Mul(outputGrad, l.lastInput.T())
	dW.Scale(s, &dW)
	l.weightGrad.Add(l.weightGrad, &dW)

	for o := 0; o < l.outFeatures; o++ {
		l.biasGrad.SetVec(o, l.biasGrad.AtVec(o)+s*floats.Sum(outputGrad.RawRowView(o)))
	}

	inputGrad := mat.NewDense(l.inFeatures, batch, nil)
	inputGrad.Mul(l.weight.T(), outputGrad)
	return inputGrad, nil
}

// VisitParams visits (weight, weight_grad) and then (bias, bias_grad).
func (l *Linear) VisitParams(v ParamVisitor) error {
	if err := v.VisitMatrix(l.weight, l.weightGrad); err != nil {
		return fmt.Errorf("weight: %w", err)
	}
	if err := v.VisitVector(l.bias, l.biasGrad); err != nil {
		return fmt.Errorf("bias: %w", err)
	}
	return nil
}

// ZeroGrad clears the weight and bias gradients.
func (l *Linear) ZeroGrad() {
	l.weightGrad.Zero()
	l.biasGrad.Zero()
}

// Weight returns the weight matrix. Mutating it changes the layer.
func (l *Linear) Weight() *mat.Dense {
	return l.weight
}

// Bias returns the bias vector. Mutating it changes the layer.
func (l *Linear) Bias() *mat.VecDense {
	return l.bias
}

// WeightGrad returns the accumulated weight gradient.
func (l *Linear) WeightGrad() *mat.Dense {
	return l.weightGrad
}

// BiasGrad returns the accumulated bias gradient.
func (l *Linear) BiasGrad() *mat.VecDense {
	return l.biasGrad
}

// InFeatures returns the number of input features.
func (l *Linear) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear) OutFeatures() int {
	return l.outFeatures
}

// Reduction returns the batch reduction used for parameter gradients.
func (l *Linear) Reduction() GradReduction {
	return l.reduction
}
