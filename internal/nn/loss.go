package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/INDA25PlusPlus/puhl-ml/internal/tensor"
)

// Loss is a scalar objective over a prediction and a target of equal shape.
//
// Forward returns the loss and caches what Backward needs. Backward returns
// the gradient of the loss with respect to the prediction of the most
// recent Forward, or ErrBackwardBeforeForward if there was none.
type Loss interface {
	Forward(prediction, target *mat.Dense) (float64, error)
	Backward() (*mat.Dense, error)
}

// MSELoss computes Mean Squared Error loss.
//
// Loss = mean((predictions - targets)²)
//
// The mean runs over every element (features × batch), and the gradient is
// 2/N * (predictions - targets) with the same N.
//
// Example:
//
//	mse := nn.NewMSELoss()
//	loss, err := mse.Forward(predictions, targets)
//	grad, err := mse.Backward()
type MSELoss struct {
	lastPrediction *mat.Dense
	lastTarget     *mat.Dense
}

// NewMSELoss creates a new MSE loss function.
func NewMSELoss() *MSELoss {
	return &MSELoss{}
}

// Forward computes the MSE loss.
func (m *MSELoss) Forward(prediction, target *mat.Dense) (float64, error) {
	m.lastPrediction, m.lastTarget = nil, nil
	if err := checkLossInputs("MSELoss.Forward", prediction, target); err != nil {
		return 0, err
	}
	m.lastPrediction = mat.DenseCopyOf(prediction)
	m.lastTarget = mat.DenseCopyOf(target)

	var sq mat.Dense
	sq.Sub(prediction, target)
	sq.MulElem(&sq, &sq)

	return mat.Sum(&sq) / float64(tensor.Of(prediction).NumElements()), nil
}

// Backward returns 2/N * (prediction - target).
func (m *MSELoss) Backward() (*mat.Dense, error) {
	if m.lastPrediction == nil {
		return nil, fmt.Errorf("MSELoss.Backward: %w", ErrBackwardBeforeForward)
	}

	n := float64(tensor.Of(m.lastPrediction).NumElements())

	var grad mat.Dense
	grad.Sub(m.lastPrediction, m.lastTarget)
	grad.Scale(2/n, &grad)
	return &grad, nil
}

func checkLossInputs(op string, prediction, target *mat.Dense) error {
	if err := tensor.CheckNonEmpty(op, tensor.Of(prediction)); err != nil {
		return err
	}
	return tensor.Check(op, tensor.Of(prediction), tensor.Of(target))
}
