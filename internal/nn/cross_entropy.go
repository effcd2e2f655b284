package nn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// logEpsilon keeps log() finite when a probability underflows to zero.
const logEpsilon = 1e-15

// SoftmaxCrossEntropyLoss fuses a softmax over the class axis with
// cross-entropy against one-hot (or soft) targets.
//
// Mathematical Formulation:
//
//	probs = Softmax(logits - max(logits))   // per batch column
//	Loss  = -(1/batch) * Σ target * log(probs + ε)
//
// Gradient (Backward):
//
//	∂L/∂logits = (probs - target) / batch
//
// Subtracting the column maximum keeps every exponent ≤ 0, so large logits
// cannot overflow.
//
// Usage:
//
//	criterion := nn.NewSoftmaxCrossEntropyLoss()
//	logits, _ := model.Forward(input)            // [num_classes, batch_size]
//	loss, _ := criterion.Forward(logits, onehot) // onehot: [num_classes, batch_size]
//	grad, _ := criterion.Backward()
type SoftmaxCrossEntropyLoss struct {
	probs      *mat.Dense
	lastTarget *mat.Dense
}

// NewSoftmaxCrossEntropyLoss creates a new fused softmax + cross-entropy loss.
func NewSoftmaxCrossEntropyLoss() *SoftmaxCrossEntropyLoss {
	return &SoftmaxCrossEntropyLoss{}
}

// Forward computes the mean cross-entropy over the batch.
//
// Parameters:
//   - prediction: raw logits with shape [num_classes, batch_size]
//   - target: class distribution per column with the same shape
func (c *SoftmaxCrossEntropyLoss) Forward(prediction, target *mat.Dense) (float64, error) {
	c.probs, c.lastTarget = nil, nil
	if err := checkLossInputs("SoftmaxCrossEntropyLoss.Forward", prediction, target); err != nil {
		return 0, err
	}
	c.probs = Softmax(prediction)
	c.lastTarget = mat.DenseCopyOf(target)

	rows, batch := prediction.Dims()
	var total float64
	for i := 0; i < rows; i++ {
		p := c.probs.RawRowView(i)
		for j := 0; j < batch; j++ {
			total += target.At(i, j) * math.Log(p[j]+logEpsilon)
		}
	}

	return -total / float64(batch), nil
}

// Backward returns (probs - target) / batch_size.
func (c *SoftmaxCrossEntropyLoss) Backward() (*mat.Dense, error) {
	if c.probs == nil {
		return nil, fmt.Errorf("SoftmaxCrossEntropyLoss.Backward: %w", ErrBackwardBeforeForward)
	}
	_, batch := c.probs.Dims()

	var grad mat.Dense
	grad.Sub(c.probs, c.lastTarget)
	grad.Scale(1/float64(batch), &grad)
	return &grad, nil
}

// Probabilities returns a copy of the softmax output of the most recent
// Forward, or nil before the first call.
func (c *SoftmaxCrossEntropyLoss) Probabilities() *mat.Dense {
	if c.probs == nil {
		return nil
	}
	return mat.DenseCopyOf(c.probs)
}

// Softmax normalizes every column of logits into a probability
// distribution, subtracting the column maximum first.
func Softmax(logits mat.Matrix) *mat.Dense {
	rows, cols := logits.Dims()
	probs := mat.NewDense(rows, cols, nil)
	col := make([]float64, rows)

	for j := 0; j < cols; j++ {
		mat.Col(col, j, logits)
		floats.AddConst(-floats.Max(col), col)
		for i, v := range col {
			col[i] = math.Exp(v)
		}
		floats.Scale(1/floats.Sum(col), col)
		probs.SetCol(j, col)
	}

	return probs
}
