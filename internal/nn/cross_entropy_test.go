package nn_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/INDA25PlusPlus/puhl-ml/internal/nn"
	"github.com/INDA25PlusPlus/puhl-ml/internal/tensor"
)

func TestSoftmaxCrossEntropy_ProbabilitiesSumToOne(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	ce := nn.NewSoftmaxCrossEntropyLoss()
	assert.Nil(t, ce.Probabilities())

	logits := randDense(rng, 10, 8)
	logits.Scale(20, logits)

	loss, err := ce.Forward(logits, oneHot(10, 0, 1, 2, 3, 4, 5, 6, 7))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, loss, 0.0)

	probs := ce.Probabilities()
	for j := 0; j < 8; j++ {
		col := mat.Col(nil, j, probs)
		assert.InDelta(t, 1.0, floats.Sum(col), 1e-12, "column %d", j)
		assert.GreaterOrEqual(t, floats.Min(col), 0.0)
	}
}

func TestSoftmaxCrossEntropy_UniformLogits(t *testing.T) {
	ce := nn.NewSoftmaxCrossEntropyLoss()

	// Equal logits give -log(1/C) for every sample.
	loss, err := ce.Forward(mat.NewDense(4, 2, nil), oneHot(4, 1, 3))
	require.NoError(t, err)
	assert.InDelta(t, math.Log(4), loss, 1e-12)
}

func TestSoftmaxCrossEntropy_ConfidenceDrivesLossToZero(t *testing.T) {
	ce := nn.NewSoftmaxCrossEntropyLoss()
	target := oneHot(3, 2)

	prev := math.Inf(1)
	for _, margin := range []float64{0, 1, 5, 10, 20, 40} {
		logits := mat.NewDense(3, 1, []float64{0, 0, margin})
		loss, err := ce.Forward(logits, target)
		require.NoError(t, err)
		assert.Less(t, loss, prev, "margin %v", margin)
		prev = loss
	}
	assert.InDelta(t, 0, prev, 1e-12)
}

func TestSoftmaxCrossEntropy_LargeLogitsStayFinite(t *testing.T) {
	ce := nn.NewSoftmaxCrossEntropyLoss()

	logits := mat.NewDense(2, 1, []float64{1000, 1001})
	loss, err := ce.Forward(logits, oneHot(2, 0))
	require.NoError(t, err)
	assert.False(t, math.IsNaN(loss) || math.IsInf(loss, 0))
	assert.InDelta(t, 1+math.Log1p(math.Exp(-1)), loss, 1e-9)

	// A probability that underflows to 0 is guarded by ε.
	loss, err = ce.Forward(mat.NewDense(2, 1, []float64{0, 1e4}), oneHot(2, 0))
	require.NoError(t, err)
	assert.InDelta(t, -math.Log(1e-15), loss, 1e-6)
}

func TestSoftmaxCrossEntropy_Backward(t *testing.T) {
	ce := nn.NewSoftmaxCrossEntropyLoss()

	logits := mat.NewDense(2, 2, []float64{
		0, math.Log(3),
		0, 0,
	})
	_, err := ce.Forward(logits, oneHot(2, 0, 1))
	require.NoError(t, err)

	// Column 0: p = [0.5, 0.5]; column 1: p = [0.75, 0.25].
	grad, err := ce.Backward()
	require.NoError(t, err)
	want := mat.NewDense(2, 2, []float64{
		(0.5 - 1) / 2, 0.75 / 2,
		0.5 / 2, (0.25 - 1) / 2,
	})
	assert.True(t, mat.EqualApprox(want, grad, 1e-12), "got %v", mat.Formatted(grad))
}

func TestSoftmaxCrossEntropy_Errors(t *testing.T) {
	ce := nn.NewSoftmaxCrossEntropyLoss()

	_, err := ce.Backward()
	assert.ErrorIs(t, err, nn.ErrBackwardBeforeForward)

	_, err = ce.Forward(mat.NewDense(3, 2, nil), mat.NewDense(2, 2, nil))
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)

	_, err = ce.Forward(&mat.Dense{}, &mat.Dense{})
	assert.ErrorIs(t, err, tensor.ErrEmpty)
}

func TestSoftmaxCrossEntropy_FailedForwardClearsCache(t *testing.T) {
	ce := nn.NewSoftmaxCrossEntropyLoss()

	_, err := ce.Forward(mat.NewDense(2, 1, []float64{1, 2}), oneHot(2, 1))
	require.NoError(t, err)
	require.NotNil(t, ce.Probabilities())

	_, err = ce.Forward(mat.NewDense(3, 2, nil), mat.NewDense(2, 2, nil))
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)

	_, err = ce.Backward()
	require.ErrorIs(t, err, nn.ErrBackwardBeforeForward)
	assert.Nil(t, ce.Probabilities())
}

func TestSoftmax(t *testing.T) {
	probs := nn.Softmax(mat.NewDense(3, 1, []float64{1, 2, 3}))

	e := []float64{math.Exp(1), math.Exp(2), math.Exp(3)}
	floats.Scale(1/floats.Sum(e), e)
	assert.InDeltaSlice(t, e, mat.Col(nil, 0, probs), 1e-12)
}
