package optim_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/INDA25PlusPlus/puhl-ml/internal/nn"
	"github.com/INDA25PlusPlus/puhl-ml/internal/optim"
	"github.com/INDA25PlusPlus/puhl-ml/internal/tensor"
)

// paramSet is a minimal nn.Parameterized with a fixed visit order.
type paramSet struct {
	matrices   []*mat.Dense
	matrixGrad []*mat.Dense
	vectors    []*mat.VecDense
	vectorGrad []*mat.VecDense
}

func (p *paramSet) VisitParams(v nn.ParamVisitor) error {
	for i := range p.matrices {
		if err := v.VisitMatrix(p.matrices[i], p.matrixGrad[i]); err != nil {
			return err
		}
	}
	for i := range p.vectors {
		if err := v.VisitVector(p.vectors[i], p.vectorGrad[i]); err != nil {
			return err
		}
	}
	return nil
}

func (p *paramSet) ZeroGrad() {
	for _, g := range p.matrixGrad {
		g.Zero()
	}
	for _, g := range p.vectorGrad {
		g.Zero()
	}
}

func scalarParam(value, grad float64) *paramSet {
	return &paramSet{
		vectors:    []*mat.VecDense{mat.NewVecDense(1, []float64{value})},
		vectorGrad: []*mat.VecDense{mat.NewVecDense(1, []float64{grad})},
	}
}

// TestSGD_SimpleUpdate tests SGD on a matrix and a vector.
func TestSGD_SimpleUpdate(t *testing.T) {
	opt := optim.NewSGD(optim.SGDConfig{LR: 0.1})

	param := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	grad := mat.NewDense(2, 2, []float64{1, 1, 1, -1})
	require.NoError(t, opt.VisitMatrix(param, grad))

	want := mat.NewDense(2, 2, []float64{0.9, 1.9, 2.9, 4.1})
	assert.True(t, mat.EqualApprox(want, param, 1e-12), "param = %v", mat.Formatted(param))

	bias := mat.NewVecDense(2, []float64{1, 1})
	require.NoError(t, opt.VisitVector(bias, mat.NewVecDense(2, []float64{10, -10})))
	assert.InDeltaSlice(t, []float64{0, 2}, bias.RawVector().Data, 1e-12)

	// Gradients are read, never written.
	assert.Equal(t, []float64{1, 1, 1, -1}, grad.RawMatrix().Data)
}

func TestSGD_DefaultsAndLR(t *testing.T) {
	opt := optim.NewSGD(optim.SGDConfig{})
	assert.InDelta(t, 0.01, opt.LR(), 1e-15)

	opt.SetLR(0.5)
	assert.InDelta(t, 0.5, opt.LR(), 1e-15)
}

func TestSGD_ShapeMismatch(t *testing.T) {
	opt := optim.NewSGD(optim.SGDConfig{LR: 0.1})

	err := opt.VisitMatrix(mat.NewDense(2, 3, nil), mat.NewDense(3, 2, nil))
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)

	err = opt.VisitVector(mat.NewVecDense(2, nil), mat.NewVecDense(3, nil))
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

// TestSGDMomentum_TwoPasses checks that velocity carries over between
// passes: v = m*v_prev + g, p -= lr*v.
func TestSGDMomentum_TwoPasses(t *testing.T) {
	opt := optim.NewSGDMomentum(optim.MomentumConfig{LR: 0.1, Momentum: 0.9})
	model := scalarParam(1.0, 1.0)

	// Pass 1: v = 1, p = 1 - 0.1 = 0.9.
	require.NoError(t, optim.Step(opt, model))
	assert.InDelta(t, 0.9, model.vectors[0].AtVec(0), 1e-12)
	assert.InDelta(t, 1.0, opt.VectorVelocity(0).AtVec(0), 1e-12)

	// Pass 2: v = 0.9*1 + 1 = 1.9, p = 0.9 - 0.19 = 0.71.
	require.NoError(t, optim.Step(opt, model))
	assert.InDelta(t, 0.71, model.vectors[0].AtVec(0), 1e-12)
	assert.InDelta(t, 1.9, opt.VectorVelocity(0).AtVec(0), 1e-12)

	matrices, vectors := opt.Velocities()
	assert.Equal(t, 0, matrices)
	assert.Equal(t, 1, vectors)
	assert.Nil(t, opt.MatrixVelocity(0))
	assert.Nil(t, opt.VectorVelocity(1))
}

func TestSGDMomentum_ZeroMomentumMatchesSGD(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	data := make([]float64, 12)
	grads := make([]float64, 12)
	for i := range data {
		data[i] = rng.NormFloat64()
		grads[i] = rng.NormFloat64()
	}

	a := mat.NewDense(3, 4, append([]float64(nil), data...))
	b := mat.NewDense(3, 4, append([]float64(nil), data...))
	g := mat.NewDense(3, 4, grads)

	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.05})
	momentum := optim.NewSGDMomentum(optim.MomentumConfig{LR: 0.05})
	for range 3 {
		sgd.StartPass()
		momentum.StartPass()
		require.NoError(t, sgd.VisitMatrix(a, g))
		require.NoError(t, momentum.VisitMatrix(b, g))
	}
	assert.True(t, mat.EqualApprox(a, b, 1e-12))
}

// TestSGDMomentum_DetectsReorderedVisits checks that a pass visiting
// parameters in a different order than the one before fails instead of
// applying the wrong velocity.
func TestSGDMomentum_DetectsReorderedVisits(t *testing.T) {
	opt := optim.NewSGDMomentum(optim.MomentumConfig{LR: 0.1, Momentum: 0.9})

	first := &paramSet{
		matrices:   []*mat.Dense{mat.NewDense(2, 3, nil), mat.NewDense(4, 2, nil)},
		matrixGrad: []*mat.Dense{mat.NewDense(2, 3, nil), mat.NewDense(4, 2, nil)},
	}
	require.NoError(t, optim.Step(opt, first))

	swapped := &paramSet{
		matrices:   []*mat.Dense{first.matrices[1], first.matrices[0]},
		matrixGrad: []*mat.Dense{first.matrixGrad[1], first.matrixGrad[0]},
	}
	err := optim.Step(opt, swapped)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
	assert.Contains(t, err.Error(), "optimizer step")
}

func TestSGDMomentum_MatrixVelocity(t *testing.T) {
	opt := optim.NewSGDMomentum(optim.MomentumConfig{LR: 1, Momentum: 0.5})
	model := &paramSet{
		matrices:   []*mat.Dense{mat.NewDense(1, 2, []float64{0, 0})},
		matrixGrad: []*mat.Dense{mat.NewDense(1, 2, []float64{2, -4})},
	}

	require.NoError(t, optim.Step(opt, model))
	require.NoError(t, optim.Step(opt, model))

	// v = 0.5*[2,-4] + [2,-4] = [3,-6]; p = -[2,-4] - [3,-6] = [-5,10].
	assert.InDeltaSlice(t, []float64{3, -6}, opt.MatrixVelocity(0).RawMatrix().Data, 1e-12)
	assert.InDeltaSlice(t, []float64{-5, 10}, model.matrices[0].RawMatrix().Data, 1e-12)
	assert.InDelta(t, 0.5, opt.Momentum(), 1e-15)
}

// TestAdam_FirstStep checks that the bias-corrected first step moves each
// element by about lr in the direction opposite to its gradient.
func TestAdam_FirstStep(t *testing.T) {
	opt := optim.NewAdam(optim.AdamConfig{LR: 0.1})
	model := &paramSet{
		matrices:   []*mat.Dense{mat.NewDense(1, 3, []float64{1, 1, 1})},
		matrixGrad: []*mat.Dense{mat.NewDense(1, 3, []float64{0.5, -2, 100})},
		vectors:    []*mat.VecDense{mat.NewVecDense(1, []float64{0})},
		vectorGrad: []*mat.VecDense{mat.NewVecDense(1, []float64{-0.01})},
	}

	require.NoError(t, optim.Step(opt, model))
	assert.Equal(t, 1, opt.Timestep())
	assert.InDeltaSlice(t, []float64{0.9, 1.1, 0.9}, model.matrices[0].RawMatrix().Data, 1e-5)
	assert.InDelta(t, 0.1, model.vectors[0].AtVec(0), 1e-5)
}

func TestAdam_Defaults(t *testing.T) {
	opt := optim.NewAdam(optim.AdamConfig{})
	assert.InDelta(t, 0.001, opt.LR(), 1e-15)
	assert.Equal(t, 0, opt.Timestep())

	opt.SetLR(0.01)
	assert.InDelta(t, 0.01, opt.LR(), 1e-15)
}

func TestAdam_RequiresStartPass(t *testing.T) {
	opt := optim.NewAdam(optim.AdamConfig{})

	err := opt.VisitMatrix(mat.NewDense(1, 1, nil), mat.NewDense(1, 1, nil))
	require.ErrorIs(t, err, optim.ErrPassNotStarted)

	err = opt.VisitVector(mat.NewVecDense(1, nil), mat.NewVecDense(1, nil))
	require.ErrorIs(t, err, optim.ErrPassNotStarted)
}

// TestAdam_Minimizes runs Adam on f(x) = (x-3)^2.
func TestAdam_Minimizes(t *testing.T) {
	opt := optim.NewAdam(optim.AdamConfig{LR: 0.1})
	model := scalarParam(0, 0)

	for range 500 {
		x := model.vectors[0].AtVec(0)
		model.vectorGrad[0].SetVec(0, 2*(x-3))
		require.NoError(t, optim.Step(opt, model))
	}
	assert.InDelta(t, 3, model.vectors[0].AtVec(0), 0.05)
}

// TestStep_Sequential trains a small network one step and checks the
// first layer moved by exactly -lr times its gradient.
func TestStep_Sequential(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	first := nn.NewLinear(3, 4)
	second := nn.NewLinear(4, 2)
	model, err := nn.NewSequential(first, nn.NewReLU(), second)
	require.NoError(t, err)

	xavier, err := nn.NewXavierInitializer(rng)
	require.NoError(t, err)
	require.NoError(t, model.VisitParams(xavier))

	input := mat.NewDense(3, 5, nil)
	target := mat.NewDense(2, 5, nil)
	for i := range 3 {
		for j := range 5 {
			input.Set(i, j, rng.NormFloat64())
		}
	}
	for j := range 5 {
		target.Set(j%2, j, 1)
	}

	loss := nn.NewMSELoss()
	prediction, err := model.Forward(input)
	require.NoError(t, err)
	_, err = loss.Forward(prediction, target)
	require.NoError(t, err)
	grad, err := loss.Backward()
	require.NoError(t, err)
	_, err = model.Backward(grad)
	require.NoError(t, err)

	before := mat.DenseCopyOf(first.Weight())
	var want mat.Dense
	want.Scale(-0.5, first.WeightGrad())
	want.Add(&want, before)

	require.NoError(t, optim.Step(optim.NewSGD(optim.SGDConfig{LR: 0.5}), model))
	assert.True(t, mat.EqualApprox(&want, first.Weight(), 1e-12))

	model.ZeroGrad()
	assert.Zero(t, mat.Sum(first.WeightGrad()))
}
