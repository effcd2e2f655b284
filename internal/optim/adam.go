package optim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Adam combines ideas from RMSprop and momentum:
//   - Maintains exponential moving averages of gradients (first moment)
//   - Maintains exponential moving averages of squared gradients (second moment)
//   - Applies bias correction to compensate for initialization at zero
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²
//	m_hat = m_t / (1 - beta1^t)
//	v_hat = v_t / (1 - beta2^t)
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)
//
// Moment buffers are matched to parameters by visit position, like
// SGDMomentum. The timestep t advances once per StartPass.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	lr    float64
	beta1 float64
	beta2 float64
	eps   float64
	t     int

	// Bias correction factors for the current timestep.
	correction1 float64
	correction2 float64

	firstMatrices  matrixSlots
	secondMatrices matrixSlots
	firstVectors   vectorSlots
	secondVectors  vectorSlots
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float64    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer.
//
// Default hyperparameters:
//   - LR: 0.001
//   - Beta1: 0.9
//   - Beta2: 0.999
//   - Eps: 1e-8
func NewAdam(config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		lr:    config.LR,
		beta1: config.Betas[0],
		beta2: config.Betas[1],
		eps:   config.Eps,
	}
}

// StartPass advances the timestep and rewinds the moment buffers.
func (a *Adam) StartPass() {
	a.t++
	a.correction1 = 1 - math.Pow(a.beta1, float64(a.t))
	a.correction2 = 1 - math.Pow(a.beta2, float64(a.t))

	a.firstMatrices.rewind()
	a.secondMatrices.rewind()
	a.firstVectors.rewind()
	a.secondVectors.rewind()
}

// VisitMatrix applies one Adam update to a matrix parameter.
func (a *Adam) VisitMatrix(param, grad *mat.Dense) error {
	const op = "Adam.VisitMatrix"
	if a.t == 0 {
		return fmt.Errorf("%s: %w", op, ErrPassNotStarted)
	}
	if err := checkMatrixPair(op, param, grad); err != nil {
		return err
	}
	m, err := a.firstMatrices.next(op, param)
	if err != nil {
		return err
	}
	v, err := a.secondMatrices.next(op, param)
	if err != nil {
		return err
	}

	rows, _ := param.Dims()
	for i := 0; i < rows; i++ {
		a.update(param.RawRowView(i), grad.RawRowView(i), m.RawRowView(i), v.RawRowView(i))
	}
	return nil
}

// VisitVector applies one Adam update to a vector parameter.
func (a *Adam) VisitVector(param, grad *mat.VecDense) error {
	const op = "Adam.VisitVector"
	if a.t == 0 {
		return fmt.Errorf("%s: %w", op, ErrPassNotStarted)
	}
	if err := checkVectorPair(op, param, grad); err != nil {
		return err
	}
	m, err := a.firstVectors.next(op, param)
	if err != nil {
		return err
	}
	v, err := a.secondVectors.next(op, param)
	if err != nil {
		return err
	}

	for i := 0; i < param.Len(); i++ {
		g := grad.AtVec(i)
		mi := a.beta1*m.AtVec(i) + (1-a.beta1)*g
		vi := a.beta2*v.AtVec(i) + (1-a.beta2)*g*g
		m.SetVec(i, mi)
		v.SetVec(i, vi)
		param.SetVec(i, param.AtVec(i)-a.step(mi, vi))
	}
	return nil
}

// update applies Adam element-wise to contiguous slices of equal length.
func (a *Adam) update(param, grad, m, v []float64) {
	for i, g := range grad {
		m[i] = a.beta1*m[i] + (1-a.beta1)*g
		v[i] = a.beta2*v[i] + (1-a.beta2)*g*g
		param[i] -= a.step(m[i], v[i])
	}
}

func (a *Adam) step(m, v float64) float64 {
	mHat := m / a.correction1
	vHat := v / a.correction2
	return a.lr * mHat / (math.Sqrt(vHat) + a.eps)
}

// LR returns the current learning rate.
func (a *Adam) LR() float64 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float64) {
	a.lr = lr
}

// Timestep returns the number of passes started so far.
func (a *Adam) Timestep() int {
	return a.t
}
