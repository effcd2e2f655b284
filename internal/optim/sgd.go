package optim

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SGD implements plain Stochastic Gradient Descent.
//
// Update rule:
//
//	param = param - lr * gradient
//
// SGD keeps no state between visits, so visit order does not matter.
type SGD struct {
	lr float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR float64 // Learning rate (default: 0.01)
}

// NewSGD creates a new SGD optimizer. A zero LR selects the default of
// 0.01; use SetLR to freeze updates with a zero rate.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD{lr: config.LR}
}

// VisitMatrix applies param -= lr * grad.
func (s *SGD) VisitMatrix(param, grad *mat.Dense) error {
	if err := checkMatrixPair("SGD.VisitMatrix", param, grad); err != nil {
		return err
	}
	rows, _ := param.Dims()
	for i := 0; i < rows; i++ {
		floats.AddScaled(param.RawRowView(i), -s.lr, grad.RawRowView(i))
	}
	return nil
}

// VisitVector applies param -= lr * grad.
func (s *SGD) VisitVector(param, grad *mat.VecDense) error {
	if err := checkVectorPair("SGD.VisitVector", param, grad); err != nil {
		return err
	}
	param.AddScaledVec(param, -s.lr, grad)
	return nil
}

// StartPass is a no-op; SGD is stateless.
func (s *SGD) StartPass() {}

// LR returns the current learning rate.
func (s *SGD) LR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}

// SGDMomentum implements Stochastic Gradient Descent with momentum.
//
// Update rule:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// One velocity buffer is kept per parameter, matched by visit position
// separately for matrices and vectors. The visit order therefore has to be
// identical on every pass, and StartPass has to be called before each one;
// a shape mismatch between a parameter and the buffer at its position is
// returned as an error.
//
// Example:
//
//	optimizer := optim.NewSGDMomentum(optim.MomentumConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
//	err := optim.Step(optimizer, model)
type SGDMomentum struct {
	lr       float64
	momentum float64
	matrices matrixSlots
	vectors  vectorSlots
}

// MomentumConfig holds configuration for SGDMomentum.
type MomentumConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (range: [0, 1), typically 0.9)
}

// NewSGDMomentum creates a new SGD optimizer with momentum. A zero LR
// selects the default of 0.01.
func NewSGDMomentum(config MomentumConfig) *SGDMomentum {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGDMomentum{
		lr:       config.LR,
		momentum: config.Momentum,
	}
}

// VisitMatrix updates the velocity at the current matrix position and
// applies it to param.
func (s *SGDMomentum) VisitMatrix(param, grad *mat.Dense) error {
	const op = "SGDMomentum.VisitMatrix"
	if err := checkMatrixPair(op, param, grad); err != nil {
		return err
	}
	velocity, err := s.matrices.next(op, param)
	if err != nil {
		return err
	}

	rows, _ := param.Dims()
	for i := 0; i < rows; i++ {
		v := velocity.RawRowView(i)
		floats.Scale(s.momentum, v)
		floats.Add(v, grad.RawRowView(i))
		floats.AddScaled(param.RawRowView(i), -s.lr, v)
	}
	return nil
}

// VisitVector updates the velocity at the current vector position and
// applies it to param.
func (s *SGDMomentum) VisitVector(param, grad *mat.VecDense) error {
	const op = "SGDMomentum.VisitVector"
	if err := checkVectorPair(op, param, grad); err != nil {
		return err
	}
	velocity, err := s.vectors.next(op, param)
	if err != nil {
		return err
	}

	velocity.AddScaledVec(grad, s.momentum, velocity)
	param.AddScaledVec(param, -s.lr, velocity)
	return nil
}

// StartPass rewinds both buffer cursors to the first parameter.
func (s *SGDMomentum) StartPass() {
	s.matrices.rewind()
	s.vectors.rewind()
}

// Velocities returns how many matrix and vector velocity buffers exist.
func (s *SGDMomentum) Velocities() (matrices, vectors int) {
	return s.matrices.len(), s.vectors.len()
}

// MatrixVelocity returns the velocity buffer at the given matrix position,
// or nil if no pass has reached it yet.
func (s *SGDMomentum) MatrixVelocity(index int) *mat.Dense {
	if index < 0 || index >= s.matrices.len() {
		return nil
	}
	return s.matrices.bufs[index]
}

// VectorVelocity returns the velocity buffer at the given vector position,
// or nil if no pass has reached it yet.
func (s *SGDMomentum) VectorVelocity(index int) *mat.VecDense {
	if index < 0 || index >= s.vectors.len() {
		return nil
	}
	return s.vectors.bufs[index]
}

// LR returns the current learning rate.
func (s *SGDMomentum) LR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGDMomentum) SetLR(lr float64) {
	s.lr = lr
}

// Momentum returns the momentum factor.
func (s *SGDMomentum) Momentum() float64 {
	return s.momentum
}
