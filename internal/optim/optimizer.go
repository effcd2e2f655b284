// Package optim implements optimization algorithms for training neural networks.
//
// This package provides:
//   - Optimizer interface: a ParamVisitor that updates parameters in place
//   - SGD: plain gradient descent
//   - SGDMomentum: gradient descent with a velocity buffer per parameter
//   - Adam: Adaptive Moment Estimation
//
// Optimizers never see layers, only (parameter, gradient) pairs handed to
// them by nn.Parameterized.VisitParams.
//
// Example usage:
//
//	optimizer := optim.NewSGDMomentum(optim.MomentumConfig{LR: 0.01, Momentum: 0.9})
//
//	for _, batch := range batches {
//	    logits, _ := model.Forward(batch.Inputs)
//	    loss, _ := criterion.Forward(logits, batch.Targets)
//	    grad, _ := criterion.Backward()
//	    _, _ = model.Backward(grad)
//
//	    _ = optim.Step(optimizer, model)
//	    model.ZeroGrad()
//	}
package optim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/INDA25PlusPlus/puhl-ml/internal/nn"
	"github.com/INDA25PlusPlus/puhl-ml/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - VisitMatrix / VisitVector: update one parameter from its gradient
//   - StartPass: mark the beginning of a full walk over the parameters
//   - LR / SetLR: learning rate access (for monitoring/scheduling)
type Optimizer interface {
	nn.ParamVisitor

	// StartPass must be called before every full walk over a model's
	// parameters. Stateful optimizers use it to rewind the position of
	// their per-parameter buffers.
	StartPass()

	// LR returns the current learning rate.
	LR() float64

	// SetLR updates the learning rate.
	SetLR(lr float64)
}

// Step runs one optimizer pass over every parameter of model.
//
// Gradients are left untouched; call model.ZeroGrad afterwards.
func Step(opt Optimizer, model nn.Parameterized) error {
	opt.StartPass()
	if err := model.VisitParams(opt); err != nil {
		return fmt.Errorf("optimizer step: %w", err)
	}
	return nil
}

func checkMatrixPair(op string, param, grad *mat.Dense) error {
	return tensor.Check(op, tensor.Of(param), tensor.Of(grad))
}

func checkVectorPair(op string, param, grad *mat.VecDense) error {
	return tensor.Check(op, tensor.OfVec(param), tensor.OfVec(grad))
}
