// Package nn implements the feed-forward training core.
//
// This package provides building blocks for hand-wired networks:
//   - Layer interface: forward evaluation and reverse-mode backward pass
//   - ParamVisitor / Parameterized: decoupled access to trainable tensors
//   - Linear: fully connected layer, the only component owning parameters
//   - ReLU: activation layer
//   - Loss functions: MSELoss, SoftmaxCrossEntropyLoss
//   - Sequential: fixed chain of layers
//   - XavierInitializer: parameter initialization visitor
//
// Activations are gonum matrices laid out features × batch; each column is
// one sample.
package nn

import (
	"gonum.org/v1/gonum/mat"
)

// Layer is a differentiable computation unit.
//
// Forward computes the output for input and caches whatever Backward needs.
// Each call overwrites the cache of the previous one; a call that returns an
// error leaves no cache behind.
//
// Backward consumes the cache of the most recent Forward, returns the
// gradient with respect to that input and adds the parameter gradients of
// the layer (if any) into its gradient tensors. Calling Backward before
// Forward returns ErrBackwardBeforeForward.
type Layer interface {
	Forward(input *mat.Dense) (*mat.Dense, error)
	Backward(outputGrad *mat.Dense) (*mat.Dense, error)
}

// ParamVisitor is applied to every (parameter, gradient) pair of a
// Parameterized component, one method per tensor rank.
//
// Optimizers and initializers implement ParamVisitor; they mutate param in
// place and must treat grad as read-only. They never learn which component
// owns the tensors.
type ParamVisitor interface {
	// VisitMatrix is called for rank-2 parameters such as weight matrices.
	VisitMatrix(param, grad *mat.Dense) error

	// VisitVector is called for rank-1 parameters such as bias vectors.
	VisitVector(param, grad *mat.VecDense) error
}

// Parameterized is implemented by components that own trainable tensors.
type Parameterized interface {
	// VisitParams calls v once per owned parameter, always in the same
	// order. The first visitor error stops the walk and is returned.
	VisitParams(v ParamVisitor) error

	// ZeroGrad resets every gradient tensor to zero. Parameters are not
	// touched.
	ZeroGrad()
}

// featureSizer is implemented by layers with a fixed input and output
// feature count. Sequential uses it to validate adjacent layers.
type featureSizer interface {
	InFeatures() int
	OutFeatures() int
}
