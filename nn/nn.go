// Copyright 2025 puhl-ml authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/INDA25PlusPlus/puhl-ml/internal/nn"
)

// Layer is a differentiable transformation of a [features, batch] matrix.
type Layer = nn.Layer

// ParamVisitor receives every (parameter, gradient) pair of a model.
type ParamVisitor = nn.ParamVisitor

// Parameterized is implemented by anything holding trainable parameters.
type Parameterized = nn.Parameterized

// Loss is a scalar objective over a prediction and a target.
type Loss = nn.Loss

// Layers

// Linear represents a fully connected (dense) layer.
type Linear = nn.Linear

// LinearOption configures a Linear layer.
type LinearOption = nn.LinearOption

// GradReduction selects how Linear folds the batch axis into its gradients.
type GradReduction = nn.GradReduction

// Batch reductions for Linear parameter gradients.
const (
	ReduceSum  = nn.ReduceSum
	ReduceMean = nn.ReduceMean
)

// NewLinear creates a new linear layer with zeroed parameters.
//
// Example:
//
//	layer := nn.NewLinear(784, 128)
func NewLinear(inFeatures, outFeatures int, opts ...LinearOption) *Linear {
	return nn.NewLinear(inFeatures, outFeatures, opts...)
}

// NewLinearFrom creates a linear layer from copies of weight and bias.
var NewLinearFrom = nn.NewLinearFrom

// WithGradReduction sets the batch reduction of a Linear layer's gradients.
func WithGradReduction(r GradReduction) LinearOption {
	return nn.WithGradReduction(r)
}

// Activations

// ReLU represents the Rectified Linear Unit activation.
type ReLU = nn.ReLU

// NewReLU creates a new ReLU activation.
func NewReLU() *ReLU {
	return nn.NewReLU()
}

// Softmax applies a numerically stable softmax to every column.
var Softmax = nn.Softmax

// Containers

// Sequential runs layers in order and backpropagates in reverse.
type Sequential = nn.Sequential

// NewSequential creates a Sequential container from at least one layer.
//
// Example:
//
//	model, err := nn.NewSequential(
//	    nn.NewLinear(784, 128),
//	    nn.NewReLU(),
//	    nn.NewLinear(128, 10),
//	)
func NewSequential(layers ...Layer) (*Sequential, error) {
	return nn.NewSequential(layers...)
}

// Loss functions

// MSELoss is the mean squared error over every element.
type MSELoss = nn.MSELoss

// NewMSELoss creates a new MSE loss.
func NewMSELoss() *MSELoss {
	return nn.NewMSELoss()
}

// SoftmaxCrossEntropyLoss fuses softmax with cross-entropy.
type SoftmaxCrossEntropyLoss = nn.SoftmaxCrossEntropyLoss

// NewSoftmaxCrossEntropyLoss creates a new softmax cross-entropy loss.
func NewSoftmaxCrossEntropyLoss() *SoftmaxCrossEntropyLoss {
	return nn.NewSoftmaxCrossEntropyLoss()
}

// Initialization

// XavierInitializer fills weights from N(0, sqrt(2/(rows+cols))) and zeroes biases.
type XavierInitializer = nn.XavierInitializer

// NewXavierInitializer creates an initializer drawing from src.
var NewXavierInitializer = nn.NewXavierInitializer

// Errors

var (
	ErrBackwardBeforeForward = nn.ErrBackwardBeforeForward
	ErrEmptyNetwork          = nn.ErrEmptyNetwork
	ErrNilSource             = nn.ErrNilSource
)
