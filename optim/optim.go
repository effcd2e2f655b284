// Copyright 2025 puhl-ml authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/INDA25PlusPlus/puhl-ml/internal/nn"
	"github.com/INDA25PlusPlus/puhl-ml/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Step runs one optimizer pass over every parameter of model.
func Step(opt Optimizer, model nn.Parameterized) error {
	return optim.Step(opt, model)
}

// SGD (Stochastic Gradient Descent)

// SGD represents the plain SGD optimizer.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer. A zero LR selects 0.01.
//
// Example:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.01})
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}

// SGDMomentum represents SGD with momentum.
type SGDMomentum = optim.SGDMomentum

// MomentumConfig contains configuration for SGDMomentum.
type MomentumConfig = optim.MomentumConfig

// NewSGDMomentum creates a new SGD optimizer with momentum. A zero LR
// selects 0.01.
//
// Example:
//
//	optimizer := optim.NewSGDMomentum(optim.MomentumConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
func NewSGDMomentum(config MomentumConfig) *SGDMomentum {
	return optim.NewSGDMomentum(config)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam = optim.Adam

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer with bias correction.
//
// Example:
//
//	optimizer := optim.NewAdam(optim.AdamConfig{
//	    LR:    0.001,
//	    Betas: [2]float64{0.9, 0.999},
//	    Eps:   1e-8,
//	})
func NewAdam(config AdamConfig) *Adam {
	return optim.NewAdam(config)
}

// ErrPassNotStarted is returned when a stateful optimizer is visited
// before StartPass.
var ErrPassNotStarted = optim.ErrPassNotStarted
