// Copyright 2025 puhl-ml authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training neural networks.
//
// # Overview
//
// This package contains:
//   - SGD: plain Stochastic Gradient Descent
//   - SGDMomentum: SGD with a velocity buffer per parameter
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// # Basic Usage
//
//	optimizer := optim.NewSGDMomentum(optim.MomentumConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
//
//	for _, batch := range batches {
//	    logits, _ := model.Forward(batch.Inputs)
//	    _, _ = criterion.Forward(logits, batch.Targets)
//	    grad, _ := criterion.Backward()
//	    _, _ = model.Backward(grad)
//
//	    if err := optim.Step(optimizer, model); err != nil {
//	        return err
//	    }
//	    model.ZeroGrad()
//	}
//
// # Stateful Optimizers
//
// SGDMomentum and Adam keep one buffer per parameter, matched by the
// position of the parameter in the visit order. A model must therefore
// visit its parameters in the same order on every step, which every
// container in package nn does. Step calls StartPass for you.
package optim
