// Copyright 2025 puhl-ml authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers and building blocks.
//
// # Overview
//
// This package contains:
//   - Layers: Linear
//   - Activations: ReLU
//   - Loss functions: SoftmaxCrossEntropyLoss, MSELoss
//   - Containers: Sequential
//   - Initialization: XavierInitializer
//
// Tensors are gonum matrices laid out as [features, batch]: every column is
// one sample. Vectors (biases) are *mat.VecDense.
//
// # Basic Usage
//
//	import (
//	    "math/rand/v2"
//
//	    "github.com/INDA25PlusPlus/puhl-ml/nn"
//	    "github.com/INDA25PlusPlus/puhl-ml/optim"
//	)
//
//	func main() {
//	    model, _ := nn.NewSequential(
//	        nn.NewLinear(784, 128),
//	        nn.NewReLU(),
//	        nn.NewLinear(128, 10),
//	    )
//	    xavier, _ := nn.NewXavierInitializer(rand.NewPCG(42, 0))
//	    _ = model.VisitParams(xavier)
//
//	    criterion := nn.NewSoftmaxCrossEntropyLoss()
//	    optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.1})
//
//	    logits, _ := model.Forward(images)   // images: [784, batch]
//	    loss, _ := criterion.Forward(logits, targets)
//	    grad, _ := criterion.Backward()
//	    _, _ = model.Backward(grad)
//	    _ = optim.Step(optimizer, model)
//	    model.ZeroGrad()
//	}
//
// # Gradient Accumulation
//
// Backward adds to the stored parameter gradients. Several backward passes
// before a single optimizer step sum their contributions; call ZeroGrad
// after each step.
//
// # Parameter Visitors
//
// Parameters are never exposed as a flat list. Instead a ParamVisitor is
// walked over every (parameter, gradient) pair in a fixed order: each Linear
// visits its weight and then its bias, and Sequential visits its layers
// first to last. Initializers and optimizers are both visitors.
package nn
