package trainer

import (
	"fmt"
	"math/rand/v2"

	"github.com/INDA25PlusPlus/puhl-ml/internal/config"
	"github.com/INDA25PlusPlus/puhl-ml/internal/nn"
	"github.com/INDA25PlusPlus/puhl-ml/internal/optim"
)

// BuildMLP creates a multilayer perceptron with one Linear layer per
// consecutive pair of sizes and a ReLU between every two Linear layers.
// sizes[0] is the input width and the last entry the number of outputs;
// the output layer has no activation. Parameters are Xavier-initialized
// from src.
func BuildMLP(sizes []int, src rand.Source) (*nn.Sequential, error) {
	if len(sizes) < 2 {
		return nil, fmt.Errorf("%w: need at least input and output sizes, got %v", ErrInvalidConfig, sizes)
	}
	for i, size := range sizes {
		if size <= 0 {
			return nil, fmt.Errorf("%w: layer size %d is %d", ErrInvalidConfig, i, size)
		}
	}

	layers := make([]nn.Layer, 0, 2*len(sizes)-3)
	for i := 0; i+1 < len(sizes); i++ {
		if i > 0 {
			layers = append(layers, nn.NewReLU())
		}
		layers = append(layers, nn.NewLinear(sizes[i], sizes[i+1]))
	}
	model, err := nn.NewSequential(layers...)
	if err != nil {
		return nil, err
	}

	xavier, err := nn.NewXavierInitializer(src)
	if err != nil {
		return nil, err
	}
	if err := model.VisitParams(xavier); err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	return model, nil
}

// NewLoss returns the loss function registered under name.
func NewLoss(name string) (nn.Loss, error) {
	switch name {
	case config.LossCrossEntropy:
		return nn.NewSoftmaxCrossEntropyLoss(), nil
	case config.LossMSE:
		return nn.NewMSELoss(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLoss, name)
	}
}

// NewOptimizer returns the optimizer registered under name. momentum is
// only used by the momentum optimizer.
func NewOptimizer(name string, lr, momentum float64) (optim.Optimizer, error) {
	switch name {
	case config.OptimizerSGD:
		return optim.NewSGD(optim.SGDConfig{LR: lr}), nil
	case config.OptimizerMomentum:
		return optim.NewSGDMomentum(optim.MomentumConfig{LR: lr, Momentum: momentum}), nil
	case config.OptimizerAdam:
		return optim.NewAdam(optim.AdamConfig{LR: lr}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOptimizer, name)
	}
}
