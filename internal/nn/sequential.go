package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/INDA25PlusPlus/puhl-ml/internal/tensor"
)

// Sequential is a fixed chain of layers.
//
// Each layer's output becomes the next layer's input. Sequential is itself
// a Layer and a Parameterized, so networks nest and any ParamVisitor can be
// run over the whole chain.
//
// Example:
//
//	model, err := nn.NewSequential(
//	    nn.NewLinear(784, 128),
//	    nn.NewReLU(),
//	    nn.NewLinear(128, 10),
//	)
//
//	output, err := model.Forward(input)
//
// This is equivalent to:
//
//	h1, _ := linear1.Forward(input)
//	h2, _ := relu.Forward(h1)
//	output, _ := linear2.Forward(h2)
type Sequential struct {
	layers []Layer
}

// NewSequential creates a Sequential from layers.
//
// Layers reporting their feature counts (such as Linear and nested
// Sequentials) are checked against the nearest preceding sized layer. ReLU
// preserves shape and is transparent; any other unsized layer ends the
// check, since its output width is unknown.
func NewSequential(layers ...Layer) (*Sequential, error) {
	if len(layers) == 0 {
		return nil, ErrEmptyNetwork
	}

	prev := -1
	for i, layer := range layers {
		in, out, ok := featuresOf(layer)
		if !ok {
			if _, preserving := layer.(*ReLU); !preserving {
				prev = -1
			}
			continue
		}
		if prev >= 0 && in != prev {
			return nil, fmt.Errorf("layer %d (%T): %w", i, layer, &tensor.ShapeError{
				Op:   "NewSequential",
				Want: tensor.Shape{prev},
				Got:  tensor.Shape{in},
			})
		}
		prev = out
	}

	return &Sequential{
		layers: append([]Layer(nil), layers...),
	}, nil
}

// featuresOf returns the feature counts of layer, or ok == false when it
// does not declare them.
func featuresOf(layer Layer) (in, out int, ok bool) {
	sized, ok := layer.(featureSizer)
	if !ok {
		return 0, 0, false
	}
	in, out = sized.InFeatures(), sized.OutFeatures()
	return in, out, in > 0 && out > 0
}

// InFeatures returns the input width of the first sized layer, or 0 when
// no layer declares one. Only ReLU may precede that layer.
func (s *Sequential) InFeatures() int {
	for _, layer := range s.layers {
		if in, _, ok := featuresOf(layer); ok {
			return in
		}
		if _, preserving := layer.(*ReLU); !preserving {
			return 0
		}
	}
	return 0
}

// OutFeatures returns the output width of the last sized layer, or 0 when
// no layer declares one. Only ReLU may follow that layer.
func (s *Sequential) OutFeatures() int {
	for i := len(s.layers) - 1; i >= 0; i-- {
		if _, out, ok := featuresOf(s.layers[i]); ok {
			return out
		}
		if _, preserving := s.layers[i].(*ReLU); !preserving {
			return 0
		}
	}
	return 0
}

// Forward applies all layers in order.
func (s *Sequential) Forward(input *mat.Dense) (*mat.Dense, error) {
	output := input
	for i, layer := range s.layers {
		var err error
		if output, err = layer.Forward(output); err != nil {
			return nil, fmt.Errorf("layer %d (%T): %w", i, layer, err)
		}
	}
	return output, nil
}

// Backward applies all layers' backward passes in reverse order.
func (s *Sequential) Backward(outputGrad *mat.Dense) (*mat.Dense, error) {
	grad := outputGrad
	for i := len(s.layers) - 1; i >= 0; i-- {
		var err error
		if grad, err = s.layers[i].Backward(grad); err != nil {
			return nil, fmt.Errorf("layer %d (%T): %w", i, s.layers[i], err)
		}
	}
	return grad, nil
}

// VisitParams visits the parameters of every Parameterized layer, in layer
// order.
func (s *Sequential) VisitParams(v ParamVisitor) error {
	for i, layer := range s.layers {
		p, ok := layer.(Parameterized)
		if !ok {
			continue
		}
		if err := p.VisitParams(v); err != nil {
			return fmt.Errorf("layer %d (%T): %w", i, layer, err)
		}
	}
	return nil
}

// ZeroGrad clears the gradients of every Parameterized layer.
func (s *Sequential) ZeroGrad() {
	for _, layer := range s.layers {
		if p, ok := layer.(Parameterized); ok {
			p.ZeroGrad()
		}
	}
}

// Len returns the number of layers in the chain.
func (s *Sequential) Len() int {
	return len(s.layers)
}

// Layer returns the layer at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential) Layer(index int) Layer {
	if index < 0 || index >= len(s.layers) {
		panic("Sequential.Layer: index out of bounds")
	}
	return s.layers[index]
}
