package data

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/INDA25PlusPlus/puhl-ml/internal/tensor"
)

// SyntheticConfig describes a Gaussian blob dataset.
type SyntheticConfig struct {
	Features   int     // sample length
	Classes    int     // number of blobs
	PerClass   int     // samples drawn per blob
	Separation float64 // distance of each blob center from the origin (default: 3)
	Spread     float64 // standard deviation around the center (default: 1)
}

// Synthetic generates a labelled dataset of one Gaussian blob per class.
//
// Class k is centered at Separation along axis k mod Features, negated for
// every second wrap around the axes, so classes stay separable as long as
// Classes <= 2*Features. Samples are interleaved by class.
func Synthetic(cfg SyntheticConfig, src rand.Source) (*Dataset, error) {
	if err := (tensor.Shape{cfg.Features, cfg.Classes, cfg.PerClass}).Validate(); err != nil {
		return nil, fmt.Errorf("data.Synthetic: %w", err)
	}
	if cfg.Separation == 0 {
		cfg.Separation = 3
	}
	if cfg.Spread == 0 {
		cfg.Spread = 1
	}

	noise := distuv.Normal{Mu: 0, Sigma: cfg.Spread, Src: src}
	n := cfg.Classes * cfg.PerClass
	features := mat.NewDense(cfg.Features, n, nil)
	labels := make([]int, n)

	col := make([]float64, cfg.Features)
	for j := 0; j < n; j++ {
		class := j % cfg.Classes
		for i := range col {
			col[i] = noise.Rand()
		}
		axis := class % cfg.Features
		if (class/cfg.Features)%2 == 0 {
			col[axis] += cfg.Separation
		} else {
			col[axis] -= cfg.Separation
		}
		features.SetCol(j, col)
		labels[j] = class
	}
	return NewDataset(features, labels, cfg.Classes)
}
