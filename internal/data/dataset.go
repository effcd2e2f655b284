// Package data loads and batches labelled samples for training.
//
// A Dataset stores its samples as the columns of a [features, N] matrix,
// the same layout every layer in package nn consumes.
package data

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/INDA25PlusPlus/puhl-ml/internal/tensor"
)

// Dataset is a set of labelled samples.
type Dataset struct {
	Features *mat.Dense // [features, N]
	Labels   []int      // len N, each in [0, Classes)
	Classes  int
}

// Batch is a contiguous run of samples from a Dataset.
type Batch struct {
	Inputs  *mat.Dense // [features, n]
	Targets *mat.Dense // [classes, n] one-hot
	Labels  []int
}

// Size returns the number of samples in the batch.
func (b Batch) Size() int {
	return len(b.Labels)
}

// NewDataset validates features against labels and wraps them.
func NewDataset(features *mat.Dense, labels []int, classes int) (*Dataset, error) {
	if features == nil || features.IsEmpty() || len(labels) == 0 {
		return nil, ErrNoSamples
	}
	rows, cols := features.Dims()
	if err := tensor.Check("data.NewDataset", tensor.Shape{rows, len(labels)}, tensor.Shape{rows, cols}); err != nil {
		return nil, err
	}
	for i, label := range labels {
		if label < 0 || label >= classes {
			return nil, fmt.Errorf("sample %d: %w: %d not in [0, %d)", i, ErrLabelOutOfRange, label, classes)
		}
	}
	return &Dataset{Features: features, Labels: labels, Classes: classes}, nil
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Labels)
}

// NumFeatures returns the length of one sample.
func (d *Dataset) NumFeatures() int {
	rows, _ := d.Features.Dims()
	return rows
}

// Batches splits the dataset into consecutive batches of size columns. The
// last batch holds the remainder and may be smaller. Batches own copies of
// their inputs and labels, so a later Shuffle does not change them.
func (d *Dataset) Batches(size int) ([]Batch, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBatchSize, size)
	}

	rows := d.NumFeatures()
	n := d.Len()
	batches := make([]Batch, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := min(start+size, n)

		labels := append([]int(nil), d.Labels[start:end]...)
		targets, err := OneHot(labels, d.Classes)
		if err != nil {
			return nil, err
		}
		batches = append(batches, Batch{
			Inputs:  mat.DenseCopyOf(d.Features.Slice(0, rows, start, end)),
			Targets: targets,
			Labels:  labels,
		})
	}
	return batches, nil
}

// Shuffle permutes the samples in place using src.
func (d *Dataset) Shuffle(src rand.Source) {
	rng := rand.New(src)
	col := make([]float64, d.NumFeatures())
	other := make([]float64, d.NumFeatures())
	rng.Shuffle(d.Len(), func(i, j int) {
		mat.Col(col, i, d.Features)
		mat.Col(other, j, d.Features)
		d.Features.SetCol(i, other)
		d.Features.SetCol(j, col)
		d.Labels[i], d.Labels[j] = d.Labels[j], d.Labels[i]
	})
}

// Head returns a dataset viewing the first n samples, or d itself when n
// is not smaller than d.Len().
func (d *Dataset) Head(n int) *Dataset {
	if n <= 0 || n >= d.Len() {
		return d
	}
	rows := d.NumFeatures()
	return &Dataset{
		Features: d.Features.Slice(0, rows, 0, n).(*mat.Dense),
		Labels:   d.Labels[:n],
		Classes:  d.Classes,
	}
}

// OneHot encodes labels as a [classes, len(labels)] matrix with a single 1
// per column.
func OneHot(labels []int, classes int) (*mat.Dense, error) {
	if len(labels) == 0 || classes <= 0 {
		return nil, fmt.Errorf("data.OneHot: %w", tensor.ErrEmpty)
	}
	m := mat.NewDense(classes, len(labels), nil)
	for j, label := range labels {
		if label < 0 || label >= classes {
			return nil, fmt.Errorf("data.OneHot: %w: %d not in [0, %d)", ErrLabelOutOfRange, label, classes)
		}
		m.Set(label, j, 1)
	}
	return m, nil
}
