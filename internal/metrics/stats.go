// Package metrics aggregates per-batch training measurements.
package metrics

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// Window accumulates loss and timing across multiple steps.
type Window struct {
	samples int
	elapsed time.Duration
	losses  []float64
	weights []float64
}

// Record adds one batch measurement to the window.
func (w *Window) Record(batchSize int, elapsed time.Duration, loss float64) {
	w.samples += batchSize
	w.elapsed += elapsed
	w.losses = append(w.losses, loss)
	w.weights = append(w.weights, float64(batchSize))
}

// Steps returns the number of batches recorded since the last snapshot.
func (w *Window) Steps() int {
	return len(w.losses)
}

// Snapshot returns aggregated metrics and resets the window.
//
// MeanLoss weights every batch by its size, so a short final batch counts
// proportionally less.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{Samples: w.samples, Steps: len(w.losses)}
	if w.elapsed > 0 {
		snap.SamplesPerSec = float64(w.samples) / w.elapsed.Seconds()
	}
	if snap.Steps > 0 {
		snap.MeanLoss = stat.Mean(w.losses, w.weights)
		snap.LastLoss = w.losses[snap.Steps-1]
		snap.AvgStepMS = (w.elapsed.Seconds() * 1000) / float64(snap.Steps)
	}

	w.samples = 0
	w.elapsed = 0
	w.losses = w.losses[:0]
	w.weights = w.weights[:0]
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	Samples       int
	Steps         int
	SamplesPerSec float64
	AvgStepMS     float64
	MeanLoss      float64
	LastLoss      float64
}
