// Package trainer runs mini-batch training of a model over a dataset.
package trainer

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/INDA25PlusPlus/puhl-ml/internal/data"
	"github.com/INDA25PlusPlus/puhl-ml/internal/metrics"
	"github.com/INDA25PlusPlus/puhl-ml/internal/nn"
	"github.com/INDA25PlusPlus/puhl-ml/internal/optim"
	"github.com/INDA25PlusPlus/puhl-ml/internal/tensor"
)

const evalBatchSize = 1000

// Model is a trainable network.
type Model interface {
	nn.Layer
	nn.Parameterized
}

// RunConfig captures the knobs required by the training loop.
type RunConfig struct {
	Epochs    int
	BatchSize int
	LogEvery  int // batches between progress lines; 0 disables them
	Shuffle   bool
	Seed      uint64 // shuffle seed
	Logger    *log.Logger
}

// EpochReport summarizes one epoch.
type EpochReport struct {
	Epoch         int // 1-based
	Loss          float64
	Accuracy      float64 // on the test set, in [0, 1]
	SamplesPerSec float64
	Duration      time.Duration
}

// TrainStep runs forward, loss, backward, one optimizer pass and ZeroGrad
// on a single batch and returns the batch loss.
func TrainStep(model Model, loss nn.Loss, opt optim.Optimizer, batch data.Batch) (float64, error) {
	output, err := model.Forward(batch.Inputs)
	if err != nil {
		return 0, fmt.Errorf("forward: %w", err)
	}
	value, err := loss.Forward(output, batch.Targets)
	if err != nil {
		return 0, fmt.Errorf("loss: %w", err)
	}
	grad, err := loss.Backward()
	if err != nil {
		return 0, fmt.Errorf("loss backward: %w", err)
	}
	if _, err := model.Backward(grad); err != nil {
		return 0, fmt.Errorf("backward: %w", err)
	}
	if err := optim.Step(opt, model); err != nil {
		return 0, err
	}
	model.ZeroGrad()
	return value, nil
}

// Accuracy returns the fraction of samples in ds whose highest output
// matches the label.
func Accuracy(model nn.Layer, ds *data.Dataset) (float64, error) {
	batches, err := ds.Batches(evalBatchSize)
	if err != nil {
		return 0, err
	}

	correct := 0
	for _, batch := range batches {
		output, err := model.Forward(batch.Inputs)
		if err != nil {
			return 0, fmt.Errorf("evaluate: %w", err)
		}
		for j, predicted := range tensor.ArgmaxColumns(output) {
			if predicted == batch.Labels[j] {
				correct++
			}
		}
	}
	return float64(correct) / float64(ds.Len()), nil
}

// Run trains model on train for cfg.Epochs epochs, evaluating on test
// after each one. It stops early with ctx.Err() when ctx is done.
//
// With cfg.Shuffle set, train is reordered in place at the start of every
// epoch; feature columns stay paired with their labels.
func Run(ctx context.Context, cfg RunConfig, model Model, loss nn.Loss, opt optim.Optimizer, train, test *data.Dataset) ([]EpochReport, error) {
	if cfg.Epochs <= 0 {
		return nil, fmt.Errorf("%w: epochs must be > 0", ErrInvalidConfig)
	}
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("%w: batch size must be > 0", ErrInvalidConfig)
	}
	if train == nil || test == nil {
		return nil, fmt.Errorf("%w: train and test sets are required", ErrInvalidConfig)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	var shuffle rand.Source
	if cfg.Shuffle {
		shuffle = rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)
	}

	batches, err := train.Batches(cfg.BatchSize)
	if err != nil {
		return nil, err
	}

	reports := make([]EpochReport, 0, cfg.Epochs)
	var window, epoch metrics.Window
	step := 0
	for e := 1; e <= cfg.Epochs; e++ {
		start := time.Now()
		if shuffle != nil {
			train.Shuffle(shuffle)
			if batches, err = train.Batches(cfg.BatchSize); err != nil {
				return reports, err
			}
		}

		for _, batch := range batches {
			if err := ctx.Err(); err != nil {
				return reports, err
			}

			stepStart := time.Now()
			value, err := TrainStep(model, loss, opt, batch)
			if err != nil {
				return reports, fmt.Errorf("epoch %d step %d: %w", e, step+1, err)
			}
			elapsed := time.Since(stepStart)
			step++

			window.Record(batch.Size(), elapsed, value)
			epoch.Record(batch.Size(), elapsed, value)
			if cfg.LogEvery > 0 && step%cfg.LogEvery == 0 {
				snap := window.Snapshot()
				logger.Printf("epoch=%d step=%d samples_per_sec=%.1f step_ms=%.2f loss=%.4f",
					e, step, snap.SamplesPerSec, snap.AvgStepMS, snap.MeanLoss)
			}
		}

		accuracy, err := Accuracy(model, test)
		if err != nil {
			return reports, err
		}
		snap := epoch.Snapshot()
		report := EpochReport{
			Epoch:         e,
			Loss:          snap.MeanLoss,
			Accuracy:      accuracy,
			SamplesPerSec: snap.SamplesPerSec,
			Duration:      time.Since(start),
		}
		reports = append(reports, report)
		logger.Printf("epoch=%d/%d loss=%.6f test_accuracy=%.2f%% duration=%s",
			e, cfg.Epochs, report.Loss, 100*report.Accuracy, report.Duration.Round(time.Millisecond))
	}
	return reports, nil
}
