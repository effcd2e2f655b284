// Package main provides the puhl-ml training CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"gonum.org/v1/gonum/mat"

	"github.com/INDA25PlusPlus/puhl-ml/internal/config"
	"github.com/INDA25PlusPlus/puhl-ml/internal/data"
	"github.com/INDA25PlusPlus/puhl-ml/internal/trainer"
)

const version = "v0.1.0"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("puhl-ml %s\n", version)
		return
	}

	cfgPath := flag.String("config", "", "Path to YAML config (defaults to the reference MNIST run)")
	dataDir := flag.String("data", "", "Override MNIST data directory")
	epochs := flag.Int("epochs", 0, "Number of epochs")
	batchSize := flag.Int("batch-size", 0, "Batch size")
	lr := flag.Float64("lr", 0, "Learning rate")
	momentum := flag.Float64("momentum", 0, "Momentum factor for the momentum optimizer")
	optimizer := flag.String("optimizer", "", "Optimizer: sgd, momentum or adam")
	seed := flag.Uint64("seed", 0, "PRNG seed")
	synthetic := flag.Bool("synthetic", false, "Train on generated blobs instead of MNIST")
	show := flag.Int("show", 0, "Print the first N test digits before training")

	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	overrides := config.Overrides{
		DataDir:      *dataDir,
		Synthetic:    *synthetic,
		Epochs:       *epochs,
		BatchSize:    *batchSize,
		Optimizer:    *optimizer,
		LearningRate: *lr,
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "momentum":
			overrides.Momentum = momentum
		case "seed":
			overrides.Seed = seed
		}
	})
	cfg.ApplyOverrides(overrides)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	train, test, err := loadData(cfg)
	if err != nil {
		log.Fatalf("load data: %v", err)
	}
	log.Printf("train_samples=%d test_samples=%d features=%d classes=%d",
		train.Len(), test.Len(), train.NumFeatures(), train.Classes)

	if *show > 0 && train.NumFeatures() == data.MNISTPixels {
		for j := 0; j < min(*show, test.Len()); j++ {
			fmt.Printf("\n=== Digit: %d ===\n\n%s", test.Labels[j], data.RenderDigit(mat.Col(nil, j, test.Features), 28))
		}
	}

	sizes := append([]int{train.NumFeatures()}, cfg.Hidden...)
	sizes = append(sizes, train.Classes)
	model, err := trainer.BuildMLP(sizes, rand.NewPCG(cfg.Seed, cfg.Seed+1))
	if err != nil {
		log.Fatalf("build model: %v", err)
	}
	loss, err := trainer.NewLoss(cfg.Loss)
	if err != nil {
		log.Fatalf("loss: %v", err)
	}
	opt, err := trainer.NewOptimizer(cfg.Optimizer, cfg.LearningRate, cfg.Momentum)
	if err != nil {
		log.Fatalf("optimizer: %v", err)
	}
	log.Printf("network=%v optimizer=%s lr=%g loss=%s epochs=%d batch_size=%d",
		sizes, cfg.Optimizer, cfg.LearningRate, cfg.Loss, cfg.Epochs, cfg.BatchSize)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCfg := trainer.RunConfig{
		Epochs:    cfg.Epochs,
		BatchSize: cfg.BatchSize,
		LogEvery:  cfg.LogEvery,
		Shuffle:   cfg.Shuffle,
		Seed:      cfg.Seed,
	}
	reports, err := trainer.Run(ctx, runCfg, model, loss, opt, train, test)
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}

	final := reports[len(reports)-1]
	log.Printf("final_test_accuracy=%.2f%%", 100*final.Accuracy)
}

func loadData(cfg *config.Config) (train, test *data.Dataset, err error) {
	if cfg.Synthetic {
		gen := data.SyntheticConfig{Features: 16, Classes: 4, PerClass: 250}
		if train, err = data.Synthetic(gen, rand.NewPCG(cfg.Seed, 1)); err != nil {
			return nil, nil, err
		}
		gen.PerClass = 50
		if test, err = data.Synthetic(gen, rand.NewPCG(cfg.Seed, 2)); err != nil {
			return nil, nil, err
		}
		return train, test, nil
	}
	if cfg.TrainCSV != "" {
		if train, err = data.LoadCSV(cfg.TrainCSV, cfg.TrainLimit); err != nil {
			return nil, nil, err
		}
		if test, err = data.LoadCSV(cfg.TestCSV, cfg.TestLimit); err != nil {
			return nil, nil, err
		}
		return train, test, nil
	}
	return data.LoadMNIST(cfg.DataDir, cfg.TrainLimit, cfg.TestLimit)
}
