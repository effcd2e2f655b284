// Package config loads the settings of a training run.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Supported optimizer and loss names.
const (
	OptimizerSGD      = "sgd"
	OptimizerMomentum = "momentum"
	OptimizerAdam     = "adam"

	LossCrossEntropy = "cross_entropy"
	LossMSE          = "mse"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config captures the runtime knobs for a training run.
type Config struct {
	DataDir      string  `yaml:"data_dir"`
	TrainCSV     string  `yaml:"train_csv"`
	TestCSV      string  `yaml:"test_csv"`
	Synthetic    bool    `yaml:"synthetic"`
	TrainLimit   int     `yaml:"train_limit"`
	TestLimit    int     `yaml:"test_limit"`
	Hidden       []int   `yaml:"hidden"`
	Epochs       int     `yaml:"epochs"`
	BatchSize    int     `yaml:"batch_size"`
	Optimizer    string  `yaml:"optimizer"`
	LearningRate float64 `yaml:"learning_rate"`
	Momentum     float64 `yaml:"momentum"`
	Loss         string  `yaml:"loss"`
	Shuffle      bool    `yaml:"shuffle"`
	Seed         uint64  `yaml:"seed"`
	LogEvery     int     `yaml:"log_every"` // 0 disables progress lines
}

// Overrides captures CLI supplied values. Zero values mean "not set"
// except for the pointer fields, where zero is a meaningful setting and nil
// means "not set".
type Overrides struct {
	DataDir      string
	Synthetic    bool
	Epochs       int
	BatchSize    int
	Optimizer    string
	LearningRate float64
	Momentum     *float64
	Seed         *uint64
}

// Default returns the settings of the reference MNIST run: a 784-800-300-10
// network trained with SGD and softmax cross-entropy.
func Default() *Config {
	return &Config{
		DataDir:      "data/mnist",
		TrainLimit:   50000,
		TestLimit:    10000,
		Hidden:       []int{800, 300},
		Epochs:       50,
		BatchSize:    64,
		Optimizer:    OptimizerSGD,
		LearningRate: 0.1,
		Loss:         LossCrossEntropy,
		Seed:         1,
		LogEvery:     100,
	}
}

// Load reads and validates a Config from YAML. Keys missing from the file
// keep their Default values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates cfg using every override that is set.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.DataDir != "" {
		c.DataDir = o.DataDir
	}
	if o.Synthetic {
		c.Synthetic = true
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.BatchSize > 0 {
		c.BatchSize = o.BatchSize
	}
	if o.Optimizer != "" {
		c.Optimizer = o.Optimizer
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Momentum != nil {
		c.Momentum = *o.Momentum
	}
	if o.Seed != nil {
		c.Seed = *o.Seed
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalid)
	}
	if !c.Synthetic && c.DataDir == "" && c.TrainCSV == "" {
		return fmt.Errorf("%w: one of data_dir, train_csv or synthetic must be set", ErrInvalid)
	}
	if (c.TrainCSV == "") != (c.TestCSV == "") {
		return fmt.Errorf("%w: train_csv and test_csv must be set together", ErrInvalid)
	}
	if c.TrainLimit < 0 || c.TestLimit < 0 {
		return fmt.Errorf("%w: train_limit and test_limit must be >= 0", ErrInvalid)
	}
	for i, h := range c.Hidden {
		if h <= 0 {
			return fmt.Errorf("%w: hidden[%d] must be > 0 (got %d)", ErrInvalid, i, h)
		}
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("%w: epochs must be > 0 (got %d)", ErrInvalid, c.Epochs)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch_size must be > 0 (got %d)", ErrInvalid, c.BatchSize)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("%w: learning_rate must be > 0 (got %g)", ErrInvalid, c.LearningRate)
	}
	if c.Momentum < 0 || c.Momentum >= 1 {
		return fmt.Errorf("%w: momentum must be in [0, 1) (got %g)", ErrInvalid, c.Momentum)
	}

	switch c.Optimizer {
	case OptimizerSGD, OptimizerMomentum, OptimizerAdam:
	default:
		return fmt.Errorf("%w: unknown optimizer %q", ErrInvalid, c.Optimizer)
	}
	switch c.Loss {
	case LossCrossEntropy, LossMSE:
	default:
		return fmt.Errorf("%w: unknown loss %q", ErrInvalid, c.Loss)
	}

	if c.LogEvery < 0 {
		return fmt.Errorf("%w: log_every must be >= 0 (got %d)", ErrInvalid, c.LogEvery)
	}
	return nil
}
