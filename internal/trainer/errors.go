package trainer

import "errors"

// Common errors.
var (
	ErrUnknownOptimizer = errors.New("unknown optimizer")
	ErrUnknownLoss      = errors.New("unknown loss")
	ErrInvalidConfig    = errors.New("invalid trainer config")
)
