package nn

import "errors"

// Common errors.
var (
	ErrBackwardBeforeForward = errors.New("backward called before forward")
	ErrEmptyNetwork          = errors.New("network has no layers")
	ErrNilSource             = errors.New("random source is nil")
)
