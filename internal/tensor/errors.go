package tensor

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrShapeMismatch = errors.New("shape mismatch")
	ErrEmpty         = errors.New("empty tensor")
)

// ShapeError reports a tensor whose shape differs from the one an operation
// expected.
//
// errors.Is(err, ErrShapeMismatch) holds for every *ShapeError.
type ShapeError struct {
	Op   string // Operation that rejected the tensor (e.g., "Linear.Forward")
	Want Shape  // Expected shape
	Got  Shape  // Actual shape
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %v: want %v, got %v", e.Op, ErrShapeMismatch, e.Want, e.Got)
}

// Is makes ShapeError match ErrShapeMismatch.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// Check returns a *ShapeError when got differs from want, nil otherwise.
func Check(op string, want, got Shape) error {
	if want.Equal(got) {
		return nil
	}
	return &ShapeError{Op: op, Want: want.Clone(), Got: got.Clone()}
}

// CheckNonEmpty rejects shapes with a zero dimension.
func CheckNonEmpty(op string, s Shape) error {
	if s.NumElements() == 0 {
		return fmt.Errorf("%s: %w %v", op, ErrEmpty, s)
	}
	return nil
}
