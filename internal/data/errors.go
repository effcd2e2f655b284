package data

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrNoSamples        = errors.New("dataset has no samples")
	ErrInvalidBatchSize = errors.New("batch size must be positive")
	ErrLabelOutOfRange  = errors.New("label out of range")
)

// RecordError reports a malformed record in a text dataset.
type RecordError struct {
	Path   string
	Line   int
	Column int // 0 when the whole record is at fault
	Err    error
}

func (e *RecordError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("%s:%d: column %d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
