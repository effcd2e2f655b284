package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Shape represents the dimensions of a tensor.
//
// A matrix has shape {rows, cols} where cols is the batch axis for
// activations; a vector has shape {len}.
type Shape []int

// Of returns the shape of a matrix.
func Of(m mat.Matrix) Shape {
	r, c := m.Dims()
	return Shape{r, c}
}

// OfVec returns the shape of a vector.
func OfVec(v mat.Vector) Shape {
	return Shape{v.Len()}
}

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// String formats the shape as rows×cols.
func (s Shape) String() string {
	if len(s) == 0 {
		return "()"
	}
	out := fmt.Sprintf("(%d", s[0])
	for _, dim := range s[1:] {
		out += fmt.Sprintf("×%d", dim)
	}
	return out + ")"
}
