// Copyright 2025 puhl-ml authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/INDA25PlusPlus/puhl-ml/internal/tensor"
)

// Shape represents tensor dimensions.
type Shape = tensor.Shape

// ShapeError reports an operation receiving a tensor of the wrong shape.
type ShapeError = tensor.ShapeError

// Errors
var (
	ErrShapeMismatch = tensor.ErrShapeMismatch
	ErrEmpty         = tensor.ErrEmpty
)

// Shape helpers

var (
	// Of returns the shape of a matrix.
	Of = tensor.Of
	// OfVec returns the shape of a vector.
	OfVec = tensor.OfVec
	// Check returns a ShapeError when got differs from want.
	Check = tensor.Check
)

// Column helpers

var (
	// FromColumns builds a matrix whose columns are the given samples.
	FromColumns = tensor.FromColumns
	// RowSums sums every row of a matrix into a vector.
	RowSums = tensor.RowSums
	// ArgmaxColumns returns the index of the largest entry in every column.
	ArgmaxColumns = tensor.ArgmaxColumns
)
