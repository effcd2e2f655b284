// Copyright 2025 puhl-ml authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides shape helpers for the gonum matrices used as
// tensors throughout puhl-ml.
//
// # Overview
//
// Rank-2 tensors are *mat.Dense laid out as [features, batch], so every
// column is one sample. Rank-1 tensors are *mat.VecDense. This package adds:
//   - Shape: a dimension list with validation and formatting
//   - ShapeError: the error returned for every shape mismatch
//   - FromColumns, RowSums, ArgmaxColumns: column-oriented helpers
//
// # Basic Usage
//
//	x, err := tensor.FromColumns([]float64{2, 3}, []float64{1, 4})
//	fmt.Println(tensor.Of(x)) // (2×2)
//
//	if errors.Is(err, tensor.ErrShapeMismatch) {
//	    var se *tensor.ShapeError
//	    errors.As(err, &se)
//	    fmt.Println(se.Want, se.Got)
//	}
package tensor
