package optim

import (
	"gonum.org/v1/gonum/mat"

	"github.com/INDA25PlusPlus/puhl-ml/internal/tensor"
)

// matrixSlots holds per-parameter state matrices addressed by visit
// position: the Nth rank-2 visit of a pass always gets the Nth buffer.
// Buffers are created lazily, zero-filled, on the first pass that reaches
// them.
type matrixSlots struct {
	bufs   []*mat.Dense
	cursor int
}

// next returns the buffer for the current position and advances it. A
// buffer whose shape differs from param means the visit order changed
// between passes.
func (s *matrixSlots) next(op string, param *mat.Dense) (*mat.Dense, error) {
	rows, cols := param.Dims()
	if s.cursor == len(s.bufs) {
		s.bufs = append(s.bufs, mat.NewDense(rows, cols, nil))
	}
	buf := s.bufs[s.cursor]
	if err := tensor.Check(op, tensor.Of(buf), tensor.Shape{rows, cols}); err != nil {
		return nil, err
	}
	s.cursor++
	return buf, nil
}

func (s *matrixSlots) rewind() { s.cursor = 0 }

func (s *matrixSlots) len() int { return len(s.bufs) }

// vectorSlots is the rank-1 counterpart of matrixSlots.
type vectorSlots struct {
	bufs   []*mat.VecDense
	cursor int
}

func (s *vectorSlots) next(op string, param *mat.VecDense) (*mat.VecDense, error) {
	n := param.Len()
	if s.cursor == len(s.bufs) {
		s.bufs = append(s.bufs, mat.NewVecDense(n, nil))
	}
	buf := s.bufs[s.cursor]
	if err := tensor.Check(op, tensor.OfVec(buf), tensor.Shape{n}); err != nil {
		return nil, err
	}
	s.cursor++
	return buf, nil
}

func (s *vectorSlots) rewind() { s.cursor = 0 }

func (s *vectorSlots) len() int { return len(s.bufs) }
