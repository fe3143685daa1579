package order

import "github.com/sparselu/symlu/pattern"

// MetisGuardOrder chooses at runtime between Colamd and Metis: an
// empty reduced pattern, or any row whose degree exceeds the
// dense-degree threshold (forming AᵀA would be prohibitive), falls
// back to Colamd; anything else goes to Metis. The threshold test is
// strict greater-than.
type MetisGuardOrder struct {
	DenseRow, DenseCol float64
	Aggressive         bool
}

func (g MetisGuardOrder) Order(s *pattern.Matrix, sym bool, sdeg []int) (*Result, error) {
	if s.NNZ() == 0 {
		return ColamdOrder{DenseRow: g.DenseRow, DenseCol: g.DenseCol, Aggressive: g.Aggressive}.Order(s, sym, sdeg)
	}

	rowDeg := s.RowDegree()
	threshold := denseThreshold(g.DenseRow, s.Cols)
	for _, d := range rowDeg {
		if d > threshold {
			return ColamdOrder{DenseRow: g.DenseRow, DenseCol: g.DenseCol, Aggressive: g.Aggressive}.Order(s, sym, sdeg)
		}
	}

	return MetisOrder{DenseRow: g.DenseRow, DenseCol: g.DenseCol, Aggressive: g.Aggressive}.Order(s, sym, sdeg)
}
