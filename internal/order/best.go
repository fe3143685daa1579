package order

import "github.com/sparselu/symlu/pattern"

// BestOrder picks AMD for a symmetric pattern and Colamd otherwise:
// the ordering best matched to the pattern's own symmetry, rather
// than a single fixed choice.
type BestOrder struct {
	DenseRow, DenseCol float64
	AmdDense           float64
	Aggressive         bool
}

func (b BestOrder) Order(s *pattern.Matrix, sym bool, sdeg []int) (*Result, error) {
	if sym {
		return AmdOrder{Dense: b.AmdDense}.Order(s, sym, sdeg)
	}
	return ColamdOrder{DenseRow: b.DenseRow, DenseCol: b.DenseCol, Aggressive: b.Aggressive}.Order(s, sym, sdeg)
}
