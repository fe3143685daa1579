package order

import "github.com/sparselu/symlu/pattern"

// MetisOrder stands in for the METIS nested-dissection ordering.
// With no pure-Go METIS binding available it delegates to Colamd,
// the same fallback the METIS-guarded path uses for patterns METIS
// would struggle with.
type MetisOrder struct {
	DenseRow, DenseCol float64
	Aggressive         bool
}

func (m MetisOrder) Order(s *pattern.Matrix, sym bool, sdeg []int) (*Result, error) {
	return ColamdOrder{DenseRow: m.DenseRow, DenseCol: m.DenseCol, Aggressive: m.Aggressive}.Order(s, sym, sdeg)
}
