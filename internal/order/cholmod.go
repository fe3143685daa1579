package order

import "github.com/sparselu/symlu/pattern"

// CholmodOrder stands in for the CHOLMOD library ordering. With no
// pure-Go CHOLMOD binding available it delegates to the native AMD
// adapter, the ordering CHOLMOD itself falls back to for a single
// symmetric block without nested dissection.
type CholmodOrder struct {
	PrintLevel int
	AmdDense   float64
}

func (c CholmodOrder) Order(s *pattern.Matrix, sym bool, sdeg []int) (*Result, error) {
	return AmdOrder{Dense: c.AmdDense}.Order(s, sym, sdeg)
}
