package order

import "github.com/sparselu/symlu/pattern"

// IdentityOrder is the `None` ordering: no reordering is attempted,
// columns are kept in their incoming order.
type IdentityOrder struct{}

func (IdentityOrder) Order(s *pattern.Matrix, sym bool, sdeg []int) (*Result, error) {
	qinv := make([]int, s.Cols)
	for i := range qinv {
		qinv[i] = i
	}
	return &Result{Qinv: qinv}, nil
}
