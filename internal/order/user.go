package order

import (
	"fmt"

	"github.com/sparselu/symlu/pattern"
)

// UserOrder adapts a caller-supplied ordering callback.
type UserOrder struct {
	Callback UserCallback
	Params   interface{}
}

func (u UserOrder) Order(s *pattern.Matrix, sym bool, sdeg []int) (*Result, error) {
	if u.Callback == nil {
		return nil, fmt.Errorf("order: user ordering requested with no callback set")
	}
	p, info, ok := u.Callback(s.Rows, s.Cols, sym, s.Ap, s.Ai, u.Params)
	if !ok {
		return nil, fmt.Errorf("order: user callback reported failure")
	}
	perm := pattern.Permutation(p)
	if err := perm.Validate(); err != nil {
		return nil, err
	}
	qinv := make([]int, len(perm))
	copy(qinv, perm)
	// info optionally reports {dmax, lnz, flops} for cost estimation.
	return &Result{Qinv: qinv, Stats: Stats{Dmax: info[0], Lnz: info[1], Flops: info[2]}}, nil
}
