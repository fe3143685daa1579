// Package order implements the ordering driver: a uniform contract
// over several fill-reducing ordering backends, dispatched by the
// symbolic entry points according to the requested ordering method.
// Each backend is a small value satisfying a shared interface, picked
// by the caller rather than by a runtime type switch inside the
// algorithm.
package order

import "github.com/sparselu/symlu/pattern"

// Stats reports the ordering backend's own estimate of the numeric
// factorization it induces, when available.
type Stats struct {
	Dmax  int
	Lnz   int
	Flops int
}

// Result is the uniform outcome of an ordering backend: a permutation
// of {0..n-1} (new index -> old index) plus optional cost stats.
//
// NDenseRow, NDenseCol, and FrontTree are set only when the Colamd
// backend ran (directly or behind Metis/Best/MetisGuard): the dense
// counts and the preliminary front tree its column elimination
// derives as a side effect. The driver reuses the front tree in place
// of a fresh column-elimination-tree analysis unless any dense row or
// column was flagged.
type Result struct {
	Qinv  []int
	Stats Stats

	NDenseRow, NDenseCol int
	FrontTree            *FrontTreeHint
}

// UserCallback is a caller-supplied ordering routine: given the
// pattern it returns a permutation, an optional {dmax, lnz, flops}
// triple, and a success flag.
type UserCallback func(nrow, ncol int, sym bool, ap, ai []int, params interface{}) (p []int, info [3]int, ok bool)

// Orderer is the uniform backend contract: pattern in, permutation
// plus optional cost stats out.
type Orderer interface {
	Order(s *pattern.Matrix, sym bool, sdeg []int) (*Result, error)
}
