package order

import "github.com/sparselu/symlu/pattern"

// CombineOrdering merges the singleton pre-order with a backend's
// ordering result into the final column permutation: the leading n1
// positions stay singletons, the middle block is rearranged by qinv
// shifted past the singletons, and the trailing nempty positions keep
// the empty columns.
//
// cperm1 is the full-length pre-order from the singleton finder
// (singleton columns first, middle block next, empty columns last).
// qinv is the backend's result over the reduced middle block only:
// qinv[k] is the old (pre-ordering-local) middle index that lands at
// new position k.
func CombineOrdering(n1, nempty int, cperm1 pattern.Permutation, qinv []int) pattern.Permutation {
	n := len(cperm1)
	n2 := len(qinv)
	out := make(pattern.Permutation, n)

	copy(out, cperm1[:n1])
	for k := 0; k < n2; k++ {
		out[n1+k] = cperm1[n1+qinv[k]]
	}
	copy(out[n1+n2:], cperm1[n1+n2:n])

	return out
}
