package order

import "github.com/sparselu/symlu/pattern"

// AmdOrder is a symmetric approximate-minimum-degree ordering over
// S+Sᵀ: repeatedly eliminate the minimum-degree vertex, fill in a
// clique among its surviving neighbors, and accumulate the resulting
// L nonzero/flop/front-size estimates.
//
// Sdeg, when supplied, must already equal the S+Sᵀ degree of each
// vertex (as produced by internal/symmetry.Analyze); it is used in
// place of the adjacency size only for the Dense deferral test below.
// The elimination loop always reads degrees from the adjacency it
// builds from s.
//
// Dense is the AMD_DENSE knob: a vertex whose S+Sᵀ degree exceeds
// max(16, Dense*sqrt(n)) is deferred to the end of the elimination
// order rather than dragged through the clique updates. Zero or
// negative disables the deferral.
type AmdOrder struct {
	Dense float64
}

func (a AmdOrder) Order(s *pattern.Matrix, sym bool, sdeg []int) (*Result, error) {
	if s.Rows != s.Cols {
		// S+Sᵀ is undefined for a rectangular block; order the
		// columns of AᵀA the way the unsymmetric strategy does.
		return ColamdOrder{}.Order(s, sym, sdeg)
	}
	n := s.Rows
	adj := buildSymmetricAdjacency(s)

	eliminated := make([]bool, n)
	qinv := make([]int, 0, n)
	var lnz, flops, dmax int

	var deferred []int
	if a.Dense > 0 {
		thresh := denseThreshold(a.Dense, n)
		for i := 0; i < n; i++ {
			d := len(adj[i])
			if sdeg != nil {
				d = sdeg[i]
			}
			if d > thresh {
				eliminated[i] = true
				deferred = append(deferred, i)
				for u := range adj[i] {
					delete(adj[u], i)
				}
				adj[i] = nil
			}
		}
	}

	for step := 0; step < n-len(deferred); step++ {
		v := -1
		best := -1
		for i := 0; i < n; i++ {
			if eliminated[i] {
				continue
			}
			d := len(adj[i])
			if v < 0 || d < best {
				v, best = i, d
			}
		}

		neighbors := make([]int, 0, len(adj[v]))
		for u := range adj[v] {
			neighbors = append(neighbors, u)
		}

		if best+1 > dmax {
			dmax = best + 1
		}
		lnz += best
		flops += best * best

		for _, u := range neighbors {
			delete(adj[u], v)
			for _, w := range neighbors {
				if u != w {
					adj[u][w] = struct{}{}
				}
			}
		}
		adj[v] = nil
		eliminated[v] = true
		qinv = append(qinv, v)
	}
	qinv = append(qinv, deferred...)

	return &Result{Qinv: qinv, Stats: Stats{Dmax: dmax, Lnz: lnz, Flops: flops}}, nil
}

// buildSymmetricAdjacency returns the S+Sᵀ adjacency of a square
// pattern s, excluding the diagonal, mirroring the vertex-union
// construction in internal/symmetry.Analyze.
func buildSymmetricAdjacency(s *pattern.Matrix) []map[int]struct{} {
	n := s.Rows
	adj := make([]map[int]struct{}, n)
	for v := range adj {
		adj[v] = make(map[int]struct{})
	}
	for j := 0; j < s.Cols; j++ {
		for p := s.Ap[j]; p < s.Ap[j+1]; p++ {
			i := s.Ai[p]
			if i == j {
				continue
			}
			adj[i][j] = struct{}{}
			adj[j][i] = struct{}{}
		}
	}
	return adj
}
