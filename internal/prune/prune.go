// Package prune extracts the submatrix S that remains after singleton
// and empty row/column removal.
package prune

import (
	"sort"

	"github.com/sparselu/symlu/pattern"
)

// Result is the pruned submatrix S plus the diagonal-nonzero count
// computed while building it.
type Result struct {
	S *pattern.Matrix

	// NZDiag counts entries that are both structurally present and
	// numerically nonzero on the diagonal of S. It is EMPTY-like
	// (left at -1) when m.Ax is nil, since diagonal-nonzero counting
	// requires numeric values.
	NZDiag int
}

// Extract builds S = A[Rperm1[n1..nRow-nEmptyRow], Cperm1[n1..nCol-nEmptyCol]]
// in compressed-column form over the reduced index space.
//
// n1, nEmptyRow, and nEmptyCol come from the singleton finder's
// Result; cperm1/rperm1 are its Cperm1/Rperm1 (full permutations, not
// just the singleton prefix).
func Extract(m *pattern.Matrix, cperm1, rperm1 pattern.Permutation, n1, nEmptyCol, nEmptyRow int) *Result {
	nColS := len(cperm1) - n1 - nEmptyCol
	nRowS := len(rperm1) - n1 - nEmptyRow

	// oldRow -> new row index within S, or -1 if the row is a
	// singleton/empty row not present in S.
	rowNew := make([]int, m.Rows)
	for i := range rowNew {
		rowNew[i] = -1
	}
	for k := 0; k < nRowS; k++ {
		rowNew[rperm1[n1+k]] = k
	}

	nzDiag := -1
	countDiag := m.Ax != nil
	if countDiag {
		nzDiag = 0
	}

	ap := make([]int, nColS+1)
	var ai []int
	var ax []float64
	type entry struct {
		row int
		val float64
	}
	var col []entry
	for k := 0; k < nColS; k++ {
		oldCol := cperm1[n1+k]
		col = col[:0]
		for p := m.Ap[oldCol]; p < m.Ap[oldCol+1]; p++ {
			oldRow := m.Ai[p]
			newRow := rowNew[oldRow]
			if newRow < 0 {
				continue
			}
			var v float64
			if countDiag {
				// A complex entry is numerically nonzero when either
				// part is; fold the imaginary magnitude in so the
				// diagonal count below sees a single value.
				v = m.Ax[p]
				if v == 0 && m.Az != nil && m.Az[p] != 0 {
					v = m.Az[p]
				}
			}
			col = append(col, entry{newRow, v})
		}
		// Remapping rows can permute the ascending order that held in
		// the original column; restore it so S keeps the pattern
		// contract of sorted row indices per column.
		sort.Slice(col, func(i, j int) bool { return col[i].row < col[j].row })
		for _, e := range col {
			ai = append(ai, e.row)
			if countDiag {
				ax = append(ax, e.val)
				if e.row == k && e.val != 0 {
					nzDiag++
				}
			}
		}
		ap[k+1] = len(ai)
	}

	s := &pattern.Matrix{Rows: nRowS, Cols: nColS, Ap: ap, Ai: ai}
	if countDiag {
		s.Ax = ax
	}
	return &Result{S: s, NZDiag: nzDiag}
}
