// Package singleton implements the singleton finder: repeated
// degree-1 column/row removal that produces the pre-orderings Cperm1
// and Rperm1 before any fill-reducing ordering is attempted.
//
// Implemented as an explicit two-queue worklist (column queue, row
// queue) over the remaining degrees; UMFPACK folds both scans into a
// single pass over reused scratch arrays, which Go has no reason to
// replicate.
package singleton

import (
	"fmt"

	"github.com/sparselu/symlu/pattern"
)

// Result reports the singleton analysis.
type Result struct {
	N1, N1Col, N1Row     int
	NEmptyCol, NEmptyRow int

	Cperm1, Rperm1 pattern.Permutation
	InvRperm1      pattern.Permutation

	// Cdeg and Rdeg hold, for every original column/row, its degree in
	// the remaining submatrix: for an eliminated singleton, the degree
	// at the moment it was removed (always 1 for the scan that found
	// it); for a surviving column/row, its final remaining degree.
	Cdeg, Rdeg []int

	MaxRDeg int
	IsSym   bool
}

// Find runs the singleton finder over m. If quser is non-nil, only
// column singletons discovered in quser's scan order are honored (row
// singletons remain unrestricted), so that the caller's requested
// column order is respected. If doSingletons is false, m is validated
// and degrees are computed but no elimination is performed.
func Find(m *pattern.Matrix, quser pattern.Permutation, doSingletons bool) (*Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	nRow, nCol := m.Rows, m.Cols

	var colOrder []int
	if quser != nil {
		if len(quser) != nCol {
			return nil, fmt.Errorf("%w: Quser has length %d, want %d", pattern.ErrInvalidPermutation, len(quser), nCol)
		}
		if err := quser.Validate(); err != nil {
			return nil, err
		}
		colOrder = append([]int(nil), quser...)
	} else {
		colOrder = identitySlice(nCol)
	}

	cdeg := m.ColumnDegree()
	rdeg := m.RowDegree()

	res := &Result{Cdeg: cdeg, Rdeg: rdeg}

	if !doSingletons {
		res.Cperm1 = append(pattern.Permutation(nil), colOrder...)
		res.Rperm1 = pattern.Identity(nRow)
		res.InvRperm1 = res.Rperm1.Inverse()
		return res, nil
	}

	colAssigned := make([]bool, nCol)
	rowAssigned := make([]bool, nRow)
	rowToCols := transpose(m)

	var colSingCols, colSingRows []int // column c found by column scan, paired row
	var rowSingRows, rowSingCols []int // row r found by row scan, paired column

	colQueue := make([]int, 0, nCol)
	for _, c := range colOrder {
		if cdeg[c] == 1 {
			colQueue = append(colQueue, c)
		}
	}
	rowQueue := make([]int, 0, nRow)
	for r := 0; r < nRow; r++ {
		if rdeg[r] == 1 {
			rowQueue = append(rowQueue, r)
		}
	}

	for len(colQueue) > 0 {
		c := colQueue[0]
		colQueue = colQueue[1:]
		if colAssigned[c] || cdeg[c] != 1 {
			continue
		}
		r := soleUnassignedRow(m, c, rowAssigned)
		if r < 0 {
			continue
		}
		colAssigned[c] = true
		rowAssigned[r] = true
		colSingCols = append(colSingCols, c)
		colSingRows = append(colSingRows, r)
		for _, j := range rowToCols[r] {
			if colAssigned[j] {
				continue
			}
			cdeg[j]--
			if cdeg[j] == 1 {
				colQueue = append(colQueue, j)
			}
		}
	}

	for len(rowQueue) > 0 {
		r := rowQueue[0]
		rowQueue = rowQueue[1:]
		if rowAssigned[r] || rdeg[r] != 1 {
			continue
		}
		c := soleUnassignedCol(rowToCols, r, colAssigned)
		if c < 0 {
			continue
		}
		rowAssigned[r] = true
		colAssigned[c] = true
		rowSingRows = append(rowSingRows, r)
		rowSingCols = append(rowSingCols, c)
		for p := m.Ap[c]; p < m.Ap[c+1]; p++ {
			i := m.Ai[p]
			if i == r || rowAssigned[i] {
				continue
			}
			rdeg[i]--
			if rdeg[i] == 1 {
				rowQueue = append(rowQueue, i)
			}
		}
	}

	res.N1Col = len(colSingCols)
	res.N1Row = len(rowSingRows)
	res.N1 = res.N1Col + res.N1Row

	var middleCols, emptyCols []int
	for _, c := range colOrder {
		if colAssigned[c] {
			continue
		}
		if cdeg[c] == 0 {
			emptyCols = append(emptyCols, c)
		} else {
			middleCols = append(middleCols, c)
		}
	}
	var middleRows, emptyRows []int
	for r := 0; r < nRow; r++ {
		if rowAssigned[r] {
			continue
		}
		if rdeg[r] == 0 {
			emptyRows = append(emptyRows, r)
		} else {
			middleRows = append(middleRows, r)
		}
	}

	res.NEmptyCol = len(emptyCols)
	res.NEmptyRow = len(emptyRows)

	cperm := make(pattern.Permutation, 0, nCol)
	cperm = append(cperm, colSingCols...)
	cperm = append(cperm, rowSingCols...)
	cperm = append(cperm, middleCols...)
	cperm = append(cperm, emptyCols...)
	res.Cperm1 = cperm

	rperm := make(pattern.Permutation, 0, nRow)
	rperm = append(rperm, colSingRows...)
	rperm = append(rperm, rowSingRows...)
	rperm = append(rperm, middleRows...)
	rperm = append(rperm, emptyRows...)
	res.Rperm1 = rperm

	res.InvRperm1 = res.Rperm1.Inverse()

	res.MaxRDeg = 0
	for r := 0; r < nRow; r++ {
		if !rowAssigned[r] && rdeg[r] > res.MaxRDeg {
			res.MaxRDeg = rdeg[r]
		}
	}

	res.IsSym = computeIsSym(res, nRow, nCol)

	return res, nil
}

// computeIsSym reports whether, on the remaining square block (after
// singletons and empties are stripped from both ends), the row and
// column pre-orderings agree position-by-position. This is a
// precondition for attempting the symmetric strategy.
func computeIsSym(res *Result, nRow, nCol int) bool {
	if nRow != nCol {
		return false
	}
	remCols := nCol - res.N1 - res.NEmptyCol
	remRows := nRow - res.N1 - res.NEmptyRow
	if remCols != remRows {
		return false
	}
	for k := 0; k < remCols; k++ {
		if res.Cperm1[res.N1+k] != res.Rperm1[res.N1+k] {
			return false
		}
	}
	return true
}

func soleUnassignedRow(m *pattern.Matrix, c int, rowAssigned []bool) int {
	for p := m.Ap[c]; p < m.Ap[c+1]; p++ {
		i := m.Ai[p]
		if !rowAssigned[i] {
			return i
		}
	}
	return -1
}

func soleUnassignedCol(rowToCols [][]int, r int, colAssigned []bool) int {
	for _, j := range rowToCols[r] {
		if !colAssigned[j] {
			return j
		}
	}
	return -1
}

func transpose(m *pattern.Matrix) [][]int {
	rowToCols := make([][]int, m.Rows)
	counts := make([]int, m.Rows)
	for _, r := range m.Ai {
		counts[r]++
	}
	for r := 0; r < m.Rows; r++ {
		rowToCols[r] = make([]int, 0, counts[r])
	}
	for c := 0; c < m.Cols; c++ {
		for p := m.Ap[c]; p < m.Ap[c+1]; p++ {
			r := m.Ai[p]
			rowToCols[r] = append(rowToCols[r], c)
		}
	}
	return rowToCols
}

func identitySlice(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}
