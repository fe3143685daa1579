// Package pattern holds the compressed-column nonzero pattern type that
// every stage of symbolic analysis operates on, plus permutations and
// their validation.
package pattern

import (
	"errors"
	"fmt"
)

// ErrInvalidMatrix and ErrInvalidPermutation are the sentinel errors
// Validate wraps; internal packages and the root symlu package both
// compare against these with errors.Is rather than each defining their
// own copy, avoiding an import cycle back to the root package.
var (
	ErrInvalidMatrix      = errors.New("pattern: invalid matrix pattern")
	ErrInvalidPermutation = errors.New("pattern: invalid permutation")
)

// Matrix is the nonzero pattern of an m-by-n sparse matrix in
// compressed-column form. Row indices within a column are assumed sorted
// ascending and unique; callers are responsible for that invariant.
// Validate checks uniqueness but not the ascending order.
//
// Ax (and Az for the complex case) are optional: when present they are
// only consulted for diagonal-nonzero counting, never for ordering or
// elimination decisions.
type Matrix struct {
	Rows, Cols int
	Ap         []int // size Cols+1, Ap[0] == 0
	Ai         []int // size Ap[Cols]
	Ax         []float64
	Az         []float64 // imaginary part, parallel to Ax; nil for real matrices
}

// NNZ returns the number of explicit entries in the pattern.
func (m *Matrix) NNZ() int {
	if len(m.Ap) == 0 {
		return 0
	}
	return m.Ap[len(m.Ap)-1]
}

// Validate checks the structural contract that every stage of analysis
// relies on: Ap is monotone non-decreasing of length Cols+1 starting at
// zero, every row index is in range, and no column repeats a row index.
func (m *Matrix) Validate() error {
	if m.Rows < 0 || m.Cols < 0 {
		return fmt.Errorf("%w: negative dimension (rows=%d, cols=%d)", ErrInvalidMatrix, m.Rows, m.Cols)
	}
	if len(m.Ap) != m.Cols+1 {
		return fmt.Errorf("%w: Ap has length %d, want %d", ErrInvalidMatrix, len(m.Ap), m.Cols+1)
	}
	if m.Ap[0] != 0 {
		return fmt.Errorf("%w: Ap[0] = %d, want 0", ErrInvalidMatrix, m.Ap[0])
	}
	for j := 0; j < m.Cols; j++ {
		if m.Ap[j+1] < m.Ap[j] {
			return fmt.Errorf("%w: Ap non-monotone at column %d (Ap[%d]=%d > Ap[%d]=%d)", ErrInvalidMatrix, j, j, m.Ap[j], j+1, m.Ap[j+1])
		}
	}
	if len(m.Ai) != m.Ap[m.Cols] {
		return fmt.Errorf("%w: Ai has length %d, want %d", ErrInvalidMatrix, len(m.Ai), m.Ap[m.Cols])
	}
	seen := make([]int, m.Rows)
	for i := range seen {
		seen[i] = -1
	}
	for j := 0; j < m.Cols; j++ {
		for p := m.Ap[j]; p < m.Ap[j+1]; p++ {
			r := m.Ai[p]
			if r < 0 || r >= m.Rows {
				return fmt.Errorf("%w: row index %d out of range [0,%d) in column %d", ErrInvalidMatrix, r, m.Rows, j)
			}
			if seen[r] == j {
				return fmt.Errorf("%w: duplicate row index %d in column %d", ErrInvalidMatrix, r, j)
			}
			seen[r] = j
		}
	}
	return nil
}

// ColumnDegree returns the number of nonzeros in each column.
func (m *Matrix) ColumnDegree() []int {
	deg := make([]int, m.Cols)
	for j := 0; j < m.Cols; j++ {
		deg[j] = m.Ap[j+1] - m.Ap[j]
	}
	return deg
}

// RowDegree returns the number of nonzeros in each row.
func (m *Matrix) RowDegree() []int {
	deg := make([]int, m.Rows)
	for j := 0; j < m.Cols; j++ {
		for p := m.Ap[j]; p < m.Ap[j+1]; p++ {
			deg[m.Ai[p]]++
		}
	}
	return deg
}
