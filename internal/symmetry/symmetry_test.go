package symmetry_test

import (
	"testing"

	"github.com/sparselu/symlu/internal/symmetry"
	"github.com/sparselu/symlu/pattern"
)

func TestAnalyzeFullySymmetric(t *testing.T) {
	// Tridiagonal 3x3: symmetric pattern, diagonal present.
	ap := []int{0, 2, 5, 7}
	ai := []int{0, 1, 0, 1, 2, 1, 2}
	s := &pattern.Matrix{Rows: 3, Cols: 3, Ap: ap, Ai: ai}
	res := symmetry.Analyze(s)
	if res.Sym != 1 {
		t.Errorf("Sym = %v, want 1", res.Sym)
	}
	if res.NZAAt != 4 {
		t.Errorf("NZAAt = %d, want 4 ((0,1),(1,0),(1,2),(2,1))", res.NZAAt)
	}
	want := []int{1, 2, 1}
	for i, d := range res.Sdeg {
		if d != want[i] {
			t.Errorf("Sdeg[%d] = %d, want %d", i, d, want[i])
		}
	}
}

func TestAnalyzeFullyAsymmetric(t *testing.T) {
	// Strictly upper triangular 3x3, no symmetric counterpart entries.
	ap := []int{0, 0, 1, 3}
	ai := []int{0, 0, 1}
	s := &pattern.Matrix{Rows: 3, Cols: 3, Ap: ap, Ai: ai}
	res := symmetry.Analyze(s)
	if res.Sym != 0 {
		t.Errorf("Sym = %v, want 0", res.Sym)
	}
}
