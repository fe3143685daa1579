package singleton_test

import (
	"testing"

	"github.com/sparselu/symlu/internal/singleton"
	"github.com/sparselu/symlu/pattern"
)

// identity builds the n-by-n identity pattern: every column and row is
// a singleton.
func identity(n int) *pattern.Matrix {
	ap := make([]int, n+1)
	ai := make([]int, n)
	for i := 0; i < n; i++ {
		ap[i+1] = i + 1
		ai[i] = i
	}
	return &pattern.Matrix{Rows: n, Cols: n, Ap: ap, Ai: ai}
}

func TestFindIdentityAllSingletons(t *testing.T) {
	m := identity(4)
	res, err := singleton.Find(m, nil, true)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if res.N1 != 4 {
		t.Errorf("N1 = %d, want 4", res.N1)
	}
	if res.NEmptyCol != 0 || res.NEmptyRow != 0 {
		t.Errorf("unexpected empties: col=%d row=%d", res.NEmptyCol, res.NEmptyRow)
	}
	if err := res.Cperm1.Validate(); err != nil {
		t.Errorf("Cperm1 not a permutation: %v", err)
	}
	if err := res.Rperm1.Validate(); err != nil {
		t.Errorf("Rperm1 not a permutation: %v", err)
	}
	for k, pi := range res.Rperm1 {
		if res.InvRperm1[pi] != k {
			t.Errorf("InvRperm1[Rperm1[%d]=%d] = %d, want %d", k, pi, res.InvRperm1[pi], k)
		}
	}
}

func TestFindEmptyMatrix(t *testing.T) {
	m := &pattern.Matrix{Rows: 3, Cols: 3, Ap: []int{0, 0, 0, 0}}
	res, err := singleton.Find(m, nil, true)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if res.N1 != 0 {
		t.Errorf("N1 = %d, want 0", res.N1)
	}
	if res.NEmptyCol != 3 || res.NEmptyRow != 3 {
		t.Errorf("NEmptyCol=%d NEmptyRow=%d, want 3,3", res.NEmptyCol, res.NEmptyRow)
	}
}

func TestFindDenseHasNoSingletons(t *testing.T) {
	// 3x3 fully dense matrix: no column or row ever has degree 1.
	ap := []int{0, 3, 6, 9}
	ai := []int{0, 1, 2, 0, 1, 2, 0, 1, 2}
	m := &pattern.Matrix{Rows: 3, Cols: 3, Ap: ap, Ai: ai}
	res, err := singleton.Find(m, nil, true)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if res.N1 != 0 {
		t.Errorf("N1 = %d, want 0", res.N1)
	}
	if len(res.Cperm1) != 3 || len(res.Rperm1) != 3 {
		t.Fatalf("Cperm1/Rperm1 must cover all columns/rows")
	}
}

// TestFindSymmetricArrowhead exercises an n=5 arrowhead matrix: full
// first row, full first column, and a nonzero diagonal. No column or
// row ever drops to degree 1 during elimination (the only way the
// degree would fall to 1 is by removing the dense first row/column,
// which happens only if it becomes a singleton itself; it never
// does), so is_sym is trivially true on the whole matrix being its own
// remaining block.
func TestFindSymmetricArrowheadIsSym(t *testing.T) {
	n := 5
	var ap []int
	var ai []int
	ap = append(ap, 0)
	for j := 0; j < n; j++ {
		if j == 0 {
			for i := 0; i < n; i++ {
				ai = append(ai, i)
			}
		} else {
			ai = append(ai, 0, j)
		}
		ap = append(ap, len(ai))
	}
	m := &pattern.Matrix{Rows: n, Cols: n, Ap: ap, Ai: ai}
	res, err := singleton.Find(m, nil, true)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if res.N1 != 0 {
		t.Fatalf("N1 = %d, want 0 (arrowhead has no degree-1 column/row)", res.N1)
	}
	if !res.IsSym {
		t.Errorf("IsSym = false, want true for an arrowhead pattern with no singletons")
	}
}

func TestFindRejectsInvalidPattern(t *testing.T) {
	m := &pattern.Matrix{Rows: 2, Cols: 2, Ap: []int{0, 1, 1}, Ai: []int{5}}
	if _, err := singleton.Find(m, nil, true); err == nil {
		t.Fatal("Find: want error for out-of-range row index")
	}
}

func TestFindRejectsInvalidQuser(t *testing.T) {
	m := identity(3)
	bad := pattern.Permutation{0, 0, 2}
	if _, err := singleton.Find(m, bad, true); err == nil {
		t.Fatal("Find: want error for invalid Quser")
	}
}

func TestFindWithoutSingletonsSkipsElimination(t *testing.T) {
	m := identity(4)
	res, err := singleton.Find(m, nil, false)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if res.N1 != 0 {
		t.Errorf("N1 = %d, want 0 when do_singletons is false", res.N1)
	}
	for i, v := range res.Cperm1 {
		if i != v {
			t.Errorf("Cperm1 = %v, want identity when do_singletons is false", res.Cperm1)
			break
		}
	}
}
