package order_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sparselu/symlu/internal/order"
	"github.com/sparselu/symlu/pattern"
)

func TestIdentityOrderIsTrivial(t *testing.T) {
	s := &pattern.Matrix{Rows: 3, Cols: 3, Ap: []int{0, 1, 2, 3}, Ai: []int{0, 1, 2}}
	res, err := order.IdentityOrder{}.Order(s, false, nil)
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	for i, v := range res.Qinv {
		if v != i {
			t.Errorf("Qinv[%d] = %d, want %d", i, v, i)
		}
	}
}

// GivenOrder's job is done by the time the ordering stage runs: the
// singleton finder already validated Quser and arranged the reduced
// block's columns in Quser's relative order, so Order has nothing left
// to apply and returns the identity over s's own columns (whatever
// size that reduced block happens to be, which need not match
// len(Quser) when singletons were found).
func TestGivenOrderIsIdentityOverReducedBlock(t *testing.T) {
	s := &pattern.Matrix{Rows: 2, Cols: 2, Ap: []int{0, 1, 2}, Ai: []int{0, 1}}
	res, err := (order.GivenOrder{Quser: pattern.Permutation{1, 0, 2, 3}}).Order(s, false, nil)
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if len(res.Qinv) != s.Cols {
		t.Fatalf("len(Qinv) = %d, want %d (s's own column count, not len(Quser))", len(res.Qinv), s.Cols)
	}
	for i, v := range res.Qinv {
		if v != i {
			t.Errorf("Qinv[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestAmdOrderPathColumn(t *testing.T) {
	// Path graph 0-1-2: eliminating the middle vertex first (degree 2)
	// would fill in an edge between 0 and 2; eliminating an endpoint
	// first (degree 1) never fills anything in. AMD must prefer an
	// endpoint.
	ap := []int{0, 1, 3, 4}
	ai := []int{1, 0, 2, 1}
	s := &pattern.Matrix{Rows: 3, Cols: 3, Ap: ap, Ai: ai}
	res, err := order.AmdOrder{}.Order(s, true, nil)
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if res.Qinv[0] == 1 {
		t.Errorf("Qinv = %v, expected an endpoint (0 or 2) eliminated first, not the middle vertex", res.Qinv)
	}
	if res.Stats.Lnz != 2 {
		t.Errorf("Lnz = %d, want 2 (no fill on a path graph)", res.Stats.Lnz)
	}
}

func TestColamdOrderSmallMatrixNeverDense(t *testing.T) {
	// The dense-degree threshold has a floor of 16
	// (max(16, frac*sqrt(dim))), so no row/column of a 3x3 matrix can
	// ever be flagged dense, however low the knob is set.
	ap := []int{0, 2, 4, 6}
	ai := []int{0, 1, 0, 2, 0, 1}
	s := &pattern.Matrix{Rows: 3, Cols: 3, Ap: ap, Ai: ai}
	res, err := order.ColamdOrder{DenseRow: 0, DenseCol: -1}.Analyze(s)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.NDenseRow != 0 {
		t.Errorf("NDenseRow = %d, want 0 (below the floor threshold)", res.NDenseRow)
	}
	if len(res.Qinv) != 3 {
		t.Errorf("len(Qinv) = %d, want 3", len(res.Qinv))
	}
}

func TestDenseThresholdDisabledByNegativeFraction(t *testing.T) {
	s := &pattern.Matrix{Rows: 2, Cols: 2, Ap: []int{0, 2, 4}, Ai: []int{0, 1, 0, 1}}
	res, err := order.ColamdOrder{DenseRow: -1, DenseCol: -1}.Analyze(s)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.NDenseRow != 0 || res.NDenseCol != 0 {
		t.Errorf("dense counts = (%d,%d), want (0,0) with detection disabled", res.NDenseRow, res.NDenseCol)
	}
}

func TestColamdOrderReturnsFrontTreeHint(t *testing.T) {
	// Fully dense 3x3: the three columns share one row set, so they
	// merge into a single front with no parent.
	ap := []int{0, 3, 6, 9}
	ai := []int{0, 1, 2, 0, 1, 2, 0, 1, 2}
	s := &pattern.Matrix{Rows: 3, Cols: 3, Ap: ap, Ai: ai}
	res, err := order.ColamdOrder{DenseRow: 0.2, DenseCol: 0.2}.Order(s, false, nil)
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if res.FrontTree == nil {
		t.Fatal("FrontTree = nil, want a preliminary front tree")
	}
	if diff := cmp.Diff([]int{3}, res.FrontTree.FrontNPivCol); diff != "" {
		t.Errorf("FrontNPivCol mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{-1}, res.FrontTree.FrontParent); diff != "" {
		t.Errorf("FrontParent mismatch (-want +got):\n%s", diff)
	}
	for r, fi := range res.FrontTree.RowToFront {
		if fi != 0 {
			t.Errorf("RowToFront[%d] = %d, want 0", r, fi)
		}
	}
}

func TestColamdFrontParentLinksSharedRows(t *testing.T) {
	// Column 0 covers rows {0,1}; columns 1 and 2 cover rows {1,2}.
	// Column 0 is eliminated first (smallest degree after fill is
	// equal, lowest index wins) and its front's contribution lands in
	// the front holding the remaining columns, which share row 1.
	ap := []int{0, 2, 4, 6}
	ai := []int{0, 1, 1, 2, 1, 2}
	s := &pattern.Matrix{Rows: 3, Cols: 3, Ap: ap, Ai: ai}
	res, err := order.ColamdOrder{DenseRow: 0.2, DenseCol: 0.2}.Order(s, false, nil)
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	hint := res.FrontTree
	if hint == nil {
		t.Fatal("FrontTree = nil, want a preliminary front tree")
	}
	nfr := len(hint.FrontNPivCol)
	for f, p := range hint.FrontParent {
		if p != -1 && p <= f {
			t.Errorf("FrontParent[%d] = %d, want -1 or an index > %d", f, p, f)
		}
	}
	if last := hint.FrontParent[nfr-1]; last != -1 {
		t.Errorf("FrontParent[last] = %d, want -1 (root)", last)
	}
}

func TestMetisGuardFallsBackOnEmptyPattern(t *testing.T) {
	s := &pattern.Matrix{Rows: 2, Cols: 2, Ap: []int{0, 0, 0}}
	res, err := order.MetisGuardOrder{DenseRow: 0.2, DenseCol: 0.2}.Order(s, false, nil)
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if len(res.Qinv) != 2 {
		t.Errorf("len(Qinv) = %d, want 2", len(res.Qinv))
	}
}

func TestCombineOrderingMergesBlocks(t *testing.T) {
	// n=5: singleton col at position 0, empty col at position 4,
	// middle block {1,2,3} reordered by qinv = [2,0,1].
	cperm1 := pattern.Permutation{0, 1, 2, 3, 4}
	qinv := []int{2, 0, 1}
	out := order.CombineOrdering(1, 1, cperm1, qinv)
	want := pattern.Permutation{0, 3, 1, 2, 4}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("CombineOrdering mismatch (-want +got):\n%s", diff)
	}
}
