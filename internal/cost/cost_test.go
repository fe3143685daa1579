package cost_test

import (
	"testing"

	"github.com/sparselu/symlu/internal/cost"
	"github.com/sparselu/symlu/internal/frontal"
	"github.com/sparselu/symlu/pattern"
)

func TestSimulateEmptyFrontsIsZero(t *testing.T) {
	est := cost.Simulate(nil, nil, 32)
	if est.Flops != 0 || est.Lunz != 0 || est.PeakTailUnits != 0 {
		t.Errorf("est = %+v, want all zero", est)
	}
}

func TestSimulateSingleRootFront(t *testing.T) {
	// A single 3-pivot front with no Schur complement (fully consumed
	// by its own pivots): dense 3x3 factorization, no fill-in.
	fronts := []frontal.Front{{NPivCol: 3, NRows: 3, NCols: 3, Parent: -1}}
	chains := []frontal.Chain{{Start: 0, MaxRows: 3, MaxCols: 3}}

	est := cost.Simulate(fronts, chains, 32)
	if est.Lunz != 3 { // (3*3-3)/2 = 3, no Schur rows/cols to add
		t.Errorf("Lunz = %d, want 3", est.Lunz)
	}
	if est.Uunz != 3 {
		t.Errorf("Uunz = %d, want 3", est.Uunz)
	}
	if est.MaxNRows != 3 || est.MaxNCols != 3 {
		t.Errorf("MaxNRows,MaxNCols = %d,%d, want 3,3", est.MaxNRows, est.MaxNCols)
	}
	if est.DMaxFrSize != 9 {
		t.Errorf("DMaxFrSize = %d, want 9", est.DMaxFrSize)
	}
	// A root front's contribution block is never created (nothing
	// consumes it), so the peak tail stays at zero.
	if est.PeakTailUnits != 0 {
		t.Errorf("PeakTailUnits = %d, want 0 for a single root front", est.PeakTailUnits)
	}
}

func TestSimulateChildContributionIsAssembledIntoParent(t *testing.T) {
	// Front 0 is a leaf with a 2x2 Schur complement contributed to
	// front 1 (its parent); front 1 consumes that contribution, so
	// the tail should rise to 4 units and then fall back once front 1
	// is processed and has no parent of its own.
	fronts := []frontal.Front{
		{NPivCol: 1, NRows: 3, NCols: 3, Parent: 1},
		{NPivCol: 2, NRows: 2, NCols: 2, Parent: -1},
	}
	chains := []frontal.Chain{{Start: 0, MaxRows: 3, MaxCols: 3}}

	est := cost.Simulate(fronts, chains, 32)
	if est.PeakTailUnits != 4 {
		t.Errorf("PeakTailUnits = %d, want 4 (front 0's 2x2 contribution block)", est.PeakTailUnits)
	}
}

func TestSingletonStorage(t *testing.T) {
	cdeg := []int{3, 2, 1}
	rdeg := []int{2, 4, 1}
	if got := cost.SingletonStorage(cdeg, rdeg, 2); got != (3-1)+(2-1)+(2-1)+(4-1) {
		t.Errorf("SingletonStorage = %d, want %d", got, (3-1)+(2-1)+(2-1)+(4-1))
	}
}

func TestDenseThresholdFloorsAtSixteen(t *testing.T) {
	if got := cost.DenseThreshold(0.2, 9); got != 16 {
		t.Errorf("DenseThreshold(0.2, 9) = %d, want 16 (0.2*sqrt(9)=0.6 is below the floor)", got)
	}
}

func TestDenseThresholdDisabledByNegativeFraction(t *testing.T) {
	if got := cost.DenseThreshold(-1, 9); got != 10 {
		t.Errorf("DenseThreshold(-1, 9) = %d, want dim+1 = 10 (detection disabled)", got)
	}
}

func TestComputeEsizeNilWhenNoDenseRow(t *testing.T) {
	s := &pattern.Matrix{Rows: 3, Cols: 3, Ap: []int{0, 1, 2, 3}, Ai: []int{0, 1, 2}}
	if got := cost.ComputeEsize(s, 0.2, 0.2); got != nil {
		t.Errorf("ComputeEsize = %v, want nil (no row exceeds the floor threshold on a 3x3)", got)
	}
}
