package symlu

import "github.com/sparselu/symlu/pattern"

// Workspace is the transient scratch state built up while computing a
// SymbolicObject. Symbolic and FSymbolic drop it at the end of
// analysis; ParuSymbolic hands it to the caller instead, for a
// companion parallel numeric kernel. The two lifecycle modes are
// mutually exclusive.
type Workspace struct {
	released bool

	// Si, Sp are the pruned submatrix's row indices and column
	// pointers, retained here only when handed off; Symbolic and
	// FSymbolic discard them once the frontal analyzer has consumed
	// them.
	Si, Sp []int

	Cperm1, Rperm1, InvRperm1 pattern.Permutation

	// InFront maps each original row to the front that absorbs it:
	// None for a singleton row, FrontTree.NFr for an empty row.
	InFront []int

	FrontNPivCol []int
	FrontNRows   []int
	FrontNCols   []int
	FrontParent  []int

	// FrontCols lists the original column index of every pivot column,
	// grouped by front in elimination order (front i's pivot columns
	// are the FrontNPivCol[i] entries after front i-1's).
	FrontCols []int

	// Rs is reserved for the parallel numeric phase's row scaling;
	// analysis never touches it.
	Rs []float64
}

// Close releases the workspace. There is no separate native allocator
// in this port (the Go runtime reclaims the backing slices), so Close
// only marks the workspace as released and clears its references,
// guarding against accidental reuse after hand-off.
func (w *Workspace) Close() error {
	if w == nil || w.released {
		return nil
	}
	w.released = true
	w.Si, w.Sp = nil, nil
	w.Cperm1, w.Rperm1, w.InvRperm1 = nil, nil, nil
	w.InFront = nil
	w.FrontNPivCol, w.FrontNRows, w.FrontNCols, w.FrontParent = nil, nil, nil, nil
	w.FrontCols = nil
	w.Rs = nil
	return nil
}
