package symlu

import "time"

// Info reports the statistics and status of a symbolic analysis, as
// a typed struct rather than UMFPACK's fixed-width double Info
// vector.
type Info struct {
	Status error // nil on success

	NRow, NCol int
	NZ         int

	StrategyUsed Strategy
	OrderingUsed Ordering

	N1, N1Row, N1Col       int
	NEmptyRow, NEmptyCol   int
	NDenseRow, NDenseCol   int
	DenseRowThreshold      int

	PatternSymmetry float64 // "sym" ratio of S
	NZAAt           int     // nnz(S+S^T), off-diagonal
	NZDiag          int     // structurally-and-numerically nonzero diagonal entries

	// AMD-derived estimates for the symmetric strategy.
	AmdLunz  int
	AmdDmax  int
	AmdFlops int

	LunzBound       int
	NumMemSizeEst   int64
	NumMemUsageEst  int64
	NumMemInitUsage int64

	// SymbolicPeakMemory estimates the analysis's own working-array
	// footprint, in integer units: the pruned pattern and its
	// transpose plus the permutation and degree vectors.
	SymbolicPeakMemory int64

	MaxNRows, MaxNCols int
	DMaxFrSize         int

	SymbolicTime time.Duration
}
