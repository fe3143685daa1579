// Package symlu implements the symbolic-analysis phase of an
// unsymmetric-pattern multifrontal sparse LU factorization: singleton
// detection, fill-reducing column ordering, column-elimination-tree
// construction, and flop/memory estimation, producing a SymbolicObject
// consumed by a (not-implemented-here) numeric factorization kernel.
package symlu

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sparselu/symlu/internal/cost"
	"github.com/sparselu/symlu/internal/frontal"
	"github.com/sparselu/symlu/internal/order"
	"github.com/sparselu/symlu/internal/prune"
	"github.com/sparselu/symlu/internal/singleton"
	"github.com/sparselu/symlu/internal/strategy"
	"github.com/sparselu/symlu/internal/symmetry"
	"github.com/sparselu/symlu/pattern"
)

// None marks the absence of an index: a front with no parent, or a
// row never claimed by any front.
const None = -1

// FrontTree is the forest of frontal matrices: NFr real fronts plus
// one dummy placeholder front at index NFr that holds the columns no
// real front pivots (singleton and empty columns) and whose first row
// is the first trailing empty row. Every slice has length NFr+1.
type FrontTree struct {
	NFr          int
	NPivCol      []int
	Parent       []int // None at roots and at the dummy front
	FirstRow     []int
	LeftmostDesc []int
}

// ChainList records the maximal runs of fronts that share a working
// buffer during numeric factorization.
type ChainList struct {
	NChains int
	Start   []int // length NChains+1, Start[NChains] == FrontTree.NFr
	MaxRows []int
	MaxCols []int
}

// SymbolicObject is the persistent result of a symbolic analysis,
// consumed later by a numeric factorization kernel. Its arrays are
// owned exclusively by this value; Close releases them explicitly.
type SymbolicObject struct {
	NRow, NCol, NZ int

	CpermInit, RpermInit pattern.Permutation
	Cdeg, Rdeg           []int

	FrontTree FrontTree
	Chains    ChainList

	// DiagonalMap is non-nil iff PreferDiagonal was set or the
	// analysis was requested via ParuSymbolic (and the matrix is
	// square).
	DiagonalMap []int

	// Esize holds compressed dense-row sizes; nil when no row of the
	// pruned submatrix was flagged dense.
	Esize []int

	AmdLunz, AmdDmax, AmdFlops int

	LunzBound       int
	NumMemSizeEst   int64
	NumMemUsageEst  int64
	NumMemInitUsage int64

	MaxNRows, MaxNCols int
	DMaxFrSize         int

	Strategy       Strategy
	FixQ           bool
	PreferDiagonal bool
	Ordering       Ordering

	// DenseRowThreshold is the degree above which a row of the pruned
	// submatrix was treated as dense.
	DenseRowThreshold int

	// NEmpty is the number of trailing empty columns.
	NEmpty           int
	N1, N1Row, N1Col int
	BlockSize        int
}

// Close releases sym. No separate native allocator backs this port, so
// Close only clears references, matching free_symbolic's documented
// effect without a manual malloc/free pair to mirror.
func (sym *SymbolicObject) Close() error {
	if sym == nil {
		return nil
	}
	*sym = SymbolicObject{}
	return nil
}

// UserOrdering is the signature of a caller-supplied ordering
// callback.
type UserOrdering func(nrow, ncol int, sym bool, ap, ai []int, params interface{}) (p []int, info [3]int, ok bool)

// Symbolic runs the default symbolic-analysis path. ax may be nil;
// when absent, diagonal-nonzero counting and AUTO strategy selection
// both fall back to their documented vacuous cases (see analyzeCore).
func Symbolic(nRow, nCol int, ap, ai []int, ax []float64, quser pattern.Permutation, control Control) (*SymbolicObject, Info) {
	sym, ws, info := analyzeCore(nRow, nCol, ap, ai, ax, nil, quser, nil, nil, control, false)
	ws.Close()
	return sym, info
}

// ZSymbolic is Symbolic for a complex-valued matrix: az carries the
// imaginary parts, parallel to ax. The values are consulted only for
// diagonal-nonzero counting; an entry is numerically nonzero when
// either part is.
func ZSymbolic(nRow, nCol int, ap, ai []int, ax, az []float64, quser pattern.Permutation, control Control) (*SymbolicObject, Info) {
	sym, ws, info := analyzeCore(nRow, nCol, ap, ai, ax, az, quser, nil, nil, control, false)
	ws.Close()
	return sym, info
}

// FSymbolic is Symbolic with a caller-supplied ordering callback.
func FSymbolic(nRow, nCol int, ap, ai []int, ax []float64, quser pattern.Permutation, userOrdering UserOrdering, userParams interface{}, control Control) (*SymbolicObject, Info) {
	sym, ws, info := analyzeCore(nRow, nCol, ap, ai, ax, nil, quser, userOrdering, userParams, control, false)
	ws.Close()
	return sym, info
}

// ParuSymbolic is Symbolic (optionally with a user ordering callback)
// but additionally transfers the Workspace to the caller for a
// companion parallel numeric kernel, and builds DiagonalMap regardless
// of PreferDiagonal whenever the matrix is square.
func ParuSymbolic(nRow, nCol int, ap, ai []int, ax []float64, quser pattern.Permutation, userOrdering UserOrdering, userParams interface{}, control Control) (*SymbolicObject, *Workspace, Info) {
	return analyzeCore(nRow, nCol, ap, ai, ax, nil, quser, userOrdering, userParams, control, true)
}

// analyzeCore implements the analysis pipeline, shared by all the
// entry points. forParu selects the workspace hand-off and the
// always-build-DiagonalMap behavior of ParuSymbolic.
func analyzeCore(nRow, nCol int, ap, ai []int, ax, az []float64, quser pattern.Permutation, userOrdering UserOrdering, userParams interface{}, control Control, forParu bool) (sym *SymbolicObject, ws *Workspace, info Info) {
	start := time.Now()
	control.normalize()
	info = Info{NRow: nRow, NCol: nCol}

	defer func() {
		if r := recover(); r != nil {
			sym, ws = nil, nil
			info.Status = fmt.Errorf("%w: %v", ErrInternalError, r)
		}
		info.SymbolicTime = time.Since(start)
	}()

	if ap == nil || ai == nil {
		info.Status = fmt.Errorf("%w: Ap/Ai required", ErrArgumentMissing)
		return nil, nil, info
	}
	if nRow <= 0 || nCol <= 0 {
		info.Status = fmt.Errorf("%w: n_row=%d, n_col=%d", ErrNonPositive, nRow, nCol)
		return nil, nil, info
	}

	m := &pattern.Matrix{Rows: nRow, Cols: nCol, Ap: ap, Ai: ai, Ax: ax, Az: az}
	info.NZ = m.NNZ()

	sres, err := singleton.Find(m, quser, control.Singletons)
	if err != nil {
		info.Status = wrapValidationErr(err)
		return nil, nil, info
	}

	pres := prune.Extract(m, sres.Cperm1, sres.Rperm1, sres.N1, sres.NEmptyCol, sres.NEmptyRow)
	s := pres.S

	rectangular := nRow != nCol
	var symRes *symmetry.Result
	if !rectangular && control.Strategy != StrategyUnsymmetric {
		symRes = symmetry.Analyze(s)
	}

	// A reduced block of dimension zero (every column/row consumed by
	// singletons) has nothing to check for diagonal density; treat
	// the unavailable/negative nzdiag sentinel as 0 rather than
	// vacuously failing the "nzdiag >= tnzd*n2" test at n2=0.
	nzDiagForStrategy := pres.NZDiag
	if nzDiagForStrategy < 0 {
		nzDiagForStrategy = 0
	}

	decision := strategy.Select(strategy.Params{
		Requested:     toRequested(control.Strategy),
		Rectangular:   rectangular,
		QuserSet:      quser != nil,
		IsSym:         sres.IsSym,
		Sym:           symOrZero(symRes),
		NZDiag:        nzDiagForStrategy,
		N2:            s.Cols,
		ThreshSym:     control.StrategyThreshSym,
		ThreshNNZDiag: control.StrategyThreshNNZD,
		ForceFixQ:     control.FixQ,
	})
	info.StrategyUsed = fromRequested(decision.Strategy)

	var sdeg []int
	if symRes != nil {
		sdeg = symRes.Sdeg
	}

	orderer, err := buildOrderer(control, quser, userOrdering, userParams)
	if err != nil {
		info.Status = err
		return nil, nil, info
	}
	ordRes, err := orderer.Order(s, decision.Strategy == strategy.Symmetric, sdeg)
	if err != nil {
		info.Status = fmt.Errorf("%w: %v", ErrOrderingFailed, err)
		return nil, nil, info
	}

	b := reorderColumns(s, ordRes.Qinv)
	var fres *frontal.Result
	if hint := ordRes.FrontTree; hint != nil && ordRes.NDenseRow == 0 && ordRes.NDenseCol == 0 {
		// COLAMD already derived a front tree as a side effect of its
		// elimination; adopt it. A flagged dense row or column falls
		// through to a fresh analysis instead, since COLAMD withheld
		// those from its simulation.
		fres = frontal.FromColamd(hint.RowToFront, hint.FrontNPivCol, hint.FrontNRows, hint.FrontNCols, hint.FrontParent, b.Cols)
	} else {
		fres, err = frontal.Analyze(b, decision.FixQ)
		if err != nil {
			info.Status = fmt.Errorf("%w: %v", ErrInternalError, err)
			return nil, nil, info
		}
	}

	finalMiddleQ := make([]int, len(ordRes.Qinv))
	for i, c2 := range fres.Cperm2 {
		finalMiddleQ[i] = ordRes.Qinv[c2]
	}
	cpermInit := order.CombineOrdering(sres.N1, sres.NEmptyCol, sres.Cperm1, finalMiddleQ)

	rowOrder := argsortRowsByFront(fres.InFront)
	rpermInit := order.CombineOrdering(sres.N1, sres.NEmptyRow, sres.Rperm1, rowOrder)

	chains := frontal.Segment(fres.Fronts)
	ft := buildFrontTree(fres.Fronts, sres.N1, s.Rows, nCol)
	cl := buildChainList(chains, ft.NFr)

	cdeg := make([]int, nCol)
	for k, oldC := range cpermInit {
		cdeg[k] = sres.Cdeg[oldC]
	}
	rdeg := make([]int, nRow)
	for k, oldR := range rpermInit {
		rdeg[k] = sres.Rdeg[oldR]
	}

	est := cost.Simulate(fres.Fronts, chains, control.BlockSize)
	singletonStorage := cost.SingletonStorage(cdeg, rdeg, sres.N1)
	lunzBound := int64(sres.N1) + singletonStorage + est.Lunz

	numMemInit := int64(2*nCol + 2*nRow)
	numMemUsage := numMemInit + singletonStorage + est.HeadUnits + est.PeakTailUnits
	numMemSize := numMemUsage + int64(4*ft.NFr+3*cl.NChains)

	var diagMap []int
	if (decision.PreferDiagonal || forParu) && nRow == nCol {
		rpermInv := rpermInit.Inverse()
		diagMap = make([]int, nCol)
		for newcol := 0; newcol < nCol; newcol++ {
			diagMap[newcol] = rpermInv[cpermInit[newcol]]
		}
	}

	rowThresh := cost.DenseThreshold(control.DenseRow, s.Cols)
	colThresh := cost.DenseThreshold(control.DenseCol, s.Rows)
	nDenseRow, nDenseCol := 0, 0
	for _, d := range s.RowDegree() {
		if d > rowThresh {
			nDenseRow++
		}
	}
	for _, d := range s.ColumnDegree() {
		if d > colThresh {
			nDenseCol++
		}
	}
	esize := cost.ComputeEsize(s, control.DenseRow, control.DenseCol)

	info.N1, info.N1Row, info.N1Col = sres.N1, sres.N1Row, sres.N1Col
	info.NEmptyRow, info.NEmptyCol = sres.NEmptyRow, sres.NEmptyCol
	info.NDenseRow, info.NDenseCol = nDenseRow, nDenseCol
	info.DenseRowThreshold = rowThresh
	if symRes != nil {
		info.PatternSymmetry = symRes.Sym
		info.NZAAt = symRes.NZAAt
	}
	info.NZDiag = pres.NZDiag
	info.AmdLunz, info.AmdDmax, info.AmdFlops = ordRes.Stats.Lnz, ordRes.Stats.Dmax, ordRes.Stats.Flops
	info.LunzBound = int(lunzBound)
	info.NumMemSizeEst, info.NumMemUsageEst, info.NumMemInitUsage = numMemSize, numMemUsage, numMemInit
	info.SymbolicPeakMemory = int64(2*info.NZ + 6*(nRow+nCol))
	info.MaxNRows, info.MaxNCols = est.MaxNRows, est.MaxNCols
	info.DMaxFrSize = est.DMaxFrSize
	orderingUsed := control.Ordering
	if quser != nil {
		orderingUsed = OrderingGiven
	}
	info.OrderingUsed = orderingUsed

	sym = &SymbolicObject{
		NRow: nRow, NCol: nCol, NZ: info.NZ,
		CpermInit: cpermInit, RpermInit: rpermInit,
		Cdeg: cdeg, Rdeg: rdeg,
		FrontTree: ft, Chains: cl,
		DiagonalMap: diagMap, Esize: esize,
		AmdLunz: info.AmdLunz, AmdDmax: info.AmdDmax, AmdFlops: info.AmdFlops,
		LunzBound:         info.LunzBound,
		NumMemSizeEst:     numMemSize,
		NumMemUsageEst:    numMemUsage,
		NumMemInitUsage:   numMemInit,
		MaxNRows:          est.MaxNRows,
		MaxNCols:          est.MaxNCols,
		DMaxFrSize:        est.DMaxFrSize,
		Strategy:          info.StrategyUsed,
		FixQ:              decision.FixQ,
		PreferDiagonal:    decision.PreferDiagonal,
		Ordering:          orderingUsed,
		DenseRowThreshold: rowThresh,
		NEmpty:            sres.NEmptyCol,
		N1:                sres.N1, N1Row: sres.N1Row, N1Col: sres.N1Col,
		BlockSize:         control.BlockSize,
	}

	// The workspace owns its arrays exclusively (no aliasing of the
	// SymbolicObject's front tree), and reports InFront over original
	// row indices: None for singleton rows, NFr for empty rows.
	inFront := make([]int, nRow)
	for r := range inFront {
		inFront[r] = None
	}
	for k, fi := range fres.InFront {
		oldRow := sres.Rperm1[sres.N1+k]
		if fi == frontal.DummyFront {
			inFront[oldRow] = ft.NFr
		} else {
			inFront[oldRow] = fi
		}
	}
	for k := nRow - sres.NEmptyRow; k < nRow; k++ {
		inFront[sres.Rperm1[k]] = ft.NFr
	}

	ws = &Workspace{
		Si: s.Ai, Sp: s.Ap,
		Cperm1: sres.Cperm1, Rperm1: sres.Rperm1, InvRperm1: sres.InvRperm1,
		InFront:      inFront,
		FrontNPivCol: append([]int(nil), ft.NPivCol[:ft.NFr]...),
		FrontNRows:   frontNRows(fres.Fronts),
		FrontNCols:   frontNCols(fres.Fronts),
		FrontParent:  append([]int(nil), ft.Parent[:ft.NFr]...),
		FrontCols:    append([]int(nil), cpermInit[sres.N1:nCol-sres.NEmptyCol]...),
	}

	return sym, ws, info
}

// buildOrderer picks the ordering backend: an explicit Quser always
// wins, otherwise Control.Ordering dispatches to one of the adapters
// in internal/order.
func buildOrderer(control Control, quser pattern.Permutation, userOrdering UserOrdering, userParams interface{}) (order.Orderer, error) {
	if quser != nil {
		return order.GivenOrder{Quser: quser}, nil
	}
	switch control.Ordering {
	case OrderingAmd:
		return order.AmdOrder{Dense: control.AmdDense}, nil
	case OrderingCholmod:
		return order.CholmodOrder{PrintLevel: control.PrintLevel, AmdDense: control.AmdDense}, nil
	case OrderingMetis:
		return order.MetisOrder{DenseRow: control.DenseRow, DenseCol: control.DenseCol, Aggressive: control.Aggressive}, nil
	case OrderingNone:
		return order.IdentityOrder{}, nil
	case OrderingUser:
		if userOrdering == nil {
			return nil, fmt.Errorf("%w: OrderingUser requires a callback", ErrArgumentMissing)
		}
		return order.UserOrder{Callback: order.UserCallback(userOrdering), Params: userParams}, nil
	case OrderingMetisGuard:
		return order.MetisGuardOrder{DenseRow: control.DenseRow, DenseCol: control.DenseCol, Aggressive: control.Aggressive}, nil
	default: // OrderingBest, and any normalized-away invalid value
		return order.BestOrder{
			DenseRow: control.DenseRow, DenseCol: control.DenseCol,
			AmdDense: control.AmdDense, Aggressive: control.Aggressive,
		}, nil
	}
}

// reorderColumns returns s with its columns permuted by qinv: the k-th
// column of the result is s's column qinv[k].
func reorderColumns(s *pattern.Matrix, qinv []int) *pattern.Matrix {
	ap := make([]int, len(qinv)+1)
	var ai []int
	for k, oldCol := range qinv {
		for p := s.Ap[oldCol]; p < s.Ap[oldCol+1]; p++ {
			ai = append(ai, s.Ai[p])
		}
		ap[k+1] = len(ai)
	}
	return &pattern.Matrix{Rows: s.Rows, Cols: len(qinv), Ap: ap, Ai: ai}
}

// argsortRowsByFront orders the rows of the reduced middle block by
// ascending front index, breaking ties by original row index within
// the block and placing rows claimed by no front last.
func argsortRowsByFront(inFront []int) []int {
	rowOrder := make([]int, len(inFront))
	for i := range rowOrder {
		rowOrder[i] = i
	}
	sort.SliceStable(rowOrder, func(a, b int) bool {
		ra, rb := rowOrder[a], rowOrder[b]
		fa, fb := inFront[ra], inFront[rb]
		da, db := fa == frontal.DummyFront, fb == frontal.DummyFront
		if da != db {
			return db
		}
		if fa != fb {
			return fa < fb
		}
		return ra < rb
	})
	return rowOrder
}

// buildFrontTree assembles the FrontTree, including the dummy
// placeholder front at index NFr (firstRowBase is sres.N1; the middle
// block's own row indices from frontal.Analyze are shifted into the
// full Rperm_init row space).
func buildFrontTree(fronts []frontal.Front, firstRowBase, middleRows, nCol int) FrontTree {
	nfr := len(fronts)
	ft := FrontTree{
		NFr:          nfr,
		NPivCol:      make([]int, nfr+1),
		Parent:       make([]int, nfr+1),
		FirstRow:     make([]int, nfr+1),
		LeftmostDesc: make([]int, nfr+1),
	}
	sumPiv := 0
	for i, fr := range fronts {
		ft.NPivCol[i] = fr.NPivCol
		ft.Parent[i] = fr.Parent
		ft.FirstRow[i] = firstRowBase + fr.FirstRow
		ft.LeftmostDesc[i] = fr.LeftmostDesc
		sumPiv += fr.NPivCol
	}
	ft.NPivCol[nfr] = nCol - sumPiv
	ft.Parent[nfr] = None
	ft.FirstRow[nfr] = firstRowBase + middleRows
	ft.LeftmostDesc[nfr] = nfr
	return ft
}

func buildChainList(chains []frontal.Chain, nfr int) ChainList {
	cl := ChainList{
		NChains: len(chains),
		Start:   make([]int, len(chains)+1),
		MaxRows: make([]int, len(chains)),
		MaxCols: make([]int, len(chains)),
	}
	for i, c := range chains {
		cl.Start[i] = c.Start
		cl.MaxRows[i] = c.MaxRows
		cl.MaxCols[i] = c.MaxCols
	}
	cl.Start[len(chains)] = nfr
	return cl
}

func frontNRows(fronts []frontal.Front) []int {
	out := make([]int, len(fronts))
	for i, fr := range fronts {
		out[i] = fr.NRows
	}
	return out
}

func frontNCols(fronts []frontal.Front) []int {
	out := make([]int, len(fronts))
	for i, fr := range fronts {
		out[i] = fr.NCols
	}
	return out
}

func toRequested(s Strategy) strategy.Requested {
	switch s {
	case StrategySymmetric:
		return strategy.Symmetric
	case StrategyUnsymmetric:
		return strategy.Unsymmetric
	default:
		return strategy.Auto
	}
}

func fromRequested(r strategy.Requested) Strategy {
	if r == strategy.Symmetric {
		return StrategySymmetric
	}
	return StrategyUnsymmetric
}

func symOrZero(r *symmetry.Result) float64 {
	if r == nil {
		return 0
	}
	return r.Sym
}

// wrapValidationErr maps the pattern package's sentinel errors onto
// this package's own, so callers can errors.Is against either without
// reaching into internal packages.
func wrapValidationErr(err error) error {
	switch {
	case errors.Is(err, pattern.ErrInvalidPermutation):
		return fmt.Errorf("%w: %v", ErrInvalidPermutation, err)
	case errors.Is(err, pattern.ErrInvalidMatrix):
		return fmt.Errorf("%w: %v", ErrInvalidMatrix, err)
	default:
		return err
	}
}
