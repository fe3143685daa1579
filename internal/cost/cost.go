// Package cost simulates the numeric factorization implied by a front
// tree and chain list, producing canonical upper-bound flop, fill,
// and memory estimates (assuming no numerical cancellation reduces
// work).
package cost

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/sparselu/symlu/internal/frontal"
	"github.com/sparselu/symlu/pattern"
)

// Canonical DIV/MULTSUB weights: one division and one multiply-add
// per inner-product term.
const (
	divWeight     = 1.0
	multsubWeight = 1.0
)

// Estimate is the canonical-upper-bound cost summary of a front tree.
type Estimate struct {
	Flops         int64
	Lunz          int64
	Uunz          int64
	HeadUnits     int64 // factor storage growth, in DUNITS
	PeakTailUnits int64 // peak working-element storage, in DUNITS
	MaxNRows      int
	MaxNCols      int
	DMaxFrSize    int
}

// Simulate walks fronts (indexed as frontal.Result.Fronts) grouped by
// chain, accumulating the canonical upper bounds.
func Simulate(fronts []frontal.Front, chains []frontal.Chain, blockSize int) *Estimate {
	est := &Estimate{}
	if len(fronts) == 0 {
		return est
	}

	children := make([][]int, len(fronts))
	for i, fr := range fronts {
		if fr.Parent >= 0 {
			children[fr.Parent] = append(children[fr.Parent], i)
		}
	}

	schurRows := make([]int, len(fronts))
	schurCols := make([]int, len(fronts))

	var head, tail, peakTail float64
	for ci, chain := range chains {
		end := len(fronts)
		if ci+1 < len(chains) {
			end = chains[ci+1].Start
		}

		for i := chain.Start; i < end; i++ {
			for _, c := range children[i] {
				tail -= elementSize(schurRows[c], schurCols[c])
			}

			fr := fronts[i]
			f := fr.NPivCol
			r := fr.NRows - f
			if r < 0 {
				r = 0
			}
			c := fr.NCols - f
			if c < 0 {
				c = 0
			}
			schurRows[i], schurCols[i] = r, c

			ff := float64(f)
			fr64, fc64 := float64(r), float64(c)
			est.Flops += int64(divWeight*(ff*fr64+(ff-1)*ff/2) +
				multsubWeight*(ff*fr64*fc64+(fr64+fc64)*(ff-1)*ff/2+(ff-1)*ff*(2*ff-1)/6))

			dlf := (f*f-f)/2 + f*r
			duf := (f*f-f)/2 + f*c
			est.Lunz += int64(dlf)
			est.Uunz += int64(duf)
			head += float64(dunits(entryUnitSize, dlf+duf) + dunits(intUnitSize, r+c+f))

			if fr.Parent >= 0 {
				tail += elementSize(r, c)
			}
			peakTail = floats.Max([]float64{peakTail, tail})

			if fr.NRows > est.MaxNRows {
				est.MaxNRows = fr.NRows
			}
			if fr.NCols > est.MaxNCols {
				est.MaxNCols = fr.NCols
			}
		}

		if ci+1 < len(chains) {
			next := chains[ci+1]
			tail += float64(next.MaxRows*next.MaxCols + blockSize*next.MaxCols + next.MaxRows*blockSize + blockSize*blockSize)
			peakTail = floats.Max([]float64{peakTail, tail})
		}
	}

	est.HeadUnits = int64(head)
	est.PeakTailUnits = int64(peakTail)
	est.DMaxFrSize = dmaxFrSize(chains)
	if est.MaxNRows%2 == 0 && est.MaxNRows > 0 {
		est.MaxNRows++
	}
	return est
}

func dmaxFrSize(chains []frontal.Chain) int {
	best := 0
	for _, c := range chains {
		if v := c.MaxRows * c.MaxCols; v > best {
			best = v
		}
	}
	return best
}

func elementSize(r, c int) float64 {
	return float64(r * c)
}

// entryUnitSize/intUnitSize are the allocator-unit conversion ratios:
// one numeric entry and one index occupy a single allocator unit in
// this simplified model.
const (
	entryUnitSize = 1
	intUnitSize   = 1
)

func dunits(unitSize, count int) int {
	if count <= 0 {
		return 0
	}
	return (count*unitSize + unitSize - 1) / unitSize
}

// DenseThreshold mirrors UMFPACK_DENSE_DEGREE_THRESHOLD: a dimension is
// dense above max(16, frac*sqrt(dim)). A negative frac disables dense
// detection entirely.
func DenseThreshold(frac float64, dim int) int {
	if frac < 0 {
		return dim + 1
	}
	t := int(frac * math.Sqrt(float64(dim)))
	if t < 16 {
		t = 16
	}
	return t
}

// ComputeEsize builds the compressed dense-row size array: one entry
// per row of s whose degree exceeds the dense-row threshold, holding
// the count of that row's nonzeros restricted to non-dense columns.
// Returns nil when no row is dense.
func ComputeEsize(s *pattern.Matrix, denseRowFrac, denseColFrac float64) []int {
	rowDeg := s.RowDegree()
	rowThresh := DenseThreshold(denseRowFrac, s.Cols)
	anyDenseRow := false
	for _, d := range rowDeg {
		if d > rowThresh {
			anyDenseRow = true
			break
		}
	}
	if !anyDenseRow {
		return nil
	}

	colDeg := s.ColumnDegree()
	colThresh := DenseThreshold(denseColFrac, s.Rows)
	denseCol := make([]bool, s.Cols)
	for c, d := range colDeg {
		denseCol[c] = d > colThresh
	}

	counts := make([]int, s.Rows)
	for c := 0; c < s.Cols; c++ {
		if denseCol[c] {
			continue
		}
		for p := s.Ap[c]; p < s.Ap[c+1]; p++ {
			counts[s.Ai[p]]++
		}
	}

	var esize []int
	for r, d := range rowDeg {
		if d > rowThresh {
			esize = append(esize, counts[r])
		}
	}
	return esize
}

// SingletonStorage adds up the up-front LU storage contributed by the
// n1 singleton pivots: Cdeg[k]-1 plus Rdeg[k]-1 for each k < n1.
func SingletonStorage(cdeg, rdeg []int, n1 int) int64 {
	var total int64
	for k := 0; k < n1; k++ {
		if cdeg[k] > 0 {
			total += int64(cdeg[k] - 1)
		}
		if rdeg[k] > 0 {
			total += int64(rdeg[k] - 1)
		}
	}
	return total
}
