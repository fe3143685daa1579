// Package frontal builds the column elimination tree, row assignment,
// and per-front geometry over the column-reordered reduced submatrix,
// using the classic sparse elimination-tree construction and
// bottom-up fill-pattern propagation (Liu 1990; Davis, Direct Methods
// for Sparse Linear Systems, ch. 4) for the parent-chain computation
// and the fundamental-supernode merge that collapses a dense run of
// columns into a single front.
//
// Fronts are numbered by their position in the final column order, so
// that chain segmentation can detect a chain boundary with the simple
// test Front_parent[i] != i+1. Unless fixQ, that order is the one
// topo.Sort returns: every column comes after all of its descendants,
// but a subtree's columns are not guaranteed to be contiguous (the
// order is topological, not necessarily a post-order). The
// front-parent relation is modeled as a gonum DirectedGraph and
// walked with graph/topo (well-formedness: a tree has no cycles, and
// a topological order is a valid elimination order) and
// graph/traverse (leftmost-descendant search).
package frontal

import (
	"fmt"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/sparselu/symlu/pattern"
)

// DummyFront is the InFront value for a row never claimed by any
// front's pivot columns.
const DummyFront = -1

// Front is one node of the front tree, indexed by its final position
// in the column order (see package doc). A front may carry several
// pivot columns when the fundamental-supernode condition merges
// adjacent columns with nested row patterns.
type Front struct {
	NPivCol      int
	NRows        int
	NCols        int
	Parent       int // -1 for a root, else the index of the parent front
	FirstRow     int // Front_1strow: first renumbered row this front owns (prefix sum of claimed-row counts)
	LeftmostDesc int // smallest front index in this front's subtree
}

// Result is the outcome of the frontal analysis.
type Result struct {
	Fronts  []Front
	InFront []int // per reduced-row front index, or DummyFront
	Cperm2  []int // final column order: the column of b at each position
}

// Analyze performs the column elimination tree analysis over the
// column-reordered reduced submatrix b. When fixQ is true, columns are
// kept in their incoming order; otherwise they take the topological
// order topo.Sort returns for the elimination tree.
func Analyze(b *pattern.Matrix, fixQ bool) (*Result, error) {
	n := b.Cols
	rowRank := deriveRowOrder(b)
	parentOf := columnEliminationTree(b, rowRank)
	colPattern, colCount := fillPatterns(b, rowRank, parentOf)

	g := simple.NewDirectedGraph()
	for k := 0; k < n; k++ {
		g.AddNode(simple.Node(k))
	}
	for k := 0; k < n; k++ {
		if parentOf[k] >= 0 {
			g.SetEdge(g.NewEdge(simple.Node(k), simple.Node(parentOf[k])))
		}
	}

	var cperm2 []int
	if fixQ {
		cperm2 = make([]int, n)
		for i := range cperm2 {
			cperm2[i] = i
		}
	} else {
		order, err := topo.Sort(g)
		if err != nil {
			return nil, fmt.Errorf("frontal: column elimination graph is not a forest: %w", err)
		}
		cperm2 = make([]int, 0, n)
		for _, nd := range order {
			cperm2 = append(cperm2, int(nd.ID()))
		}
	}

	postPos := make([]int, n)
	for i, c := range cperm2 {
		postPos[c] = i
	}
	// By construction of the elimination tree a parent always has a
	// larger original column index than its children, and topo.Sort
	// places children before parents, so postPos[parentOf[c]] is
	// always > postPos[c].
	frontParent := make([]int, n)
	for i, c := range cperm2 {
		if parentOf[c] < 0 {
			frontParent[i] = -1
		} else {
			frontParent[i] = postPos[parentOf[c]]
		}
	}

	fronts, groupOf := mergeSupernodes(cperm2, frontParent, colPattern, colCount)

	leftmost := computeLeftmostDescendants(fronts)
	for i := range fronts {
		fronts[i].LeftmostDesc = leftmost[i]
	}

	inFront := make([]int, b.Rows)
	for r := range inFront {
		inFront[r] = DummyFront
	}
	for i, c := range cperm2 {
		fi := groupOf[i]
		for p := b.Ap[c]; p < b.Ap[c+1]; p++ {
			r := b.Ai[p]
			if inFront[r] == DummyFront {
				inFront[r] = fi
			}
		}
	}

	// Front_1strow: rows are renumbered so each front's claimed rows
	// are contiguous, so the first row a front owns is the prefix sum
	// of the claimed-row counts of the fronts before it.
	claimed := make([]int, len(fronts))
	for _, fi := range inFront {
		if fi != DummyFront {
			claimed[fi]++
		}
	}
	next := 0
	for i := range fronts {
		fronts[i].FirstRow = next
		next += claimed[i]
	}

	return &Result{Fronts: fronts, InFront: inFront, Cperm2: cperm2}, nil
}

// FromColamd adapts the preliminary front tree a Colamd-style column
// elimination derives (row-to-front assignment plus per-front counts
// and parents) into a Result, in place of a fresh column-elimination
// analysis. rowToFront holds len(npivcol) for rows claimed by no
// front; the incoming column order is already the elimination order,
// so Cperm2 is the identity over nCols columns.
func FromColamd(rowToFront, npivcol, nrows, ncols, parent []int, nCols int) *Result {
	nfr := len(npivcol)
	fronts := make([]Front, nfr)
	for i := range fronts {
		fronts[i] = Front{
			NPivCol: npivcol[i],
			NRows:   nrows[i],
			NCols:   ncols[i],
			Parent:  parent[i],
		}
	}

	leftmost := computeLeftmostDescendants(fronts)
	for i := range fronts {
		fronts[i].LeftmostDesc = leftmost[i]
	}

	inFront := make([]int, len(rowToFront))
	claimed := make([]int, nfr)
	for r, fi := range rowToFront {
		if fi < 0 || fi >= nfr {
			inFront[r] = DummyFront
			continue
		}
		inFront[r] = fi
		claimed[fi]++
	}
	next := 0
	for i := range fronts {
		fronts[i].FirstRow = next
		next += claimed[i]
	}

	cperm2 := make([]int, nCols)
	for i := range cperm2 {
		cperm2[i] = i
	}
	return &Result{Fronts: fronts, InFront: inFront, Cperm2: cperm2}
}

// deriveRowOrder assigns each row a rank by first occurrence under
// b's incoming column order, empty rows last.
func deriveRowOrder(b *pattern.Matrix) []int {
	rank := make([]int, b.Rows)
	seen := make([]bool, b.Rows)
	next := 0
	for k := 0; k < b.Cols; k++ {
		for p := b.Ap[k]; p < b.Ap[k+1]; p++ {
			r := b.Ai[p]
			if !seen[r] {
				seen[r] = true
				rank[r] = next
				next++
			}
		}
	}
	for r := 0; r < b.Rows; r++ {
		if !seen[r] {
			rank[r] = next
			next++
		}
	}
	return rank
}

// columnEliminationTree computes the classic symbolic elimination
// tree over row ranks: parent[k] is the smallest column j>k such that
// column k and column j share a row rank below j (Liu 1990 / CSparse
// cs_etree).
func columnEliminationTree(b *pattern.Matrix, rowRank []int) []int {
	n := b.Cols
	parent := make([]int, n)
	ancestor := make([]int, n)
	for k := range parent {
		parent[k] = -1
		ancestor[k] = -1
	}
	for k := 0; k < n; k++ {
		for p := b.Ap[k]; p < b.Ap[k+1]; p++ {
			i := rowRank[b.Ai[p]]
			for i != -1 && i < k {
				next := ancestor[i]
				ancestor[i] = k
				if next == -1 {
					parent[i] = k
				}
				i = next
			}
		}
	}
	return parent
}

// fillPatterns computes, for every column k, the set of row ranks
// that would appear in its symbolic factor column: its own row ranks
// at or above k, unioned with the fill inherited from each child's
// pattern (minus the child's own pivot rank), propagated bottom-up
// along the elimination tree (Davis, Direct Methods, §4.2). Since
// parent[k] > k always, a single ascending pass suffices.
func fillPatterns(b *pattern.Matrix, rowRank []int, parentOf []int) ([]map[int]struct{}, []int) {
	n := b.Cols
	pat := make([]map[int]struct{}, n)
	for k := 0; k < n; k++ {
		pat[k] = make(map[int]struct{})
		for p := b.Ap[k]; p < b.Ap[k+1]; p++ {
			if r := rowRank[b.Ai[p]]; r >= k {
				pat[k][r] = struct{}{}
			}
		}
	}
	for k := 0; k < n; k++ {
		p := parentOf[k]
		if p < 0 {
			continue
		}
		for r := range pat[k] {
			if r != k {
				pat[p][r] = struct{}{}
			}
		}
	}
	count := make([]int, n)
	for k, set := range pat {
		count[k] = len(set)
	}
	return pat, count
}

// mergeSupernodes collapses a run of adjacent fronts i, i+1 into one
// front when front i's only parent is i+1 and their symbolic row
// patterns nest exactly (the fundamental-supernode condition): a
// fully dense block produces a single front with NPivCol equal to its
// dimension.
func mergeSupernodes(cperm2, frontParent []int, colPattern []map[int]struct{}, colCount []int) ([]Front, []int) {
	n := len(cperm2)
	groupOf := make([]int, n)

	var fronts []Front
	i := 0
	for i < n {
		j := i
		for j+1 < n && frontParent[j] == j+1 && nestsExactly(colPattern[cperm2[j]], cperm2[j], colPattern[cperm2[j+1]]) {
			j++
		}

		npivcol := j - i + 1
		nrows := colCount[cperm2[i]]
		fi := len(fronts)
		for k := i; k <= j; k++ {
			groupOf[k] = fi
		}

		parent := -1
		if frontParent[j] >= 0 {
			parent = frontParent[j]
		}
		fronts = append(fronts, Front{
			NPivCol: npivcol,
			NRows:   nrows,
			NCols:   nrows,
			Parent:  parent,
		})
		i = j + 1
	}

	// Reindex parents from front-level indices in the old numbering
	// (frontParent[j], a 0..n-1 index into cperm2) to the new,
	// post-merge front indices.
	for fi, fr := range fronts {
		if fr.Parent < 0 {
			continue
		}
		fronts[fi].Parent = groupOf[fr.Parent]
	}

	return fronts, groupOf
}

func nestsExactly(childPattern map[int]struct{}, childRank int, parentPattern map[int]struct{}) bool {
	if len(childPattern)-1 != len(parentPattern) {
		return false
	}
	for r := range childPattern {
		if r == childRank {
			continue
		}
		if _, ok := parentPattern[r]; !ok {
			return false
		}
	}
	return true
}

// computeLeftmostDescendants walks down from every root with
// traverse.DepthFirst over the parent-reversed (child) graph,
// propagating the smallest front index reached in each subtree back
// up to its ancestors.
func computeLeftmostDescendants(fronts []Front) []int {
	n := len(fronts)
	rg := simple.NewDirectedGraph()
	for i := 0; i < n; i++ {
		rg.AddNode(simple.Node(i))
	}
	var roots []int
	for i, fr := range fronts {
		if fr.Parent < 0 {
			roots = append(roots, i)
		} else {
			rg.SetEdge(rg.NewEdge(simple.Node(fr.Parent), simple.Node(i)))
		}
	}

	leftmost := make([]int, n)
	for i := range leftmost {
		leftmost[i] = i
	}

	var dft traverse.DepthFirst
	for _, root := range roots {
		var visited []int
		dft.Visit = func(v graph.Node) {
			visited = append(visited, int(v.ID()))
		}
		dft.Walk(rg, simple.Node(root), func(graph.Node) bool { return false })
		dft.Reset()

		for i := len(visited) - 1; i >= 0; i-- {
			v := visited[i]
			p := fronts[v].Parent
			if p >= 0 && leftmost[v] < leftmost[p] {
				leftmost[p] = leftmost[v]
			}
		}
	}
	return leftmost
}
