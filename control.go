package symlu

// Strategy selects the overall ordering/elimination strategy.
type Strategy int

const (
	// StrategyAuto lets the strategy selector pick Symmetric or
	// Unsymmetric based on matrix shape, symmetry ratio, and diagonal
	// density.
	StrategyAuto Strategy = iota
	// StrategyUnsymmetric forces the unsymmetric strategy.
	StrategyUnsymmetric
	// StrategySymmetric forces the symmetric strategy (square matrices
	// only; rectangular input always forces Unsymmetric regardless of
	// this setting).
	StrategySymmetric
)

// Ordering selects the ordering backend. Out-of-range
// values fall back to OrderingBest, mirroring UMFPACK's
// "unrecognized -> default" contract for Control entries.
type Ordering int

const (
	OrderingAmd Ordering = iota
	OrderingGiven
	OrderingCholmod
	OrderingMetis
	OrderingNone
	OrderingBest
	OrderingUser
	OrderingMetisGuard
)

// Defaults for the Control knobs, named rather than left as magic
// numbers, mirroring COLAMD's knobs[] convention of named defaults.
const (
	DefaultStrategy            = StrategyAuto
	DefaultOrdering            = OrderingBest
	DefaultSingletons          = true
	DefaultFixQ                = 0 // 0: let the strategy decide; >0: force true; <0: force false
	DefaultDenseRow            = 0.2
	DefaultDenseCol            = 0.2
	DefaultAmdDense            = 10.0
	DefaultBlockSize           = 32
	DefaultAggressive          = true
	DefaultPrintLevel          = 0
	DefaultStrategyThreshSym   = 0.5
	DefaultStrategyThreshNNZD  = 0.9
	minBlockSize               = 2
	maxBlockSize               = 1024
)

// Control gathers the analysis's tunable knobs as named fields, the
// idiomatic replacement for UMFPACK's sparse-indexed double Control
// vector.
type Control struct {
	Strategy   Strategy
	Ordering   Ordering
	Singletons bool

	// FixQ overrides the strategy-derived column-fixing decision:
	// 0 defers to the strategy, positive forces true, negative forces
	// false.
	FixQ int

	// DenseRow and DenseCol are COLAMD dense-row/column fractional
	// thresholds in [0,1).
	DenseRow, DenseCol float64

	// AmdDense is the AMD dense-row/column degree multiplier:
	// max(16, AmdDense*sqrt(n)) is the degree above which a row/column
	// is treated as dense by do_amd_1-style AMD.
	AmdDense float64

	// BlockSize (nb) is clamped to [2,MAXNB] and rounded up to even.
	BlockSize int

	Aggressive bool

	// PrintLevel is accepted for contract compatibility but is a
	// documented no-op: diagnostic printing is out of scope.
	PrintLevel int

	StrategyThreshSym  float64
	StrategyThreshNNZD float64
}

// DefaultControl returns the default Control settings.
func DefaultControl() Control {
	return Control{
		Strategy:           DefaultStrategy,
		Ordering:           DefaultOrdering,
		Singletons:         DefaultSingletons,
		FixQ:               DefaultFixQ,
		DenseRow:           DefaultDenseRow,
		DenseCol:           DefaultDenseCol,
		AmdDense:           DefaultAmdDense,
		BlockSize:          DefaultBlockSize,
		Aggressive:         DefaultAggressive,
		PrintLevel:         DefaultPrintLevel,
		StrategyThreshSym:  DefaultStrategyThreshSym,
		StrategyThreshNNZD: DefaultStrategyThreshNNZD,
	}
}

// normalize clamps and defaults out-of-range Control values in place:
// unrecognized enum values fall back to their defaults, BlockSize is
// clamped and rounded up to even.
func (c *Control) normalize() {
	if c.Strategy < StrategyAuto || c.Strategy > StrategySymmetric {
		c.Strategy = StrategyAuto
	}
	if c.Ordering < OrderingAmd || c.Ordering > OrderingMetisGuard {
		c.Ordering = DefaultOrdering
	}
	if c.StrategyThreshSym <= 0 {
		c.StrategyThreshSym = DefaultStrategyThreshSym
	}
	if c.StrategyThreshNNZD <= 0 {
		c.StrategyThreshNNZD = DefaultStrategyThreshNNZD
	}
	if c.BlockSize < minBlockSize {
		c.BlockSize = minBlockSize
	}
	if c.BlockSize > maxBlockSize {
		c.BlockSize = maxBlockSize
	}
	if c.BlockSize%2 != 0 {
		c.BlockSize++
	}
	if c.AmdDense <= 0 {
		c.AmdDense = DefaultAmdDense
	}
}
