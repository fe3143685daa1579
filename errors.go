package symlu

import "errors"

// Sentinel errors reported by symbolic analysis. Wrap these with fmt.Errorf("%w: ...") for detail; callers should
// compare with errors.Is.
var (
	// ErrArgumentMissing is returned when a required argument (a
	// matrix, or a user ordering when one was declared) is absent.
	ErrArgumentMissing = errors.New("symlu: required argument missing")

	// ErrNonPositive is returned when n_row or n_col is non-positive.
	ErrNonPositive = errors.New("symlu: matrix dimension must be positive")

	// ErrInvalidMatrix is returned when Ap is non-monotone, a row index
	// is out of range, or a column has duplicate row indices.
	ErrInvalidMatrix = errors.New("symlu: invalid matrix pattern")

	// ErrInvalidPermutation is returned when Quser is not a bijection
	// of {0,...,n_col-1}.
	ErrInvalidPermutation = errors.New("symlu: invalid permutation")

	// ErrOutOfMemory is returned when an allocation checkpoint fails.
	ErrOutOfMemory = errors.New("symlu: out of memory")

	// ErrOrderingFailed is returned when a delegated ordering backend
	// (AMD, COLAMD, METIS/CHOLMOD adapter, or a user callback) reports
	// failure.
	ErrOrderingFailed = errors.New("symlu: ordering failed")

	// ErrInternalError marks an invariant violation in the frontal
	// analyzer or cost estimator that should be unreachable given a
	// validated matrix; it is recovered at the Symbolic/FSymbolic/
	// ParuSymbolic boundary rather than propagated as a panic.
	ErrInternalError = errors.New("symlu: internal error")
)
