package pattern

import "fmt"

// Permutation is a bijection of {0,...,len(P)-1}. P[k] = i means object
// i occupies position k in the permuted order.
type Permutation []int

// Validate reports whether p is a permutation of {0,...,len(p)-1}.
func (p Permutation) Validate() error {
	n := len(p)
	seen := make([]bool, n)
	for k, i := range p {
		if i < 0 || i >= n {
			return fmt.Errorf("%w: entry P[%d]=%d out of range [0,%d)", ErrInvalidPermutation, k, i, n)
		}
		if seen[i] {
			return fmt.Errorf("%w: permutation repeats value %d", ErrInvalidPermutation, i)
		}
		seen[i] = true
	}
	return nil
}

// Inverse returns Pinv such that Pinv[P[i]] = i. Validate should be
// called first; Inverse does not itself re-validate.
func (p Permutation) Inverse() Permutation {
	inv := make(Permutation, len(p))
	for k, i := range p {
		inv[i] = k
	}
	return inv
}

// Identity returns the identity permutation of size n.
func Identity(n int) Permutation {
	p := make(Permutation, n)
	for i := range p {
		p[i] = i
	}
	return p
}
