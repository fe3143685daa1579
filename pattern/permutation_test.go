package pattern_test

import (
	"testing"

	"github.com/sparselu/symlu/pattern"
)

func TestPermutationValidateInverse(t *testing.T) {
	p := pattern.Permutation{2, 0, 1}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	inv := p.Inverse()
	for i, pi := range p {
		if inv[pi] != i {
			t.Errorf("Inverse[P[%d]=%d] = %d, want %d", i, pi, inv[pi], i)
		}
	}
}

func TestPermutationValidateRejectsDuplicates(t *testing.T) {
	p := pattern.Permutation{0, 0, 2}
	if err := p.Validate(); err == nil {
		t.Fatal("Validate: want error for duplicate entry, got nil")
	}
}

func TestPermutationValidateRejectsOutOfRange(t *testing.T) {
	p := pattern.Permutation{0, 1, 5}
	if err := p.Validate(); err == nil {
		t.Fatal("Validate: want error for out-of-range entry, got nil")
	}
}

func TestIdentity(t *testing.T) {
	id := pattern.Identity(4)
	for i, v := range id {
		if i != v {
			t.Fatalf("Identity()[%d] = %d, want %d", i, v, i)
		}
	}
}
