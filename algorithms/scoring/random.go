package scoring

import (
	"math/rand/v2"
)

// Permuter draws uniformly random permutations of [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Permuter interface {
	Perm(n int) []int
}

// SourceFactory returns the permutation stream for one sample column.
// Distinct streams must not share state so columns can run concurrently.
type SourceFactory func(stream uint64) Permuter

// SeededSource returns a factory of PCG streams keyed by (seed, stream).
// The same seed and stream always replay the same permutations.
func SeededSource(seed uint64) SourceFactory {
	return func(stream uint64) Permuter {
		return rand.New(rand.NewPCG(seed, stream))
	}
}

// FixedPermuter replays a fixed list of permutations, cycling when exhausted.
// It exists for deterministic tests and worked examples.
type FixedPermuter struct {
	perms [][]int
	next  int
}

// NewFixedPermuter creates a permuter that returns perms in order
func NewFixedPermuter(perms ...[]int) *FixedPermuter {
	return &FixedPermuter{perms: perms}
}

func (f *FixedPermuter) Perm(n int) []int {
	if len(f.perms) == 0 {
		identity := make([]int, n)
		for i := range identity {
			identity[i] = i
		}
		return identity
	}
	p := f.perms[f.next%len(f.perms)]
	f.next++
	return append([]int(nil), p...)
}
