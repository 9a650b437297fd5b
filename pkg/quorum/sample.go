package quorum

import (
	"math/rand/v2"
	"sort"
)

// Rand is a seedable uniform random source backed by math/rand/v2's PCG
// generator.
type Rand struct {
	r *rand.Rand
}

// NewRand returns a Rand seeded deterministically from seed1, seed2. Two
// Rands built from the same seed pair produce the same sample sequence.
func NewRand(seed1, seed2 uint64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(seed1, seed2))}
}

// NewRandFromEntropy returns a Rand seeded from the runtime's own entropy
// source, for callers that don't need reproducibility.
func NewRandFromEntropy() *Rand {
	return &Rand{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// Float64 returns a pseudo-random number in [0, 1).
func (r *Rand) Float64() float64 {
	return r.r.Float64()
}

// categoricalSampler draws an index from a fixed weight vector via a
// cumulative-weights table and binary search. Built once per Strategy and
// reused across calls.
type categoricalSampler struct {
	cumulative []float64
}

func newCategoricalSampler(weights []float64) *categoricalSampler {
	cumulative := make([]float64, len(weights))
	var running float64
	for i, w := range weights {
		running += w
		cumulative[i] = running
	}
	return &categoricalSampler{cumulative: cumulative}
}

// sample draws a categorical index from rng. It never fails: the weight
// table always sums to ~1 by construction of Strategy, and the last
// cumulative bucket catches any residual floating-point slack.
func (c *categoricalSampler) sample(rng *Rand) int {
	if len(c.cumulative) == 0 {
		return 0
	}
	u := rng.Float64() * c.cumulative[len(c.cumulative)-1]
	i := sort.SearchFloat64s(c.cumulative, u)
	if i >= len(c.cumulative) {
		i = len(c.cumulative) - 1
	}
	return i
}
