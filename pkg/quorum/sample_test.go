package quorum

import "testing"

func TestCategoricalSamplerRespectsWeights(t *testing.T) {
	sampler := newCategoricalSampler([]float64{0.0, 1.0, 0.0})
	rng := NewRand(1, 2)

	for i := 0; i < 100; i++ {
		if got := sampler.sample(rng); got != 1 {
			t.Fatalf("expected index 1 for a one-hot weight vector, got %d", got)
		}
	}
}

func TestCategoricalSamplerIsDeterministicForFixedSeed(t *testing.T) {
	weights := []float64{0.2, 0.3, 0.5}
	sampler := newCategoricalSampler(weights)

	a := NewRand(42, 7)
	b := NewRand(42, 7)

	for i := 0; i < 20; i++ {
		ga, gb := sampler.sample(a), sampler.sample(b)
		if ga != gb {
			t.Fatalf("same-seed Rands diverged at draw %d: %d vs %d", i, ga, gb)
		}
	}
}

func TestCategoricalSamplerStaysInRange(t *testing.T) {
	weights := []float64{0.1, 0.1, 0.1, 0.7}
	sampler := newCategoricalSampler(weights)
	rng := NewRand(9, 9)

	for i := 0; i < 500; i++ {
		got := sampler.sample(rng)
		if got < 0 || got >= len(weights) {
			t.Fatalf("sample %d out of range [0, %d)", got, len(weights))
		}
	}
}
