package quorum

import (
	"errors"
	"math"
	"testing"
)

func TestNewPointDistributionMean(t *testing.T) {
	d, err := NewPointDistribution(0.75)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(d.Mean()-0.75) > 1e-12 {
		t.Errorf("expected mean 0.75, got %v", d.Mean())
	}
}

func TestNewPointDistributionRejectsOutOfRange(t *testing.T) {
	if _, err := NewPointDistribution(1.5); !errors.Is(err, ErrInvalidDistribution) {
		t.Errorf("expected ErrInvalidDistribution, got %v", err)
	}
}

func TestNewDistributionNormalizesWeights(t *testing.T) {
	d, err := NewDistribution(map[float64]float64{0.0: 1, 1.0: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(d[0.0]-0.25) > 1e-12 || math.Abs(d[1.0]-0.75) > 1e-12 {
		t.Errorf("expected weights {0.25, 0.75}, got %v", d)
	}
	if math.Abs(d.Mean()-0.75) > 1e-12 {
		t.Errorf("expected mean 0.75, got %v", d.Mean())
	}
}

func TestNewDistributionRejectsNegativeWeight(t *testing.T) {
	_, err := NewDistribution(map[float64]float64{0.5: -1})
	if !errors.Is(err, ErrInvalidDistribution) {
		t.Errorf("expected ErrInvalidDistribution, got %v", err)
	}
}

func TestNewDistributionRejectsEmpty(t *testing.T) {
	_, err := NewDistribution(nil)
	if !errors.Is(err, ErrInvalidDistribution) {
		t.Errorf("expected ErrInvalidDistribution, got %v", err)
	}
}

func TestNewDistributionFromPairsMergesDuplicateFractions(t *testing.T) {
	d, err := NewDistributionFromPairs([]FracWeight{
		{Fraction: 0.5, Weight: 1},
		{Fraction: 0.5, Weight: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d) != 1 || math.Abs(d[0.5]-1.0) > 1e-12 {
		t.Errorf("expected merged weight 1.0 at f=0.5, got %v", d)
	}
}

func TestCanonicalizeRWTranslatesWriteFraction(t *testing.T) {
	writeDist, err := NewPointDistribution(0.3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	readDist, err := CanonicalizeRW(nil, writeDist)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(readDist.Mean()-0.7) > 1e-12 {
		t.Errorf("expected read fraction 0.7, got %v", readDist.Mean())
	}
}

func TestCanonicalizeRWRejectsBothOrNeither(t *testing.T) {
	d, _ := NewPointDistribution(0.5)
	if _, err := CanonicalizeRW(d, d); !errors.Is(err, ErrInvalidDistribution) {
		t.Errorf("expected error when both given, got %v", err)
	}
	if _, err := CanonicalizeRW(nil, nil); !errors.Is(err, ErrInvalidDistribution) {
		t.Errorf("expected error when neither given, got %v", err)
	}
}
