package quorum

import "fmt"

// Distribution is a canonical mapping from read fraction f in [0, 1] to a
// positive probability, summing to 1.
type Distribution map[float64]float64

// NewPointDistribution returns the point-mass distribution at f.
func NewPointDistribution(f float64) (Distribution, error) {
	if f < 0 || f > 1 {
		return nil, fmt.Errorf("%w: read fraction %v outside [0, 1]", ErrInvalidDistribution, f)
	}
	return Distribution{f: 1.0}, nil
}

// NewDistribution normalizes a mapping of read fraction to positive weight
// into a Distribution. Weights need not already sum to 1.
func NewDistribution(weights map[float64]float64) (Distribution, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: distribution cannot be empty", ErrInvalidDistribution)
	}

	var total float64
	for f, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("%w: negative weight %v for read fraction %v", ErrInvalidDistribution, w, f)
		}
		if f < 0 || f > 1 {
			return nil, fmt.Errorf("%w: read fraction %v outside [0, 1]", ErrInvalidDistribution, f)
		}
		total += w
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: distribution cannot have zero total weight", ErrInvalidDistribution)
	}

	out := make(Distribution, len(weights))
	for f, w := range weights {
		if w > 0 {
			out[f] = w / total
		}
	}
	return out, nil
}

// FracWeight is one (read fraction, weight) pair, used by
// NewDistributionFromPairs.
type FracWeight struct {
	Fraction float64
	Weight   float64
}

// NewDistributionFromPairs converts a sequence of (f, weight) pairs into a
// normalized Distribution.
func NewDistributionFromPairs(pairs []FracWeight) (Distribution, error) {
	weights := make(map[float64]float64, len(pairs))
	for _, p := range pairs {
		weights[p.Fraction] += p.Weight
	}
	return NewDistribution(weights)
}

// Mean returns the expected read fraction Σ f·p(f).
func (d Distribution) Mean() float64 {
	var mean float64
	for f, w := range d {
		mean += f * w
	}
	return mean
}

// CanonicalizeRW accepts exactly one of a read-fraction distribution or a
// write-fraction distribution and returns the equivalent read-fraction
// Distribution; a write fraction f_w is translated via f_r = 1 - f_w.
func CanonicalizeRW(readFraction, writeFraction Distribution) (Distribution, error) {
	switch {
	case readFraction != nil && writeFraction != nil:
		return nil, fmt.Errorf("%w: specify a read fraction or a write fraction, not both", ErrInvalidDistribution)
	case readFraction != nil:
		return readFraction, nil
	case writeFraction != nil:
		out := make(Distribution, len(writeFraction))
		for fw, w := range writeFraction {
			out[1-fw] += w
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: specify a read fraction or a write fraction", ErrInvalidDistribution)
	}
}
