package solver

import (
	"context"
	"math"
)

// maxBranchAndBoundNodes bounds the search so a pathological hitting-set
// instance degrades to "unknown" rather than running forever; §5 of the
// spec notes the solver call may be long-running on combinatorial inputs
// and leaves cancellation to a boundary wrapper, which this constant is.
const maxBranchAndBoundNodes = 200000

// SolveMILP solves p, a mixed-integer linear program whose Binary
// variables must take value 0 or 1 at the optimum. gonum provides no
// integer programming, so this is a depth-first branch-and-bound loop
// over repeated calls to SolveLP: each node relaxes the remaining binary
// variables to [0, 1] (or whatever the current branch has fixed them to),
// solves the continuous relaxation, and either prunes, accepts an
// already-integral solution, or branches on the most fractional
// remaining binary variable.
func SolveMILP(ctx context.Context, p *Problem, maxNodes int) (*Solution, error) {
	binaryIdx := make([]int, 0)
	bounds := make([][2]float64, len(p.Variables))
	for i, v := range p.Variables {
		lo, hi := v.Lower, v.Upper
		if v.Category == Binary {
			lo, hi = 0, 1
			binaryIdx = append(binaryIdx, i)
		}
		bounds[i] = [2]float64{lo, hi}
	}

	if maxNodes <= 0 {
		maxNodes = maxBranchAndBoundNodes
	}

	var best *Solution
	nodesExplored := 0
	truncated := false

	var branch func(bounds [][2]float64)
	branch = func(bounds [][2]float64) {
		nodesExplored++
		if nodesExplored > maxNodes || ctx.Err() != nil {
			truncated = true
			return
		}

		relaxed := &Problem{
			Variables:   withBounds(p.Variables, bounds),
			Constraints: p.Constraints,
			Objective:   p.Objective,
		}
		sol, err := SolveLP(relaxed)
		if err != nil {
			return
		}
		if sol.Status != StatusOptimal {
			return
		}
		if best != nil && sol.Objective >= best.Objective-1e-9 {
			return
		}

		fracIdx := -1
		fracDist := 1e-6
		for _, i := range binaryIdx {
			d := math.Min(sol.Values[i], 1-sol.Values[i])
			if d > fracDist {
				fracDist = d
				fracIdx = i
			}
		}

		if fracIdx == -1 {
			candidate := roundBinary(sol, binaryIdx)
			if best == nil || candidate.Objective < best.Objective {
				best = candidate
			}
			return
		}

		zero := cloneBounds(bounds)
		zero[fracIdx] = [2]float64{0, 0}
		branch(zero)

		one := cloneBounds(bounds)
		one[fracIdx] = [2]float64{1, 1}
		branch(one)
	}

	branch(bounds)

	if truncated {
		return &Solution{Status: StatusUnknown}, nil
	}
	if best == nil {
		return &Solution{Status: StatusInfeasible}, nil
	}
	return best, nil
}

func withBounds(vars []Variable, bounds [][2]float64) []Variable {
	out := make([]Variable, len(vars))
	for i, v := range vars {
		out[i] = v
		out[i].Lower, out[i].Upper = bounds[i][0], bounds[i][1]
	}
	return out
}

func cloneBounds(bounds [][2]float64) [][2]float64 {
	out := make([][2]float64, len(bounds))
	copy(out, bounds)
	return out
}

func roundBinary(sol *Solution, binaryIdx []int) *Solution {
	values := make([]float64, len(sol.Values))
	copy(values, sol.Values)
	for _, i := range binaryIdx {
		if values[i] < 0.5 {
			values[i] = 0
		} else {
			values[i] = 1
		}
	}
	return &Solution{Status: StatusOptimal, Values: values, Objective: sol.Objective}
}
