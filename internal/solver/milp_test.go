package solver

import (
	"context"
	"math"
	"testing"
)

// A minimum hitting set over {1,2}, {2,3}, {1,3}: every pair shares an
// element with the others but no single element covers all three sets, so
// the minimum hitting set has size 2.
func TestSolveMILPMinimumHittingSetOfThreePairs(t *testing.T) {
	p := &Problem{
		Variables: []Variable{
			{Name: "x0", Category: Binary},
			{Name: "x1", Category: Binary},
			{Name: "x2", Category: Binary},
		},
		Constraints: []Constraint{
			{Name: "c0", Coeffs: map[int]float64{0: 1, 1: 1}, Sense: GE, RHS: 1},
			{Name: "c1", Coeffs: map[int]float64{1: 1, 2: 1}, Sense: GE, RHS: 1},
			{Name: "c2", Coeffs: map[int]float64{0: 1, 2: 1}, Sense: GE, RHS: 1},
		},
		Objective: map[int]float64{0: 1, 1: 1, 2: 1},
	}

	sol, err := SolveMILP(context.Background(), p, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sol.Status != StatusOptimal {
		t.Fatalf("expected optimal status, got %v", sol.Status)
	}
	if math.Abs(sol.Objective-2) > 1e-6 {
		t.Errorf("expected minimum hitting set size 2, got %v", sol.Objective)
	}
	for _, v := range sol.Values {
		if v != 0 && v != 1 {
			t.Errorf("expected binary value, got %v", v)
		}
	}
}

func TestSolveMILPSingleCoveringElement(t *testing.T) {
	// Every set contains element 0, so the minimum hitting set is {0}.
	p := &Problem{
		Variables: []Variable{
			{Name: "x0", Category: Binary},
			{Name: "x1", Category: Binary},
		},
		Constraints: []Constraint{
			{Name: "c0", Coeffs: map[int]float64{0: 1}, Sense: GE, RHS: 1},
			{Name: "c1", Coeffs: map[int]float64{0: 1, 1: 1}, Sense: GE, RHS: 1},
		},
		Objective: map[int]float64{0: 1, 1: 1},
	}

	sol, err := SolveMILP(context.Background(), p, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sol.Status != StatusOptimal {
		t.Fatalf("expected optimal status, got %v", sol.Status)
	}
	if math.Abs(sol.Objective-1) > 1e-6 {
		t.Errorf("expected minimum hitting set size 1, got %v", sol.Objective)
	}
	if sol.Values[0] != 1 {
		t.Errorf("expected element 0 to be selected, got %v", sol.Values[0])
	}
}

func TestSolveMILPRespectsNodeBudget(t *testing.T) {
	p := &Problem{
		Variables: []Variable{
			{Name: "x0", Category: Binary},
			{Name: "x1", Category: Binary},
			{Name: "x2", Category: Binary},
		},
		Constraints: []Constraint{
			{Name: "c0", Coeffs: map[int]float64{0: 1, 1: 1}, Sense: GE, RHS: 1},
			{Name: "c1", Coeffs: map[int]float64{1: 1, 2: 1}, Sense: GE, RHS: 1},
			{Name: "c2", Coeffs: map[int]float64{0: 1, 2: 1}, Sense: GE, RHS: 1},
		},
		Objective: map[int]float64{0: 1, 1: 1, 2: 1},
	}

	sol, err := SolveMILP(context.Background(), p, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sol.Status != StatusUnknown && sol.Status != StatusOptimal {
		t.Errorf("expected unknown or optimal status under a tight node budget, got %v", sol.Status)
	}
}
