package solver

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// SolveLP solves p as a continuous linear program. Variable bounds are
// honored as given (a Binary-category Variable is treated as Continuous
// with whatever [Lower, Upper] the caller set; branch-and-bound tightens
// those bounds across recursive calls, see milp.go).
//
// gonum's lp.Simplex wants standard form (minimize c'x subject to Ax = b,
// x >= 0), so each variable is shifted by its lower bound, each finite
// upper bound becomes an extra "<=" row with a slack column, and each
// non-equality constraint gets its own slack/surplus column.
func SolveLP(p *Problem) (*Solution, error) {
	n := len(p.Variables)
	lower := make([]float64, n)
	for i, v := range p.Variables {
		lower[i] = v.Lower
	}

	type row struct {
		coeffs map[int]float64
		rhs    float64
		sense  Sense
	}
	rows := make([]row, 0, len(p.Constraints)+n)

	for _, cons := range p.Constraints {
		rhs := cons.RHS
		for i, coeff := range cons.Coeffs {
			rhs -= coeff * lower[i]
		}
		rows = append(rows, row{coeffs: cons.Coeffs, rhs: rhs, sense: cons.Sense})
	}
	for i, v := range p.Variables {
		if !math.IsInf(v.Upper, 1) {
			rows = append(rows, row{
				coeffs: map[int]float64{i: 1},
				rhs:    v.Upper - v.Lower,
				sense:  LE,
			})
		}
	}

	numSlack := 0
	slackCol := make([]int, len(rows))
	for i, r := range rows {
		if r.sense == EQ {
			slackCol[i] = -1
			continue
		}
		slackCol[i] = n + numSlack
		numSlack++
	}

	totalCols := n + numSlack
	A := mat.NewDense(len(rows), totalCols, nil)
	b := make([]float64, len(rows))
	for i, r := range rows {
		for j, coeff := range r.coeffs {
			A.Set(i, j, coeff)
		}
		b[i] = r.rhs
		switch r.sense {
		case LE:
			A.Set(i, slackCol[i], 1)
		case GE:
			A.Set(i, slackCol[i], -1)
		}
		// negative rhs: flip the row so b >= 0, as Simplex's phase-1 setup expects.
		if b[i] < 0 {
			for j := 0; j < totalCols; j++ {
				A.Set(i, j, -A.At(i, j))
			}
			b[i] = -b[i]
		}
	}

	c := make([]float64, totalCols)
	var constOffset float64
	for i, coeff := range p.Objective {
		c[i] = coeff
		constOffset += coeff * lower[i]
	}

	optF, optX, err := lp.Simplex(c, A, b, 0, nil)
	if err != nil {
		status := StatusInfeasible
		if strings.Contains(strings.ToLower(err.Error()), "unbounded") {
			status = StatusUnbounded
		}
		return &Solution{Status: status}, nil
	}

	values := make([]float64, n)
	for i := range values {
		values[i] = optX[i] + lower[i]
	}

	return &Solution{
		Status:    StatusOptimal,
		Values:    values,
		Objective: optF + constOffset,
	}, nil
}
