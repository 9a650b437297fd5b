package quorum

import (
	"context"
	"fmt"
	"iter"
	"math"

	"github.com/quorumkit/quorumkit/internal/solver"
)

// QuorumSystem pairs a read expression and a write expression satisfying
// the intersection invariant: every read quorum intersects every write
// quorum. Both expressions are immutable once constructed.
type QuorumSystem[T comparable] struct {
	reads  Expr[T]
	writes Expr[T]
	cfg    *solver.Config
}

// Option configures a QuorumSystem at construction time.
type Option[T comparable] func(*QuorumSystem[T])

// WithSolverConfig overrides the default solver tolerance and
// branch-and-bound node budget used for resilience and strategy queries.
func WithSolverConfig[T comparable](cfg *solver.Config) Option[T] {
	return func(qs *QuorumSystem[T]) { qs.cfg = cfg }
}

func newSystem[T comparable](reads, writes Expr[T], opts ...Option[T]) *QuorumSystem[T] {
	qs := &QuorumSystem[T]{reads: reads, writes: writes, cfg: solver.DefaultConfig()}
	for _, opt := range opts {
		opt(qs)
	}
	return qs
}

// FromReads builds a QuorumSystem whose writes are the dual of reads.
func FromReads[T comparable](reads Expr[T], opts ...Option[T]) (*QuorumSystem[T], error) {
	if reads == nil {
		return nil, fmt.Errorf("%w: reads must not be nil", ErrInvalidConstruction)
	}
	return newSystem(reads, reads.Dual(), opts...), nil
}

// FromWrites builds a QuorumSystem whose reads are the dual of writes.
func FromWrites[T comparable](writes Expr[T], opts ...Option[T]) (*QuorumSystem[T], error) {
	if writes == nil {
		return nil, fmt.Errorf("%w: writes must not be nil", ErrInvalidConstruction)
	}
	return newSystem(writes.Dual(), writes, opts...), nil
}

// New builds a QuorumSystem from explicit read and write expressions,
// validating the intersection invariant: every read quorum must intersect
// every write quorum. The check is O(|reads| * |writes| * average quorum
// size) and runs eagerly before New returns.
func New[T comparable](reads, writes Expr[T], opts ...Option[T]) (*QuorumSystem[T], error) {
	if reads == nil || writes == nil {
		return nil, fmt.Errorf("%w: a QuorumSystem must be instantiated with read quorums or write quorums", ErrInvalidConstruction)
	}

	qs := newSystem(reads, writes, opts...)
	if err := qs.validate(); err != nil {
		return nil, err
	}
	return qs, nil
}

func (qs *QuorumSystem[T]) validate() error {
	for r := range qs.reads.Quorums() {
		for w := range qs.writes.Quorums() {
			if !intersects(r, w) {
				return &IntersectionViolationError[T]{Read: r, Write: w}
			}
		}
	}
	return nil
}

func intersects[T comparable](a, b Set[T]) bool {
	for x := range a {
		if b.Contains(x) {
			return true
		}
	}
	return false
}

// ReadQuorums delegates to the read expression's quorum enumeration.
func (qs *QuorumSystem[T]) ReadQuorums() iter.Seq[Set[T]] {
	return qs.reads.Quorums()
}

// WriteQuorums delegates to the write expression's quorum enumeration.
func (qs *QuorumSystem[T]) WriteQuorums() iter.Seq[Set[T]] {
	return qs.writes.Quorums()
}

// IsReadQuorum reports whether xs satisfies the read expression.
func (qs *QuorumSystem[T]) IsReadQuorum(xs Set[T]) bool {
	return qs.reads.IsQuorum(xs)
}

// IsWriteQuorum reports whether xs satisfies the write expression.
func (qs *QuorumSystem[T]) IsWriteQuorum(xs Set[T]) bool {
	return qs.writes.IsQuorum(xs)
}

// Resilience is the minimum of read and write resilience: the maximum
// number of node failures tolerated before no quorum of either kind
// survives.
func (qs *QuorumSystem[T]) Resilience(ctx context.Context) (int, error) {
	rr, err := qs.ReadResilience(ctx)
	if err != nil {
		return 0, err
	}
	wr, err := qs.WriteResilience(ctx)
	if err != nil {
		return 0, err
	}
	if rr < wr {
		return rr, nil
	}
	return wr, nil
}

// ReadResilience is min_hitting_set(read_quorums) - 1: the number of node
// failures tolerated before every read quorum is broken.
func (qs *QuorumSystem[T]) ReadResilience(ctx context.Context) (int, error) {
	h, err := qs.minHittingSet(ctx, qs.reads.Quorums())
	if err != nil {
		return 0, fmt.Errorf("read resilience: %w", err)
	}
	return h - 1, nil
}

// WriteResilience is min_hitting_set(write_quorums) - 1.
func (qs *QuorumSystem[T]) WriteResilience(ctx context.Context) (int, error) {
	h, err := qs.minHittingSet(ctx, qs.writes.Quorums())
	if err != nil {
		return 0, fmt.Errorf("write resilience: %w", err)
	}
	return h - 1, nil
}

// minHittingSet computes the size of a minimum set of elements that
// intersects every set produced by quorums, by formulating the binary
// covering integer program and delegating to the MILP branch-and-bound
// solver.
func (qs *QuorumSystem[T]) minHittingSet(ctx context.Context, quorums iter.Seq[Set[T]]) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	elemIdx := make(map[T]int)
	var sets [][]int
	for q := range quorums {
		idxs := make([]int, 0, len(q))
		for x := range q {
			i, ok := elemIdx[x]
			if !ok {
				i = len(elemIdx)
				elemIdx[x] = i
			}
			idxs = append(idxs, i)
		}
		sets = append(sets, idxs)
	}
	if len(sets) == 0 {
		return 0, nil
	}

	vars := make([]solver.Variable, len(elemIdx))
	for i := range vars {
		vars[i] = solver.Variable{Name: fmt.Sprintf("x%d", i), Lower: 0, Upper: 1, Category: solver.Binary}
	}

	constraints := make([]solver.Constraint, len(sets))
	for i, idxs := range sets {
		coeffs := make(map[int]float64, len(idxs))
		for _, j := range idxs {
			coeffs[j] = 1
		}
		constraints[i] = solver.Constraint{Name: fmt.Sprintf("cover%d", i), Coeffs: coeffs, Sense: solver.GE, RHS: 1}
	}

	objective := make(map[int]float64, len(vars))
	for i := range vars {
		objective[i] = 1
	}

	problem := &solver.Problem{Variables: vars, Constraints: constraints, Objective: objective}
	sol, err := solver.SolveMILP(ctx, problem, qs.cfg.MaxBranchAndBoundNodes)
	if err != nil {
		return 0, err
	}
	if sol.Status != solver.StatusOptimal {
		return 0, &OptimizationFailureError{Op: "min_hitting_set", Status: sol.Status.String()}
	}

	total := 0.0
	for _, v := range sol.Values {
		total += v
	}
	return int(math.Round(total)), nil
}

// Strategy computes a load-optimal randomized strategy for the given
// read-fraction distribution: a probability vector over read quorums and
// one over write quorums minimizing the worst-case per-node load at the
// distribution's mean read fraction.
func (qs *QuorumSystem[T]) Strategy(ctx context.Context, dist Distribution) (*Strategy[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(dist) == 0 {
		return nil, fmt.Errorf("%w: distribution cannot be empty", ErrInvalidDistribution)
	}

	fr := dist.Mean()

	var readQuorums, writeQuorums []Set[T]
	for q := range qs.reads.Quorums() {
		readQuorums = append(readQuorums, q)
	}
	for q := range qs.writes.Quorums() {
		writeQuorums = append(writeQuorums, q)
	}

	nodes := unionNodeMaps(qs.reads.Nodes(), qs.writes.Nodes())

	m, k := len(readQuorums), len(writeQuorums)
	lIdx := m + k

	vars := make([]solver.Variable, m+k+1)
	for i := 0; i < m; i++ {
		vars[i] = solver.Variable{Name: fmt.Sprintf("r%d", i), Lower: 0, Upper: 1}
	}
	for j := 0; j < k; j++ {
		vars[m+j] = solver.Variable{Name: fmt.Sprintf("w%d", j), Lower: 0, Upper: 1}
	}
	vars[lIdx] = solver.Variable{Name: "l", Lower: 0, Upper: math.Inf(1)}

	xToReadVars := make(map[T][]int)
	for i, q := range readQuorums {
		for x := range q {
			xToReadVars[x] = append(xToReadVars[x], i)
		}
	}
	xToWriteVars := make(map[T][]int)
	for j, q := range writeQuorums {
		for x := range q {
			xToWriteVars[x] = append(xToWriteVars[x], m+j)
		}
	}

	constraints := make([]solver.Constraint, 0, len(nodes)+2)

	sumR := make(map[int]float64, m)
	for i := 0; i < m; i++ {
		sumR[i] = 1
	}
	constraints = append(constraints, solver.Constraint{Name: "valid_read_strategy", Coeffs: sumR, Sense: solver.EQ, RHS: 1})

	sumW := make(map[int]float64, k)
	for j := 0; j < k; j++ {
		sumW[m+j] = 1
	}
	constraints = append(constraints, solver.Constraint{Name: "valid_write_strategy", Coeffs: sumW, Sense: solver.EQ, RHS: 1})

	for x, node := range nodes {
		coeffs := map[int]float64{lIdx: -1}
		if readVars, ok := xToReadVars[x]; ok {
			for _, i := range readVars {
				coeffs[i] += fr / node.ReadCapacity
			}
		}
		if writeVars, ok := xToWriteVars[x]; ok {
			for _, j := range writeVars {
				coeffs[j] += (1 - fr) / node.WriteCapacity
			}
		}
		constraints = append(constraints, solver.Constraint{
			Name:   fmt.Sprintf("load_%v", x),
			Coeffs: coeffs,
			Sense:  solver.LE,
			RHS:    0,
		})
	}

	problem := &solver.Problem{
		Variables:   vars,
		Constraints: constraints,
		Objective:   map[int]float64{lIdx: 1},
	}

	sol, err := solver.SolveLP(problem)
	if err != nil {
		return nil, fmt.Errorf("load strategy: %w", err)
	}
	if sol.Status != solver.StatusOptimal {
		return nil, &OptimizationFailureError{Op: "load_strategy", Status: sol.Status.String()}
	}

	readWeights := clampAndNormalize(sol.Values[:m], qs.cfg.Tolerance)
	writeWeights := clampAndNormalize(sol.Values[m:m+k], qs.cfg.Tolerance)

	return newStrategy(nodes, readQuorums, readWeights, writeQuorums, writeWeights), nil
}

func unionNodeMaps[T comparable](a, b map[T]*Node[T]) map[T]*Node[T] {
	out := make(map[T]*Node[T], len(a)+len(b))
	for x, n := range a {
		out[x] = n
	}
	for x, n := range b {
		out[x] = n
	}
	return out
}

// clampAndNormalize clamps negative near-zero solver artifacts to 0 and,
// if the result drifts from summing to 1 by more than tol, rescales to
// restore that sum.
func clampAndNormalize(weights []float64, tol float64) []float64 {
	out := make([]float64, len(weights))
	var sum float64
	for i, w := range weights {
		if w < 0 {
			w = 0
		}
		out[i] = w
		sum += w
	}
	if sum == 0 {
		return out
	}
	if math.Abs(sum-1) > tol {
		for i := range out {
			out[i] /= sum
		}
	}
	return out
}
