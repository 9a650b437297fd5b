package quorum

import (
	"fmt"
	"iter"
)

// Expr is a tagged tree over nodes. The four variants, Leaf, Or, And, and
// Choose, are built via Node.Leaf, Or, And, and Choose/Majority
// respectively; there is no public constructor for the concrete types
// themselves.
//
// Quorums returns a single-use, pull-based sequence. And and Choose build
// their Cartesian products by iterating their children's sequences
// directly rather than materializing every combination up front, so the
// cost of enumerating a prefix is paid lazily. A caller that needs to walk
// the quorums more than once must call Quorums again or materialize the
// sequence itself (e.g. with slices.Collect).
type Expr[T comparable] interface {
	// Quorums enumerates every quorum denoted by this expression. The
	// sequence may be exponential in the size of the expression tree and
	// is not safe to range over from multiple goroutines concurrently.
	Quorums() iter.Seq[Set[T]]

	// IsQuorum reports whether xs satisfies the expression's
	// characteristic Boolean recursion, independent of quorum
	// enumeration: Leaf tests membership, Or requires any child, And
	// requires every child, Choose(k) requires at least k children.
	IsQuorum(xs Set[T]) bool

	// Nodes returns the union of every node referenced by this
	// expression's leaves, keyed by node identity.
	Nodes() map[T]*Node[T]

	// Dual returns the monotone Boolean dual of this expression: Leaf is
	// self-dual, dual(Or) = And(dual children), dual(And) = Or(dual
	// children), and dual(Choose(k, n)) = Choose(n-k+1, dual children).
	Dual() Expr[T]

	// Or builds a flattened Or of this expression and rhs.
	Or(rhs Expr[T]) Expr[T]

	// And builds a flattened And of this expression and rhs.
	And(rhs Expr[T]) Expr[T]

	String() string
}

// leafExpr ----------------------------------------------------------------

type leafExpr[T comparable] struct {
	node *Node[T]
}

func (e *leafExpr[T]) Quorums() iter.Seq[Set[T]] {
	return func(yield func(Set[T]) bool) {
		yield(NewSet(e.node.X))
	}
}

func (e *leafExpr[T]) IsQuorum(xs Set[T]) bool {
	return xs.Contains(e.node.X)
}

func (e *leafExpr[T]) Nodes() map[T]*Node[T] {
	return map[T]*Node[T]{e.node.X: e.node}
}

func (e *leafExpr[T]) Dual() Expr[T] {
	return e
}

func (e *leafExpr[T]) Or(rhs Expr[T]) Expr[T]  { return Or[T](e, rhs) }
func (e *leafExpr[T]) And(rhs Expr[T]) Expr[T] { return And[T](e, rhs) }

func (e *leafExpr[T]) String() string {
	return fmt.Sprintf("%v", e.node.X)
}

// orExpr --------------------------------------------------------------------

type orExpr[T comparable] struct {
	es []Expr[T]
}

func newOr[T comparable](es []Expr[T]) (Expr[T], error) {
	if len(es) == 0 {
		return nil, fmt.Errorf("%w: Or cannot be constructed with an empty list", ErrInvalidConstruction)
	}
	return &orExpr[T]{es: es}, nil
}

func (e *orExpr[T]) Quorums() iter.Seq[Set[T]] {
	return func(yield func(Set[T]) bool) {
		for _, child := range e.es {
			for q := range child.Quorums() {
				if !yield(q) {
					return
				}
			}
		}
	}
}

func (e *orExpr[T]) IsQuorum(xs Set[T]) bool {
	for _, child := range e.es {
		if child.IsQuorum(xs) {
			return true
		}
	}
	return false
}

func (e *orExpr[T]) Nodes() map[T]*Node[T] {
	return unionNodes(e.es)
}

func (e *orExpr[T]) Dual() Expr[T] {
	duals := make([]Expr[T], len(e.es))
	for i, child := range e.es {
		duals[i] = child.Dual()
	}
	out, _ := newAnd(duals)
	return out
}

func (e *orExpr[T]) Or(rhs Expr[T]) Expr[T]  { return Or[T](e, rhs) }
func (e *orExpr[T]) And(rhs Expr[T]) Expr[T] { return And[T](e, rhs) }

func (e *orExpr[T]) String() string {
	return joinExprs(e.es, " + ")
}

// andExpr -------------------------------------------------------------------

type andExpr[T comparable] struct {
	es []Expr[T]
}

func newAnd[T comparable](es []Expr[T]) (Expr[T], error) {
	if len(es) == 0 {
		return nil, fmt.Errorf("%w: And cannot be constructed with an empty list", ErrInvalidConstruction)
	}
	return &andExpr[T]{es: es}, nil
}

func (e *andExpr[T]) Quorums() iter.Seq[Set[T]] {
	return func(yield func(Set[T]) bool) {
		cartesianProduct(e.es, func(union Set[T]) bool {
			return yield(union)
		})
	}
}

func (e *andExpr[T]) IsQuorum(xs Set[T]) bool {
	for _, child := range e.es {
		if !child.IsQuorum(xs) {
			return false
		}
	}
	return true
}

func (e *andExpr[T]) Nodes() map[T]*Node[T] {
	return unionNodes(e.es)
}

func (e *andExpr[T]) Dual() Expr[T] {
	duals := make([]Expr[T], len(e.es))
	for i, child := range e.es {
		duals[i] = child.Dual()
	}
	out, _ := newOr(duals)
	return out
}

func (e *andExpr[T]) Or(rhs Expr[T]) Expr[T]  { return Or[T](e, rhs) }
func (e *andExpr[T]) And(rhs Expr[T]) Expr[T] { return And[T](e, rhs) }

func (e *andExpr[T]) String() string {
	return joinExprs(e.es, " * ")
}

// chooseExpr ------------------------------------------------------------------

type chooseExpr[T comparable] struct {
	k  int
	es []Expr[T]
}

// newChoose constructs a Choose(k, es) expression directly, with no
// collapsing to Or/And. Most callers should use the package-level Choose
// function instead, which collapses k==1 and k==len(es).
func newChoose[T comparable](k int, es []Expr[T]) (Expr[T], error) {
	if k < 1 || k > len(es) {
		return nil, fmt.Errorf("%w: k must be in the range [1, %d], got %d", ErrInvalidConstruction, len(es), k)
	}
	return &chooseExpr[T]{k: k, es: es}, nil
}

func (e *chooseExpr[T]) Quorums() iter.Seq[Set[T]] {
	return func(yield func(Set[T]) bool) {
		forEachCombination(e.es, e.k, func(combo []Expr[T]) bool {
			return cartesianProduct(combo, yield)
		})
	}
}

func (e *chooseExpr[T]) IsQuorum(xs Set[T]) bool {
	count := 0
	for _, child := range e.es {
		if child.IsQuorum(xs) {
			count++
		}
	}
	return count >= e.k
}

func (e *chooseExpr[T]) Nodes() map[T]*Node[T] {
	return unionNodes(e.es)
}

func (e *chooseExpr[T]) Dual() Expr[T] {
	duals := make([]Expr[T], len(e.es))
	for i, child := range e.es {
		duals[i] = child.Dual()
	}
	out, _ := newChoose(len(e.es)-e.k+1, duals)
	return out
}

func (e *chooseExpr[T]) Or(rhs Expr[T]) Expr[T]  { return Or[T](e, rhs) }
func (e *chooseExpr[T]) And(rhs Expr[T]) Expr[T] { return And[T](e, rhs) }

func (e *chooseExpr[T]) String() string {
	return fmt.Sprintf("choose%d(%s)", e.k, joinExprs(e.es, ", "))
}

// shared helpers --------------------------------------------------------------

func unionNodes[T comparable](es []Expr[T]) map[T]*Node[T] {
	out := make(map[T]*Node[T])
	for _, e := range es {
		for x, n := range e.Nodes() {
			out[x] = n
		}
	}
	return out
}

func joinExprs[T comparable](es []Expr[T], sep string) string {
	s := "("
	for i, e := range es {
		if i > 0 {
			s += sep
		}
		s += e.String()
	}
	return s + ")"
}

// cartesianProduct walks the Cartesian product of each child's quorum
// sequence, yielding the union of each combination. It ranges over each
// child's sequence recursively, re-invoking a child's Quorums for every
// prefix chosen from the children before it, rather than materializing
// any child's quorum set.
func cartesianProduct[T comparable](es []Expr[T], yield func(Set[T]) bool) bool {
	if len(es) == 0 {
		return yield(NewSet[T]())
	}

	var recurse func(i int, acc Set[T]) bool
	recurse = func(i int, acc Set[T]) bool {
		if i == len(es) {
			return yield(acc)
		}
		for q := range es[i].Quorums() {
			if !recurse(i+1, acc.Union(q)) {
				return false
			}
		}
		return true
	}
	return recurse(0, NewSet[T]())
}

// forEachCombination invokes f on every size-k subset of es, in
// lexicographic order of index, stopping early if f returns false.
func forEachCombination[T comparable](es []Expr[T], k int, f func([]Expr[T]) bool) {
	n := len(es)
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		combo := make([]Expr[T], k)
		for i, j := range idx {
			combo[i] = es[j]
		}
		if !f(combo) {
			return
		}

		// advance idx to the next combination
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
