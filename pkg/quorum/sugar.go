package quorum

// Or builds the union of the given expressions' quorums, flattening nested
// Or expressions so that Or(Or(a, b), c) and Or(a, b, c) enumerate
// identically. It panics if es is empty or if flattening fails to
// construct a valid Or, both of which are programmer errors for this
// variadic entry point. The Expr.Or method always passes two operands and
// so never panics; neither form returns an error.
func Or[T comparable](es ...Expr[T]) Expr[T] {
	e, err := flattenOr(es)
	if err != nil {
		panic(err)
	}
	return e
}

// And builds the expression whose quorums are every union of one quorum
// from each child, flattening nested And expressions so that
// And(And(a, b), c), And(a, And(b, c)), and And(a, b, c) enumerate
// identically.
func And[T comparable](es ...Expr[T]) Expr[T] {
	e, err := flattenAnd(es)
	if err != nil {
		panic(err)
	}
	return e
}

// Choose returns the expression whose quorums are every union over every
// size-k subset of es. It collapses to Or when k == 1 and to And when
// k == len(es); otherwise it builds a genuine Choose(k, es).
func Choose[T comparable](k int, es []Expr[T]) (Expr[T], error) {
	switch {
	case k == 1:
		return flattenOr(es)
	case k == len(es):
		return flattenAnd(es)
	default:
		return newChoose(k, es)
	}
}

// Majority returns choose(len(es)/2 + 1, es).
func Majority[T comparable](es []Expr[T]) (Expr[T], error) {
	return Choose(len(es)/2+1, es)
}

func flattenOr[T comparable](es []Expr[T]) (Expr[T], error) {
	flat := make([]Expr[T], 0, len(es))
	for _, e := range es {
		if o, ok := e.(*orExpr[T]); ok {
			flat = append(flat, o.es...)
		} else {
			flat = append(flat, e)
		}
	}
	return newOr(flat)
}

func flattenAnd[T comparable](es []Expr[T]) (Expr[T], error) {
	flat := make([]Expr[T], 0, len(es))
	for _, e := range es {
		if a, ok := e.(*andExpr[T]); ok {
			flat = append(flat, a.es...)
		} else {
			flat = append(flat, e)
		}
	}
	return newAnd(flat)
}
