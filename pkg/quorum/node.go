package quorum

import "fmt"

// Node is an identified replica with read and write throughput capacities.
// T is the implementer-chosen comparable identity type, typically a string
// or small integer. Nodes are value-equal by their carried identity X.
type Node[T comparable] struct {
	X             T
	ReadCapacity  float64
	WriteCapacity float64
}

// NodeOption configures capacities on NewNode.
type NodeOption func(*nodeOptions)

type nodeOptions struct {
	capacity      *float64
	readCapacity  *float64
	writeCapacity *float64
}

// WithCapacity sets both read and write capacity to the same value. It is
// an error to combine WithCapacity with WithReadCapacity or
// WithWriteCapacity.
func WithCapacity(c float64) NodeOption {
	return func(o *nodeOptions) { o.capacity = &c }
}

// WithReadCapacity sets the read capacity explicitly. Must be paired with
// WithWriteCapacity (or omitted entirely, defaulting both to 1.0).
func WithReadCapacity(c float64) NodeOption {
	return func(o *nodeOptions) { o.readCapacity = &c }
}

// WithWriteCapacity sets the write capacity explicitly. Must be paired
// with WithReadCapacity (or omitted entirely, defaulting both to 1.0).
func WithWriteCapacity(c float64) NodeOption {
	return func(o *nodeOptions) { o.writeCapacity = &c }
}

// NewNode constructs a Node identified by x. With no options, both
// capacities default to 1.0. WithCapacity sets both capacities at once and
// cannot be mixed with WithReadCapacity/WithWriteCapacity; the latter two
// must be supplied together if supplied at all.
func NewNode[T comparable](x T, opts ...NodeOption) (*Node[T], error) {
	var o nodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	switch {
	case o.capacity == nil && o.readCapacity == nil && o.writeCapacity == nil:
		return &Node[T]{X: x, ReadCapacity: 1.0, WriteCapacity: 1.0}, nil
	case o.capacity != nil && o.readCapacity == nil && o.writeCapacity == nil:
		return &Node[T]{X: x, ReadCapacity: *o.capacity, WriteCapacity: *o.capacity}, nil
	case o.capacity == nil && o.readCapacity != nil && o.writeCapacity != nil:
		return &Node[T]{X: x, ReadCapacity: *o.readCapacity, WriteCapacity: *o.writeCapacity}, nil
	default:
		return nil, fmt.Errorf("%w: specify either a single capacity or both read_capacity and write_capacity, not a mix", ErrInvalidConstruction)
	}
}

// Leaf lifts the node into a Leaf expression whose single quorum is
// {node.X}.
func (n *Node[T]) Leaf() Expr[T] {
	return &leafExpr[T]{node: n}
}

func (n *Node[T]) String() string {
	return fmt.Sprintf("%v", n.X)
}
