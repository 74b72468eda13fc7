package handle

import (
	"errors"

	"github.com/katalvlaran/circuitrt/dag"
	"github.com/katalvlaran/circuitrt/dagctx"
)

// ErrArityMismatch indicates an Array operation was given operands of
// different lengths.
var ErrArityMismatch = errors.New("handle: array length mismatch")

// Handle is any value backed by one or more node indices in the active
// circuit graph.
type Handle interface {
	Indices() dagctx.Indices
}

// Scalar is a single field-element handle: one node index.
type Scalar struct {
	idx dagctx.Indices
}

// Indices implements Handle.
func (s Scalar) Indices() dagctx.Indices { return s.idx }

// NodeIdx returns the single node index s wraps.
func (s Scalar) NodeIdx() dag.NodeIdx { return s.idx.At(0) }

func scalarOf(n dag.NodeIdx) Scalar {
	return Scalar{idx: dagctx.NewIndices(n)}
}

// Array is a fixed-length handle of N values of type T, each itself a
// Handle (spec.md §4.3's "Fixed-length array of T").
type Array[T Handle] struct {
	Elems []T
}

// NewArray wraps elems as an Array.
func NewArray[T Handle](elems ...T) Array[T] {
	return Array[T]{Elems: append([]T(nil), elems...)}
}

// Len reports the array's element count.
func (a Array[T]) Len() int { return len(a.Elems) }

// Indices implements Handle by concatenating every element's indices in
// order.
func (a Array[T]) Indices() dagctx.Indices {
	var all []dag.NodeIdx
	for _, e := range a.Elems {
		all = append(all, e.Indices().Slice()...)
	}

	return dagctx.NewIndices(all...)
}
