package handle

import (
	"fmt"

	"github.com/katalvlaran/circuitrt/dag"
	"github.com/katalvlaran/circuitrt/dagctx"
)

// binary appends a two-operand node wired Left=lhs, Right=rhs and returns
// the resulting Scalar.
func binary(kind dag.ZkpOpKind, lhs, rhs Scalar) (Scalar, error) {
	g, err := dagctx.Current()
	if err != nil {
		return Scalar{}, fmt.Errorf("handle: binary op: %w", err)
	}

	n := g.AddNode(dag.ZkpOp{Kind: kind})
	if err := g.AddEdge(lhs.NodeIdx(), n, dag.RoleLeft); err != nil {
		return Scalar{}, fmt.Errorf("handle: binary op: %w", err)
	}
	if err := g.AddEdge(rhs.NodeIdx(), n, dag.RoleRight); err != nil {
		return Scalar{}, fmt.Errorf("handle: binary op: %w", err)
	}

	return scalarOf(n), nil
}

// Add returns s + other, lowered to an Add node.
func (s Scalar) Add(other Scalar) (Scalar, error) { return binary(dag.ZkpAdd, s, other) }

// Sub returns s - other, lowered to a Sub node.
func (s Scalar) Sub(other Scalar) (Scalar, error) { return binary(dag.ZkpSub, s, other) }

// Mul returns s * other, lowered to a Mul node.
func (s Scalar) Mul(other Scalar) (Scalar, error) { return binary(dag.ZkpMul, s, other) }

// Neg returns -s, lowered to a Neg node.
func (s Scalar) Neg() (Scalar, error) {
	g, err := dagctx.Current()
	if err != nil {
		return Scalar{}, fmt.Errorf("handle: Neg: %w", err)
	}

	n := g.AddNode(dag.ZkpOp{Kind: dag.ZkpNeg})
	if err := g.AddEdge(s.NodeIdx(), n, dag.RoleLeft); err != nil {
		return Scalar{}, fmt.Errorf("handle: Neg: %w", err)
	}

	return scalarOf(n), nil
}

// AddArrays returns the elementwise sum of a and b (spec.md §4.3's "e.g.
// pairwise Add for vector sum"). ErrArityMismatch if their lengths differ.
// A free function rather than a method: Go forbids declaring new methods
// on an instantiated generic type such as Array[Scalar].
func AddArrays(a, b Array[Scalar]) (Array[Scalar], error) {
	if len(a.Elems) != len(b.Elems) {
		return Array[Scalar]{}, fmt.Errorf("handle: AddArrays: %w", ErrArityMismatch)
	}

	out := make([]Scalar, len(a.Elems))
	for i := range a.Elems {
		sum, err := a.Elems[i].Add(b.Elems[i])
		if err != nil {
			return Array[Scalar]{}, fmt.Errorf("handle: AddArrays: index %d: %w", i, err)
		}
		out[i] = sum
	}

	return NewArray(out...), nil
}
