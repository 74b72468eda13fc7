package traverse

import (
	"github.com/katalvlaran/circuitrt/dag"
)

// Sentinel errors surfaced by Query methods (spec.md §4.4), re-exported
// from package dag so callers need not import dag solely to compare them.
var (
	ErrMalformedEdges = dag.ErrMalformedEdges
	ErrMissingLeft    = dag.ErrMissingLeft
	ErrMissingRight   = dag.ErrMissingRight
	ErrDuplicateRole  = dag.ErrDuplicateRole
)

// ErrCycleDetected indicates Forward could not schedule every node, meaning
// the graph was not acyclic.
var ErrCycleDetected = dag.ErrCycleDetected

// Query is the per-visit capability a VisitFunc receives: operand lookup
// scoped to the node currently being visited.
type Query interface {
	// GetUnaryOperand returns the single predecessor of n, or fails
	// ErrMalformedEdges if n does not have exactly one.
	GetUnaryOperand(n dag.NodeIdx) (dag.NodeIdx, error)

	// GetBinaryOperands returns the Left and Right predecessors of n.
	GetBinaryOperands(n dag.NodeIdx) (left, right dag.NodeIdx, err error)

	// GetUnorderedOperands returns every Unordered-role predecessor of n.
	GetUnorderedOperands(n dag.NodeIdx) []dag.NodeIdx

	// GetNode returns the Operation payload stored at n.
	GetNode(n dag.NodeIdx) (dag.Operation, error)
}

// query is the concrete Query bound to one Graph for the lifetime of a
// traversal call.
type query struct {
	g *dag.Graph
}

func (q *query) GetUnaryOperand(n dag.NodeIdx) (dag.NodeIdx, error) {
	preds := q.g.Predecessors(n, -1)
	if len(preds) != 1 {
		return 0, ErrMalformedEdges
	}

	return preds[0], nil
}

func (q *query) GetBinaryOperands(n dag.NodeIdx) (dag.NodeIdx, dag.NodeIdx, error) {
	left := q.g.Predecessors(n, int(dag.RoleLeft))
	right := q.g.Predecessors(n, int(dag.RoleRight))

	switch {
	case len(left) > 1 || len(right) > 1:
		return 0, 0, ErrDuplicateRole
	case len(left) == 0:
		return 0, 0, ErrMissingLeft
	case len(right) == 0:
		return 0, 0, ErrMissingRight
	}

	return left[0], right[0], nil
}

func (q *query) GetUnorderedOperands(n dag.NodeIdx) []dag.NodeIdx {
	return q.g.Predecessors(n, int(dag.RoleUnordered))
}

func (q *query) GetNode(n dag.NodeIdx) (dag.Operation, error) {
	return q.g.GetOperation(n)
}

// VisitFunc is invoked once per node, in dependency order, with a Query
// scoped to that node.
type VisitFunc func(n dag.NodeIdx, q Query) error
