package dag

import "sort"

// Visitation colors for the cycle-detecting DFS, mirroring the teacher's
// three-color convention (dfs/topological.go: White/Gray/Black).
const (
	white = 0
	gray  = 1
	black = 2
)

// Validate checks the invariants spec.md §3 requires of a circuit graph:
// acyclicity, edge-role well-formedness for binary/unary/leaf nodes, and
// (for ZKP graphs) input-index densification. It is cheap enough to run
// after construction and again after deserialization.
func (g *Graph) Validate() error {
	if err := g.checkAcyclic(); err != nil {
		return err
	}
	if err := g.checkEdgeRoles(); err != nil {
		return err
	}

	return g.checkInputDensification()
}

// checkAcyclic runs a three-color DFS over live nodes following outgoing
// edges; a Gray→Gray back-edge is a cycle.
func (g *Graph) checkAcyclic() error {
	state := make(map[NodeIdx]int, len(g.nodes))
	var visit func(NodeIdx) error
	visit = func(n NodeIdx) error {
		switch state[n] {
		case gray:
			return ErrCycleDetected
		case black:
			return nil
		}
		state[n] = gray
		for _, nxt := range g.Successors(n) {
			if err := visit(nxt); err != nil {
				return err
			}
		}
		state[n] = black

		return nil
	}

	for _, n := range g.Nodes() {
		if state[n] == white {
			if err := visit(n); err != nil {
				return err
			}
		}
	}

	return nil
}

// checkEdgeRoles enforces, for ZkpOp nodes: binary nodes (Add/Sub/Mul)
// carry exactly one Left and one Right predecessor; unary nodes (Neg,
// RangeCheck) carry exactly one predecessor; Constraint nodes carry at
// least one; leaf nodes (Input/Constant/HiddenInput) carry none. FHE nodes
// encode operands inline rather than as edges, so FheOp nodes are not
// checked.
func (g *Graph) checkEdgeRoles() error {
	for _, n := range g.Nodes() {
		op, err := g.GetOperation(n)
		if err != nil {
			return err
		}
		zop, ok := op.(ZkpOp)
		if !ok {
			continue
		}

		left := g.Predecessors(n, int(RoleLeft))
		right := g.Predecessors(n, int(RoleRight))
		all := g.Predecessors(n, -1)

		switch zop.Kind {
		case ZkpInput, ZkpHiddenInput, ZkpConstant:
			if len(all) != 0 {
				return ErrMalformedEdges
			}
		case ZkpNeg:
			if len(all) != 1 {
				return ErrMalformedEdges
			}
		case ZkpAdd, ZkpSub, ZkpMul:
			if len(left) == 0 {
				return ErrMissingLeft
			}
			if len(left) > 1 {
				return ErrDuplicateRole
			}
			if len(right) == 0 {
				return ErrMissingRight
			}
			if len(right) > 1 {
				return ErrDuplicateRole
			}
		case ZkpConstraint:
			if len(all) == 0 {
				return ErrMalformedEdges
			}
		case ZkpRangeCheck:
			if len(all) != 1 {
				return ErrMalformedEdges
			}
		}
	}

	return nil
}

// checkInputDensification verifies that the set of InputIndex values used
// across ZkpInput nodes (and, symmetrically, FheInputCiphertext nodes) is
// exactly {0, ..., k-1} with no gaps.
func (g *Graph) checkInputDensification() error {
	var zkpIdx, fheIdx []uint32
	for _, n := range g.Nodes() {
		op, err := g.GetOperation(n)
		if err != nil {
			return err
		}
		switch v := op.(type) {
		case ZkpOp:
			if v.Kind == ZkpInput {
				zkpIdx = append(zkpIdx, v.InputIndex)
			}
		case FheOp:
			if v.Kind == FheInputCiphertext {
				fheIdx = append(fheIdx, v.InputIndex)
			}
		}
	}

	if err := checkDense(zkpIdx); err != nil {
		return err
	}

	return checkDense(fheIdx)
}

// checkDense reports ErrInputIndexGap unless idx, once sorted, is exactly
// {0, ..., len(idx)-1} (duplicates also count as a gap).
func checkDense(idx []uint32) error {
	if len(idx) == 0 {
		return nil
	}
	sorted := append([]uint32(nil), idx...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for i, v := range sorted {
		if v != uint32(i) {
			return ErrInputIndexGap
		}
	}

	return nil
}
