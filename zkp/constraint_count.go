package zkp

import "github.com/katalvlaran/circuitrt/dag"

// ConstraintCount estimates the number of constraints GenCircuit will emit
// for graph, without actually running it — used to size the transcript and
// generators before a prover or verifier exists (spec.md §4.7's gate-count
// estimator):
//
//   - every Input node after the first contributes one pairing constraint
//     every two inputs (⌈inputs/2⌉ total);
//   - every Constraint contributes one;
//   - every Mul whose operands are both non-constant contributes one;
//   - every other op contributes zero.
//
// "non-constant" is approximated structurally: a Mul operand is constant
// if its producer node is itself a ZkpConstant, or a ZkpNeg/ZkpAdd/ZkpSub/
// ZkpMul chain built entirely from ZkpConstant leaves. This mirrors the
// constant-folding GenCircuit performs without re-running it.
func ConstraintCount(graph *dag.Graph) (int, error) {
	inputCount := 0
	count := 0

	constFold := make(map[dag.NodeIdx]bool, graph.Capacity())

	for _, n := range graph.Nodes() {
		op, err := graph.GetOperation(n)
		if err != nil {
			return 0, err
		}
		zop, ok := op.(dag.ZkpOp)
		if !ok {
			continue
		}

		switch zop.Kind {
		case dag.ZkpInput:
			inputCount++
		case dag.ZkpConstant:
			constFold[n] = true
		case dag.ZkpHiddenInput:
			constFold[n] = false
		case dag.ZkpAdd, dag.ZkpSub:
			left := graph.Predecessors(n, int(dag.RoleLeft))
			right := graph.Predecessors(n, int(dag.RoleRight))
			constFold[n] = len(left) == 1 && len(right) == 1 && constFold[left[0]] && constFold[right[0]]
		case dag.ZkpNeg:
			preds := graph.Predecessors(n, -1)
			constFold[n] = len(preds) == 1 && constFold[preds[0]]
		case dag.ZkpMul:
			left := graph.Predecessors(n, int(dag.RoleLeft))
			right := graph.Predecessors(n, int(dag.RoleRight))
			bothConst := len(left) == 1 && len(right) == 1 && constFold[left[0]] && constFold[right[0]]
			constFold[n] = bothConst
			if !bothConst {
				count++
			}
		case dag.ZkpConstraint:
			count++
		}
	}

	count += (inputCount + 1) / 2

	return count, nil
}
