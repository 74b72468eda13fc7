package fhe

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/katalvlaran/circuitrt/dag"
	"github.com/katalvlaran/circuitrt/traverse"
)

// RunProgramUnchecked executes ir against inputs using evaluator, returning
// the ciphertexts published by every OutputCiphertext node in node-index
// order (spec.md §4.6/§8 S4).
//
// Preconditions: ir is a valid DAG (not re-checked here); inputs[i] is
// defined for every InputCiphertext(i); relinKeys is non-nil if ir contains
// a Relinearize node. A missing input or nil relinKeys is reported as an
// error return (ErrMissingInput / ErrMissingRelinKeys) when the node that
// needs it is visited, rather than the undefined behavior the Rust
// source's unsafe fn contract allows.
func RunProgramUnchecked(ir *dag.Graph, inputs []Ciphertext, evaluator Evaluator, relinKeys RelinKeys) ([]Ciphertext, error) {
	table := newOperandTable(ir.Capacity())

	err := traverse.Parallel(ir, func(n dag.NodeIdx, _ traverse.Query) error {
		op, err := ir.GetOperation(n)
		if err != nil {
			return err
		}
		fop, ok := op.(dag.FheOp)
		if !ok {
			return fmt.Errorf("fhe: node %d: not an FheOp", n)
		}

		return visitNode(table, n, fop, inputs, evaluator, relinKeys)
	})
	if err != nil {
		return nil, fmt.Errorf("fhe: RunProgramUnchecked: %w", err)
	}

	return collectOutputs(ir, table)
}

func visitNode(table *operandTable, n dag.NodeIdx, fop dag.FheOp, inputs []Ciphertext, evaluator Evaluator, relinKeys RelinKeys) error {
	switch fop.Kind {
	case dag.FheInputCiphertext:
		if int(fop.InputIndex) >= len(inputs) {
			return fmt.Errorf("fhe: node %d: input %d: %w", n, fop.InputIndex, ErrMissingInput)
		}
		table.store(n, inputs[fop.InputIndex])

		return nil

	case dag.FheOutputCiphertext:
		src, err := table.load(fop.Operand)
		if err != nil {
			return fmt.Errorf("fhe: node %d: %w", n, err)
		}
		table.store(n, src)

		return nil

	case dag.FheAdd:
		left, err := table.load(fop.Left)
		if err != nil {
			return fmt.Errorf("fhe: node %d: %w", n, err)
		}
		right, err := table.load(fop.Right)
		if err != nil {
			return fmt.Errorf("fhe: node %d: %w", n, err)
		}
		result, err := evaluator.Add(left, right)
		if err != nil {
			return fmt.Errorf("fhe: node %d: Add: %w", n, err)
		}
		table.store(n, result)

		return nil

	case dag.FheMultiply:
		left, err := table.load(fop.Left)
		if err != nil {
			return fmt.Errorf("fhe: node %d: %w", n, err)
		}
		right, err := table.load(fop.Right)
		if err != nil {
			return fmt.Errorf("fhe: node %d: %w", n, err)
		}
		result, err := evaluator.Multiply(left, right)
		if err != nil {
			return fmt.Errorf("fhe: node %d: Multiply: %w", n, err)
		}
		table.store(n, result)

		return nil

	case dag.FheRelinearize:
		if relinKeys == nil {
			return fmt.Errorf("fhe: node %d: %w", n, ErrMissingRelinKeys)
		}
		operand, err := table.load(fop.Operand)
		if err != nil {
			return fmt.Errorf("fhe: node %d: %w", n, err)
		}
		result, err := evaluator.Relinearize(operand, relinKeys)
		if err != nil {
			return fmt.Errorf("fhe: node %d: Relinearize: %w", n, err)
		}
		table.store(n, result)

		return nil

	default:
		return fmt.Errorf("fhe: node %d: kind %d: %w", n, fop.Kind, ErrUnimplementedOperation)
	}
}

// collectOutputs walks ir's nodes in index order, gathering the ciphertext
// published at every OutputCiphertext node (spec.md §4.6: "preserving
// output-declaration order").
func collectOutputs(ir *dag.Graph, table *operandTable) ([]Ciphertext, error) {
	nodes := ir.Nodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

	var out []Ciphertext
	for _, n := range nodes {
		op, err := ir.GetOperation(n)
		if err != nil {
			return nil, err
		}
		fop, ok := op.(dag.FheOp)
		if !ok || fop.Kind != dag.FheOutputCiphertext {
			continue
		}
		ct, err := table.load(n)
		if err != nil {
			return nil, fmt.Errorf("fhe: output node %d: %w", n, err)
		}
		out = append(out, ct)
	}

	return out, nil
}

// operandTable is the "vector of atomic cells" spec.md §3 describes for
// FHE execution: each slot is written at most once by the node that
// produces it, and the DAG's dependency ordering (enforced by
// traverse.Parallel) guarantees that write happens-before every read of
// it, so atomic.Pointer is sufficient release/acquire discipline without
// an extra mutex.
type operandTable struct {
	cells []atomic.Pointer[Ciphertext]
}

func newOperandTable(capacity int) *operandTable {
	return &operandTable{cells: make([]atomic.Pointer[Ciphertext], capacity)}
}

func (t *operandTable) store(n dag.NodeIdx, ct Ciphertext) {
	t.cells[n].Store(&ct)
}

func (t *operandTable) load(n dag.NodeIdx) (Ciphertext, error) {
	p := t.cells[n].Load()
	if p == nil {
		return nil, fmt.Errorf("fhe: node %d: operand slot empty", n)
	}

	return *p, nil
}
