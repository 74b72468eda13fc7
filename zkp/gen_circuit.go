package zkp

import (
	"fmt"

	"github.com/gtank/ristretto255"

	"github.com/katalvlaran/circuitrt/bigint"
	"github.com/katalvlaran/circuitrt/dag"
	"github.com/katalvlaran/circuitrt/traverse"
)

// InputFunc supplies the value bound to ZkpInput(i): the known input
// during proving, or nil during verification (spec.md §4.7's
// "get_input(i) = Some(inputs[i])" / "get_input(_) = None").
type InputFunc func(i uint32) *bigint.BigInt

// GenCircuit walks graph with a single-threaded forward traversal,
// driving cs to build an R1CS instance (spec.md §4.7). Operand slots are
// released the instant their last consumer has read them, per the
// required reference-counting discipline — LinearCombinations carry
// per-wire coefficient vectors, so holding every slot for the whole
// traversal would be quadratic in memory.
func GenCircuit(graph *dag.Graph, cs ConstraintSystem, getInput InputFunc) error {
	refcount := make([]int, graph.Capacity())
	for _, n := range graph.Nodes() {
		refcount[n] = graph.OutDegree(n)
	}
	slots := make([]*operand, graph.Capacity())

	take := func(n dag.NodeIdx) (operand, error) {
		o := slots[n]
		if o == nil {
			return operand{}, fmt.Errorf("zkp: node %d: operand slot empty", n)
		}
		refcount[n]--
		if refcount[n] == 0 {
			slots[n] = nil
		}

		return *o, nil
	}

	return traverse.Forward(graph, func(n dag.NodeIdx, q traverse.Query) error {
		op, err := graph.GetOperation(n)
		if err != nil {
			return err
		}
		zop, ok := op.(dag.ZkpOp)
		if !ok {
			return fmt.Errorf("zkp: node %d: not a ZkpOp", n)
		}

		result, err := visitNode(cs, getInput, q, n, zop, take)
		if err != nil {
			return fmt.Errorf("zkp: node %d: %w", n, err)
		}
		slots[n] = &result

		return nil
	})
}

func visitNode(cs ConstraintSystem, getInput InputFunc, q traverse.Query, n dag.NodeIdx, zop dag.ZkpOp, take func(dag.NodeIdx) (operand, error)) (operand, error) {
	switch zop.Kind {
	case dag.ZkpInput:
		v := getInput(zop.InputIndex)
		sc, err := toOptionalScalar(v)
		if err != nil {
			return operand{}, err
		}
		lc, err := cs.Allocate(sc)
		if err != nil {
			return operand{}, err
		}

		return lcOperand(lc), nil

	case dag.ZkpHiddenInput:
		sc, err := toOptionalScalar(zop.HiddenValue)
		if err != nil {
			return operand{}, err
		}
		lc, err := cs.Allocate(sc)
		if err != nil {
			return operand{}, err
		}

		return lcOperand(lc), nil

	case dag.ZkpConstant:
		sc, err := mustScalar(zop.Constant)
		if err != nil {
			return operand{}, err
		}

		return scalarOperand(sc), nil

	case dag.ZkpAdd, dag.ZkpSub:
		left, right, err := q.GetBinaryOperands(n)
		if err != nil {
			return operand{}, err
		}
		lop, err := take(left)
		if err != nil {
			return operand{}, err
		}
		rop, err := take(right)
		if err != nil {
			return operand{}, err
		}

		return foldAddSub(zop.Kind == dag.ZkpSub, lop, rop), nil

	case dag.ZkpNeg:
		src, err := q.GetUnaryOperand(n)
		if err != nil {
			return operand{}, err
		}
		sop, err := take(src)
		if err != nil {
			return operand{}, err
		}
		if sop.isScalar() {
			return scalarOperand(ristretto255.NewScalar().Negate(sop.sc)), nil
		}

		return lcOperand(negLC(*sop.lc)), nil

	case dag.ZkpMul:
		left, right, err := q.GetBinaryOperands(n)
		if err != nil {
			return operand{}, err
		}
		lop, err := take(left)
		if err != nil {
			return operand{}, err
		}
		rop, err := take(right)
		if err != nil {
			return operand{}, err
		}

		return foldMul(cs, lop, rop)

	case dag.ZkpConstraint:
		unordered := q.GetUnorderedOperands(n)
		value, err := mustScalar(zop.Constant)
		if err != nil {
			return operand{}, err
		}
		for _, u := range unordered {
			uop, err := take(u)
			if err != nil {
				return operand{}, err
			}
			if uop.isScalar() {
				if uop.sc.Equal(value) != 1 {
					return operand{}, ErrStaticConstraintMismatch
				}

				continue
			}
			if err := cs.Constrain(subLC(*uop.lc, constLC(value))); err != nil {
				return operand{}, err
			}
		}

		return operand{}, nil

	case dag.ZkpRangeCheck:
		unordered := q.GetUnorderedOperands(n)
		if len(unordered) != 1 {
			return operand{}, dag.ErrMalformedEdges
		}
		uop, err := take(unordered[0])
		if err != nil {
			return operand{}, err
		}
		bits := uint32(zop.Constant.Words()[0])
		if uop.isScalar() {
			// A folded constant has no wire to hand to cs; check it here.
			for i, w := range bigint.FromScalar(uop.sc).Words() {
				lo := uint32(i * 64)
				if lo >= bits && w != 0 {
					return operand{}, ErrStaticConstraintMismatch
				}
				if lo < bits && bits-lo < 64 && w>>(bits-lo) != 0 {
					return operand{}, ErrStaticConstraintMismatch
				}
			}

			return operand{}, nil
		}
		if err := cs.RangeCheck(*uop.lc, bits); err != nil {
			return operand{}, err
		}

		return operand{}, nil

	default:
		return operand{}, fmt.Errorf("zkp: unknown op kind %d", zop.Kind)
	}
}

// foldAddSub combines two operands under + or -, choosing the Scalar-
// Scalar, LC-Scalar, or LC-LC fold per spec.md §4.7's table (Add/Sub/Neg
// never need a multiplication gate).
func foldAddSub(sub bool, lop, rop operand) operand {
	if lop.isScalar() && rop.isScalar() {
		if sub {
			return scalarOperand(ristretto255.NewScalar().Subtract(lop.sc, rop.sc))
		}

		return scalarOperand(ristretto255.NewScalar().Add(lop.sc, rop.sc))
	}

	left := lop.lc
	if left == nil {
		c := constLC(lop.sc)
		left = &c
	}
	right := rop.lc
	if right == nil {
		c := constLC(rop.sc)
		right = &c
	}
	if sub {
		return lcOperand(subLC(*left, *right))
	}

	return lcOperand(addLC(*left, *right))
}

// foldMul combines two operands under *, per spec.md §4.7's table: LC*LC
// always routes to cs.Multiply (the only way to combine two symbolic
// wires — spec.md §8 S5's invariant holds structurally here, since there
// is no other branch an LC*LC pair could reach); Scalar on either side
// folds by scalar multiplication instead of emitting a gate; Scalar*Scalar
// folds directly, which is also what keeps two constants from ever
// reaching cs.Multiply.
func foldMul(cs ConstraintSystem, lop, rop operand) (operand, error) {
	if lop.isScalar() && rop.isScalar() {
		return scalarOperand(ristretto255.NewScalar().Multiply(lop.sc, rop.sc)), nil
	}
	if lop.isScalar() {
		return lcOperand(scalarMulLC(*rop.lc, lop.sc)), nil
	}
	if rop.isScalar() {
		return lcOperand(scalarMulLC(*lop.lc, rop.sc)), nil
	}

	out, err := cs.Multiply(*lop.lc, *rop.lc)
	if err != nil {
		return operand{}, err
	}

	return lcOperand(out), nil
}

func mustScalar(b *bigint.BigInt) (*ristretto255.Scalar, error) {
	if b == nil {
		return zero(), nil
	}

	return b.ToScalar()
}

func toOptionalScalar(b *bigint.BigInt) (*ristretto255.Scalar, error) {
	if b == nil {
		return nil, nil
	}

	return b.ToScalar()
}
