package zkp

import (
	"errors"

	"github.com/gtank/ristretto255"
)

// Sentinel errors for circuit generation and proving (spec.md §7).
var (
	// ErrStaticConstraintMismatch indicates a Constraint node's operand
	// folded to a known Scalar that does not equal the constraint's value,
	// or a RangeCheck node's operand folded to a Scalar that does not fit
	// in its bit-width.
	ErrStaticConstraintMismatch = errors.New("zkp: static constraint mismatch")

	// ErrInputsMismatch indicates Prove was given a different number of
	// inputs than the graph has Input nodes.
	ErrInputsMismatch = errors.New("zkp: input count mismatch")

	// ErrOutOfRange indicates an input BigInt did not convert to a field
	// Scalar (mirrors bigint.ErrOutOfRange at the proving boundary).
	ErrOutOfRange = errors.New("zkp: input out of range for field scalar")
)

// Variable identifies one committed wire allocated by a ConstraintSystem.
type Variable uint32

// LinearCombination is a symbolic linear form over committed wires: the
// value `Constant + Σ Terms[v] * v`. A zero-value LinearCombination (nil
// Terms, nil Constant) is not meaningful; build one from Allocate's or
// Multiply's result.
type LinearCombination struct {
	Terms    map[Variable]*ristretto255.Scalar
	Constant *ristretto255.Scalar
}

// operand is the ZKP generator's per-slot value: either a symbolic
// LinearCombination or a folded Scalar (spec.md §3's operand union).
type operand struct {
	lc *LinearCombination
	sc *ristretto255.Scalar
}

func lcOperand(lc LinearCombination) operand { return operand{lc: &lc} }
func scalarOperand(s *ristretto255.Scalar) operand { return operand{sc: s} }

func (o operand) isScalar() bool { return o.sc != nil }

// ConstraintSystem is the capability GenCircuit drives to build an R1CS
// instance (spec.md §4.7/§6). The concrete proving backend is out of
// scope; this is only the shape a backend must expose.
type ConstraintSystem interface {
	// Allocate commits a new wire, bound to value during proving or
	// unbound (nil) during verification, and returns the
	// LinearCombination "that wire, coefficient 1" referencing it.
	Allocate(value *ristretto255.Scalar) (LinearCombination, error)

	// Multiply emits a multiplication gate constraining left * right =
	// output and returns output's LinearCombination. This is the only
	// legal way to combine two non-constant LinearCombinations.
	Multiply(left, right LinearCombination) (LinearCombination, error)

	// Constrain asserts lc evaluates to zero.
	Constrain(lc LinearCombination) error

	// RangeCheck asserts lc is representable in the given number of bits
	// (spec.md §4.3's bounded comparison constraints, lowered to
	// dag.ZkpRangeCheck — see DESIGN.md for why this is a dedicated
	// capability rather than hand-rolled bit-decomposition gates in
	// GenCircuit).
	RangeCheck(lc LinearCombination, bits uint32) error
}
