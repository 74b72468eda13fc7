package handle

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/circuitrt/bigint"
	"github.com/katalvlaran/circuitrt/dag"
	"github.com/katalvlaran/circuitrt/dagctx"
)

// FieldModulusBits is the bit-width of bigint.FieldModulus (2^252 + ...):
// the highest set bit is bit 252, so the modulus needs 253 bits.
const FieldModulusBits = 253

// MaxBoundedBits is the largest bit-width hint the bounded comparison
// constraints accept (spec.md §4.3: "field_modulus_bits - 1").
const MaxBoundedBits = FieldModulusBits - 1

// ErrBitsOutOfRange indicates a bounded comparison constraint's bit-width
// hint exceeds MaxBoundedBits.
var ErrBitsOutOfRange = errors.New("handle: bit-width hint out of range")

// ConstrainEq asserts s equals the known constant value (spec.md §3's
// `Constraint(BigInt)` tag, over a single operand).
func ConstrainEq(s Scalar, value bigint.BigInt) error {
	g, err := dagctx.Current()
	if err != nil {
		return fmt.Errorf("handle: ConstrainEq: %w", err)
	}

	n := g.AddNode(dag.ZkpOp{Kind: dag.ZkpConstraint, Constant: &value})

	return g.AddEdge(s.NodeIdx(), n, dag.RoleUnordered)
}

// ConstrainLEBounded asserts lhs <= rhs, given bits is at least the number
// of bits needed to represent rhs - lhs. A RangeCheck only succeeds when
// its operand is a small nonnegative field element (spec.md §4.3); over
// the field, rhs - lhs is small and nonnegative exactly when rhs >= lhs,
// since lhs > rhs would wrap the subtraction around the modulus into a
// value far larger than 2^bits.
func ConstrainLEBounded(lhs, rhs Scalar, bits int) error {
	return constrainBounded(rhs, lhs, bits, false)
}

// ConstrainLTBounded asserts lhs < rhs: same direction as
// ConstrainLEBounded, but range-checks (rhs-lhs)-1 instead of rhs-lhs, so
// rhs-lhs = 0 (lhs == rhs) no longer satisfies the check.
func ConstrainLTBounded(lhs, rhs Scalar, bits int) error {
	return constrainBounded(rhs, lhs, bits, true)
}

// ConstrainGEBounded asserts lhs >= rhs: the mirror image of
// ConstrainLEBounded, range-checking lhs - rhs.
func ConstrainGEBounded(lhs, rhs Scalar, bits int) error {
	return constrainBounded(lhs, rhs, bits, false)
}

// ConstrainGTBounded asserts lhs > rhs: the mirror image of
// ConstrainLTBounded, range-checking (lhs-rhs)-1.
func ConstrainGTBounded(lhs, rhs Scalar, bits int) error {
	return constrainBounded(lhs, rhs, bits, true)
}

// constrainBounded lowers a bounded ordering constraint between a and b: it
// folds to a - b (or, when strict, (a-b)-1) and emits a RangeCheck(bits)
// node over that difference, so the R1CS generator (package zkp) can emit
// an O(bits) bit-decomposition gadget instead of a full field-width
// comparison. strict excludes a == b from satisfying the check: subtracting
// one first means the difference must be at least 1 (and at most 2^bits,
// preserving the same bit-width bound) rather than merely nonnegative.
func constrainBounded(a, b Scalar, bits int, strict bool) error {
	if bits < 0 || bits > MaxBoundedBits {
		return fmt.Errorf("handle: constrainBounded: %d bits: %w", bits, ErrBitsOutOfRange)
	}

	g, err := dagctx.Current()
	if err != nil {
		return fmt.Errorf("handle: constrainBounded: %w", err)
	}

	diff, err := a.Sub(b)
	if err != nil {
		return fmt.Errorf("handle: constrainBounded: %w", err)
	}

	if strict {
		one, err := ConstantInput(bigint.FromUint64(1))
		if err != nil {
			return fmt.Errorf("handle: constrainBounded: %w", err)
		}
		diff, err = diff.Sub(one)
		if err != nil {
			return fmt.Errorf("handle: constrainBounded: %w", err)
		}
	}

	bound := bigint.FromUint64(uint64(bits))
	n := g.AddNode(dag.ZkpOp{Kind: dag.ZkpRangeCheck, Constant: &bound})

	return g.AddEdge(diff.NodeIdx(), n, dag.RoleUnordered)
}
