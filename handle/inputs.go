package handle

import (
	"fmt"

	"github.com/katalvlaran/circuitrt/bigint"
	"github.com/katalvlaran/circuitrt/dag"
	"github.com/katalvlaran/circuitrt/dagctx"
)

// PublicInput allocates a new dense-indexed ZKP input node in the active
// graph context (spec.md §4.3: "Public ... inputs — constructed by
// allocating that many new input-kind nodes in the current graph").
func PublicInput() (Scalar, error) {
	idx, g, err := dagctx.NextZkpInputIndex()
	if err != nil {
		return Scalar{}, fmt.Errorf("handle: PublicInput: %w", err)
	}

	return scalarOf(g.AddNode(dag.ZkpOp{Kind: dag.ZkpInput, InputIndex: idx})), nil
}

// PrivateInput allocates a HiddenInput node. Pass the known assignment
// while proving, or nil while only verifying (spec.md §3's
// "HiddenInput(Option<BigInt>)").
func PrivateInput(value *bigint.BigInt) (Scalar, error) {
	g, err := dagctx.Current()
	if err != nil {
		return Scalar{}, fmt.Errorf("handle: PrivateInput: %w", err)
	}

	return scalarOf(g.AddNode(dag.ZkpOp{Kind: dag.ZkpHiddenInput, HiddenValue: value})), nil
}

// ConstantInput allocates a Constant node folded to value at circuit-
// generation time.
func ConstantInput(value bigint.BigInt) (Scalar, error) {
	g, err := dagctx.Current()
	if err != nil {
		return Scalar{}, fmt.Errorf("handle: ConstantInput: %w", err)
	}

	return scalarOf(g.AddNode(dag.ZkpOp{Kind: dag.ZkpConstant, Constant: &value})), nil
}

// LinkedInput allocates an FHE-linked input: a field element whose value is
// bound to a plaintext encoded under a scheme with the given plaintext
// modulus (spec.md §4.3's "FHE-linked inputs"). Any plaintextModulus a
// uint64 can represent fits in a single field limb (the field is ~252
// bits wide), so this lowers to exactly one HiddenInput node; the original
// source's CreateLinkedZkpProgramInput splits wider plaintext moduli
// across multiple limbs, a case this executor's supported schemes never
// hit.
func LinkedInput(plaintextModulus uint64) (Scalar, error) {
	s, err := PrivateInput(nil)
	if err != nil {
		return Scalar{}, fmt.Errorf("handle: LinkedInput: %w", err)
	}

	return s, nil
}
