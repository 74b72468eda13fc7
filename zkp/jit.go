package zkp

import (
	"fmt"

	"github.com/katalvlaran/circuitrt/bigint"
	"github.com/katalvlaran/circuitrt/dagctx"
	"github.com/katalvlaran/circuitrt/proof"
)

// Program builds a circuit (via package handle's constructors) inside the
// active dagctx scope — the "compiled higher-level program" spec.md §4.7's
// JIT stages lower to an executable graph.
type Program func() error

// JitProver lowers program to a graph and proves it against inputs in one
// step (spec.md §4.7's jit_prover).
func JitProver(program Program, inputs []bigint.BigInt, backend Backend) (proof.Proof, error) {
	graph, err := dagctx.WithGraph(nil, program)
	if err != nil {
		return proof.Proof{}, fmt.Errorf("zkp: JitProver: %w", err)
	}

	return Prove(graph, inputs, backend)
}

// JitVerifier lowers program to a graph and verifies p against it in one
// step (spec.md §4.7's jit_verifier). program must build the same graph
// shape JitProver's did — only the input bindings differ.
func JitVerifier(program Program, p proof.Proof, backend Backend) error {
	graph, err := dagctx.WithGraph(nil, program)
	if err != nil {
		return fmt.Errorf("zkp: JitVerifier: %w", err)
	}

	return Verify(graph, p, backend)
}
