package zkp

import (
	"encoding/binary"
	"fmt"

	"github.com/gtank/merlin"
	"github.com/rs/zerolog/log"

	"github.com/katalvlaran/circuitrt/bigint"
	"github.com/katalvlaran/circuitrt/dag"
	"github.com/katalvlaran/circuitrt/proof"
)

// GeneratorSet is the Pedersen/Bulletproof generator capability a Backend
// sizes to a constraint count (spec.md §4.7: "sized to the next power of
// two of 2 × constraint_count"). The concrete generator math is out of
// scope (spec.md §6); this is only the shape GenCircuit's caller needs to
// carry one around.
type GeneratorSet interface {
	Len() int
}

// Prover is a ConstraintSystem that can finalize the constraints GenCircuit
// drove into it as a proof.
type Prover interface {
	ConstraintSystem
	Finalize(gens GeneratorSet) (proof.Proof, error)
}

// Verifier is a ConstraintSystem that can check the constraints GenCircuit
// drove into it against a previously produced proof.
type Verifier interface {
	ConstraintSystem
	Finalize(gens GeneratorSet, p proof.Proof) error
}

// Backend constructs transcript-bound generators, provers, and verifiers,
// and is tagged with the backend family it produces proofs for (spec.md
// §7). The concrete Bulletproofs implementation is out of scope (spec.md
// §6); Backend is the injection point a real implementation fills in.
type Backend interface {
	Tag() proof.BackendTag
	Generators(size int) GeneratorSet
	NewProver(transcript *merlin.Transcript, gens GeneratorSet) Prover
	NewVerifier(transcript *merlin.Transcript, gens GeneratorSet) Verifier
}

// newTranscript builds the deterministic transcript Prove and Verify must
// agree on bit-for-bit: domain-separated "R1CS" / "R1CS proof" labels with
// the generator length appended (spec.md §4.7).
func newTranscript(gensLen int) *merlin.Transcript {
	t := merlin.NewTranscript("R1CS")
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(gensLen))
	t.AppendMessage([]byte("R1CS proof"), buf[:])

	return t
}

// nextPow2 returns the smallest power of two >= n (n > 0).
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

func countZkpInputs(graph *dag.Graph) int {
	count := 0
	for _, n := range graph.Nodes() {
		op, err := graph.GetOperation(n)
		if err != nil {
			continue
		}
		if zop, ok := op.(dag.ZkpOp); ok && zop.Kind == dag.ZkpInput {
			count++
		}
	}

	return count
}

// Prove builds a proof that graph is satisfied by inputs (spec.md §4.7's
// prove/verify flow): checks |inputs| == number of Input nodes
// (ErrInputsMismatch otherwise), builds the deterministic transcript and
// generators, runs GenCircuit with the known inputs, and finalizes the
// backend's proof.
func Prove(graph *dag.Graph, inputs []bigint.BigInt, backend Backend) (proof.Proof, error) {
	if len(inputs) != countZkpInputs(graph) {
		return proof.Proof{}, fmt.Errorf("zkp: Prove: %w", ErrInputsMismatch)
	}
	for i := range inputs {
		if _, err := inputs[i].ToScalar(); err != nil {
			return proof.Proof{}, fmt.Errorf("zkp: Prove: input %d: %w", i, ErrOutOfRange)
		}
	}

	count, err := ConstraintCount(graph)
	if err != nil {
		return proof.Proof{}, fmt.Errorf("zkp: Prove: %w", err)
	}

	log.Debug().Int("constraints", count).Int("inputs", len(inputs)).Msg("zkp: prove start")

	gens := backend.Generators(nextPow2(2 * count))
	transcript := newTranscript(gens.Len())
	prover := backend.NewProver(transcript, gens)

	getInput := func(i uint32) *bigint.BigInt { return &inputs[i] }
	if err := GenCircuit(graph, prover, getInput); err != nil {
		log.Error().Err(err).Msg("zkp: prove: circuit generation failed")

		return proof.Proof{}, fmt.Errorf("zkp: Prove: %w", err)
	}

	p, err := prover.Finalize(gens)
	if err != nil {
		log.Error().Err(err).Msg("zkp: prove: finalize failed")

		return proof.Proof{}, fmt.Errorf("zkp: Prove: %w", err)
	}

	log.Debug().Uint8("backend_tag", uint8(p.Tag)).Msg("zkp: prove complete")

	return p, nil
}

// Verify checks p against graph alone (no secrets): it rebuilds the same
// transcript and generators the prover used and runs GenCircuit with every
// input unbound. Transcript reconstruction must be bit-identical to
// Prove's; any divergence breaks verification (spec.md §4.7). A proof
// tagged for a different backend family fails fast with
// proof.ErrIncorrectProofType (spec.md §7) rather than being handed to a
// backend that cannot interpret its payload.
func Verify(graph *dag.Graph, p proof.Proof, backend Backend) error {
	if err := p.CheckTag(backend.Tag()); err != nil {
		log.Warn().Err(err).Msg("zkp: verify: tag mismatch")

		return fmt.Errorf("zkp: Verify: %w", err)
	}

	count, err := ConstraintCount(graph)
	if err != nil {
		return fmt.Errorf("zkp: Verify: %w", err)
	}

	log.Debug().Int("constraints", count).Msg("zkp: verify start")

	gens := backend.Generators(nextPow2(2 * count))
	transcript := newTranscript(gens.Len())
	verifier := backend.NewVerifier(transcript, gens)

	getInput := func(uint32) *bigint.BigInt { return nil }
	if err := GenCircuit(graph, verifier, getInput); err != nil {
		log.Error().Err(err).Msg("zkp: verify: circuit generation failed")

		return fmt.Errorf("zkp: Verify: %w", err)
	}

	if err := verifier.Finalize(gens, p); err != nil {
		log.Warn().Err(err).Msg("zkp: verify: finalize rejected proof")

		return fmt.Errorf("zkp: Verify: %w", err)
	}

	log.Debug().Msg("zkp: verify complete")

	return nil
}
