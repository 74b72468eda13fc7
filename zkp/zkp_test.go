package zkp_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gtank/merlin"
	"github.com/gtank/ristretto255"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/circuitrt/bigint"
	"github.com/katalvlaran/circuitrt/circuits"
	"github.com/katalvlaran/circuitrt/dag"
	"github.com/katalvlaran/circuitrt/proof"
	"github.com/katalvlaran/circuitrt/zkp"
)

// fakeCS is a plaintext-evaluating ConstraintSystem used only to exercise
// GenCircuit's dispatch and reference-counting logic in tests — not a
// cryptographic implementation. The concrete Bulletproofs backend is out
// of scope (spec.md §6); this stands in for it the way an in-memory fake
// stands in for a database in a unit test.
type fakeCS struct {
	nextVar       zkp.Variable
	values        map[zkp.Variable]*ristretto255.Scalar
	multiplyCalls int
}

var errWireUnbound = errors.New("fakeCS: wire unbound")
var errConstraintViolated = errors.New("fakeCS: constraint violated")

func newFakeCS() *fakeCS {
	return &fakeCS{values: map[zkp.Variable]*ristretto255.Scalar{}}
}

func (cs *fakeCS) Allocate(value *ristretto255.Scalar) (zkp.LinearCombination, error) {
	v := cs.nextVar
	cs.nextVar++
	if value != nil {
		cs.values[v] = value
	}

	return oneTermLC(v), nil
}

func (cs *fakeCS) Multiply(left, right zkp.LinearCombination) (zkp.LinearCombination, error) {
	cs.multiplyCalls++
	lv, err := cs.eval(left)
	if err != nil {
		return zkp.LinearCombination{}, err
	}
	rv, err := cs.eval(right)
	if err != nil {
		return zkp.LinearCombination{}, err
	}

	v := cs.nextVar
	cs.nextVar++
	cs.values[v] = ristretto255.NewScalar().Multiply(lv, rv)

	return oneTermLC(v), nil
}

func (cs *fakeCS) Constrain(lc zkp.LinearCombination) error {
	v, err := cs.eval(lc)
	if err != nil {
		return err
	}
	if v.Equal(ristretto255.NewScalar()) != 1 {
		return errConstraintViolated
	}

	return nil
}

func (cs *fakeCS) RangeCheck(lc zkp.LinearCombination, bits uint32) error {
	v, err := cs.eval(lc)
	if err != nil {
		return err
	}
	word0 := bigint.FromScalar(v).Words()[0]
	if bits < 64 && word0>>bits != 0 {
		return errConstraintViolated
	}

	return nil
}

func (cs *fakeCS) eval(lc zkp.LinearCombination) (*ristretto255.Scalar, error) {
	sum := ristretto255.NewScalar()
	for v, coeff := range lc.Terms {
		val, ok := cs.values[v]
		if !ok {
			return nil, fmt.Errorf("%w: %d", errWireUnbound, v)
		}
		sum = ristretto255.NewScalar().Add(sum, ristretto255.NewScalar().Multiply(coeff, val))
	}
	if lc.Constant != nil {
		sum = ristretto255.NewScalar().Add(sum, lc.Constant)
	}

	return sum, nil
}

func oneTermLC(v zkp.Variable) zkp.LinearCombination {
	one, _ := bigint.FromUint64(1).ToScalar()

	return zkp.LinearCombination{Terms: map[zkp.Variable]*ristretto255.Scalar{v: one}, Constant: ristretto255.NewScalar()}
}

// buildS1Graph builds i0,i1,i2, m=i0*i1, a=i2+m, Constraint(42) over {a}
// (spec.md §8 S1).
func buildS1Graph(t *testing.T) *dag.Graph {
	t.Helper()
	g := dag.NewGraph()
	i0 := g.AddNode(dag.ZkpOp{Kind: dag.ZkpInput, InputIndex: 0})
	i1 := g.AddNode(dag.ZkpOp{Kind: dag.ZkpInput, InputIndex: 1})
	i2 := g.AddNode(dag.ZkpOp{Kind: dag.ZkpInput, InputIndex: 2})
	m := g.AddNode(dag.ZkpOp{Kind: dag.ZkpMul})
	require.NoError(t, g.AddEdge(i0, m, dag.RoleLeft))
	require.NoError(t, g.AddEdge(i1, m, dag.RoleRight))
	a := g.AddNode(dag.ZkpOp{Kind: dag.ZkpAdd})
	require.NoError(t, g.AddEdge(i2, a, dag.RoleLeft))
	require.NoError(t, g.AddEdge(m, a, dag.RoleRight))
	constant := bigint.FromUint64(42)
	c := g.AddNode(dag.ZkpOp{Kind: dag.ZkpConstraint, Constant: &constant})
	require.NoError(t, g.AddEdge(a, c, dag.RoleUnordered))

	return g
}

func inputFunc(vals ...uint64) zkp.InputFunc {
	return func(i uint32) *bigint.BigInt {
		b := bigint.FromUint64(vals[i])

		return &b
	}
}

func TestGenCircuitSatisfiedConstraintSucceeds(t *testing.T) {
	g := buildS1Graph(t)
	cs := newFakeCS()
	require.NoError(t, zkp.GenCircuit(g, cs, inputFunc(10, 4, 2))) // 10*4+2 = 42
	require.Equal(t, 1, cs.multiplyCalls)
}

func TestGenCircuitSecondSatisfyingAssignment(t *testing.T) {
	g := buildS1Graph(t)
	cs := newFakeCS()
	require.NoError(t, zkp.GenCircuit(g, cs, inputFunc(8, 5, 2))) // 8*5+2 = 42
}

func TestGenCircuitViolatedConstraintFails(t *testing.T) {
	g := buildS1Graph(t)
	cs := newFakeCS()
	err := zkp.GenCircuit(g, cs, inputFunc(8, 5, 3)) // 8*5+3 = 43 != 42
	require.Error(t, err)
	require.ErrorIs(t, err, errConstraintViolated)
}

func TestGenCircuitMulAlwaysRoutesSymbolicOperandsThroughMultiply(t *testing.T) {
	// spec.md §8 S5: the only way to multiply two symbolic wires is
	// through ConstraintSystem.Multiply. Both i0 and i1 are non-constant
	// Input nodes, so m's fold must invoke cs.Multiply exactly once.
	g := buildS1Graph(t)
	cs := newFakeCS()
	require.NoError(t, zkp.GenCircuit(g, cs, inputFunc(6, 7, 0))) // 6*7+0 = 42
	require.Equal(t, 1, cs.multiplyCalls)
}

func TestGenCircuitConstantTimesConstantNeverCallsMultiply(t *testing.T) {
	g := dag.NewGraph()
	five := bigint.FromUint64(5)
	six := bigint.FromUint64(6)
	c1 := g.AddNode(dag.ZkpOp{Kind: dag.ZkpConstant, Constant: &five})
	c2 := g.AddNode(dag.ZkpOp{Kind: dag.ZkpConstant, Constant: &six})
	m := g.AddNode(dag.ZkpOp{Kind: dag.ZkpMul})
	require.NoError(t, g.AddEdge(c1, m, dag.RoleLeft))
	require.NoError(t, g.AddEdge(c2, m, dag.RoleRight))
	thirty := bigint.FromUint64(30)
	constr := g.AddNode(dag.ZkpOp{Kind: dag.ZkpConstraint, Constant: &thirty})
	require.NoError(t, g.AddEdge(m, constr, dag.RoleUnordered))

	cs := newFakeCS()
	require.NoError(t, zkp.GenCircuit(g, cs, func(uint32) *bigint.BigInt { return nil }))
	require.Equal(t, 0, cs.multiplyCalls)
}

func TestConstraintCountMatchesS1Shape(t *testing.T) {
	g := buildS1Graph(t)
	count, err := zkp.ConstraintCount(g)
	require.NoError(t, err)
	// 3 inputs => ceil(3/2) = 2 pairing constraints, plus 1 Mul (non-
	// constant) and 1 Constraint = 4.
	require.Equal(t, 4, count)
}

func TestRangeCheckOnConstantFoldedOperandSkipsBackendCall(t *testing.T) {
	g := dag.NewGraph()
	diff := g.AddNode(dag.ZkpOp{Kind: dag.ZkpConstant, Constant: ptrBig(bigint.FromUint64(1000))})
	bits := bigint.FromUint64(4)
	rc := g.AddNode(dag.ZkpOp{Kind: dag.ZkpRangeCheck, Constant: &bits})
	require.NoError(t, g.AddEdge(diff, rc, dag.RoleUnordered))

	cs := newFakeCS()
	// A Scalar operand (constant-folded) is range-checked by GenCircuit
	// itself — only symbolic LC operands reach cs.RangeCheck. 1000 needs 10
	// bits, so the 4-bit check fails statically with
	// ErrStaticConstraintMismatch, not the fake backend's error.
	err := zkp.GenCircuit(g, cs, func(uint32) *bigint.BigInt { return nil })
	require.ErrorIs(t, err, zkp.ErrStaticConstraintMismatch)
}

func TestRangeCheckOnSymbolicOperandCallsBackend(t *testing.T) {
	g := dag.NewGraph()
	diff := g.AddNode(dag.ZkpOp{Kind: dag.ZkpInput, InputIndex: 0})
	bits := bigint.FromUint64(4)
	rc := g.AddNode(dag.ZkpOp{Kind: dag.ZkpRangeCheck, Constant: &bits})
	require.NoError(t, g.AddEdge(diff, rc, dag.RoleUnordered))

	cs := newFakeCS()
	require.NoError(t, zkp.GenCircuit(g, cs, inputFunc(15))) // fits in 4 bits

	cs2 := newFakeCS()
	err := zkp.GenCircuit(g, cs2, inputFunc(16)) // needs 5 bits
	require.Error(t, err)
	require.ErrorIs(t, err, errConstraintViolated)
}

func ptrBig(b bigint.BigInt) *bigint.BigInt { return &b }

// fakeGenerators stands in for the Pedersen/Bulletproof generator set
// Prove/Verify size to the constraint count; only Len is ever read.
type fakeGenerators int

func (g fakeGenerators) Len() int { return int(g) }

// errBadProof is fakeVerifier.Finalize's rejection sentinel: the fake
// backend's "proof" is just a marker payload a prover and verifier must
// agree on, standing in for the Bulletproofs wire format (spec.md §6 keeps
// the concrete math out of scope).
var errBadProof = errors.New("fakeVerifier: payload mismatch")

var fakeProofPayload = []byte("fake-proof-ok")

// fakeProver and fakeVerifier wrap fakeCS so Prove/Verify's GenCircuit pass
// drives the same plaintext-evaluating constraint system already used
// above, while Finalize exercises the proof.Proof plumbing end to end.
type fakeProver struct{ *fakeCS }

func (p *fakeProver) Finalize(zkp.GeneratorSet) (proof.Proof, error) {
	return proof.New(proof.Bulletproofs, fakeProofPayload), nil
}

type fakeVerifier struct{ *fakeCS }

func (v *fakeVerifier) Finalize(_ zkp.GeneratorSet, p proof.Proof) error {
	if string(p.Payload) != string(fakeProofPayload) {
		return errBadProof
	}

	return nil
}

// fakeBackend is a Backend whose Tag is configurable, so tests can drive
// both the matching-tag happy path and proof.ErrIncorrectProofType.
type fakeBackend struct{ tag proof.BackendTag }

func (b fakeBackend) Tag() proof.BackendTag { return b.tag }

func (b fakeBackend) Generators(size int) zkp.GeneratorSet { return fakeGenerators(size) }

func (b fakeBackend) NewProver(*merlin.Transcript, zkp.GeneratorSet) zkp.Prover {
	return &fakeProver{fakeCS: newFakeCS()}
}

func (b fakeBackend) NewVerifier(*merlin.Transcript, zkp.GeneratorSet) zkp.Verifier {
	return &fakeVerifier{fakeCS: newFakeCS()}
}

func TestProveVerifyRoundTrip(t *testing.T) {
	g, err := circuits.Build(nil, circuits.ThreeInputConstraint42(nil))
	require.NoError(t, err)

	backend := fakeBackend{tag: proof.Bulletproofs}
	p, err := zkp.Prove(g, []bigint.BigInt{bigint.FromUint64(10), bigint.FromUint64(4), bigint.FromUint64(2)}, backend)
	require.NoError(t, err)

	require.NoError(t, zkp.Verify(g, p, backend))
}

func TestJitProverJitVerifierRoundTrip(t *testing.T) {
	backend := fakeBackend{tag: proof.Bulletproofs}
	program := zkp.Program(circuits.ThreeInputConstraint42(nil))

	p, err := zkp.JitProver(program, []bigint.BigInt{bigint.FromUint64(8), bigint.FromUint64(5), bigint.FromUint64(2)}, backend)
	require.NoError(t, err)

	require.NoError(t, zkp.JitVerifier(program, p, backend))
}

func TestProveRejectsInputCountMismatch(t *testing.T) {
	g, err := circuits.Build(nil, circuits.ThreeInputConstraint42(nil))
	require.NoError(t, err)

	backend := fakeBackend{tag: proof.Bulletproofs}
	_, err = zkp.Prove(g, []bigint.BigInt{bigint.FromUint64(10)}, backend)
	require.Error(t, err)
	require.ErrorIs(t, err, zkp.ErrInputsMismatch)
}

func TestVerifyRejectsWrongBackendTag(t *testing.T) {
	g, err := circuits.Build(nil, circuits.ThreeInputConstraint42(nil))
	require.NoError(t, err)

	backend := fakeBackend{tag: proof.Bulletproofs}
	p, err := zkp.Prove(g, []bigint.BigInt{bigint.FromUint64(10), bigint.FromUint64(4), bigint.FromUint64(2)}, backend)
	require.NoError(t, err)

	wrongBackend := fakeBackend{tag: proof.Bulletproofs + 1}
	err = zkp.Verify(g, p, wrongBackend)
	require.Error(t, err)
	require.ErrorIs(t, err, proof.ErrIncorrectProofType)
}
