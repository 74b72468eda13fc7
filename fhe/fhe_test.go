package fhe_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/circuitrt/dag"
	"github.com/katalvlaran/circuitrt/fhe"
)

// intCiphertext is a plaintext-arithmetic stand-in for a real scheme,
// exercising the executor's dispatch without pulling in a lattice-FHE
// library (see SPEC_FULL §1).
type intCiphertext int

type intEvaluator struct{}

func (intEvaluator) Add(a, b fhe.Ciphertext) (fhe.Ciphertext, error) {
	return a.(intCiphertext) + b.(intCiphertext), nil
}

func (intEvaluator) Multiply(a, b fhe.Ciphertext) (fhe.Ciphertext, error) {
	return a.(intCiphertext) * b.(intCiphertext), nil
}

func (intEvaluator) Relinearize(c fhe.Ciphertext, _ fhe.RelinKeys) (fhe.Ciphertext, error) {
	return c, nil
}

// buildAddCircuit builds InputCiphertext(0) + InputCiphertext(1) ->
// OutputCiphertext, the spec.md §8 S4 shape.
func buildAddCircuit(t *testing.T) (*dag.Graph, dag.NodeIdx, dag.NodeIdx, dag.NodeIdx) {
	t.Helper()
	g := dag.NewGraph()
	i0 := g.AddNode(dag.FheOp{Kind: dag.FheInputCiphertext, InputIndex: 0})
	i1 := g.AddNode(dag.FheOp{Kind: dag.FheInputCiphertext, InputIndex: 1})
	sum := g.AddNode(dag.FheOp{Kind: dag.FheAdd, Left: i0, Right: i1})
	require.NoError(t, g.AddEdge(i0, sum, dag.RoleUnordered))
	require.NoError(t, g.AddEdge(i1, sum, dag.RoleUnordered))
	out := g.AddNode(dag.FheOp{Kind: dag.FheOutputCiphertext, Operand: sum})
	require.NoError(t, g.AddEdge(sum, out, dag.RoleUnordered))

	return g, i0, i1, out
}

func TestRunProgramUncheckedAddsInputs(t *testing.T) {
	g, _, _, _ := buildAddCircuit(t)
	out, err := fhe.RunProgramUnchecked(g, []fhe.Ciphertext{intCiphertext(3), intCiphertext(4)}, intEvaluator{}, nil)
	require.NoError(t, err)
	require.Equal(t, []fhe.Ciphertext{intCiphertext(7)}, out)
}

func TestRunProgramUncheckedMissingInputErrors(t *testing.T) {
	g, _, _, _ := buildAddCircuit(t)
	_, err := fhe.RunProgramUnchecked(g, []fhe.Ciphertext{intCiphertext(3)}, intEvaluator{}, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, fhe.ErrMissingInput)
}

func TestRunProgramUncheckedRejectsUnimplementedKind(t *testing.T) {
	g := dag.NewGraph()
	g.AddNode(dag.FheOp{Kind: dag.FheNegate})
	_, err := fhe.RunProgramUnchecked(g, nil, intEvaluator{}, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, fhe.ErrUnimplementedOperation)
}

func TestRunProgramUncheckedRelinearizeRequiresKeys(t *testing.T) {
	g := dag.NewGraph()
	i0 := g.AddNode(dag.FheOp{Kind: dag.FheInputCiphertext, InputIndex: 0})
	relin := g.AddNode(dag.FheOp{Kind: dag.FheRelinearize, Operand: i0})
	require.NoError(t, g.AddEdge(i0, relin, dag.RoleUnordered))

	_, err := fhe.RunProgramUnchecked(g, []fhe.Ciphertext{intCiphertext(1)}, intEvaluator{}, nil)
	require.ErrorIs(t, err, fhe.ErrMissingRelinKeys)

	out, err := fhe.RunProgramUnchecked(g, []fhe.Ciphertext{intCiphertext(1)}, intEvaluator{}, struct{}{})
	require.NoError(t, err)
	require.Empty(t, out)
}
