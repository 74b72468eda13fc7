package circuits

import (
	"fmt"

	"github.com/katalvlaran/circuitrt/bigint"
	"github.com/katalvlaran/circuitrt/dag"
	"github.com/katalvlaran/circuitrt/dagctx"
	"github.com/katalvlaran/circuitrt/handle"
)

// ThreeInputConstraint42 builds the spec.md §8 S1 fixture: three public
// inputs i0, i1, i2, m = i0*i1, a = i2 + m, Constraint(42) over {a}.
// If out is non-nil, a's node index is written there so a caller can feed
// it to dag.Prune or inspect the graph after Build runs the constructor.
func ThreeInputConstraint42(out *dag.NodeIdx) Constructor {
	return func() error {
		i0, err := handle.PublicInput()
		if err != nil {
			return fmt.Errorf("circuits: ThreeInputConstraint42: %w", err)
		}
		i1, err := handle.PublicInput()
		if err != nil {
			return fmt.Errorf("circuits: ThreeInputConstraint42: %w", err)
		}
		i2, err := handle.PublicInput()
		if err != nil {
			return fmt.Errorf("circuits: ThreeInputConstraint42: %w", err)
		}

		m, err := i0.Mul(i1)
		if err != nil {
			return fmt.Errorf("circuits: ThreeInputConstraint42: %w", err)
		}
		a, err := i2.Add(m)
		if err != nil {
			return fmt.Errorf("circuits: ThreeInputConstraint42: %w", err)
		}

		if err := handle.ConstrainEq(a, bigint.FromUint64(42)); err != nil {
			return fmt.Errorf("circuits: ThreeInputConstraint42: %w", err)
		}

		if out != nil {
			*out = a.NodeIdx()
		}

		return nil
	}
}

// PruningSample builds ThreeInputConstraint42's shape plus one unreachable
// Constant node (spec.md §8 S6): Prune({a}) on the resulting graph must
// drop the stray node and keep exactly i0, i1, i2, m, a.
func PruningSample(out *dag.NodeIdx) Constructor {
	return func() error {
		if err := ThreeInputConstraint42(out)(); err != nil {
			return err
		}

		if _, err := handle.ConstantInput(bigint.FromUint64(0)); err != nil {
			return fmt.Errorf("circuits: PruningSample: %w", err)
		}

		return nil
	}
}

// SimpleFheAdd builds the spec.md §8 S4 fixture: two ciphertext inputs and
// one Add node feeding one OutputCiphertext. FHE fixtures wire dag nodes
// directly rather than through package handle, since handle's Scalar/Array
// builders cover only the ZKP operand convention (spec.md §4.3); the FHE
// convention's inline Left/Right operands still need the same scheduling
// edges a traversal driver relies on for dependency degree. If out is
// non-nil, the OutputCiphertext node's index is written there.
func SimpleFheAdd(out *dag.NodeIdx) Constructor {
	return func() error {
		i0idx, g, err := dagctx.NextFheInputIndex()
		if err != nil {
			return fmt.Errorf("circuits: SimpleFheAdd: %w", err)
		}
		i0 := g.AddNode(dag.FheOp{Kind: dag.FheInputCiphertext, InputIndex: i0idx})

		i1idx, _, err := dagctx.NextFheInputIndex()
		if err != nil {
			return fmt.Errorf("circuits: SimpleFheAdd: %w", err)
		}
		i1 := g.AddNode(dag.FheOp{Kind: dag.FheInputCiphertext, InputIndex: i1idx})

		sum := g.AddNode(dag.FheOp{Kind: dag.FheAdd, Left: i0, Right: i1})
		if err := g.AddEdge(i0, sum, dag.RoleUnordered); err != nil {
			return fmt.Errorf("circuits: SimpleFheAdd: %w", err)
		}
		if err := g.AddEdge(i1, sum, dag.RoleUnordered); err != nil {
			return fmt.Errorf("circuits: SimpleFheAdd: %w", err)
		}

		output := g.AddNode(dag.FheOp{Kind: dag.FheOutputCiphertext, Operand: sum})
		if err := g.AddEdge(sum, output, dag.RoleUnordered); err != nil {
			return fmt.Errorf("circuits: SimpleFheAdd: %w", err)
		}

		if out != nil {
			*out = output
		}

		return nil
	}
}
