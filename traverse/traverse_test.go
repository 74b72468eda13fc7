package traverse_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/circuitrt/dag"
	"github.com/katalvlaran/circuitrt/traverse"
)

// buildDiamond builds i0, i1, i2, m=i0*i1 (Left=i0,Right=i1), a=i2+m
// (Left=i2,Right=m) — the spec.md §8 S1 shape.
func buildDiamond(t *testing.T) (*dag.Graph, dag.NodeIdx, dag.NodeIdx, dag.NodeIdx, dag.NodeIdx, dag.NodeIdx) {
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

	return g, i0, i1, i2, m, a
}

func TestForwardVisitsEveryPredecessorFirst(t *testing.T) {
	g, i0, i1, i2, m, a := buildDiamond(t)
	var order []dag.NodeIdx
	err := traverse.Forward(g, func(n dag.NodeIdx, q traverse.Query) error {
		order = append(order, n)

		return nil
	})
	require.NoError(t, err)
	require.Len(t, order, 5)

	pos := make(map[dag.NodeIdx]int, len(order))
	for i, n := range order {
		pos[n] = i
	}
	require.Less(t, pos[i0], pos[m])
	require.Less(t, pos[i1], pos[m])
	require.Less(t, pos[i2], pos[a])
	require.Less(t, pos[m], pos[a])
}

func TestForwardQueryBinaryOperands(t *testing.T) {
	g, i0, i1, _, m, _ := buildDiamond(t)
	err := traverse.Forward(g, func(n dag.NodeIdx, q traverse.Query) error {
		if n != m {
			return nil
		}
		left, right, err := q.GetBinaryOperands(n)
		require.NoError(t, err)
		require.Equal(t, i0, left)
		require.Equal(t, i1, right)

		return nil
	})
	require.NoError(t, err)
}

func TestParallelVisitsEveryNodeExactlyOnce(t *testing.T) {
	g, _, _, _, _, _ := buildDiamond(t)
	var mu sync.Mutex
	seen := make(map[dag.NodeIdx]int)
	err := traverse.Parallel(g, func(n dag.NodeIdx, q traverse.Query) error {
		mu.Lock()
		seen[n]++
		mu.Unlock()

		return nil
	}, traverse.WithWorkers(4))
	require.NoError(t, err)
	require.Len(t, seen, 5)
	for _, count := range seen {
		require.Equal(t, 1, count)
	}
}

func TestParallelPropagatesVisitError(t *testing.T) {
	g, _, _, _, m, _ := buildDiamond(t)
	err := traverse.Parallel(g, func(n dag.NodeIdx, q traverse.Query) error {
		if n == m {
			return dag.ErrMalformedEdges
		}

		return nil
	})
	require.Error(t, err)
	require.ErrorIs(t, err, dag.ErrMalformedEdges)
}
