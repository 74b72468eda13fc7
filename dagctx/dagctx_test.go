package dagctx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/circuitrt/dag"
	"github.com/katalvlaran/circuitrt/dagctx"
)

func TestWithGraphRunsScopeAndReleases(t *testing.T) {
	var captured dag.NodeIdx
	g, err := dagctx.WithGraph(nil, func() error {
		cur, err := dagctx.Current()
		require.NoError(t, err)
		captured = cur.AddNode(dag.ZkpOp{Kind: dag.ZkpConstant})

		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, g.NodeCount())

	_, err = g.GetOperation(captured)
	require.NoError(t, err)

	_, err = dagctx.Current()
	require.ErrorIs(t, err, dagctx.ErrNoActiveContext)
}

func TestWithGraphRejectsNestedActivation(t *testing.T) {
	_, err := dagctx.WithGraph(nil, func() error {
		_, innerErr := dagctx.WithGraph(nil, func() error { return nil })
		require.ErrorIs(t, innerErr, dagctx.ErrContextAlreadyActive)

		return nil
	})
	require.NoError(t, err)
}

func TestWithGraphReleasesOnScopeError(t *testing.T) {
	boom := dag.ErrMalformedEdges
	_, err := dagctx.WithGraph(nil, func() error { return boom })
	require.ErrorIs(t, err, boom)

	_, err = dagctx.Current()
	require.ErrorIs(t, err, dagctx.ErrNoActiveContext)
}

func TestWithGraphReleasesOnPanic(t *testing.T) {
	func() {
		defer func() {
			r := recover()
			require.Equal(t, "boom", r)
		}()
		_, _ = dagctx.WithGraph(nil, func() error {
			panic("boom")
		})
	}()

	_, err := dagctx.Current()
	require.ErrorIs(t, err, dagctx.ErrNoActiveContext)
}

func TestDenseInputIndexAllocators(t *testing.T) {
	_, err := dagctx.WithGraph(nil, func() error {
		i0, _, err := dagctx.NextZkpInputIndex()
		require.NoError(t, err)
		require.Equal(t, uint32(0), i0)

		i1, _, err := dagctx.NextZkpInputIndex()
		require.NoError(t, err)
		require.Equal(t, uint32(1), i1)

		f0, _, err := dagctx.NextFheInputIndex()
		require.NoError(t, err)
		require.Equal(t, uint32(0), f0)

		return nil
	})
	require.NoError(t, err)
}

func TestIndicesInlineAndOverflow(t *testing.T) {
	inline := dagctx.NewIndices(1, 2, 3)
	require.Equal(t, 3, inline.Len())
	require.Equal(t, []dag.NodeIdx{1, 2, 3}, inline.Slice())

	long := dagctx.NewIndices(1, 2, 3, 4, 5, 6)
	require.Equal(t, 6, long.Len())
	require.Equal(t, dag.NodeIdx(5), long.At(4))
	require.Equal(t, []dag.NodeIdx{1, 2, 3, 4, 5, 6}, long.Slice())
}
