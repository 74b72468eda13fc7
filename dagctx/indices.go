package dagctx

import "github.com/katalvlaran/circuitrt/dag"

// inlineCap is the number of dag.NodeIdx values Indices stores without a
// heap-allocated backing slice.
const inlineCap = 4

// Indices is a small, value-typed, copyable sequence of dag.NodeIdx — the
// safe redesign of the original's arena-backed index slice (spec.md §9
// option (b): "handles storing small-vector inline indices by value,
// avoiding the arena entirely"). Sequences up to inlineCap long live
// entirely inline; longer ones overflow to a backing slice. Either way
// Indices is an ordinary Go value: the garbage collector keeps any
// overflow slice alive for as long as a copy of the value is reachable, so
// unlike the original's bump arena there is no builder-scoped lifetime a
// caller can violate by holding a handle past WithGraph's return.
type Indices struct {
	n        int
	inline   [inlineCap]dag.NodeIdx
	overflow []dag.NodeIdx
}

// NewIndices builds an Indices from idx, copying it.
func NewIndices(idx ...dag.NodeIdx) Indices {
	var ix Indices
	ix.n = len(idx)
	if len(idx) <= inlineCap {
		copy(ix.inline[:], idx)

		return ix
	}
	ix.overflow = append([]dag.NodeIdx(nil), idx...)

	return ix
}

// Len reports how many indices ix holds.
func (ix Indices) Len() int { return ix.n }

// At returns the i'th index. It panics if i is out of range, like a slice.
func (ix Indices) At(i int) dag.NodeIdx {
	if ix.n <= inlineCap {
		return ix.inline[i]
	}

	return ix.overflow[i]
}

// Slice materializes ix as a fresh []dag.NodeIdx.
func (ix Indices) Slice() []dag.NodeIdx {
	out := make([]dag.NodeIdx, ix.n)
	if ix.n <= inlineCap {
		copy(out, ix.inline[:ix.n])

		return out
	}
	copy(out, ix.overflow)

	return out
}
