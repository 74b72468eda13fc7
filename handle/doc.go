// Package handle implements the typed node-handle layer (spec.md §4.3):
// Scalar and Array[T] values whose arithmetic methods (Add, Sub, Mul, Neg)
// and comparison constraints read the active dagctx.WithGraph context and
// append dag.ZkpOp nodes, so that composing circuits with ordinary method
// calls reads like composing arithmetic expressions while actually
// building the graph underneath.
//
// Every constructor and arithmetic method returns an error instead of
// panicking: a handle built or combined outside any WithGraph scope
// surfaces as dagctx.ErrNoActiveContext. A handle carries only node
// indices, not its graph, so using a handle from one WithGraph scope in
// another is not detected: its indices are applied to the current graph
// as they are (an index past the current graph's end fails with
// dag.ErrNodeNotFound; one within it names whatever node is there).
package handle
