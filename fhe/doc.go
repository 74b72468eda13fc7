// Package fhe implements the FHE executor (spec.md §4.6):
// RunProgramUnchecked drives traverse.Parallel over a dag.Graph of FheOp
// nodes, dispatching each to an Evaluator and collecting OutputCiphertext
// results in declaration order.
//
// The "_unchecked" name means the graph itself is not validated: a
// malformed graph is caller error. Two input faults are still reported as
// errors when a node reaches them: an InputCiphertext(i) with no inputs[i]
// (ErrMissingInput) and a Relinearize node with nil RelinKeys
// (ErrMissingRelinKeys). Callers that want checked execution should run
// dag.Graph.Validate first.
package fhe
