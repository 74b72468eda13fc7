// Package zkp implements the R1CS circuit generator (spec.md §4.7):
// GenCircuit walks a dag.Graph of ZkpOp nodes with traverse.Forward,
// driving an injected ConstraintSystem to allocate wires, emit
// multiplication gates, and assert linear constraints.
//
// The concrete Bulletproofs backend is explicitly out of scope (spec.md
// §6: "only this shape is required") — ConstraintSystem is the capability
// boundary, and Prove/Verify here only handle the domain-separated
// transcript and generator-sizing bookkeeping a backend needs to be
// driven deterministically; the backend's actual proof math lives behind
// the injected GeneratorSet and Backend interfaces.
package zkp
