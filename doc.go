// Package circuitrt is a hybrid FHE/ZKP compiler runtime core: a shared
// DAG intermediate representation (package dag) for both arithmetic
// circuit families, built through a typed handle layer (package handle)
// inside a scoped graph context (package dagctx), lowered either to an
// R1CS constraint system and Bulletproofs-shaped prove/verify flow
// (package zkp, with its wire format in package proof) or executed
// directly against an FHE Evaluator (package fhe), via single-threaded or
// parallel traversal drivers (package traverse). Package circuits
// collects named, reusable fixture circuits used across tests and
// examples.
//
//	dag       — node/edge substrate, validation, pruning
//	dagctx    — active graph context, dense input-index allocation
//	handle    — typed ZKP wire handles (Scalar, Array) built from dagctx
//	traverse  — forward (single-threaded) and parallel graph drivers
//	zkp       — R1CS circuit generation, gate counting, prove/verify
//	proof     — backend-tagged proof wire format
//	fhe       — FHE program executor against an injected Evaluator
//	circuits  — named fixture circuits (package-level examples and tests)
package circuitrt
