// Package dag implements the circuit intermediate representation shared by
// the FHE and ZKP backends: a persistent directed acyclic graph whose nodes
// carry typed arithmetic operations and whose edges carry a role (Left,
// Right, or Unordered operand).
//
// Node indices are stable: once returned from AddNode they remain valid
// identifiers for the lifetime of the Graph, even after the node they name
// is later pruned away. Graph mutation never invalidates a previously
// returned NodeIdx.
//
// Two concrete operation families share this substrate: ZkpOp (operand
// references carried as typed edges, consumed by package zkp) and FheOp
// (operand references carried inline in the operation payload, consumed by
// package fhe). A Graph built for one family should not mix in nodes of the
// other; Validate does not police that — callers are expected to build one
// circuit family per Graph.
package dag
