package dag

import (
	"errors"
	"sync"

	"github.com/katalvlaran/circuitrt/bigint"
)

// Sentinel errors for the dag package.
var (
	// ErrNodeNotFound indicates a NodeIdx does not name a live node.
	ErrNodeNotFound = errors.New("dag: node not found")

	// ErrCycleDetected indicates Validate found a directed cycle.
	ErrCycleDetected = errors.New("dag: cycle detected")

	// ErrMalformedEdges indicates a unary node does not have exactly one
	// incoming edge, or a leaf node has an incoming edge.
	ErrMalformedEdges = errors.New("dag: malformed edges")

	// ErrMissingLeft indicates a binary node lacks a Left-role predecessor.
	ErrMissingLeft = errors.New("dag: missing left operand")

	// ErrMissingRight indicates a binary node lacks a Right-role predecessor.
	ErrMissingRight = errors.New("dag: missing right operand")

	// ErrDuplicateRole indicates a binary node has more than one edge
	// carrying the same Left or Right role.
	ErrDuplicateRole = errors.New("dag: duplicate operand role")

	// ErrInputIndexGap indicates the Input(i)/InputCiphertext(i) index set
	// is not the dense range {0, ..., k-1}.
	ErrInputIndexGap = errors.New("dag: input index gap")
)

// NodeIdx identifies a node within a Graph. Indices are assigned in
// insertion order starting at 0 and remain valid identifiers for the
// lifetime of the Graph, even once the node they name has been pruned away.
type NodeIdx int

// Role tags the operand position an edge fills at its target node.
type Role uint8

const (
	// RoleLeft marks the left operand of a binary operation.
	RoleLeft Role = iota
	// RoleRight marks the right operand of a binary operation.
	RoleRight
	// RoleUnordered marks an operand of a Constraint node, or any edge
	// whose position is not semantically ordered (including every FHE
	// scheduling edge, since the FHE operation payload already carries
	// its operand indices inline).
	RoleUnordered
)

// Operation is the payload carried by a node. The two concrete families
// admitted by this package are ZkpOp and FheOp; see their doc comments for
// the tag sets defined by the specification's data model.
type Operation interface {
	isOperation()
}

// adjEntry is one side of a directed, role-tagged edge: stored in outEdges
// it names the consumer; stored in inEdges it names the producer.
type adjEntry struct {
	other NodeIdx
	role  Role
}

// node is the internal storage record for one graph node. alive is false
// once the node has been pruned; its NodeIdx is never reused.
type node struct {
	op    Operation
	alive bool
}

// GraphOption configures a Graph at construction time.
type GraphOption func(*Graph)

// WithCapacityHint pre-sizes internal storage for n nodes, avoiding
// reallocation during circuit construction. Purely an optimization; passing
// a wrong or zero value never affects correctness.
func WithCapacityHint(n int) GraphOption {
	return func(g *Graph) {
		if n > 0 {
			g.nodes = make([]node, 0, n)
			g.outEdges = make(map[NodeIdx][]adjEntry, n)
			g.inEdges = make(map[NodeIdx][]adjEntry, n)
		}
	}
}

// Graph is the circuit intermediate representation: a directed acyclic
// graph of typed Operation nodes connected by role-tagged edges.
//
// muNode guards the node slice (append-only plus tombstoning); muEdge
// guards the adjacency maps. The separation mirrors the teacher's two-lock
// discipline for vertex vs. edge/adjacency state, generalized from named
// vertices to indexed nodes.
type Graph struct {
	muNode sync.RWMutex
	muEdge sync.RWMutex

	nodes    []node
	outEdges map[NodeIdx][]adjEntry // producer -> entries naming consumers
	inEdges  map[NodeIdx][]adjEntry // consumer -> entries naming producers
}

// NewGraph constructs an empty Graph.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		nodes:    make([]node, 0),
		outEdges: make(map[NodeIdx][]adjEntry),
		inEdges:  make(map[NodeIdx][]adjEntry),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// ZkpOpKind enumerates the ZKP operation tag set (spec.md §3).
type ZkpOpKind uint8

const (
	ZkpInput ZkpOpKind = iota
	ZkpHiddenInput
	ZkpConstant
	ZkpAdd
	ZkpSub
	ZkpNeg
	ZkpMul
	ZkpConstraint
	// ZkpRangeCheck asserts its sole Unordered operand is representable in
	// Constant.Words()[0] bits (spec.md §4.3's bounded comparison
	// constraints, lowered to a difference-is-bounded check rather than
	// Constraint's equals-a-constant check).
	ZkpRangeCheck
)

// ZkpOp is a node payload for the ZKP circuit family. Operand edges are
// recorded separately on the Graph (RoleLeft/RoleRight/RoleUnordered);
// ZkpOp itself carries only the operation's own literal data.
type ZkpOp struct {
	Kind ZkpOpKind

	// InputIndex is meaningful for Kind == ZkpInput: the dense public-input
	// position this node occupies.
	InputIndex uint32

	// HiddenValue is meaningful for Kind == ZkpHiddenInput: the known
	// assignment during proving, or nil during verification.
	HiddenValue *bigint.BigInt

	// Constant is meaningful for Kind == ZkpConstant (the folded value),
	// Kind == ZkpConstraint (the value the unordered operands must equal),
	// and Kind == ZkpRangeCheck (the bit-width bound, stored in word 0).
	Constant *bigint.BigInt
}

func (ZkpOp) isOperation() {}

// FheOpKind enumerates the FHE operation tag set (spec.md §3), including
// the placeholder tags reserved but never implemented by the executor.
type FheOpKind uint8

const (
	FheInputCiphertext FheOpKind = iota
	FheOutputCiphertext
	FheAdd
	FheMultiply
	FheRelinearize
	FheShiftLeft
	FheShiftRight
	FheSwapRows
	FheNegate
	FheSub
	FheLiteral
)

// FheOp is a node payload for the FHE circuit family. Unlike ZkpOp, operand
// references are carried inline in the payload (Left/Right/Operand) rather
// than as graph edges, per the data model's explicit FHE-variant
// convention. AddNode does not add edges: the builder must also add a
// scheduling edge (RoleUnordered) from each named operand to this node so
// the traversal drivers see correct dependency degrees.
type FheOp struct {
	Kind FheOpKind

	// InputIndex is meaningful for Kind == FheInputCiphertext: the dense
	// input position this node occupies.
	InputIndex uint32

	// Operand is meaningful for Kind == FheOutputCiphertext (the node whose
	// result is published) and FheRelinearize (its sole unary operand).
	Operand NodeIdx

	// Left, Right are meaningful for Kind == FheAdd / FheMultiply.
	Left, Right NodeIdx
}

func (FheOp) isOperation() {}
