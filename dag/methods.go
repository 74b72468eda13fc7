package dag

import "sort"

// AddNode appends a node carrying op and returns its stable NodeIdx.
// Complexity: O(1) amortized.
func (g *Graph) AddNode(op Operation) NodeIdx {
	g.muNode.Lock()
	defer g.muNode.Unlock()

	idx := NodeIdx(len(g.nodes))
	g.nodes = append(g.nodes, node{op: op, alive: true})

	return idx
}

// AddEdge records a role-tagged edge from producer `from` to consumer `to`.
// Both endpoints must already exist; ErrNodeNotFound otherwise.
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to NodeIdx, role Role) error {
	if !g.has(from) || !g.has(to) {
		return ErrNodeNotFound
	}

	g.muEdge.Lock()
	defer g.muEdge.Unlock()

	g.outEdges[from] = append(g.outEdges[from], adjEntry{other: to, role: role})
	g.inEdges[to] = append(g.inEdges[to], adjEntry{other: from, role: role})

	return nil
}

// has reports whether idx names a live node. It takes muNode's read lock
// itself, so callers must not already hold muNode for writing.
func (g *Graph) has(idx NodeIdx) bool {
	g.muNode.RLock()
	defer g.muNode.RUnlock()

	return idx >= 0 && int(idx) < len(g.nodes) && g.nodes[idx].alive
}

// GetOperation returns the Operation payload stored at idx.
func (g *Graph) GetOperation(idx NodeIdx) (Operation, error) {
	g.muNode.RLock()
	defer g.muNode.RUnlock()

	if idx < 0 || int(idx) >= len(g.nodes) || !g.nodes[idx].alive {
		return nil, ErrNodeNotFound
	}

	return g.nodes[idx].op, nil
}

// NodeCount returns the number of live nodes.
// Complexity: O(n), since tombstoned slots are skipped.
func (g *Graph) NodeCount() int {
	g.muNode.RLock()
	defer g.muNode.RUnlock()

	count := 0
	for _, n := range g.nodes {
		if n.alive {
			count++
		}
	}

	return count
}

// Nodes returns the indices of all live nodes in insertion order.
// Complexity: O(n).
func (g *Graph) Nodes() []NodeIdx {
	g.muNode.RLock()
	defer g.muNode.RUnlock()

	out := make([]NodeIdx, 0, len(g.nodes))
	for i, n := range g.nodes {
		if n.alive {
			out = append(out, NodeIdx(i))
		}
	}

	return out
}

// Capacity returns one past the highest valid NodeIdx ever allocated,
// including tombstoned (pruned) nodes. Traversal drivers use it to size
// per-index scratch arrays directly by NodeIdx.
// Complexity: O(1).
func (g *Graph) Capacity() int {
	g.muNode.RLock()
	defer g.muNode.RUnlock()

	return len(g.nodes)
}

// InDegree returns the number of incoming edges at idx (its parent count).
// Complexity: O(1).
func (g *Graph) InDegree(idx NodeIdx) int {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()

	return len(g.inEdges[idx])
}

// OutDegree returns the number of outgoing edges at idx (its consumer count).
// Complexity: O(1).
func (g *Graph) OutDegree(idx NodeIdx) int {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()

	return len(g.outEdges[idx])
}

// Predecessors returns the producer nodes of every incoming edge at idx,
// filtered to role if a non-negative role filter is given; pass -1 to
// disable filtering. Returned in insertion order of edge creation.
func (g *Graph) Predecessors(idx NodeIdx, roleFilter int) []NodeIdx {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()

	var out []NodeIdx
	for _, e := range g.inEdges[idx] {
		if roleFilter >= 0 && Role(roleFilter) != e.role {
			continue
		}
		out = append(out, e.other)
	}

	return out
}

// Successors returns the consumer nodes of every outgoing edge at idx.
func (g *Graph) Successors(idx NodeIdx) []NodeIdx {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()

	out := make([]NodeIdx, 0, len(g.outEdges[idx]))
	for _, e := range g.outEdges[idx] {
		out = append(out, e.other)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}
