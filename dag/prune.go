package dag

// Prune returns a new Graph containing exactly the nodes backwards
// reachable (along edges, producer-ward) from outputs, with all indices
// preserved unchanged from g — a pruned node keeps its slot in the returned
// graph, so no other index shifts, but it is tombstoned: Nodes does not
// report it and GetOperation returns ErrNodeNotFound for it.
//
// Grounded on core/methods_clone.go's deep-copy shape, generalized from a
// whole-graph copy to a reachable-subset copy.
// Complexity: O(V+E).
func (g *Graph) Prune(outputs []NodeIdx) (*Graph, error) {
	reachable := make(map[NodeIdx]bool, len(g.nodes))
	var mark func(NodeIdx) error
	mark = func(n NodeIdx) error {
		if reachable[n] {
			return nil
		}
		if !g.has(n) {
			return ErrNodeNotFound
		}
		reachable[n] = true
		for _, p := range g.Predecessors(n, -1) {
			if err := mark(p); err != nil {
				return err
			}
		}

		return nil
	}
	for _, o := range outputs {
		if err := mark(o); err != nil {
			return nil, err
		}
	}

	out := &Graph{
		nodes:    make([]node, len(g.nodes)),
		outEdges: make(map[NodeIdx][]adjEntry, len(g.outEdges)),
		inEdges:  make(map[NodeIdx][]adjEntry, len(g.inEdges)),
	}
	// Copy every slot so indices line up positionally; nodes outside the
	// reachable set stay present but tombstoned (alive=false), matching the
	// "indices remain meaningful across removals" invariant.
	for i, n := range g.nodes {
		idx := NodeIdx(i)
		if reachable[idx] {
			out.nodes[i] = n
		} else {
			out.nodes[i] = node{op: n.op, alive: false}
		}
	}
	for from, entries := range g.outEdges {
		if !reachable[from] {
			continue
		}
		for _, e := range entries {
			if reachable[e.other] {
				out.outEdges[from] = append(out.outEdges[from], e)
			}
		}
	}
	for to, entries := range g.inEdges {
		if !reachable[to] {
			continue
		}
		for _, e := range entries {
			if reachable[e.other] {
				out.inEdges[to] = append(out.inEdges[to], e)
			}
		}
	}

	return out, nil
}
