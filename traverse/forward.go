package traverse

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/katalvlaran/circuitrt/dag"
)

// ForwardOption configures Forward.
type ForwardOption func(*forwardOptions)

type forwardOptions struct {
	ctx context.Context
}

func defaultForwardOptions() forwardOptions {
	return forwardOptions{ctx: context.Background()}
}

// WithContext sets a cancellation context for Forward; checked once per
// node visited. A nil context is ignored.
func WithContext(ctx context.Context) ForwardOption {
	return func(o *forwardOptions) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// Forward performs a single-threaded dependency-ordered walk of g, calling
// visit exactly once per node after every predecessor of that node has been
// visited (spec.md §4.4). Ties among simultaneously-ready nodes break by
// insertion (NodeIdx) order, matching the teacher's documented tie-break
// policy for deterministic output (dfs/topological.go's reversed post-order
// is one valid order; this is the spec's alternative in-degree-counted
// construction, chosen because it must expose per-visit Query state that a
// pure post-order DFS does not track incrementally).
func Forward(g *dag.Graph, visit VisitFunc, opts ...ForwardOption) error {
	o := defaultForwardOptions()
	for _, opt := range opts {
		opt(&o)
	}

	nodes := g.Nodes()
	pending := make(map[dag.NodeIdx]int, len(nodes))
	ready := make([]dag.NodeIdx, 0, len(nodes))
	for _, n := range nodes {
		d := g.InDegree(n)
		pending[n] = d
		if d == 0 {
			ready = append(ready, n)
		}
	}

	log.Trace().Int("nodes", len(nodes)).Msg("traverse: forward start")

	q := &query{g: g}
	visited := 0
	for len(ready) > 0 {
		select {
		case <-o.ctx.Done():
			return o.ctx.Err()
		default:
		}

		n := ready[0]
		ready = ready[1:]
		if err := visit(n, q); err != nil {
			return fmt.Errorf("traverse: forward: node %d: %w", n, err)
		}
		visited++

		for _, succ := range g.Successors(n) {
			pending[succ]--
			if pending[succ] == 0 {
				ready = append(ready, succ)
			}
		}
	}

	if visited != len(nodes) {
		log.Warn().Int("visited", visited).Int("nodes", len(nodes)).Msg("traverse: forward cycle detected")

		return ErrCycleDetected
	}

	log.Trace().Int("visited", visited).Msg("traverse: forward complete")

	return nil
}
