package traverse

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/circuitrt/dag"
)

// ParallelOption configures Parallel.
type ParallelOption func(*parallelOptions)

type parallelOptions struct {
	ctx     context.Context
	workers int
}

func defaultParallelOptions() parallelOptions {
	return parallelOptions{ctx: context.Background(), workers: runtime.NumCPU()}
}

// WithParallelContext sets a cancellation context; a running traversal
// still runs every already-dispatched visit to completion, but no new node
// is dispatched once the context is done.
func WithParallelContext(ctx context.Context) ParallelOption {
	return func(o *parallelOptions) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithWorkers overrides the worker-pool size (default: runtime.NumCPU()).
// n <= 0 is ignored.
func WithWorkers(n int) ParallelOption {
	return func(o *parallelOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

// Parallel drives a fixed-size worker pool over g, visiting each node once
// every predecessor has completed (spec.md §4.5). The per-node pending
// counter is incoming degree (the corrected direction — see package doc);
// termination is channel-close-and-drain once every node has been visited,
// not the vestigial remaining-count dead-loop the original source carries
// (spec.md §9, "Parallel traversal correctness bug").
//
// No lock guards cross-worker state beyond the pending counters and the
// ready channel: visit's own operand table (owned by the caller, e.g.
// package fhe) must itself use atomic release/acquire per slot, since each
// producer's write happens-before its consumer's read only through that
// discipline.
func Parallel(g *dag.Graph, visit VisitFunc, opts ...ParallelOption) error {
	o := defaultParallelOptions()
	for _, opt := range opts {
		opt(&o)
	}

	nodes := g.Nodes()
	pending := make([]int64, g.Capacity())
	ready := make(chan dag.NodeIdx, len(nodes))
	for _, n := range nodes {
		pending[n] = int64(g.InDegree(n))
		if pending[n] == 0 {
			ready <- n
		}
	}

	remaining := int64(len(nodes))
	if remaining == 0 {
		close(ready)

		return nil
	}

	log.Debug().Int("nodes", len(nodes)).Int("workers", o.workers).Msg("traverse: parallel start")

	q := &query{g: g}
	eg, ctx := errgroup.WithContext(o.ctx)
	for i := 0; i < o.workers; i++ {
		eg.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case n, ok := <-ready:
					if !ok {
						return nil
					}
					if err := ctx.Err(); err != nil {
						return err
					}
					if err := visit(n, q); err != nil {
						return fmt.Errorf("traverse: parallel: node %d: %w", n, err)
					}
					for _, succ := range g.Successors(n) {
						if atomic.AddInt64(&pending[succ], -1) == 0 {
							ready <- succ
						}
					}
					if atomic.AddInt64(&remaining, -1) == 0 {
						close(ready)
					}
				}
			}
		})
	}

	if err := eg.Wait(); err != nil {
		log.Warn().Err(err).Msg("traverse: parallel aborted")

		return err
	}

	log.Debug().Int("nodes", len(nodes)).Msg("traverse: parallel complete")

	return nil
}
