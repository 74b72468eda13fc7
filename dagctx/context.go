package dagctx

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/katalvlaran/circuitrt/dag"
)

// ErrContextAlreadyActive indicates WithGraph was called while another
// scope's graph context was still active (spec.md §4.2).
var ErrContextAlreadyActive = errors.New("dagctx: graph context already active")

// ErrNoActiveContext indicates Current (or a dense-input-index allocator)
// was called outside any WithGraph scope.
var ErrNoActiveContext = errors.New("dagctx: no active graph context")

// activeCtx bundles the graph under construction with the dense-index
// counters for its two input families (spec.md §3's "Input densification"
// invariant: ZKP Input(i) and FHE InputCiphertext(i) indices must each form
// a gapless range starting at zero).
type activeCtx struct {
	g          *dag.Graph
	zkpInputs  uint32
	fheInputs  uint32
}

var (
	mu     sync.Mutex
	active *activeCtx
)

// WithGraph acquires a fresh Graph as the current build context, runs
// scope, and releases the context on every exit path — including a
// panicking scope, since the release runs in a deferred function. Nested
// acquisition (a WithGraph call while one is already active) fails fast
// with ErrContextAlreadyActive rather than interleaving two circuits onto
// one graph.
func WithGraph(opts []dag.GraphOption, scope func() error) (*dag.Graph, error) {
	mu.Lock()
	if active != nil {
		mu.Unlock()
		log.Warn().Msg("dagctx: WithGraph rejected, a context is already active")

		return nil, ErrContextAlreadyActive
	}
	ctx := &activeCtx{g: dag.NewGraph(opts...)}
	active = ctx
	mu.Unlock()
	log.Debug().Msg("dagctx: graph context acquired")

	defer func() {
		mu.Lock()
		active = nil
		mu.Unlock()
		log.Debug().Int("nodes", ctx.g.NodeCount()).Msg("dagctx: graph context released")
	}()

	if err := scope(); err != nil {
		log.Error().Err(err).Msg("dagctx: scope failed")

		return nil, err
	}

	return ctx.g, nil
}

// Current returns the Graph of the active WithGraph scope.
func Current() (*dag.Graph, error) {
	mu.Lock()
	defer mu.Unlock()
	if active == nil {
		return nil, ErrNoActiveContext
	}

	return active.g, nil
}

// NextZkpInputIndex reserves and returns the next dense ZKP Input(i) index.
func NextZkpInputIndex() (uint32, *dag.Graph, error) {
	mu.Lock()
	defer mu.Unlock()
	if active == nil {
		return 0, nil, ErrNoActiveContext
	}
	idx := active.zkpInputs
	active.zkpInputs++

	return idx, active.g, nil
}

// NextFheInputIndex reserves and returns the next dense FHE
// InputCiphertext(i) index.
func NextFheInputIndex() (uint32, *dag.Graph, error) {
	mu.Lock()
	defer mu.Unlock()
	if active == nil {
		return 0, nil, ErrNoActiveContext
	}
	idx := active.fheInputs
	active.fheInputs++

	return idx, active.g, nil
}
