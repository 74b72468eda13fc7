package circuits

import (
	"fmt"

	"github.com/katalvlaran/circuitrt/dag"
	"github.com/katalvlaran/circuitrt/dagctx"
)

// Constructor applies one deterministic circuit fixture to the active
// dagctx scope, using package handle (or, for FHE fixtures, dagctx's
// dense FHE input allocator directly) to add nodes and edges. Constructors
// MUST NOT panic; they return a sentinel or wrapped error instead.
//
// Adapted from builder.Constructor: the teacher's version takes an
// explicit (*core.Graph, builderConfig) pair because core graphs carry no
// implicit context; here the active graph is always dagctx.Current(), so
// a Constructor needs no parameters at all.
type Constructor func() error

// Build opens a fresh graph context with dagOpts, runs every constructor
// in order, and returns the finished graph (spec.md §8's scenario
// fixtures). Any constructor error (or a nil constructor, as
// ErrNilConstructor) is wrapped as "circuits: Build: constructor <i>: ..."
// and returned immediately, matching builder.BuildGraph's no-partial-
// cleanup contract: the failed graph is discarded rather than returned.
func Build(dagOpts []dag.GraphOption, cons ...Constructor) (*dag.Graph, error) {
	return dagctx.WithGraph(dagOpts, func() error {
		for i, c := range cons {
			if c == nil {
				return fmt.Errorf("circuits: Build: constructor %d: %w", i, ErrNilConstructor)
			}
			if err := c(); err != nil {
				return fmt.Errorf("circuits: Build: constructor %d: %w", i, err)
			}
		}

		return nil
	})
}
