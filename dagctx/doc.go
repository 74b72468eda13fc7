// Package dagctx implements the "current graph under construction" context
// and the value-typed handle index storage (Indices) that replaces a
// handle-index arena (spec.md §4.2). Package handle's arithmetic
// helpers read the active context to know which *dag.Graph to append nodes
// to, so that composing handles with +, *, etc. reads as ordinary
// arithmetic while actually mutating the graph underneath.
//
// Go has no implicit per-goroutine storage (deliberately, unlike the
// 'static thread_local! the original Rust source relies on), so this
// package resolves spec.md §9's "thread-local graph context" design note by
// modeling one active build scope at a time, process-wide: WithGraph
// acquires it, runs scope, and releases it on every exit path including a
// panicking scope. A second, concurrent WithGraph call fails fast with
// ContextAlreadyActive rather than silently interleaving two circuits'
// nodes. Two circuits therefore cannot be built concurrently from separate
// goroutines; their WithGraph calls must run one after another, and
// nothing here prevents such sequential reuse.
package dagctx
