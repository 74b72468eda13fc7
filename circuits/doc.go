// Package circuits provides named, reusable circuit fixture constructors
// (spec.md §8's S1/S4/S6 scenarios) plus the composition orchestrator
// they are built with, adapted from the teacher's builder package: the
// BuildGraph shape minus the builder options (Build(dagOpts, cons...)), generalized from core.Graph
// topology constructors to dag.Graph circuit constructors driven through
// package handle instead of directly mutating the graph.
package circuits
