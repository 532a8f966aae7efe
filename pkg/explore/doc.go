// Package explore implements progressive disclosure over large directed
// graphs: a mutable visible subset anchored at entrypoint nodes, expanded and
// collapsed one neighborhood at a time.
//
// # Architecture
//
// The package is built around three pieces:
//
//   - [Index]: per-node incoming/outgoing neighbor sets, built once from a
//     [graph.Model] and read-only afterwards.
//   - [Explorer]: the single owner of the mutable visible-id set. Expansion
//     and collapse are methods on the same instance, so the two mutation
//     paths can never diverge.
//   - [Resolver]: computes one render state per visible node from the
//     current interaction (selection, active trace) and diffs it against the
//     previous assignment, so update cost tracks the change set.
//
// The visible subgraph is never stored. It is derived on demand as
// {nodes : id ∈ visible} × {edges : both endpoints ∈ visible}, which makes
// dangling edges impossible by construction.
//
// # Invariants
//
// After every operation:
//
//  1. The entrypoint set is a subset of the visible set.
//  2. Every derived edge has both endpoints visible.
//  3. No non-entrypoint node remains visible with zero visible neighbors
//     (cascading orphan pruning runs to a fixed point).
//  4. All traversals carry explicit visited sets; cyclic graphs (recursion,
//     mutual calls) always terminate.
//
// # Concurrency
//
// An Explorer is single-caller: each operation runs to completion before the
// next is accepted. Index and graph.Model are immutable after construction
// and safe to share across explorers.
package explore
