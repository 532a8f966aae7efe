package explore

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphlens/pkg/graph"
)

// Explorer owns the one piece of mutable state in the engine: the visible
// node-id set. Expansion and collapse are methods on the same instance and
// mutate the same underlying set, so the two paths cannot drift apart.
//
// Invalid operations (expanding a hidden node, collapsing an entrypoint) are
// logged no-ops that return the unchanged subgraph: callers may invoke them
// speculatively without risking a crash.
//
// Explorer is not safe for concurrent use; serialize access per instance.
type Explorer struct {
	model   *graph.Model
	index   *Index
	visible map[string]struct{}
	logger  *log.Logger
}

// Stats reports the visible share of the graph.
type Stats struct {
	Visible int `json:"visible"`
	Total   int `json:"total"`
}

// New creates an explorer with visibility initialized to the entrypoint set.
// Pass a nil logger to use log.Default().
func New(m *graph.Model, ix *Index, logger *log.Logger) *Explorer {
	if logger == nil {
		logger = log.Default()
	}
	e := &Explorer{
		model:  m,
		index:  ix,
		logger: logger,
	}
	e.resetVisible()
	return e
}

func (e *Explorer) resetVisible() {
	e.visible = make(map[string]struct{})
	for _, id := range e.model.Entrypoints() {
		e.visible[id] = struct{}{}
	}
}

// Expand reveals all outgoing and incoming neighbors of a visible node.
//
// Returns the newly revealed ids (sorted, for incremental rendering) and the
// derived visible subgraph. Expanding a node that is not currently visible
// is a no-op: it logs at warn level and returns the subgraph unchanged.
func (e *Explorer) Expand(id string) ([]string, graph.Graph) {
	if _, ok := e.visible[id]; !ok {
		e.logger.Warn("expand rejected: node not visible", "node", id)
		return nil, e.VisibleGraph()
	}

	var added []string
	for nb := range e.index.outgoing[id] {
		if _, ok := e.visible[nb]; !ok {
			e.visible[nb] = struct{}{}
			added = append(added, nb)
		}
	}
	for nb := range e.index.incoming[id] {
		if _, ok := e.visible[nb]; !ok {
			e.visible[nb] = struct{}{}
			added = append(added, nb)
		}
	}
	slices.Sort(added)

	e.logger.Debug("expanded node", "node", id, "added", len(added))
	return added, e.VisibleGraph()
}

// Collapse hides a node and prunes every node it strands.
//
// Entrypoints are permanently protected: collapsing one logs at warn level
// and returns the subgraph unchanged, as does collapsing a hidden node.
// After removal, orphan pruning cascades to a fixed point so no
// non-entrypoint node is left visible without a visible neighbor.
func (e *Explorer) Collapse(id string) graph.Graph {
	if e.model.IsEntrypoint(id) {
		e.logger.Warn("collapse rejected: entrypoints are protected", "node", id)
		return e.VisibleGraph()
	}
	if _, ok := e.visible[id]; !ok {
		e.logger.Warn("collapse rejected: node not visible", "node", id)
		return e.VisibleGraph()
	}

	delete(e.visible, id)
	pruned := e.pruneOrphans()

	e.logger.Debug("collapsed node", "node", id, "pruned", pruned)
	return e.VisibleGraph()
}

// pruneOrphans removes stranded nodes in passes until a fixed point.
//
// Each pass scans the current visible set, collects the full orphan batch
// without mutating mid-scan, then removes it. Repeated passes are required
// because removing one orphan can newly strand a previously connected node.
// Returns the total number of nodes removed.
func (e *Explorer) pruneOrphans() int {
	total := 0
	for {
		var orphans []string
		for id := range e.visible {
			if e.model.IsEntrypoint(id) {
				continue
			}
			if !e.hasVisibleNeighbor(id) {
				orphans = append(orphans, id)
			}
		}
		if len(orphans) == 0 {
			return total
		}
		for _, id := range orphans {
			delete(e.visible, id)
		}
		total += len(orphans)
	}
}

// hasVisibleNeighbor checks neighbor sets with early exit - nodes with large
// fan-out bail on the first visible neighbor instead of materializing all.
func (e *Explorer) hasVisibleNeighbor(id string) bool {
	for nb := range e.index.outgoing[id] {
		if _, ok := e.visible[nb]; ok {
			return true
		}
	}
	for nb := range e.index.incoming[id] {
		if _, ok := e.visible[nb]; ok {
			return true
		}
	}
	return false
}

// Reset restores visibility to exactly the entrypoint set.
func (e *Explorer) Reset() graph.Graph {
	e.resetVisible()
	return e.VisibleGraph()
}

// ShowAll makes every node in the model visible.
func (e *Explorer) ShowAll() graph.Graph {
	for _, n := range e.model.Nodes() {
		e.visible[n.ID] = struct{}{}
	}
	return e.VisibleGraph()
}

// VisibleGraph derives the current visible subgraph: nodes whose id is in
// the visible set, edges whose endpoints both are. The subgraph is never
// stored - deriving it fresh makes dangling edges impossible by
// construction.
func (e *Explorer) VisibleGraph() graph.Graph {
	var out graph.Graph
	for _, n := range e.model.Nodes() {
		if _, ok := e.visible[n.ID]; ok {
			out.Nodes = append(out.Nodes, n)
		}
	}
	for _, edge := range e.model.Edges() {
		if _, ok := e.visible[edge.From]; !ok {
			continue
		}
		if _, ok := e.visible[edge.To]; !ok {
			continue
		}
		out.Edges = append(out.Edges, edge)
	}
	return out
}

// Stats returns the visible and total node counts.
func (e *Explorer) Stats() Stats {
	return Stats{Visible: len(e.visible), Total: e.model.NodeCount()}
}

// IsVisible reports whether a node is currently visible.
func (e *Explorer) IsVisible(id string) bool {
	_, ok := e.visible[id]
	return ok
}

// VisibleIDs returns the visible ids, sorted. Used for session snapshots.
func (e *Explorer) VisibleIDs() []string {
	return sortedKeys(e.visible)
}

// Restore replaces the visible set with the given ids. Unknown ids are
// dropped and the entrypoint set is re-added, preserving the invariant that
// entrypoints are always visible. Used when re-applying session snapshots
// and saved views.
func (e *Explorer) Restore(ids []string) graph.Graph {
	e.resetVisible()
	for _, id := range ids {
		if e.model.Has(id) {
			e.visible[id] = struct{}{}
		}
	}
	return e.VisibleGraph()
}

// Model returns the underlying immutable graph model.
func (e *Explorer) Model() *graph.Model { return e.model }

// Index returns the underlying adjacency index.
func (e *Explorer) Index() *Index { return e.index }
