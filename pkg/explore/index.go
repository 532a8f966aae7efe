package explore

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphlens/pkg/graph"
)

// Index holds per-node neighbor sets for a graph, built once in O(V+E) and
// immutable afterwards. It is shared read-only by every component that needs
// adjacency lookups: expansion, pruning, tracing, and the connections API.
type Index struct {
	outgoing map[string]map[string]struct{}
	incoming map[string]map[string]struct{}
	dropped  int // edges excluded because an endpoint was unknown
}

// NewIndex builds the adjacency index from a model.
//
// Edges referencing unknown node ids are excluded here rather than surfacing
// later as lookup failures; the number of dropped edges is logged once at
// warn level. Pass a nil logger to use log.Default().
func NewIndex(m *graph.Model, logger *log.Logger) *Index {
	if logger == nil {
		logger = log.Default()
	}

	ix := &Index{
		outgoing: make(map[string]map[string]struct{}, m.NodeCount()),
		incoming: make(map[string]map[string]struct{}, m.NodeCount()),
	}

	for _, e := range m.Edges() {
		if !m.Has(e.From) || !m.Has(e.To) {
			ix.dropped++
			continue
		}
		addNeighbor(ix.outgoing, e.From, e.To)
		addNeighbor(ix.incoming, e.To, e.From)
	}

	if ix.dropped > 0 {
		logger.Warn("excluded edges with unknown endpoints", "count", ix.dropped)
	}

	return ix
}

func addNeighbor(m map[string]map[string]struct{}, from, to string) {
	set, ok := m[from]
	if !ok {
		set = make(map[string]struct{})
		m[from] = set
	}
	set[to] = struct{}{}
}

// Outgoing returns the sorted outgoing neighbor ids of a node.
// Unknown ids yield an empty slice.
func (ix *Index) Outgoing(id string) []string {
	return sortedKeys(ix.outgoing[id])
}

// Incoming returns the sorted incoming neighbor ids of a node.
// Unknown ids yield an empty slice.
func (ix *Index) Incoming(id string) []string {
	return sortedKeys(ix.incoming[id])
}

// Degree returns the number of distinct outgoing and incoming neighbors.
func (ix *Index) Degree(id string) (out, in int) {
	return len(ix.outgoing[id]), len(ix.incoming[id])
}

// DroppedEdges returns the number of edges excluded at build time because an
// endpoint did not exist in the model.
func (ix *Index) DroppedEdges() int { return ix.dropped }

// Connections bundles both neighbor directions for the inspector panel.
type Connections struct {
	Incoming []string `json:"incoming"`
	Outgoing []string `json:"outgoing"`
}

// ConnectionsOf returns the incoming and outgoing neighbors of a node,
// each sorted for deterministic output.
func (ix *Index) ConnectionsOf(id string) Connections {
	return Connections{
		Incoming: ix.Incoming(id),
		Outgoing: ix.Outgoing(id),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
