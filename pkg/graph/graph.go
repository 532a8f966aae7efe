package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [NewModel] when a node has an empty id.
	// All nodes must have non-empty, stable identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [NewModel] when two nodes share an id.
	// Node ids must be unique across the entire graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownEntrypoint is returned by [NewModel] when an explicitly
	// supplied entrypoint id does not match any node.
	ErrUnknownEntrypoint = errors.New("unknown entrypoint node")
)

// =============================================================================
// Graph - Wire Format
// =============================================================================

// Graph is the canonical serialization format for directed graphs.
// Used for JSON files, API responses, and document storage.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is the unified node type for all serialization contexts.
type Node struct {
	ID         string         `json:"id" bson:"id"`
	Label      string         `json:"label,omitempty" bson:"label,omitempty"` // Display label (defaults to ID)
	Layer      string         `json:"layer,omitempty" bson:"layer,omitempty"` // Category/layer label (e.g., "entry", "service")
	Entrypoint bool           `json:"entrypoint,omitempty" bson:"entrypoint,omitempty"`
	Meta       map[string]any `json:"meta,omitempty" bson:"meta,omitempty"` // Opaque display payload
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge represents a directed edge between two nodes.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// =============================================================================
// Model - Validated In-Memory Representation
// =============================================================================

// Model is the validated, indexed form of a Graph. It owns the node records
// and the designated entrypoint id set, both immutable after construction.
//
// The zero value is not usable - use NewModel.
type Model struct {
	nodes       map[string]*Node
	order       []string // node ids in input order, for deterministic iteration
	edges       []Edge
	entrypoints map[string]struct{}
}

// NewModel validates a Graph and builds the indexed model.
//
// The entrypoint set is the union of the supplied ids and any nodes carrying
// the Entrypoint flag. Returns ErrInvalidNodeID, ErrDuplicateNodeID, or
// ErrUnknownEntrypoint on malformed input - the model is never partially
// initialized on failure.
//
// Edges referencing unknown node ids are accepted here and excluded later at
// index build time, so a sloppy producer cannot poison lookups.
func NewModel(g Graph, entrypoints []string) (*Model, error) {
	m := &Model{
		nodes:       make(map[string]*Node, len(g.Nodes)),
		order:       make([]string, 0, len(g.Nodes)),
		edges:       slices.Clone(g.Edges),
		entrypoints: make(map[string]struct{}),
	}

	for i := range g.Nodes {
		n := g.Nodes[i]
		if n.ID == "" {
			return nil, ErrInvalidNodeID
		}
		if _, exists := m.nodes[n.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
		}
		m.nodes[n.ID] = &n
		m.order = append(m.order, n.ID)
		if n.Entrypoint {
			m.entrypoints[n.ID] = struct{}{}
		}
	}

	for _, id := range entrypoints {
		if _, ok := m.nodes[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownEntrypoint, id)
		}
		m.entrypoints[id] = struct{}{}
	}

	return m, nil
}

// Node returns the node with the given id, or false if it does not exist.
func (m *Model) Node(id string) (*Node, bool) {
	n, ok := m.nodes[id]
	return n, ok
}

// Has reports whether a node with the given id exists.
func (m *Model) Has(id string) bool {
	_, ok := m.nodes[id]
	return ok
}

// Nodes returns all nodes in input order.
func (m *Model) Nodes() []Node {
	out := make([]Node, len(m.order))
	for i, id := range m.order {
		out[i] = *m.nodes[id]
	}
	return out
}

// Edges returns a copy of all edges.
func (m *Model) Edges() []Edge {
	return slices.Clone(m.edges)
}

// NodeCount returns the total number of nodes.
func (m *Model) NodeCount() int { return len(m.nodes) }

// EdgeCount returns the total number of edges.
func (m *Model) EdgeCount() int { return len(m.edges) }

// IsEntrypoint reports whether the node is in the entrypoint set.
func (m *Model) IsEntrypoint(id string) bool {
	_, ok := m.entrypoints[id]
	return ok
}

// Entrypoints returns the entrypoint ids, sorted for deterministic output.
func (m *Model) Entrypoints() []string {
	out := make([]string, 0, len(m.entrypoints))
	for id := range m.entrypoints {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// =============================================================================
// Serialization API
// =============================================================================

// MarshalGraph serializes a Graph to pretty-printed JSON bytes.
func MarshalGraph(g Graph) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, fmt.Errorf("unmarshal graph: %w", err)
	}
	return g, nil
}

// ReadGraph decodes a JSON graph from an io.Reader.
// Use ReadGraphFile for files or pass bytes.NewReader for in-memory data.
func ReadGraph(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, fmt.Errorf("decode: %w", err)
	}
	return g, nil
}

// ReadGraphFile reads a JSON file and returns the decoded Graph.
func ReadGraphFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// WriteGraph writes a Graph as indented JSON to an io.Writer.
func WriteGraph(g Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes a Graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}
