package graph

import (
	"bytes"
	"errors"
	"path/filepath"
	"slices"
	"testing"
)

func TestNewModelValidation(t *testing.T) {
	tests := []struct {
		name        string
		graph       Graph
		entrypoints []string
		wantErr     error
	}{
		{
			name: "valid graph",
			graph: Graph{
				Nodes: []Node{{ID: "a"}, {ID: "b"}},
				Edges: []Edge{{From: "a", To: "b"}},
			},
			entrypoints: []string{"a"},
		},
		{
			name:    "empty node id",
			graph:   Graph{Nodes: []Node{{ID: ""}}},
			wantErr: ErrInvalidNodeID,
		},
		{
			name:    "duplicate node id",
			graph:   Graph{Nodes: []Node{{ID: "a"}, {ID: "a"}}},
			wantErr: ErrDuplicateNodeID,
		},
		{
			name:        "unknown entrypoint",
			graph:       Graph{Nodes: []Node{{ID: "a"}}},
			entrypoints: []string{"ghost"},
			wantErr:     ErrUnknownEntrypoint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewModel(tt.graph, tt.entrypoints)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("NewModel: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewModel error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewModelEntrypointUnion(t *testing.T) {
	// Entrypoints are the union of flagged nodes and explicit ids.
	g := Graph{Nodes: []Node{
		{ID: "flagged", Entrypoint: true},
		{ID: "explicit"},
		{ID: "plain"},
	}}

	m, err := NewModel(g, []string{"explicit"})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	if got := m.Entrypoints(); !slices.Equal(got, []string{"explicit", "flagged"}) {
		t.Errorf("Entrypoints = %v, want [explicit flagged]", got)
	}
	if m.IsEntrypoint("plain") {
		t.Error("plain should not be an entrypoint")
	}
}

func TestModelAccessors(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "b", Label: "B"}, {ID: "a"}},
		Edges: []Edge{{From: "b", To: "a"}},
	}
	m, err := NewModel(g, []string{"b"})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	if m.NodeCount() != 2 || m.EdgeCount() != 1 {
		t.Errorf("counts = %d/%d, want 2/1", m.NodeCount(), m.EdgeCount())
	}
	if !m.Has("a") || m.Has("ghost") {
		t.Error("Has lookup wrong")
	}

	n, ok := m.Node("b")
	if !ok || n.Label != "B" {
		t.Errorf("Node(b) = %+v, %v", n, ok)
	}

	// Nodes preserves input order.
	nodes := m.Nodes()
	if nodes[0].ID != "b" || nodes[1].ID != "a" {
		t.Errorf("Nodes order = %v, want input order [b a]", nodes)
	}
}

func TestDisplayLabel(t *testing.T) {
	labeled := Node{ID: "pkg.Func", Label: "Func"}
	if labeled.DisplayLabel() != "Func" {
		t.Errorf("DisplayLabel = %q, want Func", labeled.DisplayLabel())
	}
	bare := Node{ID: "pkg.Func"}
	if bare.DisplayLabel() != "pkg.Func" {
		t.Errorf("DisplayLabel = %q, want pkg.Func", bare.DisplayLabel())
	}
}

func TestGraphRoundTrip(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a", Layer: "entry"}, {ID: "b", Meta: map[string]any{"file": "b.go"}}},
		Edges: []Edge{{From: "a", To: "b"}},
	}

	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		t.Fatalf("WriteGraph: %v", err)
	}

	got, err := ReadGraph(&buf)
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}
	if len(got.Nodes) != 2 || len(got.Edges) != 1 {
		t.Fatalf("round trip = %d nodes %d edges", len(got.Nodes), len(got.Edges))
	}
	if got.Nodes[0].Layer != "entry" {
		t.Errorf("layer lost in round trip")
	}
}

func TestGraphFileRoundTrip(t *testing.T) {
	g := Graph{Nodes: []Node{{ID: "a"}}}
	path := filepath.Join(t.TempDir(), "graph.json")

	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	got, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if len(got.Nodes) != 1 || got.Nodes[0].ID != "a" {
		t.Errorf("file round trip = %+v", got)
	}
}

func TestReadGraphFileMissing(t *testing.T) {
	if _, err := ReadGraphFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestUnmarshalGraphInvalid(t *testing.T) {
	if _, err := UnmarshalGraph([]byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
