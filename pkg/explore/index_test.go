package explore

import (
	"slices"
	"testing"

	"github.com/matzehuels/graphlens/pkg/graph"
)

func TestIndexNeighbors(t *testing.T) {
	e := buildExplorer(t,
		[]string{"main", "a", "b"},
		[][2]string{{"main", "a"}, {"main", "b"}, {"b", "a"}},
		[]string{"main"})
	ix := e.Index()

	if got := ix.Outgoing("main"); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Outgoing(main) = %v, want [a b]", got)
	}
	if got := ix.Incoming("a"); !slices.Equal(got, []string{"b", "main"}) {
		t.Errorf("Incoming(a) = %v, want [b main]", got)
	}
	if got := ix.Outgoing("a"); len(got) != 0 {
		t.Errorf("Outgoing(a) = %v, want empty", got)
	}
	if got := ix.Outgoing("ghost"); len(got) != 0 {
		t.Errorf("Outgoing(ghost) = %v, want empty", got)
	}
}

func TestIndexDegree(t *testing.T) {
	e := buildExplorer(t,
		[]string{"main", "a", "b"},
		[][2]string{{"main", "a"}, {"main", "b"}, {"a", "b"}},
		[]string{"main"})

	out, in := e.Index().Degree("main")
	if out != 2 || in != 0 {
		t.Errorf("Degree(main) = %d/%d, want 2/0", out, in)
	}
	out, in = e.Index().Degree("b")
	if out != 0 || in != 2 {
		t.Errorf("Degree(b) = %d/%d, want 0/2", out, in)
	}
}

func TestIndexDeduplicatesParallelEdges(t *testing.T) {
	e := buildExplorer(t,
		[]string{"main", "a"},
		[][2]string{{"main", "a"}, {"main", "a"}},
		[]string{"main"})

	out, _ := e.Index().Degree("main")
	if out != 1 {
		t.Errorf("Degree(main) out = %d, want 1 (parallel edges collapse)", out)
	}
}

func TestIndexDropsUnknownEndpoints(t *testing.T) {
	g := graph.Graph{
		Nodes: []graph.Node{{ID: "main"}, {ID: "a"}},
		Edges: []graph.Edge{
			{From: "main", To: "a"},
			{From: "main", To: "ghost"},
			{From: "phantom", To: "a"},
		},
	}
	m, err := graph.NewModel(g, []string{"main"})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	ix := NewIndex(m, testLogger())
	if ix.DroppedEdges() != 2 {
		t.Errorf("DroppedEdges = %d, want 2", ix.DroppedEdges())
	}
	if got := ix.Outgoing("main"); !slices.Equal(got, []string{"a"}) {
		t.Errorf("Outgoing(main) = %v, want [a]", got)
	}
	if got := ix.Incoming("a"); !slices.Equal(got, []string{"main"}) {
		t.Errorf("Incoming(a) = %v, want [main]", got)
	}
}

func TestConnectionsOf(t *testing.T) {
	e := buildExplorer(t,
		[]string{"main", "a", "b"},
		[][2]string{{"main", "a"}, {"a", "b"}},
		[]string{"main"})

	c := e.Index().ConnectionsOf("a")
	if !slices.Equal(c.Incoming, []string{"main"}) {
		t.Errorf("Incoming = %v, want [main]", c.Incoming)
	}
	if !slices.Equal(c.Outgoing, []string{"b"}) {
		t.Errorf("Outgoing = %v, want [b]", c.Outgoing)
	}
}
