package graph

import (
	"slices"
	"testing"
)

func TestClassifierDefaults(t *testing.T) {
	c, err := NewClassifier()
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}

	g := Graph{Nodes: []Node{
		{ID: "main.main"},
		{ID: "cmd/server.Run"},
		{ID: "pkg.Helper"},
		{ID: "api.LoginHandler"},
		{ID: "init.setup"},
	}}

	got := c.Classify(g)
	want := []string{"api.LoginHandler", "cmd/server.Run", "init.setup", "main.main"}
	if !slices.Equal(got, want) {
		t.Errorf("Classify = %v, want %v", got, want)
	}
}

func TestClassifierCustomPatterns(t *testing.T) {
	c, err := NewClassifier(`^web\.`)
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}

	g := Graph{Nodes: []Node{
		{ID: "web.Index"},
		{ID: "main.main"}, // defaults not in play with custom patterns
	}}

	if got := c.Classify(g); !slices.Equal(got, []string{"web.Index"}) {
		t.Errorf("Classify = %v, want [web.Index]", got)
	}
}

func TestClassifierLayerAndFlag(t *testing.T) {
	c, err := NewClassifier(`^nomatch$`)
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}

	g := Graph{Nodes: []Node{
		{ID: "svc.Run", Layer: LayerEntry},
		{ID: "svc.Start", Entrypoint: true},
		{ID: "svc.Other"},
	}}

	got := c.Classify(g)
	if !slices.Equal(got, []string{"svc.Run", "svc.Start"}) {
		t.Errorf("Classify = %v, want [svc.Run svc.Start]", got)
	}
}

func TestClassifierInvalidPattern(t *testing.T) {
	if _, err := NewClassifier(`([`); err == nil {
		t.Error("expected error for invalid pattern")
	}
}
