// Package dot exports the visible subgraph to Graphviz formats.
//
// The explorer core emits no coordinates - layout is delegated entirely to
// Graphviz. Render states from the interaction context map to node
// attributes so selections and traces survive into the exported artifact.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/graphlens/pkg/explore"
	"github.com/matzehuels/graphlens/pkg/graph"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes layer labels in node labels.
	// When false, only the display label is shown.
	Detailed bool

	// States maps node ids to render states. Nodes without an entry render
	// with the default style. May be nil.
	States map[string]explore.State
}

// ToDOT converts a visible subgraph to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
//
// Entrypoint nodes are drawn with a double border; render states map to
// fill and pen colors (selected, path, connected, dimmed).
func ToDOT(g graph.Graph, entrypoints map[string]bool, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i := range g.Nodes {
		n := &g.Nodes[i]
		attrs := fmtAttrs(n, entrypoints[n.ID], opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n *graph.Node, entrypoint bool, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed))}

	if entrypoint {
		attrs = append(attrs, "peripheries=2")
	}

	switch opts.States[n.ID] {
	case explore.StateSelected:
		attrs = append(attrs, "fillcolor=gold", "penwidth=2")
	case explore.StatePath:
		attrs = append(attrs, "fillcolor=lightblue")
	case explore.StateConnected:
		attrs = append(attrs, "fillcolor=palegreen")
	case explore.StateDimmed:
		attrs = append(attrs, "fillcolor=lightgrey", "fontcolor=grey40")
	}

	return attrs
}

func fmtLabel(n *graph.Node, detailed bool) string {
	label := n.DisplayLabel()
	if detailed && n.Layer != "" {
		return label + "\nlayer: " + n.Layer
	}
	return label
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
