// Package pipeline provides the load → classify → index → explore pipeline.
//
// This package implements the one-time initialization every entry point
// (CLI, TUI, API server) runs before exploration starts. By centralizing the
// logic we ensure consistent behavior and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: read and decode the node-link graph
//  2. Classify: derive the entrypoint id set (explicit ids win over patterns)
//  3. Index: build the adjacency index, dropping malformed edges
//  4. Explore: create the explorer with visibility at the entrypoints
//
// This is the only latency-bound phase of the engine - once built, the model
// and index are immutable and safely shared across concurrent readers.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Build(ctx, pipeline.Options{GraphPath: "calls.json"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sub := result.Explorer.VisibleGraph()
package pipeline

import (
	"time"

	"github.com/matzehuels/graphlens/pkg/explore"
	"github.com/matzehuels/graphlens/pkg/graph"
)

// Format constants for export formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported export formats.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatSVG:  true,
	FormatJSON: true,
}

// DefaultArtifactTTL is how long rendered exports stay cached.
const DefaultArtifactTTL = 24 * time.Hour

// Options configures a pipeline build.
type Options struct {
	// GraphPath is the JSON file to load. Ignored when Graph is set.
	GraphPath string

	// Graph supplies an already-decoded graph, bypassing the load stage.
	Graph *graph.Graph

	// Entrypoints are explicit entrypoint ids. When non-empty, pattern
	// classification is skipped entirely.
	Entrypoints []string

	// Patterns override the default entrypoint naming patterns.
	Patterns []string
}

// Result holds the built engine and per-stage statistics.
type Result struct {
	Model    *graph.Model
	Index    *explore.Index
	Explorer *explore.Explorer

	// GraphHash is the content hash of the loaded graph, used for cache
	// keys, session binding, and view storage.
	GraphHash string

	Stats BuildStats
}

// BuildStats reports timing and counts from the build stages.
type BuildStats struct {
	LoadTime  time.Duration
	IndexTime time.Duration

	NodeCount    int
	EdgeCount    int
	Entrypoints  int
	DroppedEdges int
}
