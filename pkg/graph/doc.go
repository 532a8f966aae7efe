// Package graph provides the immutable graph model and its wire format.
//
// This package defines the canonical node-link format for Graphlens graphs,
// used for JSON files, API responses, and document storage.
//
// # Core Types
//
//   - [Graph]: node-link serialization format ("nodes"/"edges" arrays)
//   - [Node], [Edge]: shared structural types
//   - [Model]: validated, indexed, immutable in-memory representation
//
// # Graph Serialization
//
// Graphs use a simple node-link JSON format:
//
//	{
//	  "nodes": [{"id": "main.run", "layer": "entry"}, {"id": "db.query"}],
//	  "edges": [{"from": "main.run", "to": "db.query"}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("calls.json")   // File → Graph
//	m, _ := graph.NewModel(g, entrypoints)      // Graph → Model
//	data, _ := graph.MarshalGraph(g)            // Graph → []byte
//
// # Entrypoints
//
// Entrypoint nodes anchor exploration: they are visible from session start
// and exempt from collapse. The set is fixed for the lifetime of a [Model].
// Ids can be supplied explicitly or derived with [Classifier].
//
// # Concurrency
//
// A Model is immutable after construction and safe for concurrent readers.
package graph
