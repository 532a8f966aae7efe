package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphlens/pkg/cache"
	"github.com/matzehuels/graphlens/pkg/errors"
	"github.com/matzehuels/graphlens/pkg/explore"
	"github.com/matzehuels/graphlens/pkg/graph"
	"github.com/matzehuels/graphlens/pkg/observability"
	"github.com/matzehuels/graphlens/pkg/render/dot"
)

// Runner encapsulates pipeline execution with artifact caching.
// CLI, TUI, and API all use this to avoid duplicating load logic.
//
// The Runner is stateless except for the cache and logger - it does not
// retain build results. Multiple goroutines can safely share one Runner.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
// If logger is nil, log.Default() is used.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Close releases the cache backend.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Build runs the load → classify → index → explore pipeline.
//
// Failures surface before any engine state exists - a Result is returned
// fully initialized or not at all.
func (r *Runner) Build(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	g, err := r.load(opts)
	if err != nil {
		return nil, err
	}
	data, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash graph")
	}
	result.GraphHash = cache.Hash(data)
	result.Stats.LoadTime = time.Since(loadStart)

	// Stage 2: Classify
	entrypoints := opts.Entrypoints
	if len(entrypoints) == 0 {
		classifier, err := graph.NewClassifier(opts.Patterns...)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPattern, err, "compile entrypoint patterns")
		}
		entrypoints = classifier.Classify(g)
	}
	if len(entrypoints) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGraph, "no entrypoints found: supply ids explicitly or adjust patterns")
	}

	model, err := graph.NewModel(g, entrypoints)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "validate graph")
	}

	// Stage 3: Index
	indexStart := time.Now()
	index := explore.NewIndex(model, r.Logger)
	result.Stats.IndexTime = time.Since(indexStart)

	// Stage 4: Explore
	result.Model = model
	result.Index = index
	result.Explorer = explore.New(model, index, r.Logger)

	result.Stats.NodeCount = model.NodeCount()
	result.Stats.EdgeCount = model.EdgeCount()
	result.Stats.Entrypoints = len(model.Entrypoints())
	result.Stats.DroppedEdges = index.DroppedEdges()

	r.Logger.Info("built explorer",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"entrypoints", result.Stats.Entrypoints,
		"duration", result.Stats.LoadTime+result.Stats.IndexTime)

	return result, nil
}

func (r *Runner) load(opts Options) (graph.Graph, error) {
	if opts.Graph != nil {
		return *opts.Graph, nil
	}
	if opts.GraphPath == "" {
		return graph.Graph{}, errors.New(errors.ErrCodeInvalidInput, "no graph supplied: set GraphPath or Graph")
	}
	g, err := graph.ReadGraphFile(opts.GraphPath)
	if err != nil {
		return graph.Graph{}, errors.Wrap(errors.ErrCodeInvalidGraph, err, "load %s", opts.GraphPath)
	}
	return g, nil
}

// Export renders the explorer's visible subgraph in the given format,
// consulting the artifact cache first. Returns the artifact bytes and
// whether they came from cache.
//
// Cache keys combine the graph hash, the visible-set hash, and the format,
// so any visibility change produces a fresh artifact.
func (r *Runner) Export(ctx context.Context, result *Result, format string, states map[string]explore.State) ([]byte, bool, error) {
	if !ValidFormats[format] {
		return nil, false, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}

	sub := result.Explorer.VisibleGraph()

	if format == FormatJSON {
		data, err := graph.MarshalGraph(sub)
		return data, false, err
	}

	// State styling varies per interaction and is not part of the cache key,
	// so only stateless exports hit the cache.
	cacheable := len(states) == 0
	key := cache.ArtifactKey(result.GraphHash, cache.VisibleKey(result.Explorer.VisibleIDs()), format)

	if cacheable {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.CacheEvents().OnCacheHit(ctx, "artifact")
			r.Logger.Debug("artifact cache hit", "format", format)
			return data, true, nil
		}
		observability.CacheEvents().OnCacheMiss(ctx, "artifact")
	}

	entrypoints := make(map[string]bool)
	for _, id := range result.Model.Entrypoints() {
		entrypoints[id] = true
	}
	dotSrc := dot.ToDOT(sub, entrypoints, dot.Options{States: states})

	var artifact []byte
	switch format {
	case FormatDOT:
		artifact = []byte(dotSrc)
	case FormatSVG:
		svg, err := dot.RenderSVG(ctx, dotSrc)
		if err != nil {
			return nil, false, fmt.Errorf("render svg: %w", err)
		}
		artifact = svg
	}

	if cacheable {
		if err := r.Cache.Set(ctx, key, artifact, DefaultArtifactTTL); err != nil {
			r.Logger.Debug("artifact cache write failed", "err", err)
		} else {
			observability.CacheEvents().OnCacheSet(ctx, "artifact", len(artifact))
		}
	}

	return artifact, false, nil
}
