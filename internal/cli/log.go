// Package cli implements the graphlens command-line interface.
//
// This package provides commands for exploring node-link graphs in the
// terminal, serving the exploration API, tracing ancestries, exporting the
// visible subgraph, and managing saved views. The CLI is built using cobra
// and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - explore: Interactive terminal explorer over a graph file
//   - serve: Run the HTTP exploration API
//   - trace: Trace a node's ancestry back to the entrypoints
//   - export: Write the visible subgraph as DOT, SVG, or JSON
//   - view: Manage saved exploration views
//   - stats: Print graph statistics
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type loggerKey struct{}

// withLogger attaches a logger to the context.
func withLogger(ctx context.Context, logger *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// loggerFromContext retrieves the logger from the context, falling back to
// log.Default() when none was attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return logger
	}
	return log.Default()
}
