// Package store persists named exploration views.
//
// A view is a snapshot of the visible-id set for a specific graph, saved
// under a human-chosen name so an exploration can be re-applied later or
// shared. Two backends are provided:
//   - file: JSON documents in a config directory (CLI default)
//   - mongo: a MongoDB collection (server deployments)
//
// Views are keyed by (graph hash, name) - the same name on a different
// graph is a different view, and applying a view to a graph with a
// different hash is rejected by the caller.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for view operations.
var (
	// ErrNotFound is returned when a view does not exist.
	ErrNotFound = errors.New("view not found")

	// ErrInvalidName is returned when a view name is empty.
	ErrInvalidName = errors.New("view name must not be empty")
)

// View is a named snapshot of an exploration's visible set.
type View struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	GraphHash string    `json:"graph_hash" bson:"graph_hash"`
	Visible   []string  `json:"visible" bson:"visible"`
	Selected  string    `json:"selected,omitempty" bson:"selected,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Store is the interface for view persistence backends.
type Store interface {
	// Save stores a view, replacing any existing view with the same
	// (graph hash, name) pair.
	Save(ctx context.Context, v *View) error

	// Get retrieves a view by graph hash and name.
	// Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, graphHash, name string) (*View, error)

	// List returns all views for a graph, newest first.
	List(ctx context.Context, graphHash string) ([]View, error)

	// Delete removes a view. Deleting a missing view returns ErrNotFound.
	Delete(ctx context.Context, graphHash, name string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NewView creates a view with a fresh id and timestamp.
func NewView(name, graphHash string, visible []string) (*View, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	return &View{
		ID:        uuid.NewString(),
		Name:      name,
		GraphHash: graphHash,
		Visible:   visible,
		CreatedAt: time.Now(),
	}, nil
}
