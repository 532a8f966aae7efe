// Package session provides exploration-session management for the API server.
//
// A session pins one explorer per client: the visible-id set, the current
// selection, and the graph it belongs to. The Store interface persists
// session snapshots so exploration state survives server restarts, with
// implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for single-instance deployments
//   - redis: Redis-backed storage for multi-instance deployments
//
// # Usage
//
// Create a session store:
//
//	// Development
//	store := session.NewMemoryStore()
//
//	// Single instance
//	store, err := session.NewFileStore("")  // Uses ~/.config/graphlens/sessions/
//
//	// Multi instance
//	store, err := session.NewRedisStore(ctx, session.RedisConfig{
//	    Addr: "localhost:6379",
//	})
//
// Manage sessions:
//
//	sess := session.New(graphHash, explorer.VisibleIDs(), session.DefaultTTL)
//	store.Set(ctx, sess)
//
//	sess, err := store.Get(ctx, sessionID)
//	if err != nil {
//	    return err
//	}
//	if sess == nil || sess.IsExpired() {
//	    // Session not found or expired
//	}
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("not found")

	// ErrExpired is returned when a session has exceeded its TTL.
	ErrExpired = errors.New("expired")
)

// Session stores the persistent state of one exploration session.
type Session struct {
	ID        string    `json:"id"`
	GraphHash string    `json:"graph_hash"` // Content hash of the loaded graph
	Visible   []string  `json:"visible"`    // Visible node ids, sorted
	Selected  string    `json:"selected,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch extends the session's expiry by ttl from now.
func (s *Session) Touch(ttl time.Duration) {
	s.ExpiresAt = time.Now().Add(ttl)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist.
	// Returns nil, ErrExpired if the session exists but has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions (may be a no-op for backends with
	// native expiry, e.g. Redis).
	Cleanup(ctx context.Context) error
}

// DefaultTTL is the default session duration.
const DefaultTTL = 24 * time.Hour

// New creates a session for the given graph and visible set.
func New(graphHash string, visible []string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		GraphHash: graphHash,
		Visible:   visible,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}
