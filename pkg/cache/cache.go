// Package cache provides artifact caching for rendered graph exports.
//
// Rendering the visible subgraph through Graphviz is the only expensive
// derived computation in Graphlens, so cache keys are built from the graph
// content hash, the visible-set hash, and the output format. The same
// interface backs the CLI (file cache in the XDG cache dir) and tests
// (null cache).
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL. A zero ttl means no
	// expiration; a negative ttl stores an already-expired entry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// VisibleKey hashes a sorted visible-id list for use in artifact keys.
func VisibleKey(ids []string) string {
	data, _ := json.Marshal(ids)
	return Hash(data)
}

// ArtifactKey builds the cache key for a rendered export.
// The key format is: artifact:<format>:hash(graphHash, visibleHash).
func ArtifactKey(graphHash, visibleHash, format string) string {
	data, _ := json.Marshal([]string{graphHash, visibleHash})
	hash := sha256.Sum256(data)
	return fmt.Sprintf("artifact:%s:%s", format, hex.EncodeToString(hash[:]))
}
