package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/graphlens/pkg/cache"
)

// FileStore persists views as JSON files in a directory.
// Filenames are derived from the (graph hash, name) pair so names may
// contain characters that are not filesystem-safe.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-backed view store.
// If baseDir is empty, defaults to ~/.config/graphlens/views/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "graphlens", "views")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create view dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) viewPath(graphHash, name string) string {
	key := cache.Hash([]byte(graphHash + "\x00" + name))
	return filepath.Join(s.baseDir, key+".json")
}

// Save stores a view, replacing any existing view with the same key.
func (s *FileStore) Save(ctx context.Context, v *View) error {
	if v.Name == "" {
		return ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal view: %w", err)
	}
	if err := os.WriteFile(s.viewPath(v.GraphHash, v.Name), data, 0600); err != nil {
		return fmt.Errorf("write view file: %w", err)
	}
	return nil
}

// Get retrieves a view by graph hash and name.
func (s *FileStore) Get(ctx context.Context, graphHash, name string) (*View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.viewPath(graphHash, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read view file: %w", err)
	}

	var v View
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse view: %w", err)
	}
	return &v, nil
}

// List returns all views for a graph, newest first.
func (s *FileStore) List(ctx context.Context, graphHash string) ([]View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read view dir: %w", err)
	}

	var views []View
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		var v View
		if err := json.Unmarshal(data, &v); err != nil {
			continue
		}
		if v.GraphHash == graphHash {
			views = append(views, v)
		}
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
	return views, nil
}

// Delete removes a view.
func (s *FileStore) Delete(ctx context.Context, graphHash, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.viewPath(graphHash, name))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// Close does nothing for the file store.
func (s *FileStore) Close(ctx context.Context) error {
	return nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
