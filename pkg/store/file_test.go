package store

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"
)

func TestNewView(t *testing.T) {
	v, err := NewView("my-view", "hash", []string{"main"})
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}
	if v.ID == "" {
		t.Error("view ID should be generated")
	}
	if v.Name != "my-view" || v.GraphHash != "hash" {
		t.Errorf("view = %+v", v)
	}

	if _, err := NewView("", "hash", nil); !errors.Is(err, ErrInvalidName) {
		t.Errorf("empty name error = %v, want ErrInvalidName", err)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close(ctx)

	v, _ := NewView("overview", "hash1", []string{"main", "a"})
	if err := s.Save(ctx, v); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, "hash1", "overview")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !slices.Equal(got.Visible, []string{"main", "a"}) {
		t.Errorf("Visible = %v", got.Visible)
	}
}

func TestFileStoreUpsert(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close(ctx)

	first, _ := NewView("overview", "hash1", []string{"main"})
	s.Save(ctx, first)

	second, _ := NewView("overview", "hash1", []string{"main", "a"})
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("Save replace: %v", err)
	}

	got, err := s.Get(ctx, "hash1", "overview")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Visible) != 2 {
		t.Errorf("Visible = %v, want replacement", got.Visible)
	}

	all, err := s.List(ctx, "hash1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("List = %d views, want 1 (same key replaces)", len(all))
	}
}

func TestFileStoreKeyedByGraph(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close(ctx)

	v1, _ := NewView("overview", "hash1", []string{"a"})
	v2, _ := NewView("overview", "hash2", []string{"b"})
	s.Save(ctx, v1)
	s.Save(ctx, v2)

	// Same name, different graph: distinct views.
	got, err := s.Get(ctx, "hash2", "overview")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !slices.Equal(got.Visible, []string{"b"}) {
		t.Errorf("Visible = %v, want [b]", got.Visible)
	}

	all, _ := s.List(ctx, "hash1")
	if len(all) != 1 {
		t.Errorf("List(hash1) = %d views, want 1", len(all))
	}
}

func TestFileStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close(ctx)

	older, _ := NewView("older", "hash", nil)
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer, _ := NewView("newer", "hash", nil)
	s.Save(ctx, older)
	s.Save(ctx, newer)

	all, err := s.List(ctx, "hash")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0].Name != "newer" {
		t.Errorf("List order = %v, want newest first", all)
	}
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close(ctx)

	v, _ := NewView("overview", "hash", nil)
	s.Save(ctx, v)

	if err := s.Delete(ctx, "hash", "overview"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "hash", "overview"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "hash", "overview"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestFileStoreSaveEmptyName(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close(ctx)

	if err := s.Save(ctx, &View{GraphHash: "hash"}); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Save empty name = %v, want ErrInvalidName", err)
	}
}
