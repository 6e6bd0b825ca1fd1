package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mwiesner/snipstash/internal/errors"
	"github.com/mwiesner/snipstash/internal/snippet"
)

func testStore(t *testing.T) (*Store[snippet.Snippet], string) {
	t.Helper()
	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return New[snippet.Snippet](dir, SnippetsKey, zerolog.Nop()), dir
}

func TestStore_RoundTrip(t *testing.T) {
	s, _ := testStore(t)

	items := []snippet.Snippet{
		{ID: "01A", RawText: "hello", Summary: "greeting", Tags: []string{"a", "b"}, CreatedAt: time.Now().UTC()},
		{ID: "01B", RawText: "world", SourcePlatform: snippet.PlatformGemini},
	}

	if err := s.Save(items); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := s.Load()
	if len(loaded) != 2 {
		t.Fatalf("len(loaded) = %d, want 2", len(loaded))
	}
	if loaded[0].ID != "01A" || loaded[0].Summary != "greeting" {
		t.Errorf("loaded[0] = %+v, want the saved snippet", loaded[0])
	}
	if loaded[1].SourcePlatform != snippet.PlatformGemini {
		t.Errorf("SourcePlatform = %q, want Gemini", loaded[1].SourcePlatform)
	}
}

func TestStore_Load_MissingDocument_YieldsEmpty(t *testing.T) {
	s, _ := testStore(t)

	loaded := s.Load()
	if loaded == nil {
		t.Fatal("Load must return a non-nil empty collection")
	}
	if len(loaded) != 0 {
		t.Fatalf("len(loaded) = %d, want 0", len(loaded))
	}
}

func TestStore_Load_CorruptDocument_YieldsEmpty(t *testing.T) {
	s, dir := testStore(t)

	if err := os.WriteFile(filepath.Join(dir, SnippetsKey), []byte("{not json"), 0600); err != nil {
		t.Fatalf("write corrupt doc: %v", err)
	}

	loaded := s.Load()
	if len(loaded) != 0 {
		t.Fatalf("len(loaded) = %d, want 0 for corrupt document", len(loaded))
	}
}

func TestStore_Load_NullDocument_YieldsEmpty(t *testing.T) {
	s, dir := testStore(t)

	if err := os.WriteFile(filepath.Join(dir, SnippetsKey), []byte("null"), 0600); err != nil {
		t.Fatalf("write doc: %v", err)
	}

	loaded := s.Load()
	if loaded == nil || len(loaded) != 0 {
		t.Fatalf("loaded = %v, want empty non-nil", loaded)
	}
}

func TestStore_Save_NilStoresEmptyArray(t *testing.T) {
	s, dir := testStore(t)

	if err := s.Save(nil); err != nil {
		t.Fatalf("Save(nil) failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, SnippetsKey))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("document = %q, want []", string(data))
	}
}

func TestStore_Save_FailureIsObservable(t *testing.T) {
	dir := t.TempDir()
	s := New[snippet.Snippet](filepath.Join(dir, "does", "not", "exist"), SnippetsKey, zerolog.Nop())

	err := s.Save([]snippet.Snippet{{ID: "01A"}})
	if !errors.Is(err, errors.ErrPersistence) {
		t.Fatalf("error = %v, want PERSISTENCE", err)
	}
}

func TestStore_CollectionsAreIndependent(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	snippets := New[snippet.Snippet](dir, SnippetsKey, zerolog.Nop())
	folders := New[snippet.Folder](dir, FoldersKey, zerolog.Nop())

	// Corrupting the folder document must not affect snippet loads.
	if err := os.WriteFile(folders.Path(), []byte("garbage"), 0600); err != nil {
		t.Fatalf("write corrupt doc: %v", err)
	}
	if err := snippets.Save([]snippet.Snippet{{ID: "01A", RawText: "x"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if got := len(snippets.Load()); got != 1 {
		t.Errorf("snippets.Load() len = %d, want 1", got)
	}
	if got := len(folders.Load()); got != 0 {
		t.Errorf("folders.Load() len = %d, want 0", got)
	}
}
