// Package store persists the snippet and folder collections as JSON
// documents under fixed keys in the base directory. Each collection is
// independently durable: a failure loading or saving one never affects
// the other.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	snerrors "github.com/mwiesner/snipstash/internal/errors"
)

// Fixed storage keys. One JSON document per collection.
const (
	SnippetsKey = "snippets.json"
	FoldersKey  = "folders.json"
	HandoffKey  = "handoff.json"
)

// Init creates the base directory with restricted permissions.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.snipstash.
func Init(baseDir string) error {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return fmt.Errorf("failed to create base directory: %w", err)
	}
	// Explicit chmod (best-effort, may not work on all platforms)
	_ = os.Chmod(baseDir, 0700)
	return nil
}

// Store reads and writes one collection document. Load is infallible
// from the caller's perspective: corrupt or missing data degrades to an
// empty collection. Save failures are returned so the caller can decide
// whether to warn the user; in-memory state stays the source of truth.
type Store[T any] struct {
	path string
	key  string
	log  zerolog.Logger
}

// New creates a store bound to a fixed key under baseDir.
func New[T any](baseDir, key string, log zerolog.Logger) *Store[T] {
	return &Store[T]{
		path: filepath.Join(baseDir, key),
		key:  key,
		log:  log.With().Str("key", key).Logger(),
	}
}

// Load reads the collection. On a missing document, parse failure, or
// I/O error it logs and returns an empty collection, never an error.
func (s *Store[T]) Load() []T {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Error().Err(err).Msg("load failed, starting with empty collection")
		}
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.Error().Err(err).Msg("corrupt collection document, starting empty")
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// Save writes the collection atomically (temp file + rename). A nil
// slice is stored as an empty array. Failures are logged and returned
// as a PERSISTENCE error; they never panic or corrupt the existing
// document.
func (s *Store[T]) Save(items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		s.log.Error().Err(err).Msg("serialize failed")
		return snerrors.NewPersistence("save "+s.key, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		s.log.Error().Err(err).Msg("write failed")
		return snerrors.NewPersistence("save "+s.key, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		s.log.Error().Err(err).Msg("rename failed")
		return snerrors.NewPersistence("save "+s.key, err)
	}
	return nil
}

// Path returns the document's location on disk.
func (s *Store[T]) Path() string {
	return s.path
}
