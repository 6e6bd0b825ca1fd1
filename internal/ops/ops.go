// Package ops implements the collection mutators. Every operation takes
// the current collection(s) and returns new ones; inputs are never
// mutated in place, so readers holding the previous slice stay valid
// for the rest of their render cycle. Persistence is the caller's job
// (see internal/library), which keeps each operation a pure function.
package ops

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mwiesner/snipstash/internal/snippet"
)

// newNameCollator orders folder names case-insensitively for display.
// Collators reuse internal buffers and are not safe for concurrent
// use, so callers construct one per operation.
func newNameCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase)
}

// ulidEntropy is shared so ids minted in the same millisecond still
// increase monotonically. The reader is not safe for concurrent use.
var (
	ulidMu      sync.Mutex
	ulidEntropy = ulid.Monotonic(rand.Reader, 0)
)

// generateULID generates a new ULID. Lexical ULID order follows
// creation order, which the snippet id contract relies on.
func generateULID() (string, error) {
	ulidMu.Lock()
	defer ulidMu.Unlock()
	id, err := ulid.New(ulid.Timestamp(time.Now()), ulidEntropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// findSnippet returns the index of the snippet with the given id, or -1.
func findSnippet(items []snippet.Snippet, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// findFolder returns the index of the folder with the given id, or -1.
func findFolder(folders []snippet.Folder, id string) int {
	for i := range folders {
		if folders[i].ID == id {
			return i
		}
	}
	return -1
}

// cloneSnippets copies the collection slice. Element values are shared;
// operations that edit an element replace it wholesale.
func cloneSnippets(items []snippet.Snippet) []snippet.Snippet {
	return append([]snippet.Snippet(nil), items...)
}

// cloneFolders copies the folder collection slice.
func cloneFolders(folders []snippet.Folder) []snippet.Folder {
	return append([]snippet.Folder(nil), folders...)
}
