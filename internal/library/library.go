// Package library owns the application state: the snippet and folder
// collections, the active folder, and the persistence stores. There are
// no ambient singletons; everything that reads or mutates the
// collections goes through a *Library handed to it explicitly.
package library

import (
	"github.com/rs/zerolog"

	"github.com/mwiesner/snipstash/internal/errors"
	"github.com/mwiesner/snipstash/internal/ops"
	"github.com/mwiesner/snipstash/internal/query"
	"github.com/mwiesner/snipstash/internal/snippet"
	"github.com/mwiesner/snipstash/internal/store"

	"sync"
)

// Library is the root state container. All access is serialized by one
// mutex: mutations run to completion, including their persistence
// write, before the next operation observes the state.
type Library struct {
	mu sync.Mutex

	items   []snippet.Snippet
	folders []snippet.Folder

	// activeFolderID scopes the current view and is the default folder
	// for snippets created while it is set. Empty means "all snippets".
	activeFolderID string

	snippetStore *store.Store[snippet.Snippet]
	folderStore  *store.Store[snippet.Folder]
	handoff      *store.HandoffSlot

	log zerolog.Logger
}

// Open loads both collections from baseDir. Corrupt or missing
// documents degrade to empty collections; Open itself fails only when
// the base directory cannot be created.
func Open(baseDir string, log zerolog.Logger) (*Library, error) {
	if err := store.Init(baseDir); err != nil {
		return nil, err
	}

	snippets := store.New[snippet.Snippet](baseDir, store.SnippetsKey, log)
	folders := store.New[snippet.Folder](baseDir, store.FoldersKey, log)

	return &Library{
		items:        snippets.Load(),
		folders:      folders.Load(),
		snippetStore: snippets,
		folderStore:  folders,
		handoff:      store.NewHandoffSlot(baseDir, log),
		log:          log.With().Str("component", "library").Logger(),
	}, nil
}

// Snippets returns a snapshot copy of the snippet collection.
func (l *Library) Snippets() []snippet.Snippet {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]snippet.Snippet(nil), l.items...)
}

// Folders returns a snapshot copy of the folder collection.
func (l *Library) Folders() []snippet.Folder {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]snippet.Folder(nil), l.folders...)
}

// Query runs the query engine over the current collection.
func (l *Library) Query(state query.State) []snippet.Snippet {
	l.mu.Lock()
	items := l.items
	l.mu.Unlock()
	return query.Visible(items, state)
}

// ActiveFolder returns the currently focused folder id ("" = all).
func (l *Library) ActiveFolder() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.activeFolderID
}

// SetActiveFolder switches the focused folder. A non-empty id must
// reference an existing folder.
func (l *Library) SetActiveFolder(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if id != "" && indexOfFolder(l.folders, id) < 0 {
		return errors.NewNotFound("folder", id)
	}
	l.activeFolderID = id
	return nil
}

// Create adds a snippet. The active folder is the default filing target.
// The new collection is persisted before Create returns; a persistence
// failure is reported but the in-memory state keeps the snippet.
func (l *Library) Create(input ops.CreateInput) (snippet.Snippet, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	input.ActiveFolderID = l.activeFolderID
	out, err := ops.Create(l.items, l.folders, input)
	if err != nil {
		return snippet.Snippet{}, err
	}

	l.items = out.Items
	return out.Created, l.snippetStore.Save(l.items)
}

// Update patches a snippet.
func (l *Library) Update(input ops.UpdateInput) (snippet.Snippet, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out, err := ops.Update(l.items, input)
	if err != nil {
		return snippet.Snippet{}, err
	}

	l.items = out.Items
	return out.Updated, l.snippetStore.Save(l.items)
}

// Delete removes a snippet; absent ids are a silent no-op. The
// collection is only re-persisted when something changed.
func (l *Library) Delete(id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := ops.Delete(l.items, id)
	if !out.Deleted {
		return false, nil
	}

	l.items = out.Items
	return true, l.snippetStore.Save(l.items)
}

// ToggleFavorite flips the favorite flag; absent ids are a silent no-op.
func (l *Library) ToggleFavorite(id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := ops.ToggleFavorite(l.items, id)
	if !out.Found {
		return false, nil
	}

	l.items = out.Items
	return out.IsFavorite, l.snippetStore.Save(l.items)
}

// AssignFolder re-files a snippet and switches the active view to the
// target folder.
func (l *Library) AssignFolder(snippetID, folderID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	out, err := ops.AssignFolder(l.items, l.folders, ops.AssignFolderInput{
		SnippetID: snippetID,
		FolderID:  folderID,
	})
	if err != nil {
		return err
	}

	l.items = out.Items
	l.activeFolderID = out.ActiveFolderID
	return l.snippetStore.Save(l.items)
}

// CreateFolder adds a folder, keeping the collection name-sorted.
func (l *Library) CreateFolder(name string) (snippet.Folder, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out, err := ops.CreateFolder(l.folders, name)
	if err != nil {
		return snippet.Folder{}, err
	}

	l.folders = out.Folders
	return out.Created, l.folderStore.Save(l.folders)
}

// DeleteFolder removes a folder and unfiles its snippets in one logical
// step. Both collections are updated in memory together, then persisted
// snippets-first. Best-effort atomic: a crash between the two writes
// leaves a tolerable inconsistency that the next load self-heals (an
// unfiled reference is cleared on the next folder cascade, and a
// dangling reference scopes to nothing).
func (l *Library) DeleteFolder(id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := ops.DeleteFolder(l.items, l.folders, id)
	if !out.Deleted {
		return false, nil
	}
	if id == l.activeFolderID {
		l.activeFolderID = ""
	}

	l.items = out.Items
	l.folders = out.Folders

	if err := l.snippetStore.Save(l.items); err != nil {
		return true, err
	}
	return true, l.folderStore.Save(l.folders)
}

// ConsumeHandoff drains the cross-session handoff slot, if armed.
func (l *Library) ConsumeHandoff() (store.Handoff, bool) {
	return l.handoff.Take()
}

// PutHandoff arms the handoff slot with a pending capture.
func (l *Library) PutHandoff(pending store.Handoff) error {
	return l.handoff.Put(pending)
}

func indexOfFolder(folders []snippet.Folder, id string) int {
	for i := range folders {
		if folders[i].ID == id {
			return i
		}
	}
	return -1
}
