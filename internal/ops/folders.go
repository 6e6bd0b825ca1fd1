package ops

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mwiesner/snipstash/internal/errors"
	"github.com/mwiesner/snipstash/internal/snippet"
)

// CreateFolderOutput contains the result of the CreateFolder operation.
type CreateFolderOutput struct {
	Folders []snippet.Folder
	Created snippet.Folder
}

// CreateFolder adds a named folder. The folder collection is kept
// alphabetically sorted by name at all times, so insertion re-sorts.
func CreateFolder(folders []snippet.Folder, name string) (*CreateFolderOutput, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidation("folder name must not be empty")
	}

	created := snippet.Folder{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
	}

	out := cloneFolders(folders)
	out = append(out, created)
	coll := newNameCollator()
	slices.SortStableFunc(out, func(a, b snippet.Folder) int {
		return coll.CompareString(a.Name, b.Name)
	})

	return &CreateFolderOutput{Folders: out, Created: created}, nil
}

// DeleteFolderOutput contains the result of the DeleteFolder operation.
// Both updated collections are returned together: the cascade is one
// logical transaction even though the collections are stored apart.
type DeleteFolderOutput struct {
	Items   []snippet.Snippet
	Folders []snippet.Folder
	Deleted bool
	// Unfiled counts the snippets whose folder reference was cleared.
	Unfiled int
}

// DeleteFolder removes the folder and clears FolderID on every snippet
// that referenced it. Member snippets are never deleted. Deleting an
// absent folder is a no-op.
func DeleteFolder(items []snippet.Snippet, folders []snippet.Folder, id string) *DeleteFolderOutput {
	idx := findFolder(folders, id)
	if idx < 0 {
		return &DeleteFolderOutput{
			Items:   cloneSnippets(items),
			Folders: cloneFolders(folders),
			Deleted: false,
		}
	}

	newFolders := make([]snippet.Folder, 0, len(folders)-1)
	newFolders = append(newFolders, folders[:idx]...)
	newFolders = append(newFolders, folders[idx+1:]...)

	newItems := cloneSnippets(items)
	unfiled := 0
	for i := range newItems {
		if newItems[i].FolderID == id {
			cleared := newItems[i].Clone()
			cleared.FolderID = ""
			newItems[i] = cleared
			unfiled++
		}
	}

	return &DeleteFolderOutput{
		Items:   newItems,
		Folders: newFolders,
		Deleted: true,
		Unfiled: unfiled,
	}
}
