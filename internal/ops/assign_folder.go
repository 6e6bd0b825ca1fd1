package ops

import (
	"github.com/mwiesner/snipstash/internal/errors"
	"github.com/mwiesner/snipstash/internal/snippet"
)

// AssignFolderInput contains parameters for the AssignFolder operation.
type AssignFolderInput struct {
	SnippetID string
	// FolderID files the snippet; empty clears it to unfiled.
	FolderID string
}

// AssignFolderOutput contains the result of the AssignFolder operation.
type AssignFolderOutput struct {
	Items []snippet.Snippet
	// ActiveFolderID echoes the target folder so callers can switch the
	// visible folder to where the snippet just landed (the drag-and-drop
	// convenience the UI relies on).
	ActiveFolderID string
}

// AssignFolder sets or clears a snippet's folder reference. A non-empty
// FolderID must reference an existing folder; dangling references are
// never created.
func AssignFolder(items []snippet.Snippet, folders []snippet.Folder, input AssignFolderInput) (*AssignFolderOutput, error) {
	if input.FolderID != "" && findFolder(folders, input.FolderID) < 0 {
		return nil, errors.NewNotFound("folder", input.FolderID)
	}

	idx := findSnippet(items, input.SnippetID)
	if idx < 0 {
		return nil, errors.NewNotFound("snippet", input.SnippetID)
	}

	moved := items[idx].Clone()
	moved.FolderID = input.FolderID

	out := cloneSnippets(items)
	out[idx] = moved

	return &AssignFolderOutput{Items: out, ActiveFolderID: input.FolderID}, nil
}
