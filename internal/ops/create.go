package ops

import (
	"strings"
	"time"

	"github.com/mwiesner/snipstash/internal/errors"
	"github.com/mwiesner/snipstash/internal/snippet"
)

// CreateInput contains parameters for the Create operation.
type CreateInput struct {
	RawText string // required
	Summary string
	Tags    []string

	SourceURL       string
	SourcePageTitle string
	SourceModel     string
	// SourcePlatform is inferred from SourceURL when empty.
	SourcePlatform snippet.Platform

	// FolderID files the new snippet explicitly. When empty, the
	// snippet lands in ActiveFolderID, so items created while a folder
	// is focused stay in that folder.
	FolderID       string
	ActiveFolderID string

	// CreatedAt defaults to now; ID defaults to a fresh ULID. Both are
	// settable for imports that must preserve provenance.
	ID        string
	CreatedAt time.Time
}

// CreateOutput contains the result of the Create operation.
type CreateOutput struct {
	// Items is the new collection with the created snippet prepended,
	// so it is first under the default newest-first ordering.
	Items   []snippet.Snippet
	Created snippet.Snippet
}

// Create builds a snippet from the input and prepends it to the
// collection. Fenced code blocks are extracted from the raw text once,
// here; the raw text itself is immutable afterwards. A non-empty
// folder target must reference an existing folder, matching
// AssignFolder: dangling references are never created.
func Create(items []snippet.Snippet, folders []snippet.Folder, input CreateInput) (*CreateOutput, error) {
	if strings.TrimSpace(input.RawText) == "" {
		return nil, errors.NewValidation("raw text is required")
	}

	id := input.ID
	if id == "" {
		var err error
		id, err = generateULID()
		if err != nil {
			return nil, errors.NewInternal(err)
		}
	}

	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	platform := input.SourcePlatform
	if platform == "" {
		platform = snippet.InferPlatform(input.SourceURL)
	}

	folderID := input.FolderID
	if folderID == "" {
		folderID = input.ActiveFolderID
	}
	if folderID != "" && findFolder(folders, folderID) < 0 {
		return nil, errors.NewNotFound("folder", folderID)
	}

	created := snippet.Snippet{
		ID:              id,
		RawText:         input.RawText,
		Summary:         input.Summary,
		Tags:            append([]string(nil), input.Tags...),
		CodeBlocks:      snippet.ExtractCodeBlocks(input.RawText),
		SourceURL:       input.SourceURL,
		SourcePageTitle: input.SourcePageTitle,
		SourceModel:     input.SourceModel,
		SourcePlatform:  platform,
		CreatedAt:       createdAt,
		IsFavorite:      false,
		FolderID:        folderID,
	}

	out := make([]snippet.Snippet, 0, len(items)+1)
	out = append(out, created)
	out = append(out, items...)

	return &CreateOutput{Items: out, Created: created}, nil
}
