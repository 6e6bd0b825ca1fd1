package ops

import (
	"github.com/mwiesner/snipstash/internal/errors"
	"github.com/mwiesner/snipstash/internal/snippet"
)

// UpdateInput contains parameters for the Update operation.
// Nil fields are left unchanged. RawText is immutable by contract and
// therefore not patchable.
type UpdateInput struct {
	ID string

	Summary         *string
	Tags            *[]string
	SourceModel     *string
	SourcePageTitle *string
}

// UpdateOutput contains the result of the Update operation.
type UpdateOutput struct {
	Items   []snippet.Snippet
	Updated snippet.Snippet
}

// Update replaces the snippet matching ID with a merged value.
func Update(items []snippet.Snippet, input UpdateInput) (*UpdateOutput, error) {
	if input.Summary == nil && input.Tags == nil && input.SourceModel == nil && input.SourcePageTitle == nil {
		return nil, errors.NewValidation("at least one editable field must be provided")
	}

	idx := findSnippet(items, input.ID)
	if idx < 0 {
		return nil, errors.NewNotFound("snippet", input.ID)
	}

	merged := items[idx].Clone()
	if input.Summary != nil {
		merged.Summary = *input.Summary
	}
	if input.Tags != nil {
		merged.Tags = append([]string(nil), (*input.Tags)...)
	}
	if input.SourceModel != nil {
		merged.SourceModel = *input.SourceModel
	}
	if input.SourcePageTitle != nil {
		merged.SourcePageTitle = *input.SourcePageTitle
	}

	out := cloneSnippets(items)
	out[idx] = merged

	return &UpdateOutput{Items: out, Updated: merged}, nil
}
