package ops

import (
	"github.com/mwiesner/snipstash/internal/snippet"
)

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Items   []snippet.Snippet
	Deleted bool
}

// Delete removes the snippet matching id. Deleting an absent id is a
// no-op, not an error; Deleted reports whether anything changed.
func Delete(items []snippet.Snippet, id string) *DeleteOutput {
	idx := findSnippet(items, id)
	if idx < 0 {
		return &DeleteOutput{Items: cloneSnippets(items), Deleted: false}
	}

	out := make([]snippet.Snippet, 0, len(items)-1)
	out = append(out, items[:idx]...)
	out = append(out, items[idx+1:]...)

	return &DeleteOutput{Items: out, Deleted: true}
}
