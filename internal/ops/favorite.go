package ops

import (
	"github.com/mwiesner/snipstash/internal/snippet"
)

// ToggleFavoriteOutput contains the result of the ToggleFavorite operation.
type ToggleFavoriteOutput struct {
	Items []snippet.Snippet
	// Found is false when no snippet matched; the collection is then an
	// unchanged copy (silent no-op, not an error).
	Found      bool
	IsFavorite bool
}

// ToggleFavorite flips IsFavorite on the matching snippet. Applying it
// twice restores the original value.
func ToggleFavorite(items []snippet.Snippet, id string) *ToggleFavoriteOutput {
	idx := findSnippet(items, id)
	if idx < 0 {
		return &ToggleFavoriteOutput{Items: cloneSnippets(items), Found: false}
	}

	flipped := items[idx].Clone()
	flipped.IsFavorite = !flipped.IsFavorite

	out := cloneSnippets(items)
	out[idx] = flipped

	return &ToggleFavoriteOutput{Items: out, Found: true, IsFavorite: flipped.IsFavorite}
}
