// Package query computes the visible, ordered subset of the snippet
// collection for a given filter state. Visible is a pure function: it
// never mutates its inputs and always returns a fresh slice.
package query

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mwiesner/snipstash/internal/snippet"
)

// Sort selects the single ordering applied after filtering.
type Sort string

const (
	SortNewest       Sort = "newest"       // default: createdAt descending
	SortOldest       Sort = "oldest"       // createdAt ascending
	SortAlphabetical Sort = "alphabetical" // summary ascending, locale-aware
)

// ValidSort reports whether s names a known sort order.
func ValidSort(s Sort) bool {
	switch s {
	case SortNewest, SortOldest, SortAlphabetical, "":
		return true
	}
	return false
}

// State is the filter/sort tuple driving the engine. Zero value means
// "everything, newest first".
type State struct {
	// Search is matched as a lowercased substring against summary, raw
	// text, and tags. Whitespace-only search counts as empty.
	Search string `json:"search,omitempty"`

	// Tag keeps only snippets carrying this exact stored tag value.
	Tag string `json:"tag,omitempty"`

	// FavoritesOnly keeps only favorited snippets.
	FavoritesOnly bool `json:"favoritesOnly,omitempty"`

	// FolderID scopes to exactly one folder. Empty means all snippets,
	// filed or not.
	FolderID string `json:"folderId,omitempty"`

	Sort Sort `json:"sort,omitempty"`
}

// newSummaryCollator orders summaries the way a user expects from a
// sorted list: case-insensitive and locale-aware ("apple" before
// "Zebra"). A Collator reuses internal buffers and is not safe for
// concurrent use, so each Visible call gets its own.
func newSummaryCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase)
}

// Visible applies the filter stages in a fixed order (folder, favorites,
// tag, search; each stage narrows the previous one, and since the
// stages are independent predicates the result is the same under any
// order) and then exactly one stable sort. Empty input yields an empty,
// non-nil result. The full set is returned; there is no pagination.
func Visible(items []snippet.Snippet, state State) []snippet.Snippet {
	out := make([]snippet.Snippet, 0, len(items))

	search := strings.ToLower(strings.TrimSpace(state.Search))

	for _, it := range items {
		if state.FolderID != "" && it.FolderID != state.FolderID {
			continue
		}
		if state.FavoritesOnly && !it.IsFavorite {
			continue
		}
		if state.Tag != "" && !it.HasTag(state.Tag) {
			continue
		}
		if search != "" && !it.MatchesSearch(search) {
			continue
		}
		out = append(out, it)
	}

	switch state.Sort {
	case SortOldest:
		slices.SortStableFunc(out, func(a, b snippet.Snippet) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	case SortAlphabetical:
		coll := newSummaryCollator()
		slices.SortStableFunc(out, func(a, b snippet.Snippet) int {
			return coll.CompareString(a.Summary, b.Summary)
		})
	default: // SortNewest
		slices.SortStableFunc(out, func(a, b snippet.Snippet) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}

	return out
}
