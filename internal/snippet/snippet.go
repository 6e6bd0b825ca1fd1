package snippet

import (
	"strings"
	"time"
)

// Platform identifies where a snippet's text was originally produced.
type Platform string

const (
	PlatformChatGPT Platform = "ChatGPT"
	PlatformGemini  Platform = "Gemini"
	PlatformOther   Platform = "Other"
)

// SuggestedModels is the default set offered when saving a snippet.
// The field is free-form; these are suggestions, not an enum.
var SuggestedModels = []string{
	"GPT-4o",
	"Gemini 2.5 Flash",
	"Claude",
}

// Snippet is a captured piece of AI-conversation text plus derived metadata.
type Snippet struct {
	// ID is a ULID, so lexical order follows creation order.
	ID string `json:"id"`

	// RawText is the original captured text. Immutable after creation.
	RawText string `json:"rawText"`

	// Summary is the short derived description. Editable.
	Summary string `json:"summary"`

	// Tags preserve insertion order for display. Duplicates are
	// tolerated; deduplication is a presentation concern.
	Tags []string `json:"tags"`

	// CodeBlocks are fenced code blocks extracted from RawText at
	// creation time.
	CodeBlocks []CodeBlock `json:"codeBlocks,omitempty"`

	// Provenance, all optional.
	SourceURL       string `json:"sourceUrl,omitempty"`
	SourcePageTitle string `json:"sourcePageTitle,omitempty"`
	SourceModel     string `json:"sourceModel,omitempty"`

	// SourcePlatform is inferred from SourceURL when not set explicitly.
	SourcePlatform Platform `json:"sourcePlatform"`

	CreatedAt  time.Time `json:"createdAt"`
	IsFavorite bool      `json:"isFavorite"`

	// FolderID references a Folder; empty string means unfiled.
	// A single sentinel, never a present-but-null distinction.
	FolderID string `json:"folderId,omitempty"`
}

// Folder is a named grouping bucket for snippets.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// InferPlatform maps a source URL onto the closed platform enumeration.
func InferPlatform(sourceURL string) Platform {
	u := strings.ToLower(sourceURL)
	switch {
	case strings.Contains(u, "chatgpt.com"), strings.Contains(u, "chat.openai.com"):
		return PlatformChatGPT
	case strings.Contains(u, "gemini.google.com"):
		return PlatformGemini
	default:
		return PlatformOther
	}
}

// HasTag reports whether the snippet carries the exact tag value.
// Tag filtering is case-sensitive on the stored value.
func (s *Snippet) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// MatchesSearch reports whether the already-lowercased search term is a
// substring of the snippet's summary, raw text, or any tag. Matching is
// substring containment, not tokenized or fuzzy.
func (s *Snippet) MatchesSearch(loweredTerm string) bool {
	if strings.Contains(strings.ToLower(s.Summary), loweredTerm) {
		return true
	}
	if strings.Contains(strings.ToLower(s.RawText), loweredTerm) {
		return true
	}
	for _, t := range s.Tags {
		if strings.Contains(strings.ToLower(t), loweredTerm) {
			return true
		}
	}
	return false
}

// Clone returns a copy of the snippet with its own tag and code block slices.
func (s Snippet) Clone() Snippet {
	out := s
	if s.Tags != nil {
		out.Tags = append([]string(nil), s.Tags...)
	}
	if s.CodeBlocks != nil {
		out.CodeBlocks = append([]CodeBlock(nil), s.CodeBlocks...)
	}
	return out
}
