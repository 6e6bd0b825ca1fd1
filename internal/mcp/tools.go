package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var saveToolDef = mcp.NewTool("snippet_save",
	mcp.WithDescription("Save a piece of AI-conversation text as a snippet. Provide summary/tags yourself or run snippet_annotate first."),
	mcp.WithString("raw_text", mcp.Required(), mcp.Description("The captured text (markdown preserved; fenced code blocks are extracted)")),
	mcp.WithString("summary", mcp.Description("Short description of the snippet")),
	mcp.WithArray("tags", mcp.Description("Tags, insertion order is preserved"), mcp.WithStringItems()),
	mcp.WithString("source_url", mcp.Description("URL of the originating conversation")),
	mcp.WithString("source_page_title", mcp.Description("Page title of the originating conversation")),
	mcp.WithString("source_model", mcp.Description("Which AI model produced the text, e.g. 'GPT-4o'")),
	mcp.WithString("folder_id", mcp.Description("Folder to file the snippet into (default: the active folder)")),
)

var getToolDef = mcp.NewTool("snippet_get",
	mcp.WithDescription("Fetch a snippet by id, including raw text and extracted code blocks."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Snippet id")),
)

var listToolDef = mcp.NewTool("snippet_list",
	mcp.WithDescription("List visible snippets for a filter state: folder scope, favorites, exact tag, substring search, one sort order. All filters AND together."),
	mcp.WithString("search", mcp.Description("Case-insensitive substring matched against summary, raw text, and tags")),
	mcp.WithString("tag", mcp.Description("Exact tag value (case-sensitive)")),
	mcp.WithBoolean("favorites", mcp.Description("Keep only favorited snippets")),
	mcp.WithString("folder_id", mcp.Description("Scope to one folder")),
	mcp.WithString("sort", mcp.Description("newest (default) | oldest | alphabetical")),
)

var updateToolDef = mcp.NewTool("snippet_update",
	mcp.WithDescription("Patch a snippet's summary, tags, source model, or page title. Raw text is immutable."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Snippet id")),
	mcp.WithString("summary", mcp.Description("New summary")),
	mcp.WithArray("tags", mcp.Description("Replacement tag list"), mcp.WithStringItems()),
	mcp.WithString("source_model", mcp.Description("New source model label")),
	mcp.WithString("source_page_title", mcp.Description("New source page title")),
)

var deleteToolDef = mcp.NewTool("snippet_delete",
	mcp.WithDescription("Delete a snippet. Deleting an absent id is a no-op."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Snippet id")),
)

var favoriteToolDef = mcp.NewTool("snippet_favorite",
	mcp.WithDescription("Toggle a snippet's favorite flag."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Snippet id")),
)

var moveToolDef = mcp.NewTool("snippet_move",
	mcp.WithDescription("File a snippet into a folder (empty folder_id unfiles it). Also switches the active folder view."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Snippet id")),
	mcp.WithString("folder_id", mcp.Description("Target folder id; empty clears the filing")),
)

var annotateToolDef = mcp.NewTool("snippet_annotate",
	mcp.WithDescription("Derive a summary, tags, and confidence score for raw text via the annotation service. No retry; failures surface as-is."),
	mcp.WithString("text", mcp.Required(), mcp.Description("Raw text to analyze")),
)

var folderCreateToolDef = mcp.NewTool("folder_create",
	mcp.WithDescription("Create a named folder. Names must be non-empty; the folder list stays sorted alphabetically."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Folder display name")),
)

var folderDeleteToolDef = mcp.NewTool("folder_delete",
	mcp.WithDescription("Delete a folder. Member snippets are unfiled, never deleted."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Folder id")),
)

var folderListToolDef = mcp.NewTool("folder_list",
	mcp.WithDescription("List all folders, alphabetically by name."),
)
