package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mwiesner/snipstash/internal/annotate"
	"github.com/mwiesner/snipstash/internal/errors"
	"github.com/mwiesner/snipstash/internal/library"
	"github.com/mwiesner/snipstash/internal/ops"
	"github.com/mwiesner/snipstash/internal/query"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	lib       *library.Library
	annotator *annotate.Client
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(lib *library.Library, annotator *annotate.Client) *Handlers {
	return &Handlers{lib: lib, annotator: annotator}
}

// Request types for each tool

// SaveRequest represents the arguments for snippet_save.
type SaveRequest struct {
	RawText         string   `json:"raw_text"`
	Summary         string   `json:"summary,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	SourceURL       string   `json:"source_url,omitempty"`
	SourcePageTitle string   `json:"source_page_title,omitempty"`
	SourceModel     string   `json:"source_model,omitempty"`
	FolderID        string   `json:"folder_id,omitempty"`
}

// GetRequest represents the arguments for snippet_get.
type GetRequest struct {
	ID string `json:"id"`
}

// ListRequest represents the arguments for snippet_list.
type ListRequest struct {
	Search    string `json:"search,omitempty"`
	Tag       string `json:"tag,omitempty"`
	Favorites bool   `json:"favorites,omitempty"`
	FolderID  string `json:"folder_id,omitempty"`
	Sort      string `json:"sort,omitempty"`
}

// UpdateRequest represents the arguments for snippet_update.
type UpdateRequest struct {
	ID              string    `json:"id"`
	Summary         *string   `json:"summary,omitempty"`
	Tags            *[]string `json:"tags,omitempty"`
	SourceModel     *string   `json:"source_model,omitempty"`
	SourcePageTitle *string   `json:"source_page_title,omitempty"`
}

// DeleteRequest represents the arguments for snippet_delete.
type DeleteRequest struct {
	ID string `json:"id"`
}

// FavoriteRequest represents the arguments for snippet_favorite.
type FavoriteRequest struct {
	ID string `json:"id"`
}

// MoveRequest represents the arguments for snippet_move.
type MoveRequest struct {
	ID       string `json:"id"`
	FolderID string `json:"folder_id,omitempty"`
}

// AnnotateRequest represents the arguments for snippet_annotate.
type AnnotateRequest struct {
	Text string `json:"text"`
}

// FolderCreateRequest represents the arguments for folder_create.
type FolderCreateRequest struct {
	Name string `json:"name"`
}

// FolderDeleteRequest represents the arguments for folder_delete.
type FolderDeleteRequest struct {
	ID string `json:"id"`
}

// Handler implementations

// HandleSave handles the snippet_save tool call.
func (h *Handlers) HandleSave(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SaveRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	created, err := h.lib.Create(ops.CreateInput{
		RawText:         input.RawText,
		Summary:         input.Summary,
		Tags:            input.Tags,
		SourceURL:       input.SourceURL,
		SourcePageTitle: input.SourcePageTitle,
		SourceModel:     input.SourceModel,
		FolderID:        input.FolderID,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(created)
}

// HandleGet handles the snippet_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	for _, it := range h.lib.Snippets() {
		if it.ID == input.ID {
			return successResult(it)
		}
	}
	return errorResult(errors.NewNotFound("snippet", input.ID)), nil
}

// HandleList handles the snippet_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	sort := query.Sort(input.Sort)
	if !query.ValidSort(sort) {
		return errorResult(errors.NewValidation("sort must be one of: newest, oldest, alphabetical")), nil
	}

	items := h.lib.Query(query.State{
		Search:        input.Search,
		Tag:           input.Tag,
		FavoritesOnly: input.Favorites,
		FolderID:      input.FolderID,
		Sort:          sort,
	})

	return successResult(map[string]any{"items": items, "total": len(items)})
}

// HandleUpdate handles the snippet_update tool call.
func (h *Handlers) HandleUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[UpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	updated, err := h.lib.Update(ops.UpdateInput{
		ID:              input.ID,
		Summary:         input.Summary,
		Tags:            input.Tags,
		SourceModel:     input.SourceModel,
		SourcePageTitle: input.SourcePageTitle,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(updated)
}

// HandleDelete handles the snippet_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	deleted, err := h.lib.Delete(input.ID)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{"deleted": deleted, "id": input.ID})
}

// HandleFavorite handles the snippet_favorite tool call.
func (h *Handlers) HandleFavorite(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FavoriteRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	isFav, err := h.lib.ToggleFavorite(input.ID)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{"id": input.ID, "is_favorite": isFav})
}

// HandleMove handles the snippet_move tool call.
func (h *Handlers) HandleMove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[MoveRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	if err := h.lib.AssignFolder(input.ID, input.FolderID); err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{"id": input.ID, "folder_id": input.FolderID})
}

// HandleAnnotate handles the snippet_annotate tool call.
func (h *Handlers) HandleAnnotate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AnnotateRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	ann, err := h.annotator.Annotate(ctx, input.Text)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(ann)
}

// HandleFolderCreate handles the folder_create tool call.
func (h *Handlers) HandleFolderCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FolderCreateRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	created, err := h.lib.CreateFolder(input.Name)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(created)
}

// HandleFolderDelete handles the folder_delete tool call.
func (h *Handlers) HandleFolderDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FolderDeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	deleted, err := h.lib.DeleteFolder(input.ID)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{"deleted": deleted, "id": input.ID})
}

// HandleFolderList handles the folder_list tool call.
func (h *Handlers) HandleFolderList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(h.lib.Folders())
}

// errorResult creates an MCP error result from an error.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if e, ok := err.(*errors.Error); ok {
		errorObj := map[string]any{
			"code":    e.Code,
			"message": e.Message,
			"status":  e.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths
		if e.Code != errors.ErrInternal && e.Details != nil {
			errorObj["details"] = e.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
