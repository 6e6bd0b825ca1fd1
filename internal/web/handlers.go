package web

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/mwiesner/snipstash/internal/annotate"
	"github.com/mwiesner/snipstash/internal/errors"
	"github.com/mwiesner/snipstash/internal/library"
	"github.com/mwiesner/snipstash/internal/ops"
	"github.com/mwiesner/snipstash/internal/query"
	"github.com/mwiesner/snipstash/internal/snippet"
)

// Handlers contains HTTP route handlers for the JSON API.
type Handlers struct {
	lib       *library.Library
	annotator *annotate.Client
	log       zerolog.Logger
}

// annotateRequest is the fixed request contract of the proxy boundary.
type annotateRequest struct {
	Text string `json:"text"`
}

// HandleAnnotate handles POST /api/annotate, the thin proxy in front
// of the text-analysis service. Contract: missing text is 400, a
// missing server-side credential is 500, and any upstream or transport
// failure is 500.
func (h *Handlers) HandleAnnotate(w http.ResponseWriter, r *http.Request) {
	var req annotateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeErrorMessage(w, http.StatusBadRequest, "text content is missing in the request body")
		return
	}

	if !h.annotator.Configured() {
		h.log.Error().Msg("annotation API key is not configured on the server")
		writeErrorMessage(w, http.StatusInternalServerError, "server configuration error")
		return
	}

	ann, err := h.annotator.Annotate(r.Context(), req.Text)
	if err != nil {
		h.log.Error().Err(err).Msg("annotation failed")
		writeErrorMessage(w, http.StatusInternalServerError, "failed to process text")
		return
	}

	writeJSON(w, http.StatusOK, ann)
}

// HandleQuery handles GET /api/snippets, the query engine over HTTP.
// The full filtered and sorted set is returned; no pagination.
func (h *Handlers) HandleQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state := query.State{
		Search:        q.Get("search"),
		Tag:           q.Get("tag"),
		FavoritesOnly: q.Get("favorites") == "true",
		FolderID:      q.Get("folder"),
		Sort:          query.Sort(q.Get("sort")),
	}

	if !query.ValidSort(state.Sort) {
		writeError(w, errors.NewValidation("sort must be one of: newest, oldest, alphabetical"))
		return
	}

	writeJSON(w, http.StatusOK, h.lib.Query(state))
}

// createRequest mirrors ops.CreateInput for the wire.
type createRequest struct {
	RawText         string           `json:"rawText"`
	Summary         string           `json:"summary"`
	Tags            []string         `json:"tags"`
	SourceURL       string           `json:"sourceUrl"`
	SourcePageTitle string           `json:"sourcePageTitle"`
	SourceModel     string           `json:"sourceModel"`
	SourcePlatform  snippet.Platform `json:"sourcePlatform"`
	FolderID        string           `json:"folderId"`
}

// HandleCreate handles POST /api/snippets.
func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewValidation("invalid JSON body"))
		return
	}

	created, err := h.lib.Create(ops.CreateInput{
		RawText:         req.RawText,
		Summary:         req.Summary,
		Tags:            req.Tags,
		SourceURL:       req.SourceURL,
		SourcePageTitle: req.SourcePageTitle,
		SourceModel:     req.SourceModel,
		SourcePlatform:  req.SourcePlatform,
		FolderID:        req.FolderID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// HandleGet handles GET /api/snippets/{id}.
func (h *Handlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	for _, it := range h.lib.Snippets() {
		if it.ID == id {
			writeJSON(w, http.StatusOK, it)
			return
		}
	}
	writeError(w, errors.NewNotFound("snippet", id))
}

// updateRequest carries the patchable fields; absent fields stay as-is.
type updateRequest struct {
	Summary         *string   `json:"summary,omitempty"`
	Tags            *[]string `json:"tags,omitempty"`
	SourceModel     *string   `json:"sourceModel,omitempty"`
	SourcePageTitle *string   `json:"sourcePageTitle,omitempty"`
}

// HandleUpdate handles PATCH /api/snippets/{id}.
func (h *Handlers) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewValidation("invalid JSON body"))
		return
	}

	updated, err := h.lib.Update(ops.UpdateInput{
		ID:              r.PathValue("id"),
		Summary:         req.Summary,
		Tags:            req.Tags,
		SourceModel:     req.SourceModel,
		SourcePageTitle: req.SourcePageTitle,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /api/snippets/{id}. Idempotent: deleting
// an absent id still returns 204.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.lib.Delete(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleToggleFavorite handles POST /api/snippets/{id}/favorite.
func (h *Handlers) HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	isFav, err := h.lib.ToggleFavorite(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "isFavorite": isFav})
}

// assignFolderRequest carries the target folder ("" = unfiled).
type assignFolderRequest struct {
	FolderID string `json:"folderId"`
}

// HandleAssignFolder handles PUT /api/snippets/{id}/folder.
func (h *Handlers) HandleAssignFolder(w http.ResponseWriter, r *http.Request) {
	var req assignFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewValidation("invalid JSON body"))
		return
	}

	if err := h.lib.AssignFolder(r.PathValue("id"), req.FolderID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"activeFolderId": req.FolderID})
}

// HandleListFolders handles GET /api/folders.
func (h *Handlers) HandleListFolders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.lib.Folders())
}

// createFolderRequest names the new folder.
type createFolderRequest struct {
	Name string `json:"name"`
}

// HandleCreateFolder handles POST /api/folders.
func (h *Handlers) HandleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var req createFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewValidation("invalid JSON body"))
		return
	}

	created, err := h.lib.CreateFolder(req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleDeleteFolder handles DELETE /api/folders/{id}. The member
// snippets are unfiled, never deleted.
func (h *Handlers) HandleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	if _, err := h.lib.DeleteFolder(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a structured error onto its HTTP status and the
// {"error": string} payload of the API contract.
func writeError(w http.ResponseWriter, err error) {
	if e, ok := err.(*errors.Error); ok {
		writeErrorMessage(w, e.Status, e.Message)
		return
	}
	writeErrorMessage(w, http.StatusInternalServerError, "internal error")
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
