package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mwiesner/snipstash/internal/annotate"
	"github.com/mwiesner/snipstash/internal/config"
	"github.com/mwiesner/snipstash/internal/library"
	"github.com/mwiesner/snipstash/internal/snippet"
)

func newTestAPI(t *testing.T, annotator *annotate.Client) *httptest.Server {
	t.Helper()

	lib, err := library.Open(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("library.Open failed: %v", err)
	}
	if annotator == nil {
		annotator = annotate.New("", "gemini-2.5-flash", zerolog.Nop())
	}

	cfg := config.DefaultConfig()
	srv := NewServer(lib, annotator, cfg, zerolog.Nop())
	api := httptest.NewServer(srv.Handler)
	t.Cleanup(api.Close)
	return api
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return resp, data
}

func createViaAPI(t *testing.T, api *httptest.Server, body map[string]any) snippet.Snippet {
	t.Helper()
	resp, data := doJSON(t, http.MethodPost, api.URL+"/api/snippets", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", resp.StatusCode, data)
	}
	var created snippet.Snippet
	if err := json.Unmarshal(data, &created); err != nil {
		t.Fatalf("decode created snippet: %v", err)
	}
	return created
}

func TestAPI_SnippetCRUD(t *testing.T) {
	api := newTestAPI(t, nil)

	created := createViaAPI(t, api, map[string]any{
		"rawText": "package main",
		"summary": "hello world",
		"tags":    []string{"go"},
	})
	if created.ID == "" {
		t.Fatal("created snippet has no id")
	}

	resp, data := doJSON(t, http.MethodGet, api.URL+"/api/snippets/"+created.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, body = %s", resp.StatusCode, data)
	}

	resp, data = doJSON(t, http.MethodPatch, api.URL+"/api/snippets/"+created.ID, map[string]any{
		"summary": "edited",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch status = %d, body = %s", resp.StatusCode, data)
	}
	var updated snippet.Snippet
	if err := json.Unmarshal(data, &updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if updated.Summary != "edited" {
		t.Errorf("Summary = %q, want edited", updated.Summary)
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "go" {
		t.Errorf("Tags = %v, want unchanged [go]", updated.Tags)
	}

	resp, _ = doJSON(t, http.MethodDelete, api.URL+"/api/snippets/"+created.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	// Deleting again is still 204.
	resp, _ = doJSON(t, http.MethodDelete, api.URL+"/api/snippets/"+created.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("repeat delete status = %d, want 204", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodGet, api.URL+"/api/snippets/"+created.ID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestAPI_CreateRejectsEmptyRawText(t *testing.T) {
	api := newTestAPI(t, nil)

	resp, data := doJSON(t, http.MethodPost, api.URL+"/api/snippets", map[string]any{
		"rawText": "   ",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, data)
	}
	var payload map[string]string
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	if payload["error"] == "" {
		t.Error("error payload is missing the error message")
	}
}

func TestAPI_CreateRejectsUnknownFolder(t *testing.T) {
	api := newTestAPI(t, nil)

	resp, data := doJSON(t, http.MethodPost, api.URL+"/api/snippets", map[string]any{
		"rawText":  "text",
		"folderId": "does-not-exist",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, body = %s, want 404", resp.StatusCode, data)
	}

	// Nothing was persisted with the dangling reference.
	resp, data = doJSON(t, http.MethodGet, api.URL+"/api/snippets", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("query status = %d", resp.StatusCode)
	}
	var items []snippet.Snippet
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("len(items) = %d after rejected create, want 0", len(items))
	}
}

func TestAPI_QueryFiltersAndSorts(t *testing.T) {
	api := newTestAPI(t, nil)

	createViaAPI(t, api, map[string]any{"rawText": "one", "summary": "banana", "tags": []string{"fruit"}})
	createViaAPI(t, api, map[string]any{"rawText": "two", "summary": "apple", "tags": []string{"fruit"}})
	createViaAPI(t, api, map[string]any{"rawText": "three", "summary": "cursor", "tags": []string{"tool"}})

	resp, data := doJSON(t, http.MethodGet, api.URL+"/api/snippets?tag=fruit&sort=alphabetical", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, data)
	}
	var items []snippet.Snippet
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(items) != 2 || items[0].Summary != "apple" || items[1].Summary != "banana" {
		t.Errorf("query result = %v, want [apple banana]", summaries(items))
	}

	resp, _ = doJSON(t, http.MethodGet, api.URL+"/api/snippets?sort=bogus", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown sort status = %d, want 400", resp.StatusCode)
	}
}

func TestAPI_FavoriteAndFolderFlow(t *testing.T) {
	api := newTestAPI(t, nil)

	created := createViaAPI(t, api, map[string]any{"rawText": "fav me"})

	resp, data := doJSON(t, http.MethodPost, api.URL+"/api/snippets/"+created.ID+"/favorite", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("favorite status = %d, body = %s", resp.StatusCode, data)
	}
	var favResp map[string]any
	if err := json.Unmarshal(data, &favResp); err != nil {
		t.Fatalf("decode favorite response: %v", err)
	}
	if favResp["isFavorite"] != true {
		t.Errorf("isFavorite = %v, want true", favResp["isFavorite"])
	}

	resp, data = doJSON(t, http.MethodPost, api.URL+"/api/folders", map[string]any{"name": "Projects"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create folder status = %d, body = %s", resp.StatusCode, data)
	}
	var folder snippet.Folder
	if err := json.Unmarshal(data, &folder); err != nil {
		t.Fatalf("decode folder: %v", err)
	}

	resp, data = doJSON(t, http.MethodPut, api.URL+"/api/snippets/"+created.ID+"/folder", map[string]any{
		"folderId": folder.ID,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("assign folder status = %d, body = %s", resp.StatusCode, data)
	}

	resp, data = doJSON(t, http.MethodGet, api.URL+"/api/snippets?folder="+folder.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("folder query status = %d", resp.StatusCode)
	}
	var items []snippet.Snippet
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(items) != 1 || items[0].ID != created.ID {
		t.Errorf("folder query = %v, want the assigned snippet", summaries(items))
	}

	resp, _ = doJSON(t, http.MethodDelete, api.URL+"/api/folders/"+folder.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete folder status = %d", resp.StatusCode)
	}

	// The snippet survives the folder's deletion, unfiled.
	resp, data = doJSON(t, http.MethodGet, api.URL+"/api/snippets/"+created.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get after folder delete status = %d", resp.StatusCode)
	}
	var got snippet.Snippet
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode snippet: %v", err)
	}
	if got.FolderID != "" {
		t.Errorf("FolderID = %q after folder delete, want empty", got.FolderID)
	}
}

func TestAPI_AssignUnknownFolder(t *testing.T) {
	api := newTestAPI(t, nil)
	created := createViaAPI(t, api, map[string]any{"rawText": "text"})

	resp, _ := doJSON(t, http.MethodPut, api.URL+"/api/snippets/"+created.ID+"/folder", map[string]any{
		"folderId": "does-not-exist",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestAPI_CreateFolderRejectsBlankName(t *testing.T) {
	api := newTestAPI(t, nil)

	resp, _ := doJSON(t, http.MethodPost, api.URL+"/api/folders", map[string]any{"name": "   "})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestAPI_Annotate(t *testing.T) {
	t.Run("missing text", func(t *testing.T) {
		api := newTestAPI(t, nil)
		resp, data := doJSON(t, http.MethodPost, api.URL+"/api/annotate", map[string]any{})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, body = %s", resp.StatusCode, data)
		}
	})

	t.Run("unconfigured key", func(t *testing.T) {
		api := newTestAPI(t, nil)
		resp, _ := doJSON(t, http.MethodPost, api.URL+"/api/annotate", map[string]any{"text": "hello"})
		if resp.StatusCode != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", resp.StatusCode)
		}
	})

	t.Run("proxied success", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"{\"summary\":\"s\",\"tags\":[\"t\"]}"}]}}]}`)
		}))
		defer upstream.Close()

		annotator := annotate.New("key", "gemini-2.5-flash", zerolog.Nop(), annotate.WithBaseURL(upstream.URL))
		api := newTestAPI(t, annotator)

		resp, data := doJSON(t, http.MethodPost, api.URL+"/api/annotate", map[string]any{"text": "hello"})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, body = %s", resp.StatusCode, data)
		}
		var ann annotate.Annotation
		if err := json.Unmarshal(data, &ann); err != nil {
			t.Fatalf("decode annotation: %v", err)
		}
		if ann.Summary != "s" || len(ann.Tags) != 1 {
			t.Errorf("annotation = %+v", ann)
		}
	})

	t.Run("upstream failure maps to 500", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}))
		defer upstream.Close()

		annotator := annotate.New("key", "gemini-2.5-flash", zerolog.Nop(), annotate.WithBaseURL(upstream.URL))
		api := newTestAPI(t, annotator)

		resp, _ := doJSON(t, http.MethodPost, api.URL+"/api/annotate", map[string]any{"text": "hello"})
		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", resp.StatusCode)
		}
	})
}

func TestAPI_SecurityHeaders(t *testing.T) {
	api := newTestAPI(t, nil)

	resp, _ := doJSON(t, http.MethodGet, api.URL+"/api/snippets", nil)
	if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := resp.Header.Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}

func summaries(items []snippet.Snippet) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Summary
	}
	return out
}
