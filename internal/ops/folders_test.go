package ops

import (
	"testing"

	"github.com/mwiesner/snipstash/internal/errors"
	"github.com/mwiesner/snipstash/internal/snippet"
)

func TestCreateFolder_AssignsIDAndTimestamp(t *testing.T) {
	out, err := CreateFolder(nil, "Go recipes")
	if err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	if out.Created.ID == "" {
		t.Error("ID should not be empty")
	}
	if out.Created.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if out.Created.Name != "Go recipes" {
		t.Errorf("Name = %q, want 'Go recipes'", out.Created.Name)
	}
}

func TestCreateFolder_TrimsName(t *testing.T) {
	out, err := CreateFolder(nil, "  Ideas  ")
	if err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	if out.Created.Name != "Ideas" {
		t.Errorf("Name = %q, want 'Ideas'", out.Created.Name)
	}
}

func TestCreateFolder_EmptyName_RejectedWithoutMutation(t *testing.T) {
	existing := someFolders()

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := CreateFolder(existing, name)
		if !errors.Is(err, errors.ErrValidation) {
			t.Errorf("CreateFolder(%q) error = %v, want VALIDATION", name, err)
		}
	}
	if len(existing) != 2 {
		t.Fatal("folder collection must be unchanged")
	}
}

func TestCreateFolder_KeepsCollectionSortedByName(t *testing.T) {
	out, err := CreateFolder(someFolders(), "apple") // existing: Go, SQL
	if err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}

	names := []string{out.Folders[0].Name, out.Folders[1].Name, out.Folders[2].Name}
	want := []string{"apple", "Go", "SQL"} // case-insensitive alphabetical
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}

func TestDeleteFolder_CascadesClearingReferences(t *testing.T) {
	items := []snippet.Snippet{
		{ID: "01A", RawText: "a", FolderID: "F1"},
		{ID: "01B", RawText: "b", FolderID: "F2"},
		{ID: "01C", RawText: "c", FolderID: "F1"},
	}
	folders := someFolders()

	out := DeleteFolder(items, folders, "F1")
	if !out.Deleted {
		t.Fatal("Deleted = false, want true")
	}
	if out.Unfiled != 2 {
		t.Errorf("Unfiled = %d, want 2", out.Unfiled)
	}

	for _, it := range out.Items {
		if it.FolderID == "F1" {
			t.Errorf("snippet %s still references deleted folder", it.ID)
		}
	}
	if out.Items[1].FolderID != "F2" {
		t.Error("unrelated filing must survive the cascade")
	}

	for _, f := range out.Folders {
		if f.ID == "F1" {
			t.Error("folder F1 still present")
		}
	}

	// Member snippets are unfiled, never deleted.
	if len(out.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(out.Items))
	}

	// Inputs untouched.
	if items[0].FolderID != "F1" || len(folders) != 2 {
		t.Error("input collections mutated")
	}
}

func TestDeleteFolder_AbsentID_IsNoOp(t *testing.T) {
	out := DeleteFolder(twoSnippets(), someFolders(), "missing")
	if out.Deleted {
		t.Error("Deleted = true, want false")
	}
	if len(out.Folders) != 2 || len(out.Items) != 2 {
		t.Fatal("collections must be unchanged copies")
	}
}
