package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func testSlot(t *testing.T) (*HandoffSlot, string) {
	t.Helper()
	dir := t.TempDir()
	return NewHandoffSlot(dir, zerolog.Nop()), filepath.Join(dir, HandoffKey)
}

func TestHandoffSlot_PutTake(t *testing.T) {
	slot, _ := testSlot(t)

	pending := Handoff{Text: "captured text", URL: "https://chatgpt.com/c/abc", Title: "Chat"}
	if err := slot.Put(pending); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok := slot.Take()
	if !ok {
		t.Fatal("Take returned ok=false for a populated slot")
	}
	if got != pending {
		t.Errorf("Take = %+v, want %+v", got, pending)
	}
}

func TestHandoffSlot_TakeIsAtMostOnce(t *testing.T) {
	slot, path := testSlot(t)

	if err := slot.Put(Handoff{Text: "once"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if _, ok := slot.Take(); !ok {
		t.Fatal("first Take returned ok=false")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("slot document still exists after Take: %v", err)
	}
	if _, ok := slot.Take(); ok {
		t.Error("second Take returned ok=true, want empty slot")
	}
}

func TestHandoffSlot_EmptySlot(t *testing.T) {
	slot, _ := testSlot(t)

	if got, ok := slot.Take(); ok {
		t.Errorf("Take on empty slot = (%+v, true), want ok=false", got)
	}
}

func TestHandoffSlot_PoisonDocumentIsCleared(t *testing.T) {
	slot, path := testSlot(t)

	if err := os.WriteFile(path, []byte("{broken"), 0600); err != nil {
		t.Fatalf("write poison doc: %v", err)
	}

	if _, ok := slot.Take(); ok {
		t.Error("Take returned ok=true for an unparsable document")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("poison document was not cleared, slot would loop on next startup")
	}
}

func TestHandoffSlot_EmptyTextIsDiscarded(t *testing.T) {
	slot, _ := testSlot(t)

	if err := slot.Put(Handoff{Text: "", URL: "https://gemini.google.com"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, ok := slot.Take(); ok {
		t.Error("Take returned ok=true for a capture without text")
	}
}
