package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Handoff is an externally captured snippet waiting to be imported. A
// browser hook or the `snipstash capture` command writes it; the next
// session consumes it and pre-populates the add flow.
type Handoff struct {
	Text  string `json:"text"`
	URL   string `json:"url,omitempty"`
	Title string `json:"title,omitempty"`
}

// HandoffSlot is the single well-known location for a pending capture.
// Delivery is at-most-once: Take clears the slot even when the payload
// cannot be parsed, so a poison document can never loop.
type HandoffSlot struct {
	path string
	log  zerolog.Logger
}

// NewHandoffSlot binds the slot to its fixed key under baseDir.
func NewHandoffSlot(baseDir string, log zerolog.Logger) *HandoffSlot {
	return &HandoffSlot{
		path: filepath.Join(baseDir, HandoffKey),
		log:  log.With().Str("key", HandoffKey).Logger(),
	}
}

// Put stores a pending capture, replacing any previous one.
func (h *HandoffSlot) Put(pending Handoff) error {
	data, err := json.Marshal(pending)
	if err != nil {
		return err
	}
	return os.WriteFile(h.path, data, 0600)
}

// Take returns the pending capture and clears the slot. The second
// return is false when the slot is empty or its content is unusable.
func (h *HandoffSlot) Take() (Handoff, bool) {
	data, err := os.ReadFile(h.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			h.log.Error().Err(err).Msg("handoff read failed")
		}
		return Handoff{}, false
	}

	// Clear before use: consumption failure must not leave the slot
	// armed for the next startup.
	if err := os.Remove(h.path); err != nil {
		h.log.Error().Err(err).Msg("handoff clear failed")
	}

	var pending Handoff
	if err := json.Unmarshal(data, &pending); err != nil {
		h.log.Error().Err(err).Msg("discarding unparsable handoff")
		return Handoff{}, false
	}
	if pending.Text == "" {
		return Handoff{}, false
	}
	return pending, true
}
