package library

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/mwiesner/snipstash/internal/annotate"
	"github.com/mwiesner/snipstash/internal/errors"
	"github.com/mwiesner/snipstash/internal/ops"
	"github.com/mwiesner/snipstash/internal/snippet"
)

// ErrFlowDismissed reports that an annotation result arrived (or a
// completion was attempted) after the add flow was dismissed. The
// result must be discarded, never applied to the collection.
var ErrFlowDismissed = stderrors.New("add flow dismissed")

// AddFlow is one in-progress snippet creation. The annotation call is
// the only suspension point in the system: while it is pending the flow
// rejects re-submission, and a dismissal makes any late result inert.
// Other library operations stay available throughout.
type AddFlow struct {
	lib *Library

	mu        sync.Mutex
	dismissed bool
	inFlight  bool
}

// NewAddFlow starts a creation flow.
func (l *Library) NewAddFlow() *AddFlow {
	return &AddFlow{lib: l}
}

// Annotate requests summary/tags for the raw text. A second call while
// one is pending is rejected; a result arriving after Dismiss is
// discarded. The annotation failure itself (network, upstream, schema)
// passes through untouched with no retry; the collection is unchanged.
func (f *AddFlow) Annotate(ctx context.Context, client *annotate.Client, rawText string) (*annotate.Annotation, error) {
	f.mu.Lock()
	if f.dismissed {
		f.mu.Unlock()
		return nil, ErrFlowDismissed
	}
	if f.inFlight {
		f.mu.Unlock()
		return nil, errors.NewValidation("annotation already in progress")
	}
	f.inFlight = true
	f.mu.Unlock()

	ann, err := client.Annotate(ctx, rawText)

	f.mu.Lock()
	f.inFlight = false
	dismissed := f.dismissed
	f.mu.Unlock()

	if dismissed {
		return nil, ErrFlowDismissed
	}
	return ann, err
}

// Complete creates the snippet, unless the flow was dismissed.
func (f *AddFlow) Complete(input ops.CreateInput) (snippet.Snippet, error) {
	f.mu.Lock()
	if f.dismissed {
		f.mu.Unlock()
		return snippet.Snippet{}, ErrFlowDismissed
	}
	f.mu.Unlock()

	return f.lib.Create(input)
}

// Dismiss closes the flow. Pending annotation results will be dropped.
func (f *AddFlow) Dismiss() {
	f.mu.Lock()
	f.dismissed = true
	f.mu.Unlock()
}
