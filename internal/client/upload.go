package client

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/docqa/backend/internal/extract"
	"github.com/docqa/backend/internal/models"
)

// UploadState is a step of the upload state machine.
type UploadState string

const (
	UploadIdle      UploadState = "idle"
	UploadUploading UploadState = "uploading"
	UploadReady     UploadState = "ready"
	UploadFailed    UploadState = "failed"
)

// File is a user-selected file.
type File struct {
	Name string
	Type string // declared MIME type, may be empty
	Size int64
	Body io.Reader
}

// UploadOptions tunes an UploadFlow. All fields are optional.
type UploadOptions struct {
	// ProgressInterval is the tick of the simulated progress counter.
	ProgressInterval time.Duration
	OnStateChange    func(UploadState)
	OnProgress       func(int)
}

// UploadFlow drives Idle → Uploading → Ready | Failed for a single document.
type UploadFlow struct {
	api      *APIClient
	session  *Session
	notifier Notifier
	registry *extract.Registry
	opts     UploadOptions

	mu       sync.Mutex
	state    UploadState
	progress int
	attempt  uint64
}

// NewUploadFlow creates an idle upload flow bound to session.
func NewUploadFlow(api *APIClient, session *Session, notifier Notifier, opts UploadOptions) *UploadFlow {
	if notifier == nil {
		notifier = discardNotifier{}
	}
	return &UploadFlow{
		api:      api,
		session:  session,
		notifier: notifier,
		registry: extract.GetGlobalRegistry(),
		opts:     opts,
		state:    UploadIdle,
	}
}

// State returns the current state.
func (f *UploadFlow) State() UploadState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Progress returns the simulated progress of the upload in flight.
func (f *UploadFlow) Progress() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.progress
}

// Accepts reports whether file passes the PDF/DOCX/PPTX allow-list.
func (f *UploadFlow) Accepts(file File) bool {
	return f.registry.Accepts(file.Type, file.Name)
}

// Upload sends file for extraction and makes the result the active document.
// Files outside the allow-list are rejected before any network call.
func (f *UploadFlow) Upload(ctx context.Context, file File) (*models.Document, error) {
	f.mu.Lock()
	if f.state == UploadUploading {
		f.mu.Unlock()
		return nil, ErrBusy
	}
	if f.session.HasDocument() {
		f.mu.Unlock()
		return nil, ErrDocumentActive
	}
	if !f.Accepts(file) {
		f.mu.Unlock()
		f.notifier.Notify(Notification{
			Title:       "Unsupported file type",
			Description: "Upload a PDF, DOCX, or PPTX file",
			Variant:     VariantDestructive,
		})
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, file.Name)
	}
	f.attempt++
	attempt := f.attempt
	gen := f.session.Generation()
	f.mu.Unlock()

	f.transition(attempt, UploadUploading)

	progress := StartSimulatedProgress(f.opts.ProgressInterval, func(v int) {
		f.setProgress(attempt, v)
	})
	doc, err := f.api.ProcessFile(ctx, file)
	progress.Finish()

	if err != nil {
		f.transition(attempt, UploadFailed)
		f.notifier.Notify(Notification{
			Title:       "Error processing file",
			Description: "Please try again or use a different file format",
			Variant:     VariantDestructive,
		})
		f.transition(attempt, UploadIdle)
		return nil, err
	}

	if !f.session.Activate(gen, *doc) {
		// superseded while in flight: reset and drop the server copy
		f.transition(attempt, UploadIdle)
		if err := f.api.DeleteDocument(ctx, doc.ID); err != nil {
			fmt.Printf("[Upload] Failed to delete superseded document %s: %v\n", doc.ID, err)
		}
		return nil, ErrStale
	}

	f.transition(attempt, UploadReady)
	f.notifier.Notify(Notification{
		Title:       "File processed successfully",
		Description: fmt.Sprintf("%s is ready for Q&A", doc.Name),
		Variant:     VariantDefault,
	})
	return doc, nil
}

// Remove drops the active document and resets to Idle unconditionally. An
// upload still in flight is abandoned and its result discarded. The server
// copy is deleted best-effort; the returned error only reports that call.
func (f *UploadFlow) Remove(ctx context.Context) error {
	f.mu.Lock()
	f.attempt++
	attempt := f.attempt
	f.mu.Unlock()
	f.transition(attempt, UploadIdle)

	doc, ok := f.session.Clear()
	if !ok {
		return nil
	}
	return f.api.DeleteDocument(ctx, doc.ID)
}

// transition applies state only while attempt is still the current one.
func (f *UploadFlow) transition(attempt uint64, state UploadState) {
	f.mu.Lock()
	if f.attempt != attempt {
		f.mu.Unlock()
		return
	}
	f.state = state
	if state != UploadUploading {
		f.progress = 0
	}
	f.mu.Unlock()

	if f.opts.OnStateChange != nil {
		f.opts.OnStateChange(state)
	}
}

func (f *UploadFlow) setProgress(attempt uint64, v int) {
	f.mu.Lock()
	if f.attempt != attempt {
		f.mu.Unlock()
		return
	}
	f.progress = v
	f.mu.Unlock()

	if f.opts.OnProgress != nil {
		f.opts.OnProgress(v)
	}
}
