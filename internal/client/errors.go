// Package client implements the browser-side upload and chat flows against
// the document Q&A API: a session context holding the active document and
// transcript, an upload state machine with simulated progress, and a chat
// flow with optimistic transcript updates.
package client

import (
	"errors"
	"fmt"
)

var (
	// ErrBusy is returned when a flow already has a request in flight.
	ErrBusy = errors.New("request already in progress")
	// ErrNoDocument is returned when chatting without an active document.
	ErrNoDocument = errors.New("no document uploaded")
	// ErrEmptyQuestion is returned for blank questions.
	ErrEmptyQuestion = errors.New("question is empty")
	// ErrUnsupportedType is returned for files outside the accepted types.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrDocumentActive is returned when uploading while a document is active.
	ErrDocumentActive = errors.New("a document is already active")
	// ErrStale is returned when a response arrives after the active document changed.
	ErrStale = errors.New("response superseded by a newer document")
)

// StatusError is returned for non-2xx responses. The body is not interpreted.
type StatusError struct {
	Op         string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
}
