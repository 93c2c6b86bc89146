package client

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/docqa/backend/internal/models"
)

// FallbackAnswer is appended as the assistant reply when a question fails.
const FallbackAnswer = "I'm sorry, I encountered an error while processing your question. Please try again."

// ChatFlow sends questions about the active document, one at a time.
type ChatFlow struct {
	api      *APIClient
	session  *Session
	notifier Notifier
	busy     atomic.Bool
}

// NewChatFlow creates a chat flow bound to session.
func NewChatFlow(api *APIClient, session *Session, notifier Notifier) *ChatFlow {
	if notifier == nil {
		notifier = discardNotifier{}
	}
	return &ChatFlow{api: api, session: session, notifier: notifier}
}

// Busy reports whether a question is awaiting its answer.
func (f *ChatFlow) Busy() bool {
	return f.busy.Load()
}

// Enabled reports whether the chat input should accept a question.
func (f *ChatFlow) Enabled() bool {
	return f.session.HasDocument() && !f.busy.Load()
}

// Ask appends question to the transcript, waits for the answer and appends
// it. A failed request appends FallbackAnswer instead and also notifies the
// user, so every user message gets exactly one reply. The returned message
// is the assistant entry that was appended.
func (f *ChatFlow) Ask(ctx context.Context, question string) (models.ChatMessage, error) {
	if !f.session.HasDocument() {
		f.notifier.Notify(Notification{
			Title:       "No file uploaded",
			Description: "Please upload a document first",
			Variant:     VariantDestructive,
		})
		return models.ChatMessage{}, ErrNoDocument
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return models.ChatMessage{}, ErrEmptyQuestion
	}
	if !f.busy.CompareAndSwap(false, true) {
		return models.ChatMessage{}, ErrBusy
	}
	defer f.busy.Store(false)

	turn, err := f.session.BeginTurn(question)
	if err != nil {
		return models.ChatMessage{}, err
	}

	answer, askErr := f.api.Ask(ctx, turn.Question, turn.FileID)
	if askErr != nil {
		reply, ok := turn.Settle(FallbackAnswer)
		if !ok {
			return models.ChatMessage{}, ErrStale
		}
		f.notifier.Notify(Notification{
			Title:       "Error getting response",
			Description: "Please try again",
			Variant:     VariantDestructive,
		})
		return reply, askErr
	}

	reply, ok := turn.Settle(answer)
	if !ok {
		return models.ChatMessage{}, ErrStale
	}
	return reply, nil
}
