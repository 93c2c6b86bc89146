package client

import (
	"sync"

	"github.com/docqa/backend/internal/models"
	"github.com/google/uuid"
)

// Session is the page-level state shared by the upload and chat flows: at
// most one active document and the transcript of questions about it.
//
// Every change of the active document bumps a generation counter and clears
// the transcript. Flows capture the generation when they send a request and
// their results are dropped if it has moved on by the time they resolve.
type Session struct {
	mu         sync.RWMutex
	document   *models.Document
	transcript []models.ChatMessage
	generation uint64
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// Document returns a copy of the active document.
func (s *Session) Document() (models.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.document == nil {
		return models.Document{}, false
	}
	return *s.document, true
}

// HasDocument reports whether a document is active; chat is disabled otherwise.
func (s *Session) HasDocument() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.document != nil
}

// Generation identifies the current document epoch.
func (s *Session) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Activate makes doc the active document if the session is still at
// generation gen. It reports whether the document was applied.
func (s *Session) Activate(gen uint64, doc models.Document) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return false
	}
	s.generation++
	s.document = &doc
	s.transcript = nil
	return true
}

// Clear removes the active document and the transcript. It returns the
// removed document, if any.
func (s *Session) Clear() (models.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.transcript = nil
	if s.document == nil {
		return models.Document{}, false
	}
	doc := *s.document
	s.document = nil
	return doc, true
}

// Transcript returns a copy of the messages in display order.
func (s *Session) Transcript() []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ChatMessage, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// BeginTurn appends question as a pending user message. This is the
// provisional half of a turn; the returned Turn settles it.
func (s *Session) BeginTurn(question string) (*Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.document == nil {
		return nil, ErrNoDocument
	}

	msg := models.NewChatMessage(uuid.New().String(), models.RoleUser, question)
	msg.Pending = true
	s.transcript = append(s.transcript, msg)

	return &Turn{
		session:  s,
		gen:      s.generation,
		userID:   msg.ID,
		FileID:   s.document.ID,
		Question: question,
	}, nil
}

// Turn is one question awaiting its assistant reply.
type Turn struct {
	session *Session
	gen     uint64
	userID  string

	FileID   string
	Question string
}

// Settle clears the pending mark on the user message and appends the
// assistant reply right after the transcript tail. It returns false, and
// changes nothing, if the document changed since the turn began.
func (t *Turn) Settle(text string) (models.ChatMessage, bool) {
	s := t.session
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != t.gen {
		return models.ChatMessage{}, false
	}

	for i := range s.transcript {
		if s.transcript[i].ID == t.userID {
			s.transcript[i].Pending = false
			break
		}
	}

	reply := models.NewChatMessage(uuid.New().String(), models.RoleAssistant, text)
	s.transcript = append(s.transcript, reply)
	return reply, true
}
