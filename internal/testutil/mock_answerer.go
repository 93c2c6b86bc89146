// mock_answerer.go - Answerer double for handler and client tests
package testutil

import (
	"context"
	"sync"

	"github.com/docqa/backend/internal/models"
)

// MockAnswerer implements answer.Answerer with a canned reply or error
type MockAnswerer struct {
	Reply string
	Err   error

	mu    sync.Mutex
	calls []AnswerCall
	gate  chan struct{}
}

// AnswerCall records one Answer invocation
type AnswerCall struct {
	DocumentID string
	Question   string
}

// NewMockAnswerer creates an answerer that always replies with reply
func NewMockAnswerer(reply string) *MockAnswerer {
	return &MockAnswerer{Reply: reply}
}

// Hold makes Answer block until the returned release func is called
func (m *MockAnswerer) Hold() (release func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	gate := make(chan struct{})
	m.gate = gate
	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

// SetError makes subsequent calls fail with err
func (m *MockAnswerer) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = err
}

func (m *MockAnswerer) Name() string {
	return "mock"
}

func (m *MockAnswerer) Answer(ctx context.Context, doc *models.Document, question string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, AnswerCall{DocumentID: doc.ID, Question: question})
	gate := m.gate
	reply, err := m.Reply, m.Err
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if err != nil {
		return "", err
	}
	return reply, nil
}

// Calls returns a copy of the recorded calls
func (m *MockAnswerer) Calls() []AnswerCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]AnswerCall, len(m.calls))
	copy(out, m.calls)
	return out
}
