package client

import (
	"testing"

	"github.com/docqa/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession()
	require.True(t, s.Activate(s.Generation(), models.Document{ID: "doc-1", Name: "report.pdf"}))
	return s
}

func TestSession_ActivateAndClear(t *testing.T) {
	s := NewSession()
	assert.False(t, s.HasDocument())

	gen := s.Generation()
	require.True(t, s.Activate(gen, models.Document{ID: "doc-1"}))
	assert.True(t, s.HasDocument())

	// the captured generation is spent once applied
	assert.False(t, s.Activate(gen, models.Document{ID: "doc-2"}))
	doc, ok := s.Document()
	require.True(t, ok)
	assert.Equal(t, "doc-1", doc.ID)

	removed, ok := s.Clear()
	require.True(t, ok)
	assert.Equal(t, "doc-1", removed.ID)
	assert.False(t, s.HasDocument())

	_, ok = s.Clear()
	assert.False(t, ok)
}

func TestSession_BeginTurnWithoutDocument(t *testing.T) {
	s := NewSession()
	turn, err := s.BeginTurn("what is this?")
	assert.ErrorIs(t, err, ErrNoDocument)
	assert.Nil(t, turn)
	assert.Empty(t, s.Transcript())
}

func TestSession_TurnOrdering(t *testing.T) {
	s := activeSession(t)

	turn, err := s.BeginTurn("first question")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", turn.FileID)

	transcript := s.Transcript()
	require.Len(t, transcript, 1)
	assert.Equal(t, models.RoleUser, transcript[0].Role)
	assert.True(t, transcript[0].Pending)

	reply, ok := turn.Settle("first answer")
	require.True(t, ok)
	assert.Equal(t, models.RoleAssistant, reply.Role)

	transcript = s.Transcript()
	require.Len(t, transcript, 2)
	assert.False(t, transcript[0].Pending)
	assert.Equal(t, "first question", transcript[0].Text)
	assert.Equal(t, "first answer", transcript[1].Text)
	assert.NotEqual(t, transcript[0].ID, transcript[1].ID)
	assert.False(t, transcript[1].CreatedAt.Before(transcript[0].CreatedAt))
}

func TestSession_StaleTurnIsDropped(t *testing.T) {
	s := activeSession(t)

	turn, err := s.BeginTurn("question")
	require.NoError(t, err)

	s.Clear()
	require.True(t, s.Activate(s.Generation(), models.Document{ID: "doc-2"}))

	_, ok := turn.Settle("late answer")
	assert.False(t, ok)
	assert.Empty(t, s.Transcript())
}

func TestSession_TranscriptIsACopy(t *testing.T) {
	s := activeSession(t)
	turn, err := s.BeginTurn("question")
	require.NoError(t, err)
	turn.Settle("answer")

	transcript := s.Transcript()
	transcript[0].Text = "changed"
	assert.Equal(t, "question", s.Transcript()[0].Text)
}
