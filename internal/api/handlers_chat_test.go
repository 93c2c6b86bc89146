// handlers_chat_test.go - Tests for the chat handler
package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/docqa/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatHandler_HandleChat(t *testing.T) {
	store := newTestStore()
	doc, _ := store.Save(models.Document{Name: "notes.pdf", Content: "The sky is blue."})

	tests := []struct {
		name       string
		body       string
		answerErr  error
		wantStatus int
		wantBody   string
		errMessage string
	}{
		{
			name:       "answers question",
			body:       `{"question":"  What colour is the sky? ","fileId":"` + doc.ID + `"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"answer":"blue"}`,
		},
		{
			name:       "blank question",
			body:       `{"question":"   ","fileId":"` + doc.ID + `"}`,
			wantStatus: http.StatusBadRequest,
			errMessage: MsgQuestionRequired,
		},
		{
			name:       "missing file id",
			body:       `{"question":"why?"}`,
			wantStatus: http.StatusBadRequest,
			errMessage: MsgNoFile,
		},
		{
			name:       "unknown file id",
			body:       `{"question":"why?","fileId":"gone"}`,
			wantStatus: http.StatusNotFound,
			errMessage: MsgDocumentNotFound,
		},
		{
			name:       "invalid json",
			body:       `{"question":`,
			wantStatus: http.StatusBadRequest,
			errMessage: MsgInvalidBody,
		},
		{
			name:       "answerer failure",
			body:       `{"question":"why?","fileId":"` + doc.ID + `"}`,
			answerErr:  errors.New("model unavailable"),
			wantStatus: http.StatusBadGateway,
			errMessage: MsgAnswerFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answerer := &stubAnswerer{reply: "blue", err: tt.answerErr}
			handler := NewChatHandler(store, answerer, 0)

			req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(req, rec)

			err := handler.HandleChat(c)

			if tt.errMessage != "" {
				apiErr, ok := err.(*APIError)
				require.True(t, ok, "expected APIError, got %T", err)
				assert.Equal(t, tt.wantStatus, apiErr.Status)
				assert.Equal(t, tt.errMessage, apiErr.Message)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, "What colour is the sky?", answerer.question)
			assert.Equal(t, doc.ID, answerer.docID)
		})
	}
}
