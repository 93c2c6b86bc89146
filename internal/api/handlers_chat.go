// handlers_chat.go - Question answering handler
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/docqa/backend/internal/answer"
	"github.com/docqa/backend/internal/models"
	"github.com/docqa/backend/internal/storage"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// DefaultAnswerTimeout bounds a single answerer call
const DefaultAnswerTimeout = 60 * time.Second

// ChatHandlerImpl implements the ChatHandler interface
type ChatHandlerImpl struct {
	store    storage.Store
	answerer answer.Answerer
	timeout  time.Duration
	upgrader websocket.Upgrader
}

// NewChatHandler creates a new chat handler instance
func NewChatHandler(store storage.Store, answerer answer.Answerer, timeout time.Duration) ChatHandler {
	if timeout <= 0 {
		timeout = DefaultAnswerTimeout
	}
	return &ChatHandlerImpl{
		store:    store,
		answerer: answerer,
		timeout:  timeout,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 16 * 1024,
		},
	}
}

// HandleChat answers {question, fileId} with {answer}
func (h *ChatHandlerImpl) HandleChat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError(MsgInvalidBody, err)
	}

	reply, err := h.answer(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.ChatResponse{Answer: reply})
}

// answer resolves the document and asks the answerer. Errors are *APIError.
func (h *ChatHandlerImpl) answer(ctx context.Context, req chatRequest) (string, error) {
	if err := req.validate(); err != nil {
		return "", err
	}
	question := strings.TrimSpace(req.Question)

	doc, err := h.store.Get(req.FileID)
	if err != nil {
		return "", NewNotFoundError(MsgDocumentNotFound)
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	reply, err := h.answerer.Answer(ctx, doc, question)
	if err != nil {
		fmt.Printf("[Chat %s] Answerer %s failed: %v\n", shortID(doc.ID), h.answerer.Name(), err)
		return "", NewBadGatewayError(MsgAnswerFailed, err)
	}

	fmt.Printf("[Chat %s] Answered via %s in %v\n", shortID(doc.ID), h.answerer.Name(), time.Since(start).Round(time.Millisecond))
	return reply, nil
}

// Request types

type chatRequest models.ChatRequest

func (r *chatRequest) validate() error {
	if strings.TrimSpace(r.Question) == "" {
		return NewValidationError(MsgQuestionRequired)
	}
	if r.FileID == "" {
		return NewValidationError(MsgNoFile)
	}
	return nil
}
