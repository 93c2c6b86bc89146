package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/docqa/backend/internal/models"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// WebSocket message types for the chat channel
const (
	// Client -> Server messages
	MsgTypeAsk  = "chat:ask"
	MsgTypePing = "ping"

	// Server -> Client messages
	MsgTypeConnected = "connected"
	MsgTypeAnswer    = "chat:answer"
	MsgTypeError     = "error"
	MsgTypePong      = "pong"
)

// WSMessage is the envelope for every frame in both directions.
// ID is chosen by the client and echoed on the reply.
type WSMessage struct {
	Type      string          `json:"type"`
	ID        string          `json:"id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// WSErrorPayload carries the same fields as the HTTP error body
type WSErrorPayload struct {
	Message string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// HandleChatSocket upgrades to a WebSocket that answers chat:ask frames.
// Frames are handled one at a time, so a connection never has more than
// one question in flight.
func (h *ChatHandlerImpl) HandleChatSocket(c echo.Context) error {
	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	fmt.Println("[WebSocket] Chat client connected")
	h.sendMessage(ws, WSMessage{Type: MsgTypeConnected})

	for {
		var msg WSMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				fmt.Printf("[WebSocket] Connection error: %v\n", err)
			}
			break
		}

		switch msg.Type {
		case MsgTypePing:
			h.sendMessage(ws, WSMessage{Type: MsgTypePong, ID: msg.ID})
		case MsgTypeAsk:
			h.handleAsk(c, ws, msg)
		default:
			h.sendError(ws, msg.ID, NewValidationError("Unknown message type: "+msg.Type))
		}
	}

	fmt.Println("[WebSocket] Chat client disconnected")
	return nil
}

func (h *ChatHandlerImpl) handleAsk(c echo.Context, ws *websocket.Conn, msg WSMessage) {
	var req chatRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		h.sendError(ws, msg.ID, NewBadRequestError(MsgInvalidBody, err))
		return
	}

	reply, err := h.answer(c.Request().Context(), req)
	if err != nil {
		h.sendError(ws, msg.ID, err)
		return
	}

	h.sendMessage(ws, WSMessage{
		Type:    MsgTypeAnswer,
		ID:      msg.ID,
		Payload: mustJSON(models.ChatResponse{Answer: reply}),
	})
}

func (h *ChatHandlerImpl) sendMessage(ws *websocket.Conn, msg WSMessage) {
	msg.Timestamp = time.Now().UnixMilli()
	if err := ws.WriteJSON(msg); err != nil {
		fmt.Printf("[WebSocket] Failed to send message: %v\n", err)
	}
}

func (h *ChatHandlerImpl) sendError(ws *websocket.Conn, id string, err error) {
	payload := WSErrorPayload{Message: MsgUnexpectedFailure, Code: "INTERNAL_ERROR"}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		payload = WSErrorPayload{Message: apiErr.Message, Code: apiErr.Code}
	}
	h.sendMessage(ws, WSMessage{Type: MsgTypeError, ID: id, Payload: mustJSON(payload)})
}

func mustJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return data
}
