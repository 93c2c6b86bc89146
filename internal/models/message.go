package models

import "time"

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is a single transcript entry.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	Pending   bool      `json:"pending,omitempty"` // user turn still waiting for its reply
}

// NewChatMessage creates a message stamped with the current time.
func NewChatMessage(id string, role Role, text string) ChatMessage {
	return ChatMessage{
		ID:        id,
		Role:      role,
		Text:      text,
		CreatedAt: time.Now(),
	}
}
