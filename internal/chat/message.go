package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Status is the delivery state of a user-authored message.
// Assistant messages carry no status.
type Status string

const (
	// StatusSending marks an optimistically inserted message whose round
	// trip has not completed. Content may still be replaced in this state.
	StatusSending Status = "sending"
	StatusSent    Status = "sent"
	StatusError   Status = "error"
)

// Message is a single chat message. ID and Role are fixed at creation.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Status    Status    `json:"status,omitempty"`
	HasAudio  bool      `json:"has_audio,omitempty"`
	AudioRef  string    `json:"audio_ref,omitempty"`
}

// NewUserMessage constructs a user message in the sending state.
func NewUserMessage(content string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      RoleUser,
		Content:   content,
		CreatedAt: time.Now(),
		Status:    StatusSending,
	}
}

// NewAssistantMessage constructs an assistant message.
func NewAssistantMessage(content string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      RoleAssistant,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// WithStatus returns a copy of the message stamped with the given status.
func (m Message) WithStatus(s Status) Message {
	m.Status = s
	return m
}

// Conversation is an ordered, chronological message sequence plus the
// metadata the browser list renders. Sequence order is the sole ordering
// authority.
type Conversation struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	LastActivity time.Time `json:"last_activity"`
	Pinned       bool      `json:"pinned"`
	Preview      string    `json:"preview"`
	Messages     []Message `json:"messages"`
}

// Matches reports whether the query is a case-insensitive substring of the
// conversation's title or preview. An empty query matches everything.
func (c *Conversation) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	return q == "" ||
		strings.Contains(strings.ToLower(c.Title), q) ||
		strings.Contains(strings.ToLower(c.Preview), q)
}
