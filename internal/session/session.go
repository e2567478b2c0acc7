package session

import (
	"sync"
	"time"

	"exmplr-agent/internal/trials"
)

// Role describes who authored a message. There are only two roles: the user
// and the assistant.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry. The transcript is append-only for the
// lifetime of a session.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Session owns one conversation: the transcript and the single mutable
// Filter Parameter Set. Sessions never share state with each other; the
// embedded mutex only guards against concurrent requests for the same
// session ID. Callers must hold the lock across a whole turn so the
// extract-merge-search sequence stays linear.
type Session struct {
	sync.Mutex

	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Messages  []Message     `json:"messages"`
	Params    trials.Params `json:"params"`
}

// Append adds a transcript entry. The caller must hold the session lock.
func (s *Session) Append(role Role, content string) {
	s.Messages = append(s.Messages, Message{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
}

// Window returns the most recent n transcript messages, or the full
// transcript when n is zero or exceeds its length. The caller must hold the
// session lock.
func (s *Session) Window(n int) []Message {
	if n <= 0 || n >= len(s.Messages) {
		return s.Messages
	}
	return s.Messages[len(s.Messages)-n:]
}
