package store

import (
	"time"

	"github.com/google/uuid"
)

// Turn is one message in a conversation.
type Turn struct {
	Role      string // "user", "assistant" or "system"
	Content   string
	Timestamp time.Time
}

// Session is an append-only conversation owned by a caller. The core only
// ever reads the most recent turns and appends new ones.
type Session struct {
	ID        string
	Turns     []Turn
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) Append(role, content string) {
	now := time.Now()
	s.Turns = append(s.Turns, Turn{Role: role, Content: content, Timestamp: now})
	s.UpdatedAt = now
}

// Recent returns the last limit turns, oldest first.
func (s *Session) Recent(limit int) []Turn {
	if limit <= 0 || len(s.Turns) <= limit {
		return s.Turns
	}
	return s.Turns[len(s.Turns)-limit:]
}
