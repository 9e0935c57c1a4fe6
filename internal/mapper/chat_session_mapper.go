package mapper

import (
	"spacebio-be/internal/model"
	"spacebio-be/pkg/store"

	"github.com/google/uuid"
)

type ChatSessionMapper struct{}

func NewChatSessionMapper() *ChatSessionMapper {
	return &ChatSessionMapper{}
}

func (m *ChatSessionMapper) ToSession(c *model.ChatSession) *store.Session {
	if c == nil {
		return nil
	}

	turns := make([]store.Turn, len(c.Messages))
	for i, msg := range c.Messages {
		turns[i] = store.Turn{
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
		}
	}

	return &store.Session{
		ID:        c.Id.String(),
		Turns:     turns,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *ChatSessionMapper) ToModel(s *store.Session) (*model.ChatSession, error) {
	if s == nil {
		return nil, nil
	}

	id, err := uuid.Parse(s.ID)
	if err != nil {
		return nil, err
	}

	messages := make([]model.ChatTurn, len(s.Turns))
	for i, turn := range s.Turns {
		messages[i] = model.ChatTurn{
			Role:      turn.Role,
			Content:   turn.Content,
			Timestamp: turn.Timestamp,
		}
	}

	return &model.ChatSession{
		Id:        id,
		Messages:  messages,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}, nil
}
