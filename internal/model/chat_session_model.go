package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatTurn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatSession is the durable copy of a conversation. The id comes from the
// caller-facing session, not from the database.
type ChatSession struct {
	Id        uuid.UUID                     `gorm:"type:uuid;primaryKey"`
	Messages  datatypes.JSONSlice[ChatTurn] `gorm:"type:jsonb"`
	CreatedAt time.Time                     `gorm:"autoCreateTime"`
	UpdatedAt time.Time
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
