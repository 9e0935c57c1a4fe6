package model

import (
	"time"

	"github.com/google/uuid"
)

type SearchQuery struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	QueryText    string    `gorm:"type:text;not null;index"`
	ResultsCount int       `gorm:"default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
}

func (SearchQuery) TableName() string {
	return "search_queries"
}
