package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Article struct {
	Id              uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title           string                      `gorm:"type:text;not null"`
	Abstract        string                      `gorm:"type:text"`
	PmcId           string                      `gorm:"type:varchar(50);uniqueIndex"`
	Url             string                      `gorm:"type:varchar(500)"`
	Authors         datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Keywords        datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Content         string                      `gorm:"type:text"`
	PublicationYear *int
	ViewsCount      int       `gorm:"default:0"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt       *time.Time
}

func (Article) TableName() string {
	return "articles"
}
