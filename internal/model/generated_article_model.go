package model

import (
	"time"

	"github.com/google/uuid"
)

type GeneratedArticle struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title             string    `gorm:"type:text;not null"`
	Content           string    `gorm:"type:text;not null"`
	Topic             string    `gorm:"type:varchar(500);not null"`
	ArticleType       string    `gorm:"type:varchar(50)"`
	Length            string    `gorm:"type:varchar(20)"`
	Style             string    `gorm:"type:varchar(50)"`
	SourceCount       int       `gorm:"default:0"`
	GenerationSeconds float64
	CreatedAt         time.Time `gorm:"autoCreateTime;index"`
}

func (GeneratedArticle) TableName() string {
	return "generated_articles"
}
