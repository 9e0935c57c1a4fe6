package entity

import (
	"time"

	"github.com/google/uuid"
)

type GeneratedArticle struct {
	Id                uuid.UUID
	Title             string
	Content           string
	Topic             string
	ArticleType       string // review, research, protocol
	Length            string // short, medium, long
	Style             string // academic, executive, technical
	SourceCount       int
	GenerationSeconds float64
	CreatedAt         time.Time
}
