package dto

import "github.com/google/uuid"

type GenerateArticleRequest struct {
	Topic       string `json:"topic"`
	ArticleType string `json:"type"`   // review, research, protocol
	Length      string `json:"length"` // short, medium, long
	Style       string `json:"style"`  // academic, executive, technical
}

type GenerateArticleResponse struct {
	Id                uuid.UUID `json:"id"`
	Title             string    `json:"title"`
	Content           string    `json:"content"`
	SourceCount       int       `json:"source_count"`
	GenerationSeconds float64   `json:"generation_seconds"`
	// OffTopic marks a gate redirect; Redirect carries the fixed copy.
	OffTopic bool   `json:"off_topic"`
	Redirect string `json:"redirect,omitempty"`
}

type SummarizeArticleRequest struct {
	ArticleId   uuid.UUID `json:"article_id"`
	SummaryType string    `json:"type"` // concise or detailed
}

type SummarizeArticleResponse struct {
	ArticleId uuid.UUID `json:"article_id"`
	Summary   string    `json:"summary"`
}
