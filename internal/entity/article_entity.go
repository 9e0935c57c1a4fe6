package entity

import (
	"time"

	"github.com/google/uuid"
)

type Article struct {
	Id              uuid.UUID
	Title           string
	Abstract        string
	PmcId           string
	Url             string
	Authors         []string
	Keywords        []string
	Content         string
	PublicationYear *int
	ViewsCount      int
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// EmbeddingInput is the text the embedding backend sees for this article.
// Title carries the most signal, abstract follows.
func (a *Article) EmbeddingInput() string {
	if a.Abstract == "" {
		return a.Title
	}
	return a.Title + "\n\n" + a.Abstract
}
