package entity

import (
	"time"

	"github.com/google/uuid"
)

type ArticleEmbedding struct {
	Id        uuid.UUID
	ArticleId uuid.UUID
	Values    []float32
	CreatedAt time.Time
	UpdatedAt *time.Time
}
