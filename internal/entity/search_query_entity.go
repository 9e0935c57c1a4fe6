package entity

import (
	"time"

	"github.com/google/uuid"
)

// SearchQuery tracks executed searches for analytics.
type SearchQuery struct {
	Id           uuid.UUID
	QueryText    string
	ResultsCount int
	CreatedAt    time.Time
}
