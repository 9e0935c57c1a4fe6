package contract

import (
	"context"

	"spacebio-be/pkg/store"
)

// ChatSessionRepository is the durable side of conversations. The in-memory
// session repository serves the hot path; this one survives restarts.
type ChatSessionRepository interface {
	// Upsert writes the full session, replacing any previous copy.
	Upsert(ctx context.Context, session *store.Session) error
	FindOne(ctx context.Context, id string) (*store.Session, error)
}
