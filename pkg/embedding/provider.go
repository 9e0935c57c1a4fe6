package embedding

import (
	"context"
	"fmt"
)

// MaxInputChars is the input budget per embedding call. Longer text is
// truncated before encoding to bound latency and cost, and to avoid
// surprise truncation on the backend side.
const MaxInputChars = 8000

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}

// Error wraps a backend failure (network, quota, malformed response).
type Error struct {
	Backend string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("embedding %s: %s: %v", e.Backend, e.Message, e.Err)
	}
	return fmt.Sprintf("embedding %s: %s", e.Backend, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Truncate enforces MaxInputChars.
func Truncate(text string) string {
	if len(text) > MaxInputChars {
		return text[:MaxInputChars]
	}
	return text
}
