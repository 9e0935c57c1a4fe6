package ai

import (
	"errors"
	"fmt"
)

// ErrNoGroundingContext is returned by Synthesize when the caller passes no
// context blocks. Synthesis of existing sources is meaningless without them,
// so this fails fast before any network call.
var ErrNoGroundingContext = errors.New("synthesis requires at least one grounding context block")

// AllProvidersFailed reports that both the primary and the fallback backend
// failed for one call. Surfaced to callers as a retryable-later failure.
type AllProvidersFailed struct {
	Primary  error
	Fallback error
}

func (e *AllProvidersFailed) Error() string {
	return fmt.Sprintf("all AI providers failed. Primary: %v, Fallback: %v", e.Primary, e.Fallback)
}
