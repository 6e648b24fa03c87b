package llm

import (
	"context"
	"errors"
	"fmt"
)

// Completer abstracts LLM providers for text completion.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Sentinel errors classifying upstream failures. Handlers map these to
// HTTP statuses in one place.
var (
	// ErrNotConfigured means no API key is configured.
	ErrNotConfigured = errors.New("llm: provider not configured")
	// ErrEmptyCompletion means the provider returned no usable content.
	ErrEmptyCompletion = errors.New("llm: empty completion")
	// ErrInvalidCredentials means the provider rejected the API key.
	ErrInvalidCredentials = errors.New("llm: invalid credentials")
	// ErrRateLimited means the provider throttled the request.
	ErrRateLimited = errors.New("llm: rate limited")
	// ErrBadRequest means the provider rejected the request payload.
	ErrBadRequest = errors.New("llm: bad request")
	// ErrUnreachable means the provider could not be reached.
	ErrUnreachable = errors.New("llm: provider unreachable")
)

// UpstreamError carries a provider HTTP status not covered by the sentinels.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("llm: upstream status %d: %s", e.StatusCode, e.Body)
}
