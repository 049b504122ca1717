package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts the inference provider. Complete must return the raw
// JSON object produced by the model.
type Client interface {
	Complete(ctx context.Context, p Prompt) (json.RawMessage, error)
}

// Prompt is one structured-completion request.
type Prompt struct {
	System string
	User   string
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm provider not configured")

// PlaceholderClient is a stub implementation used when no provider is wired.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, p Prompt) (json.RawMessage, error) {
	_ = ctx
	_ = p
	return nil, ErrNotConfigured
}
