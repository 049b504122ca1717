package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"strings"
	"time"

	"resume-coach/internal/llm"
)

const llmRetryBaseDelay = 300 * time.Millisecond

// retryingLLM retries a completion once on a transient failure before
// surfacing the error.
type retryingLLM struct {
	base llm.Client
}

func (r retryingLLM) Complete(ctx context.Context, p llm.Prompt) (json.RawMessage, error) {
	resp, err := r.base.Complete(ctx, p)
	if err == nil || !shouldRetryLLM(err) {
		return resp, err
	}

	log.Printf("llm retry attempt=1 error=%s", err)
	select {
	case <-time.After(llmRetryBaseDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return r.base.Complete(ctx, p)
}

func shouldRetryLLM(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "timeout") && (strings.Contains(msg, "openai") || strings.Contains(msg, "llm") || strings.Contains(msg, "client.timeout")) {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") {
		return true
	}

	return false
}
