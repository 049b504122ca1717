package feedback

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestShouldRetryLLM(t *testing.T) {
	retryable := []error{
		context.DeadlineExceeded,
		errors.New("openai http status 500"),
		errors.New("openai http status 503"),
		errors.New("server_error: overloaded"),
		errors.New("Post \"https://api\": read: connection reset by peer"),
		errors.New("dial tcp: connection refused"),
		errors.New("net/http: TLS handshake timeout"),
		fmt.Errorf("call openai: %w", context.DeadlineExceeded),
	}
	for _, err := range retryable {
		if !shouldRetryLLM(err) {
			t.Fatalf("expected retry for %v", err)
		}
	}

	permanent := []error{
		nil,
		errors.New("openai http status 400"),
		errors.New("openai http status 429"),
		errors.New("invalid api key"),
		context.Canceled,
	}
	for _, err := range permanent {
		if shouldRetryLLM(err) {
			t.Fatalf("expected no retry for %v", err)
		}
	}
}
