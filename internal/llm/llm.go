// Package llm defines the contract between domain services and the hosted
// language models they prompt.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrEmptyResponse is returned when the model answered without any text.
var ErrEmptyResponse = errors.New("empty response from model")

// Image is an inline image attached to a prompt.
type Image struct {
	MimeType string
	Data     []byte
}

// Request is a single-turn prompt. Requests with an Image are routed to the
// provider's vision model.
type Request struct {
	Prompt    string
	Image     *Image
	MaxTokens int
}

// Client sends a prompt and returns the model's raw text answer.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// APIError is an error reported by the provider in its response body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("model api error (status %d): %s", e.StatusCode, e.Message)
}

type timeoutClient struct {
	next    Client
	timeout time.Duration
}

// WithTimeout bounds every call to next by d. A non-positive d returns next.
func WithTimeout(next Client, d time.Duration) Client {
	if d <= 0 {
		return next
	}
	return &timeoutClient{next: next, timeout: d}
}

func (c *timeoutClient) Complete(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.next.Complete(ctx, req)
}
