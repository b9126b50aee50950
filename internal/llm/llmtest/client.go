// Package llmtest provides a scripted llm.Client double for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonathan/persona-forge/internal/llm"
)

// Client implements llm.Client by delegating every call to Handler.
// All requests are recorded for assertions.
type Client struct {
	// Handler produces the response for each request. Required.
	Handler func(req llm.Request) (string, error)

	mu       sync.Mutex
	requests []llm.Request
}

// Generate delegates to Handler and records the request.
func (c *Client) Generate(ctx context.Context, req llm.Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.record(req)
	if c.Handler == nil {
		return "", fmt.Errorf("llmtest: no handler configured")
	}
	return c.Handler(req)
}

// GenerateStream delegates to Handler, emitting the whole response as one delta.
func (c *Client) GenerateStream(ctx context.Context, req llm.Request, onDelta llm.DeltaFunc) (string, error) {
	text, err := c.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	if onDelta != nil {
		onDelta(text)
	}
	return text, nil
}

// GetModel returns a fixed model name.
func (c *Client) GetModel(tier llm.ModelTier) string { return "test-model" }

// Close is a no-op.
func (c *Client) Close() error { return nil }

// Requests returns a copy of all recorded requests, in call order.
func (c *Client) Requests() []llm.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]llm.Request, len(c.requests))
	copy(out, c.requests)
	return out
}

// CallCount returns the number of recorded requests.
func (c *Client) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

func (c *Client) record(req llm.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)
}
