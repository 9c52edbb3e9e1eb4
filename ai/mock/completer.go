package mock

import (
	"context"
	"sync"

	"github.com/poiesic/instructgen/ai"
)

// DefaultReply is the fixed placeholder returned by a mock completer with no
// injected behavior.
const DefaultReply = "This is a mock reply"

// Completer is a test double for ai.Completer.
// It allows custom behavior injection via a function field and records every
// call for assertions.
type Completer struct {
	// CompleteFunc is called by Complete if set.
	// If nil, Complete returns the configured reply immediately.
	CompleteFunc func(ctx context.Context, prompt string, opts ...ai.CompleteOption) (string, error)

	mu      sync.Mutex
	reply   string
	prompts []string
}

// NewCompleter creates a mock completer returning DefaultReply.
// Note: returns the concrete type so tests can assert on recorded calls.
func NewCompleter() *Completer {
	return &Completer{reply: DefaultReply}
}

// WithReply sets the fixed reply and returns the completer for chaining.
func (c *Completer) WithReply(reply string) *Completer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reply = reply
	return c
}

// Complete records the prompt and returns the injected or fixed reply.
func (c *Completer) Complete(ctx context.Context, prompt string, opts ...ai.CompleteOption) (string, error) {
	c.mu.Lock()
	c.prompts = append(c.prompts, prompt)
	reply := c.reply
	c.mu.Unlock()

	if c.CompleteFunc != nil {
		return c.CompleteFunc(ctx, prompt, opts...)
	}
	return reply, nil
}

// CallCount returns the number of Complete calls made so far.
func (c *Completer) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.prompts)
}

// Prompts returns a copy of the prompts received so far, in call order.
func (c *Completer) Prompts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	prompts := make([]string, len(c.prompts))
	copy(prompts, c.prompts)
	return prompts
}

// Reset clears recorded calls.
func (c *Completer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompts = nil
}
