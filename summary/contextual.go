// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/instructgen/ai"
	"github.com/poiesic/instructgen/enrich"
)

// mockContext is the fixed placeholder blurb assigned in mock mode.
const mockContext = "This is a mock context"

// ContextualConfig holds configuration for the contextual chunk summarizer.
type ContextualConfig struct {
	// MaxCharacters is the blurb length budget passed to the model.
	MaxCharacters int

	// WindowCharacters caps how much of the whole document is shown to the
	// model alongside each chunk.
	WindowCharacters int

	// Concurrency is the maximum number of concurrent chunk calls.
	Concurrency int

	// FirstPassDelay and RetryPassDelay pace the two engine phases.
	FirstPassDelay time.Duration
	RetryPassDelay time.Duration

	// Mock skips the external call and assigns a fixed placeholder blurb
	// with no pacing.
	Mock bool
}

// DefaultContextualConfig returns a config tuned for hosted model APIs.
func DefaultContextualConfig() *ContextualConfig {
	return &ContextualConfig{
		MaxCharacters:    128,
		WindowCharacters: 6000,
		Concurrency:      4,
		FirstPassDelay:   7 * time.Second,
		RetryPassDelay:   20 * time.Second,
	}
}

// Validate checks that the configuration is usable.
func (c *ContextualConfig) Validate() error {
	if c.MaxCharacters <= 0 {
		return ErrInvalidMaxCharacters
	}
	if c.WindowCharacters <= 0 {
		return ErrInvalidWindow
	}
	return nil
}

// contextualChunk carries one chunk through the engine. The engine works on
// pointers so the blurb written by the transform survives partitioning.
type contextualChunk struct {
	index int
	chunk string
	blurb string
}

// ContextualSummarizer produces a short situating blurb per chunk, generated
// from the chunk plus a window of the whole document, and prepends it to the
// chunk. Chunks whose blurb generation fails both passes keep their original
// text.
type ContextualSummarizer struct {
	completer ai.Completer
	config    *ContextualConfig
	engine    *enrich.Engine[*contextualChunk]
	logger    *slog.Logger
}

// ContextualOption configures a ContextualSummarizer.
type ContextualOption func(*ContextualSummarizer)

// WithContextualLogger sets a custom logger. Default is slog.Default().
func WithContextualLogger(logger *slog.Logger) ContextualOption {
	return func(s *ContextualSummarizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewContextualSummarizer creates a contextual chunk summarizer.
func NewContextualSummarizer(completer ai.Completer, config *ContextualConfig, opts ...ContextualOption) (*ContextualSummarizer, error) {
	if completer == nil {
		return nil, ErrCompleterRequired
	}
	if config == nil {
		config = DefaultContextualConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &ContextualSummarizer{
		completer: completer,
		config:    config,
		logger:    slog.Default().With("component", "contextual_summarizer"),
	}
	for _, opt := range opts {
		opt(s)
	}

	engine, err := enrich.New[*contextualChunk](engineConfig(config.Concurrency, config.FirstPassDelay, config.RetryPassDelay, config.Mock),
		enrich.WithLogger[*contextualChunk](s.logger))
	if err != nil {
		return nil, err
	}
	s.engine = engine

	return s, nil
}

// SummarizeChunks returns one string per input chunk, in input order. Chunks
// that received a blurb come back as "blurb\n\nchunk"; chunks that failed both
// passes come back unchanged.
func (s *ContextualSummarizer) SummarizeChunks(ctx context.Context, content string, chunks []string) ([]string, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	window := content
	if len(window) > s.config.WindowCharacters {
		window = window[:s.config.WindowCharacters]
	}

	items := make([]*contextualChunk, len(chunks))
	for i, chunk := range chunks {
		items[i] = &contextualChunk{index: i, chunk: chunk}
	}

	s.logger.Debug("contextualizing chunks",
		"count", len(chunks),
		"window_chars", len(window),
		"mock", s.config.Mock)

	report, err := s.engine.Run(ctx, items, s.transform(window))
	if err != nil {
		return nil, err
	}

	out := make([]string, len(chunks))
	copy(out, chunks)
	for _, item := range report.Enriched {
		out[item.index] = item.blurb + "\n\n" + item.chunk
	}
	return out, nil
}

func (s *ContextualSummarizer) transform(window string) enrich.Transform[*contextualChunk] {
	return func(ctx context.Context, item *contextualChunk) (*contextualChunk, error) {
		if s.config.Mock {
			item.blurb = mockContext
			return item, nil
		}

		prompt := fmt.Sprintf(contextualPromptTemplate, window, item.chunk, s.config.MaxCharacters)
		reply, err := s.completer.Complete(ctx, prompt)
		if err != nil {
			return item, fmt.Errorf("contextualize chunk %d: %w", item.index, err)
		}
		reply = strings.TrimSpace(reply)
		if reply == "" {
			return item, fmt.Errorf("%w: chunk %d", ErrEmptySummary, item.index)
		}
		item.blurb = reply
		return item, nil
	}
}
