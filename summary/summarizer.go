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
	"github.com/poiesic/instructgen/core"
	"github.com/poiesic/instructgen/enrich"
)

// mockSummary is the fixed placeholder assigned in mock mode.
const mockSummary = "This is a mock summary"

// Config holds configuration for the document summarizer.
type Config struct {
	// MaxCharacters is the summary length budget passed to the model.
	MaxCharacters int

	// Concurrency is the maximum number of concurrent summarization calls.
	Concurrency int

	// FirstPassDelay and RetryPassDelay pace the two engine phases.
	FirstPassDelay time.Duration
	RetryPassDelay time.Duration

	// Mock skips the external call and assigns a fixed placeholder summary
	// with no pacing.
	Mock bool
}

// DefaultConfig returns a config tuned for hosted model APIs.
func DefaultConfig() *Config {
	return &Config{
		MaxCharacters:  256,
		Concurrency:    10,
		FirstPassDelay: 7 * time.Second,
		RetryPassDelay: 20 * time.Second,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.MaxCharacters <= 0 {
		return ErrInvalidMaxCharacters
	}
	return nil
}

// Summarizer generates bounded-length markdown TL;DR summaries for documents.
type Summarizer struct {
	completer ai.Completer
	config    *Config
	engine    *enrich.Engine[*core.Document]
	logger    *slog.Logger
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Summarizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSummarizer creates a document summarizer.
func NewSummarizer(completer ai.Completer, config *Config, opts ...Option) (*Summarizer, error) {
	if completer == nil {
		return nil, ErrCompleterRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &Summarizer{
		completer: completer,
		config:    config,
		logger:    slog.Default().With("component", "summarizer"),
	}
	for _, opt := range opts {
		opt(s)
	}

	engine, err := enrich.New[*core.Document](engineConfig(config.Concurrency, config.FirstPassDelay, config.RetryPassDelay, config.Mock),
		enrich.WithLogger[*core.Document](s.logger))
	if err != nil {
		return nil, err
	}
	s.engine = engine

	return s, nil
}

// SummarizeAll summarizes a batch of documents at the given generation
// temperature. Documents failing both engine phases are reported as dropped.
func (s *Summarizer) SummarizeAll(ctx context.Context, documents []*core.Document, temperature float64) (*enrich.Report[*core.Document], error) {
	s.logger.Debug("summarizing documents",
		"count", len(documents),
		"temperature", temperature,
		"mock", s.config.Mock)
	return s.engine.Run(ctx, documents, s.transform(temperature))
}

// Summarize is the single-document path.
func (s *Summarizer) Summarize(ctx context.Context, doc *core.Document, temperature float64) (*core.Document, error) {
	return s.engine.RunOne(ctx, doc, s.transform(temperature))
}

func (s *Summarizer) transform(temperature float64) enrich.Transform[*core.Document] {
	return func(ctx context.Context, doc *core.Document) (*core.Document, error) {
		if s.config.Mock {
			return doc.WithSummary(mockSummary), nil
		}

		prompt := fmt.Sprintf(summaryPromptTemplate, doc.Content, s.config.MaxCharacters)
		reply, err := s.completer.Complete(ctx, prompt, ai.WithTemperature(temperature))
		if err != nil {
			return doc, fmt.Errorf("summarize document %s: %w", doc.ID, err)
		}
		if strings.TrimSpace(reply) == "" {
			return doc, fmt.Errorf("%w: document %s", ErrEmptySummary, doc.ID)
		}
		return doc.WithSummary(reply), nil
	}
}

// engineConfig builds the engine configuration shared by the summarization
// policies; mock mode zeroes the pacing so no delay occurs.
func engineConfig(concurrency int, firstPass, retryPass time.Duration, mock bool) *enrich.Config {
	cfg := &enrich.Config{
		Concurrency:    concurrency,
		FirstPassDelay: firstPass,
		RetryPassDelay: retryPass,
	}
	if mock {
		cfg.FirstPassDelay = 0
		cfg.RetryPassDelay = 0
	}
	return cfg
}
