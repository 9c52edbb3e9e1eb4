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


package quality

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/instructgen/ai"
	"github.com/poiesic/instructgen/core"
	"github.com/poiesic/instructgen/enrich"
)

// mockScore is the fixed placeholder assigned in mock mode.
const mockScore = 0.5

// ScorerConfig holds configuration for the model-based scorer.
type ScorerConfig struct {
	// Concurrency is the maximum number of concurrent scoring calls.
	Concurrency int

	// FirstPassDelay and RetryPassDelay pace the two engine phases.
	FirstPassDelay time.Duration
	RetryPassDelay time.Duration

	// Mock skips the external call entirely and assigns a fixed score with
	// no pacing, for validating pipelines without network access.
	Mock bool
}

// DefaultScorerConfig returns a config tuned for hosted model APIs.
func DefaultScorerConfig() *ScorerConfig {
	return &ScorerConfig{
		Concurrency:    10,
		FirstPassDelay: 7 * time.Second,
		RetryPassDelay: 20 * time.Second,
	}
}

// Scorer evaluates document content quality with a language model.
// Only documents the heuristic scorer left unscored should reach it.
type Scorer struct {
	completer ai.Completer
	config    *ScorerConfig
	engine    *enrich.Engine[*core.Document]
	logger    *slog.Logger
}

// ScorerOption configures a Scorer.
type ScorerOption func(*Scorer)

// WithScorerLogger sets a custom logger. Default is slog.Default().
func WithScorerLogger(logger *slog.Logger) ScorerOption {
	return func(s *Scorer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScorer creates a model-based quality scorer.
func NewScorer(completer ai.Completer, config *ScorerConfig, opts ...ScorerOption) (*Scorer, error) {
	if completer == nil {
		return nil, ErrCompleterRequired
	}
	if config == nil {
		config = DefaultScorerConfig()
	}

	s := &Scorer{
		completer: completer,
		config:    config,
		logger:    slog.Default().With("component", "quality-scorer"),
	}
	for _, opt := range opts {
		opt(s)
	}

	engineConfig := &enrich.Config{
		Concurrency:    config.Concurrency,
		FirstPassDelay: config.FirstPassDelay,
		RetryPassDelay: config.RetryPassDelay,
	}
	if config.Mock {
		engineConfig.FirstPassDelay = 0
		engineConfig.RetryPassDelay = 0
	}

	engine, err := enrich.New[*core.Document](engineConfig, enrich.WithLogger[*core.Document](s.logger))
	if err != nil {
		return nil, err
	}
	s.engine = engine

	return s, nil
}

// ScoreAll scores a batch of documents through the two-phase engine.
// Documents failing both phases are reported as dropped, not returned
// scored; callers must expect fewer outputs than inputs.
func (s *Scorer) ScoreAll(ctx context.Context, documents []*core.Document) (*enrich.Report[*core.Document], error) {
	s.logger.Debug("scoring documents", "count", len(documents), "mock", s.config.Mock)
	return s.engine.Run(ctx, documents, s.score)
}

// Score is the single-document path.
func (s *Scorer) Score(ctx context.Context, doc *core.Document) (*core.Document, error) {
	return s.engine.RunOne(ctx, doc, s.score)
}

func (s *Scorer) score(ctx context.Context, doc *core.Document) (*core.Document, error) {
	if s.config.Mock {
		return doc.WithQualityScore(mockScore), nil
	}

	prompt := fmt.Sprintf(qualityPromptTemplate, doc.Content)
	reply, err := s.completer.Complete(ctx, prompt, ai.WithJSONMode())
	if err != nil {
		return doc, fmt.Errorf("score document %s: %w", doc.ID, err)
	}

	score, err := parseScore(reply)
	if err != nil {
		return doc, fmt.Errorf("document %s: %w", doc.ID, err)
	}
	return doc.WithQualityScore(score), nil
}
