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

package dataset

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/instructgen/core"
	"github.com/poiesic/instructgen/enrich"
)

const (
	// splitSeed reseeds the shuffle so repeated runs over the same corpus
	// produce the same dataset.
	splitSeed int64 = 42

	// minRecommendedDocuments is the corpus size below which the split
	// quality becomes unreliable.
	minRecommendedDocuments = 10

	// temperatureSpread is the exclusive upper bound of the augmentation
	// temperature ramp.
	temperatureSpread = 0.5
)

// DocumentSummarizer is the summarization dependency of the generator.
// summary.Summarizer satisfies it.
type DocumentSummarizer interface {
	SummarizeAll(ctx context.Context, documents []*core.Document, temperature float64) (*enrich.Report[*core.Document], error)
}

// Config holds configuration for the dataset generator.
type Config struct {
	// SummaryMaxCharacters is the summary budget the summarizer was built
	// with; the post-filter derives its bound from it.
	SummaryMaxCharacters int

	// ValSplitRatio and TestSplitRatio size the validation and test splits.
	ValSplitRatio  float64
	TestSplitRatio float64

	// MinDocumentLength is the pre-filter content length floor.
	MinDocumentLength int

	// MinQualityScore is the pre-filter score floor. Unscored documents
	// pass.
	MinQualityScore float64

	// SummaryLengthFactor bounds accepted summaries at
	// SummaryMaxCharacters * SummaryLengthFactor.
	SummaryLengthFactor int

	// AugmentationLoops is the number of independent summarization passes.
	AugmentationLoops int
}

// DefaultConfig returns the standard generation settings.
func DefaultConfig() *Config {
	return &Config{
		SummaryMaxCharacters: 256,
		ValSplitRatio:        0.1,
		TestSplitRatio:       0.1,
		MinDocumentLength:    50,
		MinQualityScore:      0.3,
		SummaryLengthFactor:  2,
		AugmentationLoops:    4,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.SummaryMaxCharacters <= 0 {
		return fmt.Errorf("%w: summary max characters must be positive", ErrInvalidConfig)
	}
	if c.MinDocumentLength < 0 {
		return fmt.Errorf("%w: min document length must be non-negative", ErrInvalidConfig)
	}
	if c.SummaryLengthFactor <= 0 {
		return fmt.Errorf("%w: summary length factor must be positive", ErrInvalidConfig)
	}
	if c.AugmentationLoops <= 0 {
		return fmt.Errorf("%w: augmentation loops must be positive", ErrInvalidConfig)
	}
	return nil
}

// Generator builds instruct datasets from enriched documents.
type Generator struct {
	summarizer DocumentSummarizer
	config     *Config
	logger     *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a dataset generator.
func New(summarizer DocumentSummarizer, config *Config, opts ...Option) (*Generator, error) {
	if summarizer == nil {
		return nil, ErrSummarizerRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{
		summarizer: summarizer,
		config:     config,
		logger:     slog.Default().With("component", "dataset_generator"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate runs the full generation pipeline: pre-filter, augmented
// summarization, post-filter, projection to samples, deterministic split.
func (g *Generator) Generate(ctx context.Context, documents []*core.Document) (*core.InstructDataset, error) {
	if len(documents) < minRecommendedDocuments {
		g.logger.Warn("small document corpus, split quality may suffer",
			"count", len(documents),
			"recommended_min", minRecommendedDocuments)
	}

	filtered := ApplyFilters(documents, g.preFilters()...)
	g.logger.Info("pre-filter applied",
		"input", len(documents),
		"kept", len(filtered))

	summarized, err := g.augmentedSummarization(ctx, filtered)
	if err != nil {
		return nil, err
	}

	kept := ApplyFilters(summarized, g.postFilters()...)
	g.logger.Info("post-filter applied",
		"input", len(summarized),
		"kept", len(kept))

	if len(kept) == 0 {
		return nil, ErrNoSamples
	}

	samples, err := toSamples(kept)
	if err != nil {
		return nil, err
	}

	seed := splitSeed
	ds, err := core.FromSamples(samples, g.config.ValSplitRatio, g.config.TestSplitRatio, &seed)
	if err != nil {
		return nil, err
	}

	g.logger.Info("dataset generated",
		"train", len(ds.Train),
		"validation", len(ds.Validation),
		"test", len(ds.Test))
	return ds, nil
}

// augmentedSummarization runs the configured number of independent
// summarization passes, each at a higher temperature, over fresh deep copies
// of the filtered documents. A single source document may contribute one
// summarized copy per pass.
func (g *Generator) augmentedSummarization(ctx context.Context, documents []*core.Document) ([]*core.Document, error) {
	loops := g.config.AugmentationLoops
	var accumulated []*core.Document

	for i := 0; i < loops; i++ {
		temperature := float64(i) * temperatureSpread / float64(loops)
		batch := core.CloneAll(documents)

		report, err := g.summarizer.SummarizeAll(ctx, batch, temperature)
		if err != nil {
			return nil, fmt.Errorf("augmentation pass %d: %w", i, err)
		}

		for _, doc := range report.Enriched {
			if doc.Summary != nil {
				accumulated = append(accumulated, doc)
			}
		}
		g.logger.Debug("augmentation pass finished",
			"pass", i,
			"temperature", temperature,
			"summarized", len(report.Enriched),
			"dropped", len(report.Dropped))
	}
	return accumulated, nil
}

func (g *Generator) preFilters() []Filter {
	return []Filter{
		MinLengthFilter(g.config.MinDocumentLength),
		MinQualityFilter(g.config.MinQualityScore),
	}
}

func (g *Generator) postFilters() []Filter {
	return []Filter{
		SummaryLengthFilter(g.config.SummaryMaxCharacters * g.config.SummaryLengthFactor),
	}
}

// toSamples projects summarized documents into (instruction, answer) pairs.
func toSamples(documents []*core.Document) ([]core.InstructDatasetSample, error) {
	samples := make([]core.InstructDatasetSample, 0, len(documents))
	for _, doc := range documents {
		if doc.Summary == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingSummary, doc.ID)
		}
		samples = append(samples, core.InstructDatasetSample{
			Instruction: doc.Content,
			Answer:      *doc.Summary,
		})
	}
	return samples, nil
}
