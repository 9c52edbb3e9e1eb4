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

package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/instructgen/core"
	"github.com/poiesic/instructgen/crawl"
	"github.com/poiesic/instructgen/enrich"
	"github.com/poiesic/instructgen/quality"
	"github.com/poiesic/instructgen/source"
	"github.com/poiesic/instructgen/storage"
)

// ChildCrawler expands documents through their child URLs.
// crawl.Crawler satisfies it.
type ChildCrawler interface {
	Crawl(ctx context.Context, documents []*core.Document) ([]*core.Document, error)
}

// DocumentScorer scores a batch of documents with the model.
// quality.Scorer satisfies it.
type DocumentScorer interface {
	ScoreAll(ctx context.Context, documents []*core.Document) (*enrich.Report[*core.Document], error)
}

// Pipeline orchestrates document collection and enrichment.
type Pipeline struct {
	source    source.ContentSource
	crawler   ChildCrawler
	scorer    DocumentScorer
	heuristic *quality.HeuristicScorer
	documents storage.DocumentRepository
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPipeline creates an enrichment pipeline.
func NewPipeline(
	contentSource source.ContentSource,
	crawler ChildCrawler,
	scorer DocumentScorer,
	documents storage.DocumentRepository,
	opts ...Option,
) (*Pipeline, error) {
	if contentSource == nil {
		return nil, ErrSourceRequired
	}
	if crawler == nil {
		return nil, ErrCrawlerRequired
	}
	if scorer == nil {
		return nil, ErrScorerRequired
	}
	if documents == nil {
		return nil, ErrRepositoryRequired
	}

	p := &Pipeline{
		source:    contentSource,
		crawler:   crawler,
		scorer:    scorer,
		heuristic: quality.NewHeuristicScorer(),
		documents: documents,
		logger:    slog.Default().With("component", "pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Collect pulls every document of a collection from the content source.
// Documents whose content fetch fails are logged and skipped.
func (p *Pipeline) Collect(ctx context.Context, collectionID string) ([]*core.Document, error) {
	metadata, err := p.source.FetchMetadata(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("fetch metadata for %s: %w", collectionID, err)
	}

	documents := make([]*core.Document, 0, len(metadata))
	for _, meta := range metadata {
		doc, err := p.source.FetchContent(ctx, meta)
		if err != nil {
			p.logger.Warn("skipping document, content fetch failed",
				"id", meta.ID,
				"error", err)
			continue
		}
		documents = append(documents, doc)
	}

	p.logger.Info("collection fetched",
		"collection", collectionID,
		"listed", len(metadata),
		"fetched", len(documents))
	return documents, nil
}

// Enrich expands documents through the crawler, scores them heuristically
// and then with the model, and persists the result. Documents the model
// scorer drops stay in the corpus unscored.
func (p *Pipeline) Enrich(ctx context.Context, documents []*core.Document) ([]*core.Document, error) {
	children, err := p.crawler.Crawl(ctx, documents)
	if err != nil {
		return nil, fmt.Errorf("crawl child urls: %w", err)
	}
	combined := crawl.Union(documents, children)

	p.heuristic.ScoreAll(combined)
	scored, unscored := quality.Partition(combined)

	report, err := p.scorer.ScoreAll(ctx, unscored)
	if err != nil {
		return nil, fmt.Errorf("score documents: %w", err)
	}

	enriched := make([]*core.Document, 0, len(combined))
	enriched = append(enriched, scored...)
	enriched = append(enriched, report.Enriched...)
	enriched = append(enriched, report.Dropped...)

	if err := p.documents.PutDocuments(ctx, enriched...); err != nil {
		return nil, fmt.Errorf("persist documents: %w", err)
	}

	p.logger.Info("enrichment finished",
		"input", len(documents),
		"crawled", len(children),
		"heuristic_scored", len(scored),
		"model_scored", len(report.Enriched),
		"unscored", len(report.Dropped))
	return enriched, nil
}

// Run collects a collection and enriches it in one call.
func (p *Pipeline) Run(ctx context.Context, collectionID string) ([]*core.Document, error) {
	documents, err := p.Collect(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	return p.Enrich(ctx, documents)
}
