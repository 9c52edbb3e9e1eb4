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

package crawl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/instructgen/core"
)

// Config holds configuration for the crawler.
type Config struct {
	// Concurrency is the maximum number of concurrent fetches.
	Concurrency int

	// Pacing is the delay each worker observes after a fetch.
	Pacing time.Duration
}

// DefaultConfig returns a config polite enough for public sites.
func DefaultConfig() *Config {
	return &Config{
		Concurrency: 10,
		Pacing:      500 * time.Millisecond,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.Pacing < 0 {
		return ErrInvalidPacing
	}
	return nil
}

// Crawler turns child URLs into new documents. One fetch per distinct URL
// within a parent; failures are dropped without retry.
type Crawler struct {
	fetcher Fetcher
	config  *Config
	logger  *slog.Logger
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a crawler over the given fetcher.
func New(fetcher Fetcher, config *Config, opts ...Option) (*Crawler, error) {
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Crawler{
		fetcher: fetcher,
		config:  config,
		logger:  slog.Default().With("component", "crawler"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// crawlTask pairs one child URL with the document that listed it.
type crawlTask struct {
	parent *core.Document
	url    string
}

// Crawl fetches every distinct child URL of every document and returns the
// resulting child documents. Parents without child URLs contribute nothing;
// fetch failures are logged and dropped.
func (c *Crawler) Crawl(ctx context.Context, documents []*core.Document) ([]*core.Document, error) {
	tasks := collectTasks(documents)
	if len(tasks) == 0 {
		return nil, nil
	}

	c.logger.Info("crawling child urls",
		"parents", len(documents),
		"urls", len(tasks))

	pool, err := ants.NewPool(c.config.Concurrency)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		children []*core.Document
	)

	for _, task := range tasks {
		task := task
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			child := c.fetchChild(ctx, task)
			if c.config.Pacing > 0 {
				time.Sleep(c.config.Pacing)
			}
			if child == nil {
				return
			}
			mu.Lock()
			children = append(children, child)
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			wg.Wait()
			return nil, submitErr
		}
	}
	wg.Wait()

	c.logger.Info("crawl finished",
		"fetched", len(children),
		"dropped", len(tasks)-len(children))

	return children, nil
}

// fetchChild fetches one URL and builds the child document, or returns nil on
// failure.
func (c *Crawler) fetchChild(ctx context.Context, task crawlTask) *core.Document {
	page, err := c.fetcher.Fetch(ctx, task.url)
	if err != nil {
		c.logger.Warn("dropping child url",
			"url", task.url,
			"parent_id", task.parent.ID,
			"error", err)
		return nil
	}

	metadata := core.DocumentMetaData{
		ID:         core.NewID(),
		URL:        page.URL,
		Title:      page.Title,
		Properties: page.Properties,
	}
	child := core.NewDocument(metadata, page.Content, page.Links)
	child.ParentMetadata = task.parent.Metadata.Clone()
	return child
}

// collectTasks lists each document's distinct child URLs in order.
func collectTasks(documents []*core.Document) []crawlTask {
	var tasks []crawlTask
	for _, doc := range documents {
		seen := make(map[string]struct{}, len(doc.ChildURLs))
		for _, url := range doc.ChildURLs {
			if url == "" {
				continue
			}
			if _, ok := seen[url]; ok {
				continue
			}
			seen[url] = struct{}{}
			tasks = append(tasks, crawlTask{parent: doc, url: url})
		}
	}
	return tasks
}

// Union combines originals and crawled children, dropping duplicate IDs and
// keeping first occurrences.
func Union(originals, children []*core.Document) []*core.Document {
	combined := make([]*core.Document, 0, len(originals)+len(children))
	combined = append(combined, originals...)
	combined = append(combined, children...)
	return core.Dedupe(combined)
}
