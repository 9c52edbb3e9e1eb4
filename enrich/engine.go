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


package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

// Transform applies one external enrichment call to an item. A returned
// error means the item was not enriched this round; the engine keeps the
// original item and schedules it for the retry phase.
type Transform[T any] func(ctx context.Context, item T) (T, error)

// Config holds the engine's concurrency and pacing parameters.
type Config struct {
	// Concurrency is the maximum number of transformations in flight.
	Concurrency int

	// FirstPassDelay is slept after each call in the first phase, inside the
	// worker slot, throttling the aggregate request rate.
	FirstPassDelay time.Duration

	// RetryPassDelay is the longer pacing used for the retry phase.
	RetryPassDelay time.Duration
}

// DefaultConfig returns pacing tuned for hosted model APIs: ten concurrent
// calls, seven seconds between first-pass calls, twenty on retry.
func DefaultConfig() *Config {
	return &Config{
		Concurrency:    10,
		FirstPassDelay: 7 * time.Second,
		RetryPassDelay: 20 * time.Second,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.FirstPassDelay < 0 || c.RetryPassDelay < 0 || c.FirstPassDelay > c.RetryPassDelay {
		return ErrInvalidPacing
	}
	return nil
}

// Report is the structural result of a batch run. Dropped holds the items
// that failed both phases; they are not part of Enriched.
type Report[T any] struct {
	Enriched []T
	Dropped  []T
}

// Submitted returns the number of items the batch started with.
func (r *Report[T]) Submitted() int {
	return len(r.Enriched) + len(r.Dropped)
}

// Engine is a reusable two-phase batch executor. It holds no per-batch
// state; a single engine may serve many sequential Run calls.
type Engine[T any] struct {
	config *Config
	logger *slog.Logger
}

// Option configures an Engine.
type Option[T any] func(*Engine[T])

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(e *Engine[T]) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an engine with the given configuration.
func New[T any](config *Config, opts ...Option[T]) (*Engine[T], error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Engine[T]{
		config: config,
		logger: slog.Default().With("component", "enrich-engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run applies the transformation to every item with bounded concurrency,
// retries the failed subset once with longer pacing, and reports the
// successes and the items dropped after both phases.
//
// The returned error covers configuration-level failures only (the worker
// pool could not be created); item-level failures never surface here.
func (e *Engine[T]) Run(ctx context.Context, items []T, transform Transform[T]) (*Report[T], error) {
	if len(items) == 0 {
		return &Report[T]{}, nil
	}

	mem := NewMemorySampler(e.logger)
	mem.Sample("batch start")

	succeeded, failed, err := e.runPhase(ctx, items, transform, e.config.FirstPassDelay)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("first pass complete",
		"submitted", len(items),
		"succeeded", len(succeeded),
		"failed", len(failed))

	var dropped []T
	if len(failed) > 0 {
		e.logger.Info("retrying failed items with increased pacing",
			"count", len(failed),
			"pacing", e.config.RetryPassDelay)

		recovered, still, err := e.runPhase(ctx, failed, transform, e.config.RetryPassDelay)
		if err != nil {
			return nil, err
		}
		succeeded = append(succeeded, recovered...)
		dropped = still
	}

	mem.Sample("batch complete")
	e.logger.Info("enrichment batch complete",
		"submitted", len(items),
		"succeeded", len(succeeded),
		"dropped", len(dropped))

	return &Report[T]{Enriched: succeeded, Dropped: dropped}, nil
}

// RunOne is the degenerate single-item path. It runs both phases for the
// item and returns ErrNotEnriched when the item fails them both.
func (e *Engine[T]) RunOne(ctx context.Context, item T, transform Transform[T]) (T, error) {
	report, err := e.Run(ctx, []T{item}, transform)
	if err != nil {
		return item, err
	}
	if len(report.Enriched) == 0 {
		return item, ErrNotEnriched
	}
	return report.Enriched[0], nil
}

// runPhase runs one pass over the items: at most Concurrency transformations
// in flight, each followed by the pacing sleep before its slot is released.
// Results arrive in completion order.
func (e *Engine[T]) runPhase(ctx context.Context, items []T, transform Transform[T], pace time.Duration) (succeeded, failed []T, err error) {
	pool, err := ants.NewPool(e.config.Concurrency)
	if err != nil {
		return nil, nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	type outcome struct {
		item T
		err  error
	}

	results := make(chan outcome, len(items))
	var wg sync.WaitGroup

	for _, item := range items {
		item := item
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			enriched, transformErr := e.invoke(ctx, item, transform)
			if pace > 0 {
				time.Sleep(pace)
			}
			if transformErr != nil {
				e.logger.Warn("enrichment failed", "err", transformErr)
				results <- outcome{item: item, err: transformErr}
				return
			}
			results <- outcome{item: enriched}
		})
		if submitErr != nil {
			wg.Done()
			results <- outcome{item: item, err: submitErr}
		}
	}

	wg.Wait()
	close(results)

	for out := range results {
		if out.err != nil {
			failed = append(failed, out.item)
		} else {
			succeeded = append(succeeded, out.item)
		}
	}
	return succeeded, failed, nil
}

// invoke runs the transform, converting panics into ordinary item failures
// so one misbehaving item cannot take down the batch.
func (e *Engine[T]) invoke(ctx context.Context, item T, transform Transform[T]) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = item
			err = fmt.Errorf("%w: %v", ErrTransformPanic, r)
		}
	}()
	return transform(ctx, item)
}
