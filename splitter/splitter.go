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

// Package splitter chunks document content for retrieval. Chunking is
// recursive-character with a proportional overlap; an optional handler can
// post-process the chunks, which is where the chunk summarizers plug in.
package splitter

import (
	"context"
	"errors"

	"github.com/tmc/langchaingo/textsplitter"
)

const (
	defaultChunkSize = 1024

	// overlapNumerator/overlapDenominator give each chunk a 15% overlap
	// with its neighbor.
	overlapNumerator   = 15
	overlapDenominator = 100
)

// ErrInvalidChunkSize is returned for a non-positive chunk size.
var ErrInvalidChunkSize = errors.New("chunk size must be positive")

// ChunkHandler post-processes the chunks of one document, for example by
// prepending a situating summary to each. It receives the full content the
// chunks came from and must return one string per input chunk.
type ChunkHandler func(ctx context.Context, content string, chunks []string) ([]string, error)

// Splitter chunks text with a recursive character splitter.
type Splitter struct {
	inner   textsplitter.RecursiveCharacter
	handler ChunkHandler
}

// Option configures a Splitter.
type Option func(*config)

type config struct {
	chunkSize int
	handler   ChunkHandler
}

// WithChunkSize overrides the default chunk size. Overlap scales with it.
func WithChunkSize(size int) Option {
	return func(c *config) {
		c.chunkSize = size
	}
}

// WithChunkHandler installs a post-processing hook over each document's
// chunks.
func WithChunkHandler(handler ChunkHandler) Option {
	return func(c *config) {
		c.handler = handler
	}
}

// New creates a splitter.
func New(opts ...Option) (*Splitter, error) {
	cfg := &config{chunkSize: defaultChunkSize}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.chunkSize <= 0 {
		return nil, ErrInvalidChunkSize
	}

	overlap := cfg.chunkSize * overlapNumerator / overlapDenominator
	inner := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(cfg.chunkSize),
		textsplitter.WithChunkOverlap(overlap),
	)

	return &Splitter{inner: inner, handler: cfg.handler}, nil
}

// Split chunks content and runs the handler, if any, over the result.
// Empty content yields no chunks.
func (s *Splitter) Split(ctx context.Context, content string) ([]string, error) {
	if content == "" {
		return nil, nil
	}

	chunks, err := s.inner.SplitText(content)
	if err != nil {
		return nil, err
	}
	if s.handler == nil || len(chunks) == 0 {
		return chunks, nil
	}
	return s.handler(ctx, content, chunks)
}
