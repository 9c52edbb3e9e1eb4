package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/instructgen/ai"
)

// SimpleSummarizer generates one whole-document summary and prepends it to
// every chunk. One model call per document instead of one per chunk makes it
// the cheap alternative to ContextualSummarizer.
type SimpleSummarizer struct {
	completer ai.Completer
	config    *ContextualConfig
	logger    *slog.Logger
}

// NewSimpleSummarizer creates a simple chunk summarizer. It shares
// ContextualConfig with the contextual variant; WindowCharacters bounds the
// content shown to the model.
func NewSimpleSummarizer(completer ai.Completer, config *ContextualConfig) (*SimpleSummarizer, error) {
	if completer == nil {
		return nil, ErrCompleterRequired
	}
	if config == nil {
		config = DefaultContextualConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &SimpleSummarizer{
		completer: completer,
		config:    config,
		logger:    slog.Default().With("component", "simple_summarizer"),
	}, nil
}

// SummarizeChunks prepends a single document-level summary to every chunk.
// If the summary cannot be generated the chunks are returned unchanged.
func (s *SimpleSummarizer) SummarizeChunks(ctx context.Context, content string, chunks []string) ([]string, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	out := make([]string, len(chunks))
	copy(out, chunks)

	blurb, err := s.summarize(ctx, content)
	if err != nil {
		s.logger.Warn("document summary failed, chunks left unchanged", "error", err)
		return out, nil
	}

	for i, chunk := range chunks {
		out[i] = blurb + "\n\n" + chunk
	}
	return out, nil
}

func (s *SimpleSummarizer) summarize(ctx context.Context, content string) (string, error) {
	if s.config.Mock {
		return mockContext, nil
	}

	if len(content) > s.config.WindowCharacters {
		content = content[:s.config.WindowCharacters]
	}
	prompt := fmt.Sprintf(simplePromptTemplate, s.config.MaxCharacters, content)
	reply, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", ErrEmptySummary
	}
	return reply, nil
}
