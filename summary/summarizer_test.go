package summary

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/poiesic/instructgen/ai"
	"github.com/poiesic/instructgen/ai/mock"
	"github.com/poiesic/instructgen/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() *Config {
	return &Config{MaxCharacters: 256, Concurrency: 4, FirstPassDelay: 0, RetryPassDelay: 0}
}

func TestNewSummarizerRequiresCompleter(t *testing.T) {
	_, err := NewSummarizer(nil, fastConfig())
	require.ErrorIs(t, err, ErrCompleterRequired)
}

func TestNewSummarizerValidatesConfig(t *testing.T) {
	_, err := NewSummarizer(mock.NewCompleter(), &Config{MaxCharacters: 0, Concurrency: 4})
	require.ErrorIs(t, err, ErrInvalidMaxCharacters)
}

func TestSummarizeAllAssignsSummaries(t *testing.T) {
	completer := mock.NewCompleter().WithReply("## TL;DR\nA fine article.")
	summarizer, err := NewSummarizer(completer, fastConfig())
	require.NoError(t, err)

	docs := []*core.Document{
		{ID: "a", Content: "first article"},
		{ID: "b", Content: "second article"},
	}
	report, err := summarizer.SummarizeAll(context.Background(), docs, 0.0)
	require.NoError(t, err)

	require.Len(t, report.Enriched, 2)
	assert.Empty(t, report.Dropped)
	for _, doc := range report.Enriched {
		require.NotNil(t, doc.Summary)
		assert.Equal(t, "## TL;DR\nA fine article.", *doc.Summary)
	}
}

func TestSummarizeAllPassesTemperature(t *testing.T) {
	var mu sync.Mutex
	var seen []float64

	completer := mock.NewCompleter()
	completer.CompleteFunc = func(ctx context.Context, prompt string, opts ...ai.CompleteOption) (string, error) {
		options := ai.ApplyCompleteOptions(opts...)
		mu.Lock()
		seen = append(seen, options.Temperature)
		mu.Unlock()
		return "summary", nil
	}

	summarizer, err := NewSummarizer(completer, fastConfig())
	require.NoError(t, err)

	_, err = summarizer.SummarizeAll(context.Background(), []*core.Document{{ID: "a", Content: "text"}}, 0.375)
	require.NoError(t, err)

	require.Len(t, seen, 1)
	assert.Equal(t, 0.375, seen[0])
}

func TestSummarizePromptEmbedsContentAndBudget(t *testing.T) {
	completer := mock.NewCompleter().WithReply("summary")
	config := fastConfig()
	config.MaxCharacters = 512
	summarizer, err := NewSummarizer(completer, config)
	require.NoError(t, err)

	_, err = summarizer.Summarize(context.Background(), &core.Document{ID: "a", Content: "the body under summary"}, 0)
	require.NoError(t, err)

	prompts := completer.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "the body under summary")
	assert.Contains(t, prompts[0], "maximum of 512 characters")
}

func TestSummarizeAllEmptyReplyDropped(t *testing.T) {
	completer := mock.NewCompleter().WithReply("   \n ")
	summarizer, err := NewSummarizer(completer, fastConfig())
	require.NoError(t, err)

	report, err := summarizer.SummarizeAll(context.Background(), []*core.Document{{ID: "a", Content: "text"}}, 0)
	require.NoError(t, err)

	assert.Empty(t, report.Enriched)
	require.Len(t, report.Dropped, 1)
	assert.Nil(t, report.Dropped[0].Summary)
	assert.Equal(t, 2, completer.CallCount(), "empty replies are retried once")
}

func TestSummarizeAllTransientFailureRecovered(t *testing.T) {
	var mu sync.Mutex
	attempts := make(map[string]int)

	completer := mock.NewCompleter()
	completer.CompleteFunc = func(ctx context.Context, prompt string, opts ...ai.CompleteOption) (string, error) {
		mu.Lock()
		attempts[prompt]++
		n := attempts[prompt]
		mu.Unlock()
		if n == 1 {
			return "", errors.New("rate limited")
		}
		return "recovered summary", nil
	}

	summarizer, err := NewSummarizer(completer, fastConfig())
	require.NoError(t, err)

	docs := []*core.Document{
		{ID: "a", Content: "first"},
		{ID: "b", Content: "second"},
	}
	report, err := summarizer.SummarizeAll(context.Background(), docs, 0)
	require.NoError(t, err)

	assert.Len(t, report.Enriched, 2)
	assert.Empty(t, report.Dropped)
}

func TestSummarizeAllMockMode(t *testing.T) {
	completer := mock.NewCompleter()
	config := fastConfig()
	config.Mock = true

	summarizer, err := NewSummarizer(completer, config)
	require.NoError(t, err)

	docs := make([]*core.Document, 6)
	for i := range docs {
		docs[i] = &core.Document{ID: core.NewID(), Content: strings.Repeat("x", 100)}
	}
	report, err := summarizer.SummarizeAll(context.Background(), docs, 1.5)
	require.NoError(t, err)

	require.Len(t, report.Enriched, 6)
	for _, doc := range report.Enriched {
		require.NotNil(t, doc.Summary)
		assert.Equal(t, "This is a mock summary", *doc.Summary)
	}
	assert.Zero(t, completer.CallCount(), "mock mode must not reach the model")
}
