package quality

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/poiesic/instructgen/ai"
	"github.com/poiesic/instructgen/ai/mock"
	"github.com/poiesic/instructgen/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastScorerConfig() *ScorerConfig {
	return &ScorerConfig{Concurrency: 4, FirstPassDelay: 0, RetryPassDelay: 0}
}

func TestNewScorerRequiresCompleter(t *testing.T) {
	_, err := NewScorer(nil, fastScorerConfig())
	require.ErrorIs(t, err, ErrCompleterRequired)
}

func TestScoreAllParsesReplies(t *testing.T) {
	completer := mock.NewCompleter().WithReply(`{"score": 0.85}`)
	scorer, err := NewScorer(completer, fastScorerConfig())
	require.NoError(t, err)

	docs := []*core.Document{
		{ID: "a", Content: "substantive article"},
		{ID: "b", Content: "another substantive article"},
	}
	report, err := scorer.ScoreAll(context.Background(), docs)
	require.NoError(t, err)

	require.Len(t, report.Enriched, 2)
	assert.Empty(t, report.Dropped)
	for _, doc := range report.Enriched {
		require.NotNil(t, doc.ContentQualityScore)
		assert.Equal(t, 0.85, *doc.ContentQualityScore)
	}
}

func TestScoreAllFencedReply(t *testing.T) {
	completer := mock.NewCompleter().WithReply("```json\n{\"score\": 0.4}\n```")
	scorer, err := NewScorer(completer, fastScorerConfig())
	require.NoError(t, err)

	doc, err := scorer.Score(context.Background(), &core.Document{ID: "a", Content: "text"})
	require.NoError(t, err)
	require.NotNil(t, doc.ContentQualityScore)
	assert.Equal(t, 0.4, *doc.ContentQualityScore)
}

func TestScoreAllMalformedReplyDropped(t *testing.T) {
	completer := mock.NewCompleter().WithReply(`not json at all`)
	scorer, err := NewScorer(completer, fastScorerConfig())
	require.NoError(t, err)

	report, err := scorer.ScoreAll(context.Background(), []*core.Document{{ID: "a", Content: "text"}})
	require.NoError(t, err)

	assert.Empty(t, report.Enriched)
	require.Len(t, report.Dropped, 1)
	assert.Nil(t, report.Dropped[0].ContentQualityScore)
	assert.Equal(t, 2, completer.CallCount(), "malformed replies are retried once")
}

func TestScoreAllOutOfSchemaReplyDropped(t *testing.T) {
	completer := mock.NewCompleter().WithReply(`{"value": 0.9}`)
	scorer, err := NewScorer(completer, fastScorerConfig())
	require.NoError(t, err)

	report, err := scorer.ScoreAll(context.Background(), []*core.Document{{ID: "a", Content: "text"}})
	require.NoError(t, err)
	assert.Empty(t, report.Enriched)
	assert.Len(t, report.Dropped, 1)
}

func TestScoreAllTransientFailureRecovered(t *testing.T) {
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
		return `{"score": 0.6}`, nil
	}

	scorer, err := NewScorer(completer, fastScorerConfig())
	require.NoError(t, err)

	docs := []*core.Document{
		{ID: "a", Content: "first"},
		{ID: "b", Content: "second"},
		{ID: "c", Content: "third"},
	}
	report, err := scorer.ScoreAll(context.Background(), docs)
	require.NoError(t, err)

	assert.Len(t, report.Enriched, 3)
	assert.Empty(t, report.Dropped)
}

func TestScoreAllMockMode(t *testing.T) {
	completer := mock.NewCompleter()
	config := fastScorerConfig()
	config.Mock = true

	scorer, err := NewScorer(completer, config)
	require.NoError(t, err)

	docs := make([]*core.Document, 8)
	for i := range docs {
		docs[i] = &core.Document{ID: core.NewID(), Content: "text"}
	}
	report, err := scorer.ScoreAll(context.Background(), docs)
	require.NoError(t, err)

	require.Len(t, report.Enriched, 8)
	for _, doc := range report.Enriched {
		require.NotNil(t, doc.ContentQualityScore)
		assert.Equal(t, 0.5, *doc.ContentQualityScore)
	}
	assert.Zero(t, completer.CallCount(), "mock mode must not reach the model")
}

func TestScorePromptEmbedsContent(t *testing.T) {
	completer := mock.NewCompleter().WithReply(`{"score": 1.0}`)
	scorer, err := NewScorer(completer, fastScorerConfig())
	require.NoError(t, err)

	_, err = scorer.Score(context.Background(), &core.Document{ID: "a", Content: "the content under judgment"})
	require.NoError(t, err)

	prompts := completer.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "the content under judgment")
	assert.Contains(t, prompts[0], "expert judge")
}
