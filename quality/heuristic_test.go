package quality

import (
	"strings"
	"testing"

	"github.com/poiesic/instructgen/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// docWithRatio builds a document whose combined child-URL length divided by
// content length is exactly the given ratio.
func docWithRatio(ratio float64) *core.Document {
	content := strings.Repeat("x", 1000)
	urlLen := int(ratio * 1000)
	return &core.Document{
		ID:        core.NewID(),
		Content:   content,
		ChildURLs: []string{strings.Repeat("u", urlLen)},
	}
}

func TestHeuristicScoreEmptyContent(t *testing.T) {
	scorer := NewHeuristicScorer()

	doc := scorer.Score(&core.Document{ID: "empty", Content: ""})
	require.NotNil(t, doc.ContentQualityScore)
	assert.Equal(t, 0.0, *doc.ContentQualityScore)
}

func TestHeuristicScoreThresholds(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  *float64
	}{
		{"far above noise threshold", 0.9, ptr(0.0)},
		{"exactly noise threshold", 0.7, ptr(0.0)},
		{"between thresholds", 0.6, ptr(0.2)},
		{"exactly low-value threshold", 0.5, ptr(0.2)},
		{"below low-value threshold", 0.49, nil},
		{"no child urls", 0.0, nil},
	}

	scorer := NewHeuristicScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := scorer.Score(docWithRatio(tt.ratio))
			if tt.want == nil {
				assert.Nil(t, doc.ContentQualityScore, "heuristic should leave the score unset")
			} else {
				require.NotNil(t, doc.ContentQualityScore)
				assert.Equal(t, *tt.want, *doc.ContentQualityScore)
			}
		})
	}
}

func TestHeuristicScoreAll(t *testing.T) {
	docs := []*core.Document{
		docWithRatio(0.8),
		docWithRatio(0.55),
		docWithRatio(0.1),
	}

	scored := NewHeuristicScorer().ScoreAll(docs)
	require.Len(t, scored, 3)

	assert.Equal(t, 0.0, *scored[0].ContentQualityScore)
	assert.Equal(t, 0.2, *scored[1].ContentQualityScore)
	assert.Nil(t, scored[2].ContentQualityScore)
}

func TestPartition(t *testing.T) {
	docs := []*core.Document{
		(&core.Document{ID: "a"}).WithQualityScore(0.3),
		{ID: "b"},
		(&core.Document{ID: "c"}).WithQualityScore(0.0),
		{ID: "d"},
	}

	scored, unscored := Partition(docs)
	require.Len(t, scored, 2)
	require.Len(t, unscored, 2)
	assert.Equal(t, "a", scored[0].ID)
	assert.Equal(t, "c", scored[1].ID)
	assert.Equal(t, "b", unscored[0].ID)
	assert.Equal(t, "d", unscored[1].ID)
}

func ptr(f float64) *float64 {
	return &f
}
