package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSamples(n int) []InstructDatasetSample {
	samples := make([]InstructDatasetSample, n)
	for i := range samples {
		samples[i] = InstructDatasetSample{
			Instruction: fmt.Sprintf("instruction %d", i),
			Answer:      fmt.Sprintf("answer %d", i),
		}
	}
	return samples
}

func TestFromSamplesDeterministic(t *testing.T) {
	samples := makeSamples(20)
	seed := int64(42)

	first, err := FromSamples(samples, 0.1, 0.1, &seed)
	require.NoError(t, err)
	second, err := FromSamples(samples, 0.1, 0.1, &seed)
	require.NoError(t, err)

	assert.Equal(t, first.Train, second.Train)
	assert.Equal(t, first.Validation, second.Validation)
	assert.Equal(t, first.Test, second.Test)
}

func TestFromSamplesPartition(t *testing.T) {
	samples := makeSamples(20)
	seed := int64(42)

	dataset, err := FromSamples(samples, 0.1, 0.1, &seed)
	require.NoError(t, err)

	assert.Len(t, dataset.Train, 16)
	assert.Len(t, dataset.Validation, 2)
	assert.Len(t, dataset.Test, 2)
	assert.Equal(t, 20, dataset.Size())

	// Splits must cover every input sample exactly once.
	seen := make(map[string]int)
	for _, split := range [][]InstructDatasetSample{dataset.Train, dataset.Validation, dataset.Test} {
		for _, sample := range split {
			seen[sample.Instruction]++
		}
	}
	require.Len(t, seen, 20)
	for instruction, count := range seen {
		assert.Equal(t, 1, count, "sample %q assigned to multiple splits", instruction)
	}
}

func TestFromSamplesInputNotMutated(t *testing.T) {
	samples := makeSamples(12)
	original := make([]InstructDatasetSample, len(samples))
	copy(original, samples)

	seed := int64(42)
	_, err := FromSamples(samples, 0.1, 0.1, &seed)
	require.NoError(t, err)

	assert.Equal(t, original, samples)
}

func TestFromSamplesInvalidRatios(t *testing.T) {
	samples := makeSamples(20)

	tests := []struct {
		name     string
		valRatio float64
		tstRatio float64
	}{
		{"ratios sum to one", 0.5, 0.5},
		{"ratios exceed one", 0.7, 0.6},
		{"negative validation ratio", -0.1, 0.1},
		{"negative test ratio", 0.1, -0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromSamples(samples, tt.valRatio, tt.tstRatio, nil)
			require.ErrorIs(t, err, ErrInvalidSplitRatio)
		})
	}
}

func TestFromSamplesEmptySplit(t *testing.T) {
	seed := int64(42)

	// Two samples with 10% ratios: train captures everything.
	_, err := FromSamples(makeSamples(2), 0.1, 0.1, &seed)
	require.ErrorIs(t, err, ErrEmptySplit)

	// No samples at all.
	_, err = FromSamples(nil, 0.1, 0.1, &seed)
	require.ErrorIs(t, err, ErrEmptySplit)
}
