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


package core

import (
	"fmt"
	"math/rand"
	"time"
)

// InstructDatasetSample is one (instruction, answer) pair: a document's
// content paired with a generated summary. Immutable after construction.
type InstructDatasetSample struct {
	Instruction string `json:"instruction"`
	Answer      string `json:"answer"`
}

// InstructDataset holds train/validation/test splits of instruction samples.
// The three splits are disjoint and together cover every input sample.
// Created once by FromSamples; immutable thereafter.
type InstructDataset struct {
	Train          []InstructDatasetSample `json:"train"`
	Validation     []InstructDatasetSample `json:"validation"`
	Test           []InstructDatasetSample `json:"test"`
	ValSplitRatio  float64                 `json:"val_split_ratio"`
	TestSplitRatio float64                 `json:"test_split_ratio"`
	Seed           *int64                  `json:"seed,omitempty"`
}

// FromSamples shuffles the samples and partitions them into train, validation
// and test splits at cumulative cut points, so the three ranges cover the
// whole list with no gap or overlap.
//
// When seed is non-nil the shuffle uses a freshly seeded generator, making
// the split fully reproducible for identical inputs, ratios and seed.
// The input slice is not modified.
//
// Fails with ErrInvalidSplitRatio when the ratios don't leave room for a
// train split, and with ErrEmptySplit when any of the three splits would be
// empty.
func FromSamples(samples []InstructDatasetSample, valSplitRatio, testSplitRatio float64, seed *int64) (*InstructDataset, error) {
	if valSplitRatio < 0 || testSplitRatio < 0 || valSplitRatio+testSplitRatio >= 1 {
		return nil, fmt.Errorf("%w: val=%v test=%v", ErrInvalidSplitRatio, valSplitRatio, testSplitRatio)
	}

	shuffled := make([]InstructDatasetSample, len(samples))
	copy(shuffled, samples)

	var rng *rand.Rand
	if seed != nil {
		rng = rand.New(rand.NewSource(*seed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	// Cumulative cut points via truncating division; computing each split
	// size independently could leave samples unassigned.
	n := len(shuffled)
	trainEnd := int(float64(n) * (1 - valSplitRatio - testSplitRatio))
	valEnd := int(float64(n) * (1 - testSplitRatio))

	train := shuffled[:trainEnd]
	validation := shuffled[trainEnd:valEnd]
	test := shuffled[valEnd:]

	if len(train) == 0 {
		return nil, fmt.Errorf("%w: train", ErrEmptySplit)
	}
	if len(validation) == 0 {
		return nil, fmt.Errorf("%w: validation", ErrEmptySplit)
	}
	if len(test) == 0 {
		return nil, fmt.Errorf("%w: test", ErrEmptySplit)
	}

	return &InstructDataset{
		Train:          train,
		Validation:     validation,
		Test:           test,
		ValSplitRatio:  valSplitRatio,
		TestSplitRatio: testSplitRatio,
		Seed:           seed,
	}, nil
}

// Size returns the total number of samples across all three splits.
func (d *InstructDataset) Size() int {
	return len(d.Train) + len(d.Validation) + len(d.Test)
}
