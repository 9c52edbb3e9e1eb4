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


package quality

import "github.com/poiesic/instructgen/core"

// URL-to-content ratio thresholds. Documents past noiseRatio are link dumps;
// documents past lowValueRatio carry little original text.
const (
	noiseRatio    = 0.7
	lowValueRatio = 0.5
)

// HeuristicScorer is a rule-based scorer that evaluates document quality
// from the ratio of URL content to total content length. Documents it cannot
// judge are left unscored for the model-based scorer.
type HeuristicScorer struct{}

// NewHeuristicScorer creates a heuristic scorer.
func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{}
}

// ScoreAll scores every document in place and returns the same slice.
// Pure and synchronous; no external calls.
func (s *HeuristicScorer) ScoreAll(documents []*core.Document) []*core.Document {
	for _, doc := range documents {
		s.Score(doc)
	}
	return documents
}

// Score assigns a quality score based on the URL content ratio, or leaves
// the document unscored when the heuristic has no opinion.
func (s *HeuristicScorer) Score(doc *core.Document) *core.Document {
	if len(doc.Content) == 0 {
		return doc.WithQualityScore(0.0)
	}

	urlContent := 0
	for _, url := range doc.ChildURLs {
		urlContent += len(url)
	}
	urlContentRatio := float64(urlContent) / float64(len(doc.Content))

	switch {
	case urlContentRatio >= noiseRatio:
		return doc.WithQualityScore(0.0)
	case urlContentRatio >= lowValueRatio:
		return doc.WithQualityScore(0.2)
	}
	return doc
}

// Partition splits documents into those carrying a quality score and those
// still unscored. Used to route only unscored documents to the model scorer.
func Partition(documents []*core.Document) (scored, unscored []*core.Document) {
	for _, doc := range documents {
		if doc.ContentQualityScore != nil {
			scored = append(scored, doc)
		} else {
			unscored = append(unscored, doc)
		}
	}
	return scored, unscored
}
