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
	"strings"

	"github.com/google/uuid"
)

// NewID returns a fresh 32-character hexadecimal identifier.
// Used for documents created by the crawler, which have no source-assigned ID.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// DocumentMetaData holds source-level metadata for a document.
// Properties is schema-free: the content source reports whatever
// scalar or array values it has, and nothing downstream interprets them.
type DocumentMetaData struct {
	ID         string         `json:"id"`
	URL        string         `json:"url"`
	Title      string         `json:"title"`
	Properties map[string]any `json:"properties"`
}

// Clone returns a deep copy of the metadata, including nested property values.
func (m *DocumentMetaData) Clone() *DocumentMetaData {
	if m == nil {
		return nil
	}
	return &DocumentMetaData{
		ID:         m.ID,
		URL:        m.URL,
		Title:      m.Title,
		Properties: clonePropertyMap(m.Properties),
	}
}

// Document is a unit of content plus metadata and derived annotations.
// ContentQualityScore and Summary are nil until an enrichment policy fills
// them; ParentMetadata is non-nil iff the document was discovered as a child
// of another document during crawling.
type Document struct {
	ID                  string            `json:"id"`
	Metadata            DocumentMetaData  `json:"metadata"`
	ParentMetadata      *DocumentMetaData `json:"parent_metadata,omitempty"`
	Content             string            `json:"content"`
	ContentQualityScore *float64          `json:"content_quality_score,omitempty"`
	Summary             *string           `json:"summary,omitempty"`
	ChildURLs           []string          `json:"child_urls"`
}

// NewDocument creates a document from source metadata and raw content.
// The document inherits the metadata's identifier.
func NewDocument(metadata DocumentMetaData, content string, childURLs []string) *Document {
	return &Document{
		ID:        metadata.ID,
		Metadata:  metadata,
		Content:   content,
		ChildURLs: childURLs,
	}
}

// WithQualityScore sets the content quality score in place and returns the
// document. Scores are overwritable; the last scoring policy wins.
func (d *Document) WithQualityScore(score float64) *Document {
	d.ContentQualityScore = &score
	return d
}

// WithSummary sets the generated summary in place and returns the document.
func (d *Document) WithSummary(summary string) *Document {
	d.Summary = &summary
	return d
}

// Equal reports whether two documents are the same document.
// Identity is the ID alone; no other field participates.
func (d *Document) Equal(other *Document) bool {
	return other != nil && d.ID == other.ID
}

// Clone returns a deep structural copy of the document. Mutating the clone's
// annotations, child URLs, or metadata properties never touches the original.
func (d *Document) Clone() *Document {
	clone := &Document{
		ID:             d.ID,
		Metadata:       *d.Metadata.Clone(),
		ParentMetadata: d.ParentMetadata.Clone(),
		Content:        d.Content,
	}
	if d.ContentQualityScore != nil {
		score := *d.ContentQualityScore
		clone.ContentQualityScore = &score
	}
	if d.Summary != nil {
		summary := *d.Summary
		clone.Summary = &summary
	}
	if d.ChildURLs != nil {
		clone.ChildURLs = make([]string, len(d.ChildURLs))
		copy(clone.ChildURLs, d.ChildURLs)
	}
	return clone
}

// CloneAll deep-copies a document slice. Each augmentation pass of the
// dataset generator works on its own copy produced here.
func CloneAll(documents []*Document) []*Document {
	clones := make([]*Document, len(documents))
	for i, doc := range documents {
		clones[i] = doc.Clone()
	}
	return clones
}

// Dedupe removes documents with duplicate IDs, keeping the first occurrence
// and preserving order.
func Dedupe(documents []*Document) []*Document {
	seen := make(map[string]struct{}, len(documents))
	unique := make([]*Document, 0, len(documents))
	for _, doc := range documents {
		if _, ok := seen[doc.ID]; ok {
			continue
		}
		seen[doc.ID] = struct{}{}
		unique = append(unique, doc)
	}
	return unique
}

func clonePropertyMap(properties map[string]any) map[string]any {
	if properties == nil {
		return nil
	}
	clone := make(map[string]any, len(properties))
	for key, value := range properties {
		clone[key] = clonePropertyValue(value)
	}
	return clone
}

// clonePropertyValue copies the nested maps and slices JSON decoding
// produces. Scalars are copied by assignment.
func clonePropertyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return clonePropertyMap(v)
	case []any:
		clone := make([]any, len(v))
		for i, item := range v {
			clone[i] = clonePropertyValue(item)
		}
		return clone
	case []string:
		clone := make([]string, len(v))
		copy(clone, v)
		return clone
	default:
		return v
	}
}
