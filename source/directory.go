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

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/instructgen/core"
)

// DirectorySource reads documents from <root>/<collectionID>/<id>.json.
// Each file is one JSON-encoded core.Document.
type DirectorySource struct {
	root string
}

// NewDirectorySource creates a source over the given root directory.
func NewDirectorySource(root string) (*DirectorySource, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("source root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, root)
	}
	return &DirectorySource{root: root}, nil
}

// FetchMetadata lists the metadata of every document file in the collection
// directory, in file name order.
func (s *DirectorySource) FetchMetadata(ctx context.Context, collectionID string) ([]core.DocumentMetaData, error) {
	dir := filepath.Join(s.root, collectionID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list collection %s: %w", collectionID, err)
	}

	var metadata []core.DocumentMetaData
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := s.readDocument(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		metadata = append(metadata, doc.Metadata)
	}
	return metadata, nil
}

// FetchContent loads the document the metadata record points at. The
// document file is located by metadata ID within its collection.
func (s *DirectorySource) FetchContent(ctx context.Context, metadata core.DocumentMetaData) (*core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matches, err := filepath.Glob(filepath.Join(s.root, "*", metadata.ID+".json"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, metadata.ID)
	}
	return s.readDocument(matches[0])
}

func (s *DirectorySource) readDocument(path string) (*core.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}
	var doc core.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", path, err)
	}
	return &doc, nil
}
