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

// Package disk exports documents and datasets as plain JSON files, the
// interchange format for training pipelines downstream of this module.
package disk

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/instructgen/core"
	"github.com/poiesic/instructgen/storage"
)

const (
	trainFile      = "train.json"
	validationFile = "validation.json"
	testFile       = "test.json"
)

// WriteDocuments writes each document to <dir>/<id>.json, creating the
// directory if needed.
func WriteDocuments(dir string, documents []*core.Document) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, doc := range documents {
		data, err := storage.MarshalDocument(doc)
		if err != nil {
			return fmt.Errorf("encode document %s: %w", doc.ID, err)
		}
		path := filepath.Join(dir, doc.ID+".json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write document %s: %w", doc.ID, err)
		}
	}
	return nil
}

// ReadDocuments reads every *.json document file in a directory, in file
// name order.
func ReadDocuments(dir string) ([]*core.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var documents []*core.Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		doc, err := storage.UnmarshalDocument(data)
		if err != nil {
			return nil, fmt.Errorf("decode document %s: %w", entry.Name(), err)
		}
		documents = append(documents, doc)
	}
	return documents, nil
}

// WriteDataset writes the three splits as train.json, validation.json and
// test.json under dir, each a JSON array of samples.
func WriteDataset(dir string, dataset *core.InstructDataset) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	splits := map[string][]core.InstructDatasetSample{
		trainFile:      dataset.Train,
		validationFile: dataset.Validation,
		testFile:       dataset.Test,
	}
	for name, samples := range splits {
		data, err := json.MarshalIndent(samples, "", "  ")
		if err != nil {
			return fmt.Errorf("encode split %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			return fmt.Errorf("write split %s: %w", name, err)
		}
	}
	return nil
}

// ReadDataset reads the three split files back into a dataset. Ratios and
// seed are not recorded in the export and come back zero.
func ReadDataset(dir string) (*core.InstructDataset, error) {
	dataset := &core.InstructDataset{}
	splits := map[string]*[]core.InstructDatasetSample{
		trainFile:      &dataset.Train,
		validationFile: &dataset.Validation,
		testFile:       &dataset.Test,
	}
	for name, target := range splits {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, target); err != nil {
			return nil, fmt.Errorf("decode split %s: %w", name, err)
		}
	}
	return dataset, nil
}
