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

package storage

import (
	"encoding/json"

	"github.com/poiesic/instructgen/core"
)

// Documents carry a schema-free property map, so serialization is JSON:
// any structured format works as long as writer and reader agree.

// MarshalDocument encodes a document for storage.
func MarshalDocument(doc *core.Document) ([]byte, error) {
	return json.Marshal(doc)
}

// UnmarshalDocument decodes a stored document.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	var doc core.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// MarshalDataset encodes a dataset for storage.
func MarshalDataset(dataset *core.InstructDataset) ([]byte, error) {
	return json.Marshal(dataset)
}

// UnmarshalDataset decodes a stored dataset.
func UnmarshalDataset(data []byte) (*core.InstructDataset, error) {
	var dataset core.InstructDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, err
	}
	return &dataset, nil
}
