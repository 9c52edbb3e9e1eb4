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


package enrich

import "errors"

var (
	// ErrInvalidConcurrency indicates a non-positive concurrency limit.
	ErrInvalidConcurrency = errors.New("concurrency must be greater than zero")

	// ErrInvalidPacing indicates negative pacing or a first-pass delay
	// longer than the retry-pass delay.
	ErrInvalidPacing = errors.New("invalid pacing intervals")

	// ErrTransformPanic indicates a transformation panicked; the panic is
	// absorbed and treated as an ordinary item failure.
	ErrTransformPanic = errors.New("transform panicked")

	// ErrNotEnriched indicates a single item failed both phases.
	ErrNotEnriched = errors.New("item was not enriched")
)
