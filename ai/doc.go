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


// Package ai provides the language-model collaborator abstraction used by
// the enrichment policies.
//
// The package defines a single interface, Completer, which turns a prompt
// into a text completion via an external model. Failures are surfaced as
// ordinary errors, never panics, so the enrichment engine can treat them as
// per-item failures eligible for retry.
//
// Two implementation sub-packages exist:
//
//   - ai/openai: production implementation against OpenAI-compatible APIs
//   - ai/mock: test double with call counting and injectable behavior
//
// Production constructors return the Completer interface to keep policies
// decoupled from any concrete provider; the mock constructor returns the
// concrete type so tests can assert on call counts and captured prompts.
package ai
