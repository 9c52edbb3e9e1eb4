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

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseScore extracts the score from a {"score": float} model reply.
// Markdown code fences and the common missing-quote glitches are repaired
// first; anything still out of schema is a malformed-reply failure, which
// the engine treats as retryable.
func parseScore(reply string) (float64, error) {
	text := strings.TrimSpace(reply)
	text = stripCodeFences(text)
	text = repairJSON(text)

	var parsed map[string]json.Number
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}

	number, ok := parsed["score"]
	if !ok {
		return 0, fmt.Errorf("%w: missing score field", ErrMalformedReply)
	}
	score, err := number.Float64()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	return score, nil
}

// stripCodeFences removes a wrapping markdown code block, with or without a
// language tag.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// repairJSON fixes the missing-opening-quote key glitch some models produce,
// e.g. `{score": 0.5}` becomes `{"score": 0.5}`.
func repairJSON(s string) string {
	runes := []rune(s)
	fixed := make([]rune, 0, len(runes)+8)

	i := 0
	for i < len(runes) {
		ch := runes[i]
		fixed = append(fixed, ch)
		i++

		if ch != '{' && ch != ',' {
			continue
		}

		// Skip whitespace after { or ,
		for i < len(runes) && (runes[i] == ' ' || runes[i] == '\n' || runes[i] == '\t') {
			fixed = append(fixed, runes[i])
			i++
		}

		// An identifier followed by ": is a key missing its opening quote.
		if i < len(runes) && runes[i] != '"' && isKeyRune(runes[i]) {
			keyStart := i
			for i < len(runes) && isKeyRune(runes[i]) {
				i++
			}
			if i+1 < len(runes) && runes[i] == '"' && runes[i+1] == ':' {
				fixed = append(fixed, '"')
			}
			fixed = append(fixed, runes[keyStart:i]...)
		}
	}

	return string(fixed)
}

func isKeyRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}
