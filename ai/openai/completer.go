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


package openai

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/instructgen/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrEmptyReply indicates the model returned no choices.
var ErrEmptyReply = errors.New("model returned no choices")

// Completer implements ai.Completer against OpenAI-compatible chat APIs.
type Completer struct {
	client  llms.Model
	timeout time.Duration
	logger  *slog.Logger
}

// newCompleter is the internal constructor returning the concrete type.
func newCompleter(config *ai.Config) (*Completer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Completer{
		client:  client,
		timeout: config.RequestTimeout,
		logger:  slog.Default().With("component", "openai-completer"),
	}, nil
}

// NewCompleter creates a completion client for an OpenAI-compatible service.
//
// Returns ai.Completer interface (not *Completer) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewCompleter(config *ai.Config) (ai.Completer, error) {
	return newCompleter(config)
}

// Complete sends the prompt as a single user message and returns the reply
// text. A per-call timeout from the config bounds the request; its expiry is
// an ordinary error for the caller to retry or drop.
func (c *Completer) Complete(ctx context.Context, prompt string, opts ...ai.CompleteOption) (string, error) {
	options := ai.ApplyCompleteOptions(opts...)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	callOpts := []llms.CallOption{llms.WithTemperature(options.Temperature)}
	if options.JSONMode {
		callOpts = append(callOpts, llms.WithJSONMode())
	}

	// Some hosted models reject the system role, so the whole prompt is sent
	// as a user message.
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := c.client.GenerateContent(ctx, content, callOpts...)
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		c.logger.Debug("no choices returned from model")
		return "", ErrEmptyReply
	}

	return response.Choices[0].Content, nil
}
