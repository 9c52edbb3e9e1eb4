package ai

import "context"

// Completer generates a text completion for a prompt via an external model.
// Implementations must be thread-safe for concurrent use and must surface
// failures as errors rather than panics.
type Completer interface {
	// Complete sends the prompt to the model and returns the reply text.
	// Returns an error on transport failure or when the model produced no
	// usable reply.
	Complete(ctx context.Context, prompt string, opts ...CompleteOption) (string, error)
}

// CompleteOptions holds per-call generation parameters.
type CompleteOptions struct {
	// Temperature controls sampling randomness. Zero is deterministic-ish.
	Temperature float64

	// JSONMode requests a structured JSON reply where the provider supports it.
	JSONMode bool
}

// CompleteOption is a functional option for a single Complete call.
type CompleteOption func(*CompleteOptions)

// WithTemperature sets the generation temperature for this call.
func WithTemperature(temperature float64) CompleteOption {
	return func(o *CompleteOptions) {
		o.Temperature = temperature
	}
}

// WithJSONMode requests a JSON-formatted reply for this call.
func WithJSONMode() CompleteOption {
	return func(o *CompleteOptions) {
		o.JSONMode = true
	}
}

// ApplyCompleteOptions resolves the option list into a CompleteOptions value.
// Exposed for implementations outside this package.
func ApplyCompleteOptions(opts ...CompleteOption) *CompleteOptions {
	options := &CompleteOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}
