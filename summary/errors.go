package summary

import "errors"

var (
	// ErrCompleterRequired is returned when a summarizer is constructed
	// without a model client.
	ErrCompleterRequired = errors.New("completer is required")

	// ErrInvalidMaxCharacters is returned for a non-positive length budget.
	ErrInvalidMaxCharacters = errors.New("max characters must be positive")

	// ErrInvalidWindow is returned for a non-positive document window size.
	ErrInvalidWindow = errors.New("window characters must be positive")

	// ErrEmptySummary marks a model reply with no usable text.
	ErrEmptySummary = errors.New("empty summary reply")
)
