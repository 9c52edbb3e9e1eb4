package dataset

import "errors"

var (
	// ErrSummarizerRequired is returned when a generator is constructed
	// without a summarizer.
	ErrSummarizerRequired = errors.New("summarizer is required")

	// ErrInvalidConfig is returned for out-of-range generator settings.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrMissingSummary marks a document that reached sample projection
	// without a summary. The post-filter makes this unreachable; it exists
	// as a defensive check.
	ErrMissingSummary = errors.New("document has no summary")

	// ErrNoSamples is returned when filtering and summarization leave
	// nothing to split.
	ErrNoSamples = errors.New("no samples survived generation")
)
