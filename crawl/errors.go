package crawl

import "errors"

var (
	// ErrFetcherRequired is returned when a crawler is constructed without
	// a fetcher.
	ErrFetcherRequired = errors.New("fetcher is required")

	// ErrInvalidConcurrency is returned for a non-positive worker count.
	ErrInvalidConcurrency = errors.New("concurrency must be positive")

	// ErrInvalidPacing is returned for a negative pacing delay.
	ErrInvalidPacing = errors.New("pacing must be non-negative")

	// ErrNoContent marks a fetched page with no extractable body text.
	ErrNoContent = errors.New("page has no content")
)
