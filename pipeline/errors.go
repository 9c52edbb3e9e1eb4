package pipeline

import "errors"

var (
	// ErrSourceRequired is returned when a content source is not provided.
	ErrSourceRequired = errors.New("content source required")

	// ErrCrawlerRequired is returned when a crawler is not provided.
	ErrCrawlerRequired = errors.New("crawler required")

	// ErrScorerRequired is returned when a quality scorer is not provided.
	ErrScorerRequired = errors.New("quality scorer required")

	// ErrRepositoryRequired is returned when a document repository is not provided.
	ErrRepositoryRequired = errors.New("document repository required")
)
