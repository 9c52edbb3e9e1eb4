package source

import "errors"

var (
	// ErrNotADirectory is returned when the source root exists but is not
	// a directory.
	ErrNotADirectory = errors.New("source root is not a directory")

	// ErrDocumentNotFound is returned when no document file matches a
	// metadata record.
	ErrDocumentNotFound = errors.New("document not found")
)
