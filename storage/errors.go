package storage

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrClosed is returned when an operation runs against a closed backend.
	ErrClosed = errors.New("storage is closed")
)
