package storage

import (
	"context"

	"github.com/poiesic/instructgen/core"
)

// DocumentRepository provides operations for persisting enriched documents.
// Implementations must be thread-safe and support concurrent access.
type DocumentRepository interface {
	// PutDocuments stores one or more documents, overwriting existing
	// documents with the same ID.
	PutDocuments(ctx context.Context, documents ...*core.Document) error

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id string) (*core.Document, error)

	// ListDocuments retrieves every stored document, in key order.
	ListDocuments(ctx context.Context) ([]*core.Document, error)

	// DeleteDocuments removes documents by their IDs.
	// Missing IDs are ignored.
	DeleteDocuments(ctx context.Context, ids ...string) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// DatasetRepository provides operations for persisting generated datasets.
type DatasetRepository interface {
	// PutDataset stores a dataset under a name, overwriting any previous
	// dataset with the same name.
	PutDataset(ctx context.Context, name string, dataset *core.InstructDataset) error

	// GetDataset retrieves a dataset by name.
	// Returns ErrNotFound if no dataset with that name exists.
	GetDataset(ctx context.Context, name string) (*core.InstructDataset, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
