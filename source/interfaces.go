package source

import (
	"context"

	"github.com/poiesic/instructgen/core"
)

// ContentSource lists a collection's document metadata and resolves each
// metadata record into a full document.
type ContentSource interface {
	// FetchMetadata lists the metadata of every document in a collection.
	FetchMetadata(ctx context.Context, collectionID string) ([]core.DocumentMetaData, error)

	// FetchContent retrieves the full document a metadata record points at.
	FetchContent(ctx context.Context, metadata core.DocumentMetaData) (*core.Document, error)
}
