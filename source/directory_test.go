package source

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/instructgen/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestDocument(t *testing.T, dir string, doc *core.Document) {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, doc.ID+".json"), data, 0o644))
}

func TestNewDirectorySourceMissingRoot(t *testing.T) {
	_, err := NewDirectorySource(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestFetchMetadataAndContent(t *testing.T) {
	root := t.TempDir()
	collection := filepath.Join(root, "articles")
	require.NoError(t, os.Mkdir(collection, 0o755))

	docA := core.NewDocument(core.DocumentMetaData{ID: "a1", URL: "https://example.com/a", Title: "A"}, "content a", nil)
	docB := core.NewDocument(core.DocumentMetaData{ID: "b2", URL: "https://example.com/b", Title: "B"}, "content b", []string{"https://example.com/b/child"})
	writeTestDocument(t, collection, docA)
	writeTestDocument(t, collection, docB)

	src, err := NewDirectorySource(root)
	require.NoError(t, err)

	metadata, err := src.FetchMetadata(context.Background(), "articles")
	require.NoError(t, err)
	require.Len(t, metadata, 2)
	assert.Equal(t, "a1", metadata[0].ID)
	assert.Equal(t, "b2", metadata[1].ID)

	doc, err := src.FetchContent(context.Background(), metadata[1])
	require.NoError(t, err)
	assert.Equal(t, "content b", doc.Content)
	assert.Equal(t, []string{"https://example.com/b/child"}, doc.ChildURLs)
}

func TestFetchContentNotFound(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "articles"), 0o755))

	src, err := NewDirectorySource(root)
	require.NoError(t, err)

	_, err = src.FetchContent(context.Background(), core.DocumentMetaData{ID: "nope"})
	require.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestFetchMetadataMissingCollection(t *testing.T) {
	src, err := NewDirectorySource(t.TempDir())
	require.NoError(t, err)

	_, err = src.FetchMetadata(context.Background(), "missing")
	require.Error(t, err)
}
