package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/instructgen/core"
	"github.com/poiesic/instructgen/enrich"
	"github.com/poiesic/instructgen/storage"
	badgerstore "github.com/poiesic/instructgen/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource serves a fixed collection; content fetches fail for IDs listed
// in broken.
type stubSource struct {
	docs   map[string]*core.Document
	order  []string
	broken map[string]bool
}

func (s *stubSource) FetchMetadata(ctx context.Context, collectionID string) ([]core.DocumentMetaData, error) {
	if collectionID != "articles" {
		return nil, errors.New("unknown collection")
	}
	metadata := make([]core.DocumentMetaData, 0, len(s.order))
	for _, id := range s.order {
		metadata = append(metadata, s.docs[id].Metadata)
	}
	return metadata, nil
}

func (s *stubSource) FetchContent(ctx context.Context, metadata core.DocumentMetaData) (*core.Document, error) {
	if s.broken[metadata.ID] {
		return nil, errors.New("fetch failed")
	}
	return s.docs[metadata.ID], nil
}

// stubCrawler returns preset children.
type stubCrawler struct {
	children []*core.Document
	err      error
}

func (c *stubCrawler) Crawl(ctx context.Context, documents []*core.Document) ([]*core.Document, error) {
	return c.children, c.err
}

// stubScorer scores every unscored document with a fixed value; IDs in fail
// are dropped.
type stubScorer struct {
	score float64
	fail  map[string]bool
	seen  []string
}

func (s *stubScorer) ScoreAll(ctx context.Context, documents []*core.Document) (*enrich.Report[*core.Document], error) {
	report := &enrich.Report[*core.Document]{}
	for _, doc := range documents {
		s.seen = append(s.seen, doc.ID)
		if s.fail[doc.ID] {
			report.Dropped = append(report.Dropped, doc)
			continue
		}
		report.Enriched = append(report.Enriched, doc.WithQualityScore(s.score))
	}
	return report, nil
}

func sourceDoc(id string, childURLs ...string) *core.Document {
	return core.NewDocument(core.DocumentMetaData{
		ID:    id,
		URL:   "https://example.com/" + id,
		Title: "Doc " + id,
	}, strings.Repeat("substantive content ", 10), childURLs)
}

func setupDocRepo(t *testing.T) storage.DocumentRepository {
	t.Helper()
	docRepo, dsRepo, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		docRepo.Close()
		dsRepo.Close()
		backend.Close()
	})
	return docRepo
}

func TestNewPipelineNilChecks(t *testing.T) {
	src := &stubSource{}
	crawler := &stubCrawler{}
	scorer := &stubScorer{}
	repo := setupDocRepo(t)

	_, err := NewPipeline(nil, crawler, scorer, repo)
	require.ErrorIs(t, err, ErrSourceRequired)
	_, err = NewPipeline(src, nil, scorer, repo)
	require.ErrorIs(t, err, ErrCrawlerRequired)
	_, err = NewPipeline(src, crawler, nil, repo)
	require.ErrorIs(t, err, ErrScorerRequired)
	_, err = NewPipeline(src, crawler, scorer, nil)
	require.ErrorIs(t, err, ErrRepositoryRequired)
}

func TestCollectSkipsFailedFetches(t *testing.T) {
	src := &stubSource{
		docs: map[string]*core.Document{
			"a": sourceDoc("a"),
			"b": sourceDoc("b"),
			"c": sourceDoc("c"),
		},
		order:  []string{"a", "b", "c"},
		broken: map[string]bool{"b": true},
	}
	p, err := NewPipeline(src, &stubCrawler{}, &stubScorer{score: 0.7}, setupDocRepo(t))
	require.NoError(t, err)

	docs, err := p.Collect(context.Background(), "articles")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "c", docs[1].ID)
}

func TestEnrichScoresAndPersists(t *testing.T) {
	parent := sourceDoc("parent", "https://example.com/child")
	child := sourceDoc("child-doc")
	child.ParentMetadata = parent.Metadata.Clone()

	scorer := &stubScorer{score: 0.9}
	repo := setupDocRepo(t)
	p, err := NewPipeline(
		&stubSource{docs: map[string]*core.Document{"parent": parent}, order: []string{"parent"}},
		&stubCrawler{children: []*core.Document{child}},
		scorer,
		repo,
	)
	require.NoError(t, err)

	enriched, err := p.Enrich(context.Background(), []*core.Document{parent})
	require.NoError(t, err)
	require.Len(t, enriched, 2)

	for _, doc := range enriched {
		require.NotNil(t, doc.ContentQualityScore)
		assert.Equal(t, 0.9, *doc.ContentQualityScore)
	}

	stored, err := repo.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestEnrichRoutesOnlyUnscoredToModel(t *testing.T) {
	// A document that is pure link noise gets 0.0 from the heuristic and
	// must not reach the model scorer.
	noisy := core.NewDocument(core.DocumentMetaData{ID: "noisy"}, "tiny",
		[]string{"https://example.com/very-long-child-url-path"})
	clean := sourceDoc("clean")

	scorer := &stubScorer{score: 0.8}
	p, err := NewPipeline(
		&stubSource{},
		&stubCrawler{},
		scorer,
		setupDocRepo(t),
	)
	require.NoError(t, err)

	enriched, err := p.Enrich(context.Background(), []*core.Document{noisy, clean})
	require.NoError(t, err)
	require.Len(t, enriched, 2)

	assert.Equal(t, []string{"clean"}, scorer.seen)
	require.NotNil(t, noisy.ContentQualityScore)
	assert.Equal(t, 0.0, *noisy.ContentQualityScore)
}

func TestEnrichKeepsDroppedDocumentsUnscored(t *testing.T) {
	doc := sourceDoc("stubborn")
	scorer := &stubScorer{score: 0.8, fail: map[string]bool{"stubborn": true}}
	repo := setupDocRepo(t)

	p, err := NewPipeline(&stubSource{}, &stubCrawler{}, scorer, repo)
	require.NoError(t, err)

	enriched, err := p.Enrich(context.Background(), []*core.Document{doc})
	require.NoError(t, err)
	require.Len(t, enriched, 1)
	assert.Nil(t, enriched[0].ContentQualityScore)

	stored, err := repo.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Nil(t, stored[0].ContentQualityScore)
}

func TestRunCollectsAndEnriches(t *testing.T) {
	src := &stubSource{
		docs:  map[string]*core.Document{"a": sourceDoc("a")},
		order: []string{"a"},
	}
	p, err := NewPipeline(src, &stubCrawler{}, &stubScorer{score: 0.6}, setupDocRepo(t))
	require.NoError(t, err)

	enriched, err := p.Run(context.Background(), "articles")
	require.NoError(t, err)
	require.Len(t, enriched, 1)
	require.NotNil(t, enriched[0].ContentQualityScore)
	assert.Equal(t, 0.6, *enriched[0].ContentQualityScore)
}
