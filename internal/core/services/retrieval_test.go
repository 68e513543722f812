package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/adapters/driven/storage/memory"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
)

// directionalEmbedder returns a fixed vector per known text, so tests
// control similarity ordering exactly.
type directionalEmbedder struct {
	vectors map[string][]float32
}

func (d *directionalEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if vec, ok := d.vectors[text]; ok {
		return vec, nil
	}
	return []float32{0, 0, 1}, nil
}

func (d *directionalEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, _ := d.Embed(ctx, t)
		out[i] = vec
	}
	return out, nil
}

func (d *directionalEmbedder) Dimensions() int              { return 3 }
func (d *directionalEmbedder) ModelName() string            { return "directional" }
func (d *directionalEmbedder) Ping(_ context.Context) error { return nil }
func (d *directionalEmbedder) Close() error                 { return nil }

// seedDocument stores a document with deterministic creation order.
func seedDocument(t *testing.T, store *memory.DocumentStore, id, title, content string, seq int) {
	t.Helper()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	doc := &domain.Document{
		ID:              id,
		Title:           title,
		Type:            domain.TypeText,
		Content:         content,
		EmbeddingStatus: domain.EmbeddingPending,
		CreatedAt:       base.Add(time.Duration(seq) * time.Minute),
		UpdatedAt:       base.Add(time.Duration(seq) * time.Minute),
	}
	require.NoError(t, store.SaveDocument(context.Background(), doc))
}

func TestSelectTitleAboveContent(t *testing.T) {
	store := memory.NewDocumentStore()
	seedDocument(t, store, "doc-1", "Travel journal", "A long trip through finland last winter.", 0)
	seedDocument(t, store, "doc-2", "Finland facts", "Population, lakes, saunas.", 1)
	seedDocument(t, store, "doc-3", "Recipes", "Nothing relevant here.", 2)

	svc := NewRetrievalService(store, nil)

	results, err := svc.Select(context.Background(), "finland", domain.RetrievalOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Title match outranks content match regardless of insertion order.
	assert.Equal(t, "doc-2", results[0].Document.ID)
	assert.Equal(t, domain.MatchTitle, results[0].Match)
	assert.Equal(t, "doc-1", results[1].Document.ID)
	assert.Equal(t, domain.MatchContent, results[1].Match)
}

func TestSelectLimit(t *testing.T) {
	store := memory.NewDocumentStore()
	for i := 0; i < 10; i++ {
		seedDocument(t, store, fmt.Sprintf("doc-%d", i), fmt.Sprintf("Report %d", i), "shared keyword", i)
	}

	svc := NewRetrievalService(store, nil)

	results, err := svc.Select(context.Background(), "keyword", domain.RetrievalOptions{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, results, 3)

	// Default limit applies when none given.
	results, err = svc.Select(context.Background(), "keyword", domain.RetrievalOptions{})
	require.NoError(t, err)
	assert.Len(t, results, DefaultRetrievalLimit)
}

func TestSelectEmptyQueryAndCorpus(t *testing.T) {
	store := memory.NewDocumentStore()
	svc := NewRetrievalService(store, nil)
	ctx := context.Background()

	results, err := svc.Select(ctx, "", domain.RetrievalOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = svc.Select(ctx, "   ", domain.RetrievalOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = svc.Select(ctx, "anything", domain.RetrievalOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSelectNoMatches(t *testing.T) {
	store := memory.NewDocumentStore()
	seedDocument(t, store, "doc-1", "Title", "body text", 0)

	svc := NewRetrievalService(store, nil)

	results, err := svc.Select(context.Background(), "zzzznothing", domain.RetrievalOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSelectFilters(t *testing.T) {
	store := memory.NewDocumentStore()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{
		ID: "in-dataset", Title: "match one", DatasetID: "ds-1",
		TagIDs: []string{"work", "q3"}, CreatedAt: base,
	}))
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{
		ID: "other-dataset", Title: "match two", DatasetID: "ds-2",
		CreatedAt: base.Add(time.Minute),
	}))
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{
		ID: "missing-tag", Title: "match three", DatasetID: "ds-1",
		TagIDs: []string{"work"}, CreatedAt: base.Add(2 * time.Minute),
	}))

	svc := NewRetrievalService(store, nil)

	results, err := svc.Select(ctx, "match", domain.RetrievalOptions{
		DatasetID: "ds-1",
		TagIDs:    []string{"work", "q3"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "in-dataset", results[0].Document.ID)
}

func TestSelectSemanticWhenEmbedded(t *testing.T) {
	store := memory.NewDocumentStore()
	ctx := context.Background()

	seedDocument(t, store, "doc-near", "Alpha", "about cats", 0)
	seedDocument(t, store, "doc-far", "Beta", "about the query word dogs", 1)

	// Both documents are embedded; doc-near points along the query axis.
	for id, vec := range map[string][]float32{
		"doc-near": {1, 0, 0},
		"doc-far":  {0, 1, 0},
	} {
		doc, err := store.GetDocument(ctx, id)
		require.NoError(t, err)
		doc.EmbeddingStatus = domain.EmbeddingCompleted
		require.NoError(t, store.SaveDocument(ctx, doc))
		require.NoError(t, store.SaveEmbedding(ctx, id, "directional", vec))
	}

	embedder := &directionalEmbedder{vectors: map[string][]float32{
		"dogs": {1, 0, 0},
	}}
	svc := NewRetrievalService(store, embedder)

	results, err := svc.Select(ctx, "dogs", domain.RetrievalOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Semantic ranking wins even though the substring lives in doc-far.
	assert.Equal(t, "doc-near", results[0].Document.ID)
	assert.Equal(t, domain.MatchSemantic, results[0].Match)
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSelectSemanticIgnoresUnembedded(t *testing.T) {
	store := memory.NewDocumentStore()
	ctx := context.Background()

	seedDocument(t, store, "embedded", "Alpha", "text", 0)
	seedDocument(t, store, "plain", "query match here", "text", 1)

	doc, err := store.GetDocument(ctx, "embedded")
	require.NoError(t, err)
	doc.EmbeddingStatus = domain.EmbeddingCompleted
	require.NoError(t, store.SaveDocument(ctx, doc))
	require.NoError(t, store.SaveEmbedding(ctx, "embedded", "directional", []float32{1, 0, 0}))

	svc := NewRetrievalService(store, &directionalEmbedder{})

	results, err := svc.Select(ctx, "query", domain.RetrievalOptions{})
	require.NoError(t, err)

	// Only the embedded subset participates; no blending with the
	// substring match on the unembedded document.
	require.Len(t, results, 1)
	assert.Equal(t, "embedded", results[0].Document.ID)
	assert.Equal(t, domain.MatchSemantic, results[0].Match)
}

// failingEmbedder errors on every embed call.
type failingEmbedder struct{ directionalEmbedder }

func (f *failingEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return nil, fmt.Errorf("model not loaded")
}

func TestSelectEmbedderFailureIsFatal(t *testing.T) {
	store := memory.NewDocumentStore()
	ctx := context.Background()

	seedDocument(t, store, "doc-1", "Finland facts", "Population, lakes, saunas.", 0)

	doc, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	doc.EmbeddingStatus = domain.EmbeddingCompleted
	require.NoError(t, store.SaveDocument(ctx, doc))
	require.NoError(t, store.SaveEmbedding(ctx, "doc-1", "directional", []float32{1, 0, 0}))

	svc := NewRetrievalService(store, &failingEmbedder{})

	// An embedded candidate exists, so the query must be embedded; a
	// failing embedder surfaces as an error, never a substring result.
	results, err := svc.Select(ctx, "finland", domain.RetrievalOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.Nil(t, results)
}

func TestBuildContext(t *testing.T) {
	store := memory.NewDocumentStore()
	ctx := context.Background()

	seedDocument(t, store, "doc-1", "One", "irrelevant", 0)
	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "c-1", DocumentID: "doc-1", Content: "first chunk", Position: 0},
		{ID: "c-2", DocumentID: "doc-1", Content: "second chunk", Position: 1},
	}))

	svc := NewRetrievalService(store, nil)

	doc, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)

	out, err := svc.BuildContext(ctx, []domain.RetrievalResult{{Document: *doc}}, 5)
	require.NoError(t, err)

	assert.Equal(t,
		"Document Section 1:\nfirst chunk\n\n---\n\nDocument Section 2:\nsecond chunk",
		out)
}

func TestBuildContextSectionCap(t *testing.T) {
	store := memory.NewDocumentStore()
	ctx := context.Background()

	var results []domain.RetrievalResult
	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("doc-%d", i)
		seedDocument(t, store, id, "T", "body", i)
		require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
			{ID: id + "-a", DocumentID: id, Content: "chunk a of " + id, Position: 0},
			{ID: id + "-b", DocumentID: id, Content: "chunk b of " + id, Position: 1},
		}))
		doc, err := store.GetDocument(ctx, id)
		require.NoError(t, err)
		results = append(results, domain.RetrievalResult{Document: *doc})
	}

	svc := NewRetrievalService(store, nil)

	out, err := svc.BuildContext(ctx, results, 5)
	require.NoError(t, err)

	assert.Equal(t, 5, strings.Count(out, "Document Section "))
	assert.Contains(t, out, "Document Section 5:")
	assert.NotContains(t, out, "chunk b of doc-2")
}

func TestBuildContextEmpty(t *testing.T) {
	svc := NewRetrievalService(memory.NewDocumentStore(), nil)

	out, err := svc.BuildContext(context.Background(), nil, 5)
	require.NoError(t, err)
	assert.Empty(t, out)
}
