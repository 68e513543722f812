package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
)

func TestDocumentRoundTrip(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc := &domain.Document{
		ID:              "doc-1",
		Title:           "First",
		Type:            domain.TypeText,
		Content:         "hello",
		EmbeddingStatus: domain.EmbeddingPending,
		CreatedAt:       time.Now(),
	}
	require.NoError(t, store.SaveDocument(ctx, doc))

	got, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)

	_, err = store.GetDocument(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaveDocumentCopies(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc := &domain.Document{ID: "doc-1", Title: "Original"}
	require.NoError(t, store.SaveDocument(ctx, doc))

	// Mutating the caller's struct must not leak into the store.
	doc.Title = "Mutated"

	got, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Title)
}

func TestListDocumentsStableOrder(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "b", CreatedAt: base}))
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "a", CreatedAt: base}))
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "c", CreatedAt: base.Add(-time.Hour)}))

	list, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].ID)
	assert.Equal(t, "a", list[1].ID)
	assert.Equal(t, "b", list[2].ID)
}

func TestChunksReplaceAndOrder(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "c-2", DocumentID: "doc-1", Content: "second", Position: 1},
		{ID: "c-1", DocumentID: "doc-1", Content: "first", Position: 0},
	}))

	got, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Content)

	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "c-3", DocumentID: "doc-1", Content: "replacement", Position: 0},
	}))

	got, err = store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "replacement", got[0].Content)
}

func TestDeleteDocument(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "doc-1"}))
	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "c-1", DocumentID: "doc-1", Position: 0},
	}))
	require.NoError(t, store.SaveEmbedding(ctx, "doc-1", "fake-model", []float32{1}))

	require.NoError(t, store.DeleteDocument(ctx, "doc-1"))

	_, err := store.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.GetEmbedding(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	chunks, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Empty(t, chunks)

	assert.ErrorIs(t, store.DeleteDocument(ctx, "doc-1"), domain.ErrNotFound)
}

func TestEmbeddingRoundTrip(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	vector := []float32{0.5, -0.5}
	require.NoError(t, store.SaveEmbedding(ctx, "doc-1", "fake-model", vector))

	got, err := store.GetEmbedding(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, vector, got)

	// The stored vector is isolated from the caller's slice.
	vector[0] = 99
	got, err = store.GetEmbedding(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), got[0])
}
