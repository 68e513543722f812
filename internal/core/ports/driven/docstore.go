package driven

import (
	"context"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
)

// DocumentStore persists documents, chunks, and per-document embeddings.
//
// Implementations are file-backed and do not provide transactional
// isolation across records: concurrent writers to the same document race
// and last-writer-wins. That is a documented limitation, not a goal.
type DocumentStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// SaveChunks replaces the chunks for a document.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetChunks retrieves all chunks for a document, ordered by position.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// ListDocuments returns all documents in a stable order
	// (creation time, then id).
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteDocument removes a document, its chunks, and its embedding.
	DeleteDocument(ctx context.Context, id string) error

	// SaveEmbedding stores the embedding vector for a document.
	SaveEmbedding(ctx context.Context, documentID, model string, vector []float32) error

	// GetEmbedding retrieves the embedding vector for a document.
	// Returns domain.ErrNotFound when the document has no embedding.
	GetEmbedding(ctx context.Context, documentID string) ([]float32, error)
}
