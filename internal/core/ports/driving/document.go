package driving

import (
	"context"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
)

// DocumentService manages stored documents.
type DocumentService interface {
	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// List returns all documents in stable order.
	List(ctx context.Context) ([]domain.Document, error)

	// GetContent returns the concatenated content of all chunks.
	GetContent(ctx context.Context, documentID string) (string, error)

	// SetFavorite flips the favorite flag on a document.
	SetFavorite(ctx context.Context, documentID string, favorite bool) error

	// Delete removes a document, its chunks, and its embedding vector.
	Delete(ctx context.Context, documentID string) error
}
