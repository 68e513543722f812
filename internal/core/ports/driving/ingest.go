package driving

import (
	"context"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
)

// IngestService turns uploaded files into stored, chunked documents.
type IngestService interface {
	// Ingest runs the pipeline for one upload: type detection,
	// extraction, metadata enrichment, chunking, and persistence.
	// A document record is always created, even when extraction
	// degrades; only storage failures return an error.
	Ingest(ctx context.Context, raw *domain.RawFile) (*domain.Document, error)

	// EmbedDocument generates and stores the embedding for a document,
	// advancing its embedding status. On failure the status moves to
	// failed and the document remains usable via substring retrieval.
	EmbedDocument(ctx context.Context, documentID string) error
}
