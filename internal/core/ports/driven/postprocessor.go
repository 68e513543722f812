package driven

import (
	"context"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
)

// ChunkProcessor splits document content into chunks.
// Implementations are pure functions of the document content and their
// configuration: identical input always yields identical chunks.
type ChunkProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process splits the document content into ordered chunks.
	// Empty content yields no chunks and no error.
	Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error)
}
