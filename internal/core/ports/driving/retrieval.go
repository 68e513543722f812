package driving

import (
	"context"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
)

// RetrievalService selects documents relevant to a query and assembles
// the context string handed to the LLM client.
type RetrievalService interface {
	// Select returns a ranked, limit-bounded subset of documents.
	// An empty query or empty corpus yields an empty result, not an error.
	Select(ctx context.Context, query string, opts domain.RetrievalOptions) ([]domain.RetrievalResult, error)

	// BuildContext concatenates chunks of the selected documents into a
	// numbered, delimited context string, capped at maxSections chunks.
	BuildContext(ctx context.Context, results []domain.RetrievalResult, maxSections int) (string, error)
}
