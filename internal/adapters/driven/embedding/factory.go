package embedding

import (
	"context"
	"fmt"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/adapters/driven/embedding/ollama"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/adapters/driven/embedding/openai"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/ports/driven"
)

// NewFromSettings builds the configured embedding provider.
func NewFromSettings(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	switch settings.Provider {
	case domain.ProviderOllama:
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil
	case domain.ProviderOpenAI:
		return openai.NewEmbeddingService(openai.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q", domain.ErrInvalidInput, settings.Provider)
	}
}

// LazyFromSettings wraps the configured provider behind lazy
// initialisation, so a misconfigured provider only fails when an
// operation actually needs embeddings.
func LazyFromSettings(settings domain.EmbeddingSettings) *Lazy {
	return NewLazy(func(_ context.Context) (driven.EmbeddingService, error) {
		return NewFromSettings(settings)
	})
}
