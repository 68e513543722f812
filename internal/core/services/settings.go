package services

import (
	"fmt"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/ports/driven"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyChunkSize     = "pipeline.chunk_size"
	keyChunkOverlap  = "pipeline.chunk_overlap"
	keyRetrieveLimit = "pipeline.retrieval_limit"
	keyMaxSections   = "pipeline.max_context_sections"
	keyEmbedProvider = "embedding.provider"
	keyEmbedModel    = "embedding.model"
	keyEmbedBaseURL  = "embedding.base_url"
	keyEmbedAPIKey   = "embedding.api_key"
)

// SettingsService manages pipeline settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current pipeline settings, with defaults filled in for
// anything unset.
func (s *SettingsService) Get() (*domain.PipelineSettings, error) {
	defaults := domain.DefaultPipelineSettings()

	settings := &domain.PipelineSettings{
		ChunkSize:          s.getInt(keyChunkSize, defaults.ChunkSize),
		ChunkOverlap:       s.getInt(keyChunkOverlap, defaults.ChunkOverlap),
		RetrievalLimit:     s.getInt(keyRetrieveLimit, defaults.RetrievalLimit),
		MaxContextSections: s.getInt(keyMaxSections, defaults.MaxContextSections),
		Embedding: domain.EmbeddingSettings{
			Provider: s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:    s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyEmbedAPIKey),
		},
	}

	return settings, nil
}

// Save persists pipeline settings.
func (s *SettingsService) Save(settings *domain.PipelineSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if settings.ChunkOverlap >= settings.ChunkSize {
		return fmt.Errorf("%w: chunk overlap must be smaller than chunk size", domain.ErrInvalidInput)
	}
	if !settings.Embedding.Provider.IsValid() {
		return fmt.Errorf("%w: unknown embedding provider %q", domain.ErrInvalidInput, settings.Embedding.Provider)
	}

	if err := s.configStore.Set(keyChunkSize, settings.ChunkSize); err != nil {
		return fmt.Errorf("save chunk size: %w", err)
	}
	if err := s.configStore.Set(keyChunkOverlap, settings.ChunkOverlap); err != nil {
		return fmt.Errorf("save chunk overlap: %w", err)
	}
	if err := s.configStore.Set(keyRetrieveLimit, settings.RetrievalLimit); err != nil {
		return fmt.Errorf("save retrieval limit: %w", err)
	}
	if err := s.configStore.Set(keyMaxSections, settings.MaxContextSections); err != nil {
		return fmt.Errorf("save max context sections: %w", err)
	}

	if err := s.configStore.Set(keyEmbedProvider, settings.Embedding.Provider.String()); err != nil {
		return fmt.Errorf("save embedding provider: %w", err)
	}
	if err := s.configStore.Set(keyEmbedModel, settings.Embedding.Model); err != nil {
		return fmt.Errorf("save embedding model: %w", err)
	}
	if err := s.configStore.Set(keyEmbedBaseURL, settings.Embedding.BaseURL); err != nil {
		return fmt.Errorf("save embedding base_url: %w", err)
	}
	if settings.Embedding.APIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}

	return nil
}

// getInt reads an int key, falling back to a default only when the key
// is absent or malformed. A stored zero is a value, not an absence.
func (s *SettingsService) getInt(key string, fallback int) int {
	val, ok := s.configStore.Get(key)
	if !ok {
		return fallback
	}

	// TOML integers are parsed as int64
	switch v := val.(type) {
	case int64:
		if v >= 0 {
			return int(v)
		}
	case int:
		if v >= 0 {
			return v
		}
	}
	return fallback
}

// getString reads a string key, falling back to a default when unset.
func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

// getProvider reads a provider key, falling back when unset or invalid.
func (s *SettingsService) getProvider(key string, fallback domain.EmbeddingProvider) domain.EmbeddingProvider {
	p := domain.EmbeddingProvider(s.configStore.GetString(key))
	if p.IsValid() {
		return p
	}
	return fallback
}
