package driving

import "github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"

// SettingsService manages pipeline settings.
type SettingsService interface {
	// Get retrieves the current pipeline settings, with defaults filled
	// in for anything unset.
	Get() (*domain.PipelineSettings, error)

	// Save persists pipeline settings.
	Save(settings *domain.PipelineSettings) error
}
