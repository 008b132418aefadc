package driving

import (
	"time"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetFarePolicy updates the fare table.
	SetFarePolicy(policy domain.FarePolicy) error

	// SetStorageBackend selects the persistence backend.
	SetStorageBackend(backend domain.StorageBackend) error

	// SetPathCache enables or disables the network graph cache.
	SetPathCache(enabled bool, ttl time.Duration) error

	// Validate checks the current settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
