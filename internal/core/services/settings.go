package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
	"github.com/custodia-labs/metro-cli/internal/core/ports/driven"
	"github.com/custodia-labs/metro-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyFareBase         = "fare.base_fare"
	keyFareBaseDistance = "fare.base_distance"
	keyFareMidDistance  = "fare.mid_distance"
	keyFareMidUnit      = "fare.mid_unit"
	keyFareLongUnit     = "fare.long_unit"
	keyFareUnit         = "fare.unit_fare"
	keyFareDeduction    = "fare.deduction"
	keyStorageBackend   = "storage.backend"
	keyStorageDataDir   = "storage.data_dir"
	keyPathCacheEnabled = "path.cache_enabled"
	keyPathCacheTTL     = "path.cache_ttl"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	if s.configStore == nil {
		return nil, domain.ErrNotImplemented
	}
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Fare: domain.FarePolicy{
			BaseFare:     s.getInt(keyFareBase, defaults.Fare.BaseFare),
			BaseDistance: s.getInt(keyFareBaseDistance, defaults.Fare.BaseDistance),
			MidDistance:  s.getInt(keyFareMidDistance, defaults.Fare.MidDistance),
			MidUnit:      s.getInt(keyFareMidUnit, defaults.Fare.MidUnit),
			LongUnit:     s.getInt(keyFareLongUnit, defaults.Fare.LongUnit),
			UnitFare:     s.getInt(keyFareUnit, defaults.Fare.UnitFare),
			Deduction:    s.getInt(keyFareDeduction, defaults.Fare.Deduction),
		},
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
			DataDir: s.configStore.GetString(keyStorageDataDir),
		},
		Path: domain.PathSettings{
			CacheEnabled: s.getBool(keyPathCacheEnabled, defaults.Path.CacheEnabled),
			CacheTTL:     s.getDuration(keyPathCacheTTL, defaults.Path.CacheTTL),
		},
	}

	// An inconsistent stored fare table falls back to the defaults as a whole.
	if settings.Fare.Validate() != nil {
		settings.Fare = defaults.Fare
	}
	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if err := settings.Fare.Validate(); err != nil {
		return err
	}
	if !settings.Storage.Backend.IsValid() {
		return fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, settings.Storage.Backend)
	}

	values := []struct {
		key   string
		value any
	}{
		{keyFareBase, settings.Fare.BaseFare},
		{keyFareBaseDistance, settings.Fare.BaseDistance},
		{keyFareMidDistance, settings.Fare.MidDistance},
		{keyFareMidUnit, settings.Fare.MidUnit},
		{keyFareLongUnit, settings.Fare.LongUnit},
		{keyFareUnit, settings.Fare.UnitFare},
		{keyFareDeduction, settings.Fare.Deduction},
		{keyStorageBackend, settings.Storage.Backend.String()},
		{keyStorageDataDir, settings.Storage.DataDir},
		{keyPathCacheEnabled, settings.Path.CacheEnabled},
		{keyPathCacheTTL, settings.Path.CacheTTL.String()},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// SetFarePolicy updates the fare table.
func (s *SettingsService) SetFarePolicy(policy domain.FarePolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Fare = policy
	return s.Save(settings)
}

// SetStorageBackend selects the persistence backend.
func (s *SettingsService) SetStorageBackend(backend domain.StorageBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, backend)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Storage.Backend = backend
	return s.Save(settings)
}

// SetPathCache enables or disables the network graph cache.
func (s *SettingsService) SetPathCache(enabled bool, ttl time.Duration) error {
	if enabled && ttl <= 0 {
		return fmt.Errorf("%w: cache ttl must be positive", domain.ErrInvalidInput)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Path.CacheEnabled = enabled
	if ttl > 0 {
		settings.Path.CacheTTL = ttl
	}
	return s.Save(settings)
}

// Validate checks the stored settings, without falling back to defaults.
func (s *SettingsService) Validate() error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if val := s.configStore.GetString(keyStorageBackend); val != "" && !domain.StorageBackend(val).IsValid() {
		return fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, val)
	}
	if val := s.configStore.GetString(keyPathCacheTTL); val != "" {
		if _, err := time.ParseDuration(val); err != nil {
			return fmt.Errorf("%w: path cache ttl %q", domain.ErrInvalidInput, val)
		}
	}

	defaults := domain.DefaultAppSettings()
	policy := domain.FarePolicy{
		BaseFare:     s.getInt(keyFareBase, defaults.Fare.BaseFare),
		BaseDistance: s.getInt(keyFareBaseDistance, defaults.Fare.BaseDistance),
		MidDistance:  s.getInt(keyFareMidDistance, defaults.Fare.MidDistance),
		MidUnit:      s.getInt(keyFareMidUnit, defaults.Fare.MidUnit),
		LongUnit:     s.getInt(keyFareLongUnit, defaults.Fare.LongUnit),
		UnitFare:     s.getInt(keyFareUnit, defaults.Fare.UnitFare),
		Deduction:    s.getInt(keyFareDeduction, defaults.Fare.Deduction),
	}
	return policy.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.configStore.GetString(keyStorageBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StorageBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
