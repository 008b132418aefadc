package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStorageBackend_IsValid(t *testing.T) {
	tests := []struct {
		backend StorageBackend
		valid   bool
	}{
		{StorageSQLite, true},
		{StorageMemory, true},
		{StorageBackend("postgres"), false},
		{StorageBackend(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.backend.IsValid())
		})
	}
}

func TestDefaultAppSettings(t *testing.T) {
	settings := DefaultAppSettings()

	assert.Equal(t, DefaultFarePolicy(), settings.Fare)
	assert.Equal(t, StorageSQLite, settings.Storage.Backend)
	assert.Empty(t, settings.Storage.DataDir)
	assert.False(t, settings.Path.CacheEnabled)
	assert.Equal(t, 5*time.Minute, settings.Path.CacheTTL)
	assert.NoError(t, settings.Fare.Validate())
}
