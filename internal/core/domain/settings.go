package domain

import "time"

// StorageBackend selects where stations, lines and favorites are persisted.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite persists to a local SQLite database.
	StorageSQLite StorageBackend = "sqlite"

	// StorageMemory keeps everything in memory for the process lifetime.
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	return b == StorageSQLite || b == StorageMemory
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// StorageSettings holds persistence configuration.
type StorageSettings struct {
	// Backend is the storage implementation to use.
	Backend StorageBackend

	// DataDir overrides the default data directory.
	DataDir string
}

// PathSettings holds path query configuration.
type PathSettings struct {
	// CacheEnabled keeps built network graphs between queries until a line changes.
	CacheEnabled bool

	// CacheTTL bounds how long a cached graph is reused.
	CacheTTL time.Duration
}

// AppSettings holds all application settings.
type AppSettings struct {
	Fare    FarePolicy
	Storage StorageSettings
	Path    PathSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Fare: DefaultFarePolicy(),
		Storage: StorageSettings{
			Backend: StorageSQLite,
		},
		Path: PathSettings{
			CacheEnabled: false,
			CacheTTL:     5 * time.Minute,
		},
	}
}
