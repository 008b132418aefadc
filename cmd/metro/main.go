// Command metro manages a subway network and answers route and fare queries.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/metro-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/metro-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/metro-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/metro-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/metro-cli/internal/core/domain"
	"github.com/custodia-labs/metro-cli/internal/core/ports/driven"
	"github.com/custodia-labs/metro-cli/internal/core/services"
	"github.com/custodia-labs/metro-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// A missing .env is fine; METRO_HOME may come from the real environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: loading config:", err)
		os.Exit(1)
	}

	cli.SetVersion(version)
	cli.SetBootstrap(newBootstrap(configStore))
	cli.Main(ctx)
}

// watchableConfig is a config store that can report external edits.
type watchableConfig interface {
	driven.ConfigStore
	driven.ConfigWatcher
}

// newBootstrap returns the function that wires stores and services for the
// chosen storage backend.
func newBootstrap(configStore watchableConfig) cli.Bootstrap {
	return func(backend domain.StorageBackend) (*cli.Services, func() error, error) {
		settingsSvc := services.NewSettingsService(configStore)
		settings, err := settingsSvc.Get()
		if err != nil {
			return nil, nil, fmt.Errorf("reading settings: %w", err)
		}
		if backend == "" {
			backend = settings.Storage.Backend
		}

		stations, lines, favorites, closeFn, err := openStorage(backend, settings.Storage.DataDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("storage backend: %s", backend)

		lineSvc := services.NewLineService(lines, stations)
		pathSvc := services.NewPathService(stations, lines)
		if err := pathSvc.SetFarePolicy(settings.Fare); err != nil {
			_ = closeFn()
			return nil, nil, fmt.Errorf("fare policy: %w", err)
		}
		if settings.Path.CacheEnabled {
			pathSvc.EnableGraphCache(settings.Path.CacheTTL)
			logger.Debug("graph cache enabled, ttl %s", settings.Path.CacheTTL)
		}

		return &cli.Services{
			Station:  services.NewStationService(stations, lines, favorites),
			Line:     lineSvc,
			Path:     pathSvc,
			Favorite: services.NewFavoriteService(favorites, stations),
			Settings: settingsSvc,
			WatchConfig: func(ctx context.Context) error {
				return configStore.Watch(ctx, func() {
					reloadFarePolicy(settingsSvc, pathSvc)
				})
			},
		}, closeFn, nil
	}
}

// reloadFarePolicy applies the fare table from freshly loaded settings.
func reloadFarePolicy(settingsSvc *services.SettingsService, pathSvc *services.PathService) {
	settings, err := settingsSvc.Get()
	if err != nil {
		logger.Warn("reloading settings: %v", err)
		return
	}
	if err := pathSvc.SetFarePolicy(settings.Fare); err != nil {
		logger.Warn("ignoring fare table: %v", err)
		return
	}
	logger.Info("fare table reloaded")
}

func openStorage(backend domain.StorageBackend, dataDir string) (
	driven.StationStore, driven.LineStore, driven.FavoriteStore, func() error, error,
) {
	switch backend {
	case domain.StorageMemory:
		return memory.NewStationStore(), memory.NewLineStore(), memory.NewFavoriteStore(),
			func() error { return nil }, nil
	case domain.StorageSQLite:
		if dataDir == "" {
			dir, err := file.DefaultDir()
			if err != nil {
				return nil, nil, nil, nil, fmt.Errorf("resolving data dir: %w", err)
			}
			dataDir = filepath.Join(dir, "data")
		}
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("opening database: %w", err)
		}
		return store.StationStore(), store.LineStore(), store.FavoriteStore(), store.Close, nil
	default:
		return nil, nil, nil, nil, fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, backend)
	}
}
