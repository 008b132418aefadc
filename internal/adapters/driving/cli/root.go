// Package cli implements the metro command line: cobra commands that drive
// the core services through their driving ports.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
	"github.com/custodia-labs/metro-cli/internal/core/ports/driving"
	"github.com/custodia-labs/metro-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose        bool
	storageBackend string
)

// Services available to commands. Nil until configured.
var (
	stationService  driving.StationService
	lineService     driving.LineService
	pathService     driving.PathService
	favoriteService driving.FavoriteService
	settingsService driving.SettingsService

	watchConfig func(ctx context.Context) error
)

// Services bundles the driving ports the commands use.
type Services struct {
	Station  driving.StationService
	Line     driving.LineService
	Path     driving.PathService
	Favorite driving.FavoriteService
	Settings driving.SettingsService

	// WatchConfig blocks, reloading settings on config file edits, until
	// the context is cancelled. Optional.
	WatchConfig func(ctx context.Context) error
}

// Bootstrap builds the services for a storage backend. An empty backend
// means the configured one. The returned closer releases storage.
type Bootstrap func(backend domain.StorageBackend) (*Services, func() error, error)

var (
	bootstrap Bootstrap
	closer    func() error
)

var rootCmd = &cobra.Command{
	Use:   "metro",
	Short: "Subway network routes and fares",
	Long: `metro manages a subway network of stations and lines and answers
shortest-route queries with distance-based fares.

Lines are chains of sections between stations. Routes may transfer
between lines; a line's surcharge is added to the fare once, using the
highest surcharge along the route.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", "",
		"storage backend: sqlite or memory (default from settings)")
}

// SetServices installs the services used by commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	stationService = s.Station
	lineService = s.Line
	pathService = s.Path
	favoriteService = s.Favorite
	settingsService = s.Settings
	watchConfig = s.WatchConfig
}

// SetBootstrap registers the function that builds services before a
// command runs. Without one, previously set services are used as is.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

func runBootstrap(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil {
		return nil
	}
	backend := domain.StorageBackend(storageBackend)
	if backend != "" && !backend.IsValid() {
		return fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, storageBackend)
	}

	services, closeFn, err := bootstrap(backend)
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}
	SetServices(services)
	closer = closeFn
	return nil
}

// Execute runs the root command and releases storage afterwards.
func Execute(ctx context.Context) error {
	defer func() {
		if closer == nil {
			return
		}
		if err := closer(); err != nil {
			logger.Warn("closing storage: %v", err)
		}
		closer = nil
	}()
	return rootCmd.ExecuteContext(ctx)
}

// commandContext returns the command's context, or Background when unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// resolveStation finds a station by ID or unique name.
func resolveStation(ctx context.Context, idOrName string) (*domain.Station, error) {
	if stationService == nil {
		return nil, errors.New("station service not configured")
	}
	station, err := stationService.Resolve(ctx, idOrName)
	if err != nil {
		return nil, fmt.Errorf("station %q: %w", idOrName, err)
	}
	return station, nil
}

// resolveLine finds a line by ID or unique name.
func resolveLine(ctx context.Context, idOrName string) (*domain.Line, error) {
	if lineService == nil {
		return nil, errors.New("line service not configured")
	}
	line, err := lineService.Resolve(ctx, idOrName)
	if err != nil {
		return nil, fmt.Errorf("line %q: %w", idOrName, err)
	}
	return line, nil
}

// exitCode maps an error to a process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrNotFound):
		return 3
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidSection),
		errors.Is(err, domain.ErrSameStation):
		return 2
	default:
		return 1
	}
}

// Main runs the CLI and exits the process with a status for the error.
func Main(ctx context.Context) {
	if err := Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}
