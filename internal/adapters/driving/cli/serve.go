package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/metro-cli/internal/adapters/driving/rest"
	"github.com/custodia-labs/metro-cli/internal/logger"
)

// Port range scanned when --port is not given.
const (
	serveStartPort = 8080
	serveEndPort   = 8099
)

var (
	servePort    int
	serveRate    float64
	serveBurst   int
	serveOrigins []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the REST API for route queries, stations, lines and favorites.

Routes:
  GET    /paths?source=&target=&age=
  GET    /stations
  GET    /lines
  GET    /lines/{id}
  POST   /lines/{id}/sections
  DELETE /lines/{id}/sections?stationId=
  GET    /favorites            (X-Member-ID header)
  POST   /favorites            (X-Member-ID header)
  DELETE /favorites/{id}       (X-Member-ID header)

Edits to the config file are picked up while the server runs.`,
	RunE: runServe,
}

func init() {
	defaults := rest.DefaultOptions()
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP port (0 = first free port from 8080)")
	serveCmd.Flags().Float64Var(&serveRate, "rate", defaults.RatePerSecond, "requests per second (0 = unlimited)")
	serveCmd.Flags().IntVar(&serveBurst, "burst", defaults.Burst, "request burst size")
	serveCmd.Flags().StringSliceVar(&serveOrigins, "cors-origin", nil, "allowed CORS origins")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if pathService == nil {
		return errors.New("path service not configured")
	}

	server, err := rest.NewServer(&rest.Ports{
		Path:     pathService,
		Station:  stationService,
		Line:     lineService,
		Favorite: favoriteService,
	}, rest.Options{
		RatePerSecond:  serveRate,
		Burst:          serveBurst,
		AllowedOrigins: serveOrigins,
	})
	if err != nil {
		return err
	}

	port := servePort
	if port == 0 {
		port, err = rest.FindAvailablePort(serveStartPort, serveEndPort)
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	if watchConfig != nil {
		go func() {
			if err := watchConfig(ctx); err != nil {
				logger.L().Warn("config watcher stopped", "error", err)
			}
		}()
	}

	addr := fmt.Sprintf(":%d", port)
	cmd.Printf("Listening on http://localhost%s\n", addr)
	return server.Run(ctx, addr)
}
