package rest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/metro-cli/internal/logger"
)

// Options tunes the HTTP server.
type Options struct {
	// RatePerSecond is the sustained request rate allowed across all clients.
	// Zero disables limiting.
	RatePerSecond float64

	// Burst is the number of requests allowed above the sustained rate.
	Burst int

	// AllowedOrigins lists origins permitted by CORS. Empty allows none.
	AllowedOrigins []string
}

// DefaultOptions returns the options used by `metro serve`.
func DefaultOptions() Options {
	return Options{
		RatePerSecond: 20,
		Burst:         40,
	}
}

// Server serves the metro JSON API.
type Server struct {
	ports   *Ports
	handler http.Handler
}

// NewServer creates a server with all routes registered.
func NewServer(ports *Ports, opts Options) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{ports: ports}

	router := mux.NewRouter()
	router.HandleFunc("/paths", s.handleFindPath).Methods(http.MethodGet)
	router.HandleFunc("/stations", s.handleListStations).Methods(http.MethodGet)
	router.HandleFunc("/lines", s.handleListLines).Methods(http.MethodGet)
	router.HandleFunc("/lines/{id}", s.handleGetLine).Methods(http.MethodGet)
	router.HandleFunc("/lines/{id}/sections", s.handleAddSection).Methods(http.MethodPost)
	router.HandleFunc("/lines/{id}/sections", s.handleDeleteSection).Methods(http.MethodDelete)
	router.HandleFunc("/favorites", s.handleListFavorites).Methods(http.MethodGet)
	router.HandleFunc("/favorites", s.handleAddFavorite).Methods(http.MethodPost)
	router.HandleFunc("/favorites/{id}", s.handleRemoveFavorite).Methods(http.MethodDelete)

	var handler http.Handler = router
	if opts.RatePerSecond > 0 {
		burst := max(opts.Burst, 1)
		handler = rateLimit(rate.NewLimiter(rate.Limit(opts.RatePerSecond), burst))(handler)
	}
	handler = cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", memberHeader},
		MaxAge:         86400,
	}).Handler(handler)
	handler = logRequests(handler)
	handler = recoverPanics(handler)
	s.handler = otelhttp.NewHandler(handler, "metro-rest")

	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Debug("rest: listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// FindAvailablePort finds an available port in the given range.
func FindAvailablePort(startPort, endPort int) (int, error) {
	for port := startPort; port <= endPort; port++ {
		addr := fmt.Sprintf("127.0.0.1:%d", port)
		listener, err := net.Listen("tcp", addr)
		if err == nil {
			listener.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port in range %d-%d", startPort, endPort)
}
