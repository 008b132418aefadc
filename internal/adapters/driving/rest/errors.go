package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
	"github.com/custodia-labs/metro-cli/internal/logger"
)

// ErrMissingPathService is returned when the path service is not provided.
var ErrMissingPathService = errors.New("rest: path service is required")

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps a service error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidSection),
		errors.Is(err, domain.ErrSameStation),
		errors.Is(err, domain.ErrNoPath),
		errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrStationInUse):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotImplemented):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.L().Error("request failed", "error", err)
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.L().Warn("encode response", "error", err)
	}
}
