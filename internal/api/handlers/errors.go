package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/postboard/postboard/internal/api/httpx"
	"github.com/postboard/postboard/internal/services"
)

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is logged and reported as a generic 500 so
// storage internals never leak to the client.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, services.ErrConflict):
		httpx.WriteError(w, http.StatusConflict, "conflict", services.ErrConflict.Error(), nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", services.ErrInvalidCredentials.Error(), nil)
	case errors.Is(err, services.ErrInvalidToken):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", services.ErrInvalidToken.Error(), nil)
	case errors.Is(err, services.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
	default:
		slog.Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}
