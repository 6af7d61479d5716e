package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"files-manager/internal/services"
	"files-manager/utils/response"
)

// serviceError maps a service error to its HTTP status and body. Anything
// outside the known taxonomy is logged and reported as a generic 500.
func serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, services.ErrMissingEmail),
		errors.Is(err, services.ErrMissingPassword),
		errors.Is(err, services.ErrMissingName),
		errors.Is(err, services.ErrMissingType),
		errors.Is(err, services.ErrMissingData),
		errors.Is(err, services.ErrParentNotFound),
		errors.Is(err, services.ErrParentNotFolder),
		errors.Is(err, services.ErrAlreadyExist),
		errors.Is(err, services.ErrFolderNoContent):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Not found")
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
