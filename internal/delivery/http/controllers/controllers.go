package controllers

import (
	"log/slog"
	"net/http"
	"regexp"

	"eventplanner/internal/delivery/http/helpers"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// writeDomainError maps a service error to an HTTP response. Errors that map to a
// 500 are logged with request details; client errors are not.
func writeDomainError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := helpers.MapDomainError(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.WriteJSONError(w, status, code, message)
}
