package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"tabletap/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// writeDomainError maps a service error onto the HTTP surface: domain errors
// are the client's fault (400-class, field-level detail) except for the
// not-found and menu-integrity codes, and everything else is a server-side
// failure reported without internals.
func writeDomainError(w http.ResponseWriter, err error, fallback string, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		switch domainErr.Code {
		case model.ErrCodeItemNotFound:
			status = http.StatusNotFound
		case model.ErrCodeMenuIntegrity:
			// Corrupt menu data is never the client's fault.
			status = http.StatusInternalServerError
		}
		// err.Error() keeps any field-level context added by wrapping.
		writeError(w, status, err.Error(), logger)
		return
	}
	writeError(w, http.StatusInternalServerError, fallback, logger)
}
