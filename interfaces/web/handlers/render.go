// Package handlers contains the chi HTTP handlers for the JSON and PDF
// delivery surface.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"ndisaudit/application"
	"ndisaudit/domain/contracts"
	"ndisaudit/domain/findings"
	"ndisaudit/logging"
)

// errorResponse is the uniform JSON error body
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("Failed to encode JSON response", "error", err)
	}
}

// writeError maps domain errors to HTTP status codes and writes a JSON body.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contracts.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, contracts.ErrScopeLocked),
		errors.Is(err, findings.ErrAlreadyClosed),
		errors.Is(err, findings.ErrNotClosed):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, findings.ErrClosureNoteTooShort),
		errors.Is(err, application.ErrInvalidRating):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		logging.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// writeBadRequest writes a 400 with the given message.
func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// decodeJSON parses the request body into v.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
