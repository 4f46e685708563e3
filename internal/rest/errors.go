package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/milplan/milplan/internal/apperr"
	log "github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteError writes a JSON error envelope with the given status code.
func WriteError(w http.ResponseWriter, status int, message string, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message, Details: details}); err != nil {
		log.Errorf("failed to encode error response: %v", err)
	}
}

// WriteServiceError maps service errors to HTTP statuses: invalid input to
// 400, missing records to 404, duplicates and referenced deletes to 409,
// anything else to 500.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		WriteError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, apperr.ErrNotFound):
		WriteError(w, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, apperr.ErrConflict):
		WriteError(w, http.StatusConflict, err.Error(), "")
	default:
		log.Errorf("unexpected service error: %v", err)
		WriteError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}
