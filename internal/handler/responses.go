package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/neo0222/ftf-backoffice/internal/domain"
)

// Standard response types for consistent API responses

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; all we can do is log.
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgNotFoundError       = "Entity not found."
	ErrMsgUnknownFoodTypeErr  = "Unknown food type."
	ErrMsgUnknownOperationErr = "Unknown operation."
	ErrMsgServerErrorError    = "Server error occurred. Please try again."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrMsgNotFoundError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrUnknownFoodType):
		return http.StatusBadRequest, ErrMsgUnknownFoodTypeErr
	case errors.Is(err, domain.ErrUnknownOperation):
		return http.StatusBadRequest, ErrMsgUnknownOperationErr
	default:
		return http.StatusInternalServerError, ErrMsgServerErrorError
	}
}

// respondServiceError logs the underlying error and writes the mapped response
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "error", err)
	}
	respondError(w, status, message)
}
