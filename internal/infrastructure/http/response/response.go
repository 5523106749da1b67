// Package response writes HTTP responses for the todos API.
//
// Server-side failures are opaque: the status code is the only thing the
// client sees, and the cause is logged with the request context.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the envelope for client errors.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []ErrorField `json:"details"` // always an array, never null
}

// ErrorField describes a field-specific error.
type ErrorField struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// OK sends a 200 OK response with JSON data.
func OK(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, r, http.StatusOK, data)
}

// Created sends a 201 Created response with JSON data.
func Created(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, r, http.StatusCreated, data)
}

// OKEmpty sends a 200 OK response without a body.
func OKEmpty(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

// NoContent sends a 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// BadRequest sends a 400 Bad Request error.
func BadRequest(w http.ResponseWriter, r *http.Request, message string) {
	Error(w, r, "INVALID_REQUEST", message, http.StatusBadRequest)
}

// ValidationError sends a 400 validation error with field details.
func ValidationError(w http.ResponseWriter, r *http.Request, field, issue string) {
	writeJSON(w, r, http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: "validation failed",
			Details: []ErrorField{{Field: field, Issue: issue}},
		},
	})
}

// InternalError logs err and sends a bare 500 Internal Server Error.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		slog.ErrorContext(r.Context(), "Internal server error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
	}
	w.WriteHeader(http.StatusInternalServerError)
}

// Error sends a client error using the standard envelope.
func Error(w http.ResponseWriter, r *http.Request, code, message string, statusCode int) {
	writeJSON(w, r, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: []ErrorField{},
		},
	})
}

// writeJSON marshals before touching the ResponseWriter so an encoding
// failure can still become a 500.
func writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		InternalError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		slog.WarnContext(r.Context(), "failed to write response body", "error", err)
	}
}
