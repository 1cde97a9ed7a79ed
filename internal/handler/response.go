package handler

// RESPONSE HELPERS:
// Every handler answers through writeJSON / writeError so the API has one
// success shape (the row or array itself) and one error shape:
//
//	{"error": "category not found with id 7", "code": "not_found"}
//
// "error" is always a human-readable message; "code" is the machine-readable
// kind clients can switch on.

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/game-store/internal/apperror"
)

// maxBodyBytes caps request bodies. Every request in this API is a small
// JSON object.
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"           example:"category not found with id 7"`
	Code  string `json:"code"            example:"not_found"`
	Field string `json:"field,omitempty" example:"name"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to a status code and sends it.
//
// errors.Is walks the wrap chain, so a service error such as
// fmt.Errorf("updating game: %w", apperror.Conflict(...)) still maps to 409.
// Errors that carry no apperror kind are internal: they are logged with the
// request's logger and the client gets a generic message, never SQL text.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, code := classify(err)

	if status != http.StatusInternalServerError {
		resp := ErrorResponse{Error: err.Error(), Code: code}
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			resp.Error = appErr.Message
			resp.Field = appErr.Field
		}
		writeJSON(w, status, resp)
		return
	}

	logger.Error("request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", chimiddleware.GetReqID(r.Context())),
		slog.String("error", err.Error()),
	)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: "an internal error occurred",
		Code:  code,
	})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, apperror.ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// decodeJSON reads a single JSON object from the request body into dst.
// Any decoding problem (syntax, wrong type, empty or oversized body) is
// reported as a validation error so the client gets a 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperror.ValidationFailed("body", "request body is required")
		case errors.As(err, &typeErr):
			return apperror.ValidationFailed(typeErr.Field,
				fmt.Sprintf("field %q must be of type %s", typeErr.Field, typeErr.Type))
		case errors.As(err, &maxErr):
			return apperror.ValidationFailed("body",
				fmt.Sprintf("request body must be at most %d bytes", maxErr.Limit))
		default:
			return apperror.ValidationFailed("body", "invalid JSON body: "+err.Error())
		}
	}

	if dec.More() {
		return apperror.ValidationFailed("body", "request body must contain a single JSON object")
	}
	return nil
}

// NotFound answers paths no route serves, in the API's error shape.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{
		Error: fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path),
		Code:  "not_found",
	})
}

// MethodNotAllowed answers a known path requested with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
		Error: fmt.Sprintf("method %s not allowed on %s", r.Method, r.URL.Path),
		Code:  "method_not_allowed",
	})
}
