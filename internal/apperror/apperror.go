// Package apperror defines the error kinds shared by every layer of the store.
//
// Repositories and services return these kinds; only the HTTP layer
// (handler/response.go) turns them into status codes:
//
//	ErrValidation  → 400  malformed body, missing id, NOT NULL violation
//	ErrNotFound    → 404  no row with the requested id
//	ErrConflict    → 409  foreign key / unique constraint violation
//	ErrUnavailable → 503  database not reachable
//
// Anything else is an internal error and becomes a generic 500.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)

type AppError struct {
	Err     error  // sentinel kind
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that no row of the given resource has the given id.
func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict reports a write rejected by a relational constraint.
func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// Unavailable reports that a backing resource (the database) cannot be reached.
func Unavailable(message string) *AppError {
	return &AppError{
		Err:     ErrUnavailable,
		Message: message,
	}
}
