// Package apperr defines the error kinds the HTTP layer maps to status codes.
//
// Packages declare their own sentinel errors with New, so callers can match either
// the precise sentinel or the broad kind with errors.Is:
//
//	var ErrDreamNotFound = apperr.New(apperr.ErrNotFound, "dream not found")
//
//	errors.Is(err, dream.ErrDreamNotFound) // precise
//	errors.Is(err, apperr.ErrNotFound)     // kind
package apperr

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrValidation marks missing or malformed client input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized marks a request without a caller identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden marks a caller acting on an entity it does not own.
	ErrForbidden = errors.New("forbidden")
)

// Error is an error of a given kind carrying a client facing message.
type Error struct {
	Kind    error
	Message string
}

// New creates an error of the given kind.
func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation creates a validation error listing the violated policies.
func Validation(message string, details ...string) *Error {
	if len(details) > 0 {
		message = message + ": " + strings.Join(details, ", ")
	}

	return New(ErrValidation, message)
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the kind to errors.Is.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Status maps an error to its HTTP status code and client message.
// Unknown errors map to 500 with an opaque message.
func Status(err error) (int, string) {
	var appErr *Error

	switch {
	case err == nil:
		return http.StatusOK, ""
	case !errors.As(err, &appErr):
		return http.StatusInternalServerError, InternalMessage
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, appErr.Message
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, appErr.Message
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, appErr.Message
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, appErr.Message
	default:
		return http.StatusInternalServerError, InternalMessage
	}
}

// InternalMessage is the body message of every unexpected failure.
const InternalMessage = "Internal server error"
