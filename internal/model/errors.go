package model

import (
	"errors"
	"net/http"
)

// Error taxonomy surfaced to clients. Services return these (usually wrapped
// with fmt.Errorf and %w); the handler layer maps them to a status and a
// stable error code. Missing and cross-organization resources share
// ErrNotFound so a denied tenant learns nothing about existence.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("not authorized for this action")
	ErrValidation   = errors.New("invalid request")
	ErrTodoNotFound = errors.New("todo not found")
	ErrConflict     = errors.New("resource already exists")
	ErrUpstream     = errors.New("upstream service failed")
	ErrUnauthorized = errors.New("authentication required")
)

// CodeOf maps a taxonomy error to its HTTP status and stable code.
// Unrecognized errors are reported as internal.
func CodeOf(err error) (int, string) {
	switch {
	case errors.Is(err, ErrTodoNotFound):
		return http.StatusNotFound, "TODO_NOT_FOUND"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, ErrConflict):
		return http.StatusConflict, "CONFLICT"
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway, "UPSTREAM_ERROR"
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	}
	return http.StatusInternalServerError, "INTERNAL"
}
