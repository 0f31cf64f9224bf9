package workspace

import (
	"errors"
	"net/http"
)

// Domain errors for workspace operations.
var (
	ErrNotFound          = errors.New("workspace not found")
	ErrDuplicate         = errors.New("workspace already exists")
	ErrInvalidTransition = errors.New("invalid workspace transition")
	ErrNotReady          = errors.New("workspace is not ready")
	ErrInvalidCommand    = errors.New("invalid workspace command")
)

// MapHTTPStatus maps workspace domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrNotReady), errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCommand):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
