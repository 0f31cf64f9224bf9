package insight

import (
	"errors"
	"net/http"
)

var (
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
	ErrExtractFailed           = errors.New("insight extraction failed")
)

// MapHTTPStatus translates insight errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrCollaboratorUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, ErrExtractFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
