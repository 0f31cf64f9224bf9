package knowledge

import (
	"errors"
	"net/http"
)

// Domain errors for knowledge source operations.
var (
	ErrSourceNotFound  = errors.New("knowledge source not found")
	ErrDuplicateSource = errors.New("knowledge source id already registered")
	ErrInvalidPatch    = errors.New("invalid knowledge source patch")
)

// MapHTTPStatus maps knowledge domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrSourceNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicateSource) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidPatch) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
