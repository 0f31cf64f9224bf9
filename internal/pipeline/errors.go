package pipeline

import (
	"errors"
	"net/http"

	"github.com/inovapharm/consilium/internal/documents"
	"github.com/inovapharm/consilium/internal/insight"
	"github.com/inovapharm/consilium/internal/reports"
	"github.com/inovapharm/consilium/internal/workspace"
)

// ErrEmptyRequest is returned when an analysis request carries neither a
// document reference nor inline content.
var ErrEmptyRequest = errors.New("analysis request has no document")

// MapHTTPStatus maps pipeline errors to HTTP status codes, delegating to
// the stage that produced the error.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmptyRequest):
		return http.StatusBadRequest
	case errors.Is(err, documents.ErrNotFound),
		errors.Is(err, documents.ErrInvalidFile),
		errors.Is(err, documents.ErrDuplicate):
		return documents.MapHTTPStatus(err)
	case errors.Is(err, workspace.ErrNotFound),
		errors.Is(err, workspace.ErrNotReady),
		errors.Is(err, workspace.ErrInvalidTransition),
		errors.Is(err, workspace.ErrInvalidCommand):
		return workspace.MapHTTPStatus(err)
	case errors.Is(err, insight.ErrCollaboratorUnavailable),
		errors.Is(err, insight.ErrExtractFailed):
		return insight.MapHTTPStatus(err)
	case errors.Is(err, reports.ErrUnsupportedAnalysisType),
		errors.Is(err, reports.ErrInvalidRequest):
		return reports.MapHTTPStatus(err)
	default:
		return http.StatusInternalServerError
	}
}
