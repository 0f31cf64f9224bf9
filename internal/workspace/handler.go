package workspace

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/inovapharm/consilium/internal/insight"
	"github.com/inovapharm/consilium/pkg/handlers"
	"github.com/inovapharm/consilium/pkg/pagination"
	"github.com/inovapharm/consilium/pkg/routes"
)

// Handler provides HTTP endpoints for workspace operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// ExtractRequest carries optional extraction instructions. The body may
// be omitted entirely.
type ExtractRequest struct {
	Prompt string `json:"prompt,omitempty"`
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "workspaces"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for workspace endpoints.
// Workspace creation is not exposed here; workspaces are opened by the
// analysis pipeline.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/workspaces",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "POST", Pattern: "/{id}/insights", Handler: h.ExtractInsights},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Cleanup},
		},
	}
}

// List returns a paginated list of workspaces with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single workspace by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidCommand)
		return
	}

	ws, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ws)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching workspaces.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidCommand)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ExtractInsights runs insight extraction against a ready workspace.
// The request body optionally supplies an analysis prompt.
func (h *Handler) ExtractInsights(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidCommand)
		return
	}

	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidCommand)
		return
	}

	insights, err := h.sys.ExtractInsights(r.Context(), id, req.Prompt)
	if err != nil {
		handlers.RespondError(w, h.logger, mapExtractionStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, insights)
}

// Cleanup releases and removes a workspace.
func (h *Handler) Cleanup(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidCommand)
		return
	}

	if err := h.sys.Cleanup(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// mapExtractionStatus prefers workspace error mappings and falls back to
// the insight mapping for collaborator failures.
func mapExtractionStatus(err error) int {
	if errors.Is(err, insight.ErrCollaboratorUnavailable) || errors.Is(err, insight.ErrExtractFailed) {
		return insight.MapHTTPStatus(err)
	}
	return MapHTTPStatus(err)
}
