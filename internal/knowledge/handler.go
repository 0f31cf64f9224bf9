package knowledge

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/inovapharm/consilium/pkg/handlers"
	"github.com/inovapharm/consilium/pkg/routes"
)

// Handler provides HTTP endpoints for knowledge source management.
type Handler struct {
	registry *Registry
	logger   *slog.Logger
}

// NewHandler creates a Handler for the given registry.
func NewHandler(registry *Registry, logger *slog.Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger.With("handler", "knowledge"),
	}
}

// Routes returns the route group definition for knowledge source endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/knowledge",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "", Handler: h.Add},
			{Method: "PATCH", Pattern: "/{id}", Handler: h.Update},
		},
	}
}

// List returns all registered sources; pass active=true to filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("active") == "true" {
		handlers.RespondJSON(w, http.StatusOK, h.registry.Active())
		return
	}
	handlers.RespondJSON(w, http.StatusOK, h.registry.Snapshot())
}

// Find returns a single source by id.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	source, ok := h.registry.Get(r.PathValue("id"))
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrSourceNotFound)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, source)
}

// Add registers a new source.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var source Source
	if err := json.NewDecoder(r.Body).Decode(&source); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidPatch)
		return
	}
	if source.ID == "" || source.Name == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidPatch)
		return
	}

	if err := h.registry.Add(source); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	added, _ := h.registry.Get(source.ID)
	handlers.RespondJSON(w, http.StatusCreated, added)
}

// Update applies a partial patch to a registered source.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var patch Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidPatch)
		return
	}

	id := r.PathValue("id")
	if !h.registry.Update(id, patch) {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrSourceNotFound)
		return
	}

	updated, _ := h.registry.Get(id)
	handlers.RespondJSON(w, http.StatusOK, updated)
}
