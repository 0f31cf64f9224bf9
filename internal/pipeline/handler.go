package pipeline

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/inovapharm/consilium/analysis"
	"github.com/inovapharm/consilium/pkg/handlers"
	"github.com/inovapharm/consilium/pkg/routes"
)

// Handler provides HTTP endpoints for the analysis pipeline.
type Handler struct {
	pipeline *Pipeline
	logger   *slog.Logger
}

// ClassifyRequest carries inline content for standalone classification.
type ClassifyRequest struct {
	Text     string `json:"text"`
	Filename string `json:"filename"`
}

// RouteRequest carries a classification for standalone routing.
type RouteRequest struct {
	Classification analysis.Classification `json:"classification"`
	AnalysisType   string                  `json:"analysis_type,omitempty"`
}

// NewHandler creates a Handler for the given pipeline.
func NewHandler(p *Pipeline, logger *slog.Logger) *Handler {
	return &Handler{
		pipeline: p,
		logger:   logger.With("handler", "analysis"),
	}
}

// Routes returns the route group definition for analysis endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/analysis",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Analyze},
			{Method: "GET", Pattern: "/types", Handler: h.AnalysisTypes},
			{Method: "POST", Pattern: "/classify", Handler: h.Classify},
			{Method: "POST", Pattern: "/route", Handler: h.Route},
		},
	}
}

// Analyze runs the full analysis flow for a stored or inline document.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var cmd AnalyzeCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrEmptyRequest)
		return
	}

	result, err := h.pipeline.Analyze(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

// AnalysisTypes returns the supported analysis type catalog.
func (h *Handler) AnalysisTypes(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.pipeline.AnalysisTypes())
}

// Classify classifies inline content without opening a workspace.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrEmptyRequest)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.pipeline.Classify(req.Text, req.Filename))
}

// Route resolves the knowledge bundle for a classification without
// opening a workspace.
func (h *Handler) Route(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrEmptyRequest)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.pipeline.Route(req.Classification, req.AnalysisType))
}
