package api

import (
	"net/http"

	"github.com/inovapharm/consilium/internal/config"
	"github.com/inovapharm/consilium/internal/knowledge"
	"github.com/inovapharm/consilium/internal/pipeline"
	"github.com/inovapharm/consilium/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	knowledgeHandler := knowledge.NewHandler(domain.Registry, runtime.Logger)
	pipelineHandler := pipeline.NewHandler(domain.Pipeline, runtime.Logger)

	routes.Register(
		mux,
		domain.Documents.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Workspaces.Handler().Routes(),
		domain.Reports.Handler().Routes(),
		knowledgeHandler.Routes(),
		pipelineHandler.Routes(),
	)
}
