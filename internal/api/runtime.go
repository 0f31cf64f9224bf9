package api

import (
	"github.com/inovapharm/consilium/internal/config"
	"github.com/inovapharm/consilium/internal/infrastructure"
	"github.com/inovapharm/consilium/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Insight    config.InsightConfig
	Knowledge  config.KnowledgeConfig
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Insight:    cfg.Insight,
		Knowledge:  cfg.Knowledge,
		Pagination: cfg.API.Pagination,
	}
}
