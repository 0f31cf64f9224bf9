package api

import (
	"fmt"

	"github.com/inovapharm/consilium/internal/classifier"
	"github.com/inovapharm/consilium/internal/config"
	"github.com/inovapharm/consilium/internal/documents"
	"github.com/inovapharm/consilium/internal/insight"
	"github.com/inovapharm/consilium/internal/knowledge"
	"github.com/inovapharm/consilium/internal/pipeline"
	"github.com/inovapharm/consilium/internal/reports"
	"github.com/inovapharm/consilium/internal/routing"
	"github.com/inovapharm/consilium/internal/workspace"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Documents  documents.System
	Registry   *knowledge.Registry
	Workspaces workspace.System
	Reports    reports.System
	Pipeline   *pipeline.Pipeline
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) (*Domain, error) {
	sources, err := knowledge.LoadSeed(runtime.Knowledge.SeedPath)
	if err != nil {
		return nil, fmt.Errorf("load knowledge seed: %w", err)
	}
	registry := knowledge.NewRegistry(sources, runtime.Logger)

	collaborator, err := newCollaborator(runtime)
	if err != nil {
		return nil, err
	}

	docsSystem := documents.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	workspaceSystem := workspace.New(
		runtime.Database.Connection(),
		collaborator,
		docsSystem,
		registry,
		runtime.Logger,
		runtime.Pagination,
	)

	reportSystem := reports.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	analysisPipeline := pipeline.New(
		classifier.New(runtime.Logger),
		routing.New(registry, runtime.Logger),
		docsSystem,
		workspaceSystem,
		reports.NewSynthesizer(runtime.Logger),
		reportSystem,
		runtime.Logger,
	)

	return &Domain{
		Documents:  docsSystem,
		Registry:   registry,
		Workspaces: workspaceSystem,
		Reports:    reportSystem,
		Pipeline:   analysisPipeline,
	}, nil
}

func newCollaborator(runtime *Runtime) (insight.Collaborator, error) {
	switch runtime.Insight.Provider {
	case config.ProviderOpenAI:
		return insight.NewOpenAICollaborator(
			runtime.Insight.OpenAIKey,
			runtime.Insight.OpenAIModel,
			runtime.Logger,
		), nil
	case config.ProviderAgent:
		return insight.NewAgentCollaborator(runtime.Insight.Agent, runtime.Logger), nil
	default:
		return nil, fmt.Errorf("unknown insight provider: %s", runtime.Insight.Provider)
	}
}
