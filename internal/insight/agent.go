package insight

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/inovapharm/consilium/analysis"
	"github.com/inovapharm/consilium/internal/knowledge"
	"github.com/inovapharm/consilium/pkg/formatting"
)

// AgentCollaborator extracts insights through a go-agents chat agent.
// Workspace preparation and release are local bookkeeping only; the
// agent itself is stateless and constructed per request.
type AgentCollaborator struct {
	cfg    gaconfig.AgentConfig
	logger *slog.Logger
}

func NewAgentCollaborator(cfg gaconfig.AgentConfig, logger *slog.Logger) *AgentCollaborator {
	return &AgentCollaborator{
		cfg:    cfg,
		logger: logger.With("system", "insight", "collaborator", "agent"),
	}
}

func (c *AgentCollaborator) PrepareWorkspace(ctx context.Context, spec WorkspaceSpec) error {
	c.logger.InfoContext(
		ctx, "workspace prepared",
		"workspace_id", spec.ID,
		"sources", len(spec.SourceIDs),
	)
	return nil
}

// AttachSource records the attachment only. The agent is stateless, so
// attached sources travel with each extraction request instead of living
// in remote collaborator state.
func (c *AgentCollaborator) AttachSource(ctx context.Context, workspaceID uuid.UUID, source knowledge.Source) error {
	c.logger.DebugContext(
		ctx, "source attached",
		"workspace_id", workspaceID,
		"source", source.ID,
	)
	return nil
}

// ProcessWorkspace acknowledges the hand-off. The agent holds no remote
// index, so there is nothing to build before extraction.
func (c *AgentCollaborator) ProcessWorkspace(ctx context.Context, workspaceID uuid.UUID) error {
	c.logger.InfoContext(ctx, "workspace processed", "workspace_id", workspaceID)
	return nil
}

func (c *AgentCollaborator) ExtractInsights(ctx context.Context, req Request) (*analysis.Insights, error) {
	a, err := agent.New(&c.cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: create agent: %w", ErrCollaboratorUnavailable, err)
	}

	resp, err := a.Chat(ctx, composePrompt(req))
	if err != nil {
		return nil, fmt.Errorf("%w: chat call: %w", ErrCollaboratorUnavailable, err)
	}

	insights, err := formatting.Parse[analysis.Insights](resp.Content())
	if err != nil {
		return nil, fmt.Errorf("%w: parse response: %w", ErrExtractFailed, err)
	}

	c.logger.InfoContext(
		ctx, "insights extracted",
		"workspace_id", req.WorkspaceID,
		"findings", len(insights.KeyFindings),
		"confidence", insights.Confidence,
	)

	return &insights, nil
}

func (c *AgentCollaborator) ReleaseWorkspace(ctx context.Context, id uuid.UUID) error {
	c.logger.InfoContext(ctx, "workspace released", "workspace_id", id)
	return nil
}
