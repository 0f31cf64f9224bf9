package insight

import (
	"context"

	"github.com/google/uuid"

	"github.com/inovapharm/consilium/analysis"
	"github.com/inovapharm/consilium/internal/knowledge"
)

// WorkspaceSpec describes the analysis workspace a collaborator should
// prepare before insight extraction runs.
type WorkspaceSpec struct {
	ID           uuid.UUID
	Name         string
	Instructions string
	SourceIDs    []string
}

// Request carries everything a collaborator needs to extract insights
// from a single client document.
type Request struct {
	WorkspaceID     uuid.UUID
	DocumentName    string
	DocumentText    string
	Classification  analysis.Classification
	Sources         []knowledge.Source
	CrossReferences []string
	AnalysisType    string
	Prompt          string
}

// Collaborator is the external analysis engine. Implementations wrap a
// specific model provider. PrepareWorkspace and AttachSource assemble the
// workspace, ProcessWorkspace hands the assembled workspace over for
// indexing, and ExtractInsights queries it.
type Collaborator interface {
	PrepareWorkspace(ctx context.Context, spec WorkspaceSpec) error
	AttachSource(ctx context.Context, workspaceID uuid.UUID, source knowledge.Source) error
	ProcessWorkspace(ctx context.Context, workspaceID uuid.UUID) error
	ExtractInsights(ctx context.Context, req Request) (*analysis.Insights, error)
	ReleaseWorkspace(ctx context.Context, id uuid.UUID) error
}
