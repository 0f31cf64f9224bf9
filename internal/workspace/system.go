package workspace

import (
	"context"

	"github.com/google/uuid"

	"github.com/inovapharm/consilium/analysis"
	"github.com/inovapharm/consilium/internal/routing"
	"github.com/inovapharm/consilium/pkg/pagination"
)

// CreateCommand carries everything needed to open a workspace for one
// classified client document.
type CreateCommand struct {
	Name           string
	DocumentID     uuid.UUID
	DocumentName   string
	AnalysisType   string
	Classification analysis.Classification
	Bundle         *routing.Bundle
}

// System defines the public contract for workspace operations. Create
// runs the full lifecycle orchestration; a workspace returned by Create
// is either ready or recorded in the error status.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Workspace], error)

	Find(ctx context.Context, id uuid.UUID) (*Workspace, error)
	Create(ctx context.Context, cmd CreateCommand) (*Workspace, error)
	ExtractInsights(ctx context.Context, id uuid.UUID, prompt string) (*analysis.Insights, error)
	Cleanup(ctx context.Context, id uuid.UUID) error
}
