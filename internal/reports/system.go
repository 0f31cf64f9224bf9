package reports

import (
	"context"

	"github.com/google/uuid"

	"github.com/inovapharm/consilium/analysis"
	"github.com/inovapharm/consilium/pkg/pagination"
)

// System defines the public contract for the report store.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Record], error)

	Find(ctx context.Context, id uuid.UUID) (*Record, error)
	Save(ctx context.Context, workspaceID uuid.UUID, report *analysis.Report) (*Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
