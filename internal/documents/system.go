package documents

import (
	"context"

	"github.com/google/uuid"

	"github.com/inovapharm/consilium/pkg/pagination"
	"github.com/inovapharm/consilium/pkg/storage"
)

// System defines the public contract for client document operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Document], error)

	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	Create(ctx context.Context, cmd CreateCommand) (*Document, error)
	Download(ctx context.Context, id uuid.UUID) (*storage.DownloadResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
