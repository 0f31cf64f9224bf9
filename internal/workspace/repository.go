package workspace

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/inovapharm/consilium/analysis"
	"github.com/inovapharm/consilium/internal/documents"
	"github.com/inovapharm/consilium/internal/insight"
	"github.com/inovapharm/consilium/internal/knowledge"
	"github.com/inovapharm/consilium/pkg/pagination"
	"github.com/inovapharm/consilium/pkg/query"
	"github.com/inovapharm/consilium/pkg/repository"
)

type repo struct {
	db           *sql.DB
	collaborator insight.Collaborator
	documents    documents.System
	registry     *knowledge.Registry
	logger       *slog.Logger
	pagination   pagination.Config
	now          func() time.Time
	persist      func(ctx context.Context, ws *Workspace) error
}

// New creates a workspace repository implementing the System interface.
func New(
	db *sql.DB,
	collaborator insight.Collaborator,
	docs documents.System,
	registry *knowledge.Registry,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	r := &repo{
		db:           db,
		collaborator: collaborator,
		documents:    docs,
		registry:     registry,
		logger:       logger.With("system", "workspaces"),
		pagination:   pagination,
		now:          time.Now,
	}
	r.persist = r.persistStatus
	return r
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Workspace], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "AnalysisType")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count workspaces: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	workspaces, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanWorkspace)
	if err != nil {
		return nil, fmt.Errorf("query workspaces: %w", err)
	}

	result := pagination.NewPageResult(workspaces, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Workspace, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	ws, err := repository.QueryOne(ctx, r.db, q, args, scanWorkspace)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &ws, nil
}

// ExtractInsights runs the collaborator against a ready workspace. The
// document text and the resolved knowledge sources are rebuilt from
// durable state so extraction can be retried independently of Create.
// An optional prompt carries caller instructions into the extraction.
func (r *repo) ExtractInsights(ctx context.Context, id uuid.UUID, prompt string) (*analysis.Insights, error) {
	ws, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if ws.Status != StatusReady {
		return nil, fmt.Errorf("%w: status is %s", ErrNotReady, ws.Status)
	}

	doc, err := r.documents.Find(ctx, ws.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("load workspace document: %w", err)
	}

	sources := make([]knowledge.Source, 0, len(ws.SourceIDs))
	for _, sourceID := range ws.SourceIDs {
		if s, ok := r.registry.Get(sourceID); ok {
			sources = append(sources, s)
		}
	}

	insights, err := r.collaborator.ExtractInsights(ctx, insight.Request{
		WorkspaceID:     ws.ID,
		DocumentName:    doc.Filename,
		DocumentText:    doc.ExtractedText,
		Classification:  ws.Classification,
		Sources:         sources,
		CrossReferences: ws.CrossReferences,
		AnalysisType:    ws.AnalysisType,
		Prompt:          prompt,
	})
	if err != nil {
		return nil, err
	}

	return insights, nil
}

// Cleanup releases the collaborator workspace and removes the durable
// record. Collaborator release failures are logged, not returned.
func (r *repo) Cleanup(ctx context.Context, id uuid.UUID) error {
	if err := r.collaborator.ReleaseWorkspace(ctx, id); err != nil {
		r.logger.Warn("collaborator release failed", "workspace_id", id, "error", err)
	}

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM workspaces WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("workspace cleaned up", "id", id)
	return nil
}

func (r *repo) insert(ctx context.Context, ws *Workspace) error {
	classification, err := json.Marshal(ws.Classification)
	if err != nil {
		return fmt.Errorf("encode classification: %w", err)
	}

	sourceIDs, err := encodeStrings(ws.SourceIDs)
	if err != nil {
		return fmt.Errorf("encode source_ids: %w", err)
	}

	crossRefs, err := encodeStrings(ws.CrossReferences)
	if err != nil {
		return fmt.Errorf("encode cross_references: %w", err)
	}

	q := `
		INSERT INTO workspaces(id, name, document_id, analysis_type, status, status_message, classification, source_ids, cross_references, total_document_count, estimated_processing_seconds)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, name, document_id, analysis_type, status, status_message, classification, source_ids, cross_references, total_document_count, estimated_processing_seconds, created_at, processed_at, updated_at`

	args := []any{
		ws.ID,
		ws.Name,
		ws.DocumentID,
		ws.AnalysisType,
		ws.Status,
		ws.StatusMessage,
		classification,
		sourceIDs,
		crossRefs,
		ws.TotalDocumentCount,
		ws.EstimatedProcessingSeconds,
	}

	stored, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Workspace, error) {
		return repository.QueryOne(ctx, tx, q, args, scanWorkspace)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	ws.CreatedAt = stored.CreatedAt
	ws.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *repo) persistStatus(ctx context.Context, ws *Workspace) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE workspaces SET status = $1, status_message = $2, processed_at = $3, updated_at = now() WHERE id = $4",
			ws.Status, ws.StatusMessage, ws.ProcessedAt, ws.ID,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}
