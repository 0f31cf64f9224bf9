package workspace

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/inovapharm/consilium/pkg/query"
	"github.com/inovapharm/consilium/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "workspaces", "w").
	Project("id", "ID").
	Project("name", "Name").
	Project("document_id", "DocumentID").
	Project("analysis_type", "AnalysisType").
	Project("status", "Status").
	Project("status_message", "StatusMessage").
	Project("classification", "Classification").
	Project("source_ids", "SourceIDs").
	Project("cross_references", "CrossReferences").
	Project("total_document_count", "TotalDocumentCount").
	Project("estimated_processing_seconds", "EstimatedProcessingSeconds").
	Project("created_at", "CreatedAt").
	Project("processed_at", "ProcessedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for workspace queries.
type Filters struct {
	Status       *string    `json:"status,omitempty"`
	AnalysisType *string    `json:"analysis_type,omitempty"`
	DocumentID   *uuid.UUID `json:"document_id,omitempty"`
	Name         *string    `json:"name,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereEquals("AnalysisType", f.AnalysisType).
		WhereEquals("DocumentID", f.DocumentID).
		WhereContains("Name", f.Name)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if at := values.Get("analysis_type"); at != "" {
		f.AnalysisType = &at
	}

	if d := values.Get("document_id"); d != "" {
		if id, err := uuid.Parse(d); err == nil {
			f.DocumentID = &id
		}
	}

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	return f
}

// scanWorkspace reads a workspace row. SourceIDs and CrossReferences are
// stored as jsonb and decoded from raw bytes.
func scanWorkspace(s repository.Scanner) (Workspace, error) {
	var (
		ws             Workspace
		classification []byte
		sourceIDs      []byte
		crossRefs      []byte
	)

	err := s.Scan(
		&ws.ID,
		&ws.Name,
		&ws.DocumentID,
		&ws.AnalysisType,
		&ws.Status,
		&ws.StatusMessage,
		&classification,
		&sourceIDs,
		&crossRefs,
		&ws.TotalDocumentCount,
		&ws.EstimatedProcessingSeconds,
		&ws.CreatedAt,
		&ws.ProcessedAt,
		&ws.UpdatedAt,
	)
	if err != nil {
		return ws, err
	}

	if err := json.Unmarshal(classification, &ws.Classification); err != nil {
		return ws, fmt.Errorf("decode classification: %w", err)
	}
	if err := json.Unmarshal(sourceIDs, &ws.SourceIDs); err != nil {
		return ws, fmt.Errorf("decode source_ids: %w", err)
	}
	if err := json.Unmarshal(crossRefs, &ws.CrossReferences); err != nil {
		return ws, fmt.Errorf("decode cross_references: %w", err)
	}

	return ws, nil
}

func encodeStrings(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}
