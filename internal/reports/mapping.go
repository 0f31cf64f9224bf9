package reports

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/inovapharm/consilium/pkg/query"
	"github.com/inovapharm/consilium/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "analysis_reports", "r").
	Project("id", "ID").
	Project("workspace_id", "WorkspaceID").
	Project("analysis_type", "AnalysisType").
	Project("risk_level", "RiskLevel").
	Project("confidence", "Confidence").
	Project("executive_summary", "ExecutiveSummary").
	Project("payload", "Report").
	Project("generated_at", "GeneratedAt")

var defaultSort = query.SortField{
	Field:      "GeneratedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for report queries.
type Filters struct {
	WorkspaceID  *uuid.UUID `json:"workspace_id,omitempty"`
	AnalysisType *string    `json:"analysis_type,omitempty"`
	RiskLevel    *string    `json:"risk_level,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("WorkspaceID", f.WorkspaceID).
		WhereEquals("AnalysisType", f.AnalysisType).
		WhereEquals("RiskLevel", f.RiskLevel)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if w := values.Get("workspace_id"); w != "" {
		if id, err := uuid.Parse(w); err == nil {
			f.WorkspaceID = &id
		}
	}

	if at := values.Get("analysis_type"); at != "" {
		f.AnalysisType = &at
	}

	if rl := values.Get("risk_level"); rl != "" {
		f.RiskLevel = &rl
	}

	return f
}

func scanRecord(s repository.Scanner) (Record, error) {
	var (
		rec     Record
		payload []byte
	)

	err := s.Scan(
		&rec.ID,
		&rec.WorkspaceID,
		&rec.AnalysisType,
		&rec.RiskLevel,
		&rec.Confidence,
		&rec.ExecutiveSummary,
		&payload,
		&rec.GeneratedAt,
	)
	if err != nil {
		return rec, err
	}

	if err := json.Unmarshal(payload, &rec.Report); err != nil {
		return rec, fmt.Errorf("decode report payload: %w", err)
	}

	return rec, nil
}
