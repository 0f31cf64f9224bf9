// Package reports implements report synthesis and the durable report
// store for Consilium. Synthesis turns collaborator insights into
// structured analysis reports; the store keeps each generated report
// alongside its workspace for later retrieval.
package reports

import (
	"time"

	"github.com/google/uuid"

	"github.com/inovapharm/consilium/analysis"
)

// Record is a stored analysis report. The frequently queried columns are
// lifted out of the report payload; the full report rides along as jsonb.
type Record struct {
	ID               uuid.UUID          `json:"id"`
	WorkspaceID      uuid.UUID          `json:"workspace_id"`
	AnalysisType     string             `json:"analysis_type"`
	RiskLevel        analysis.RiskLevel `json:"risk_level"`
	Confidence       float64            `json:"confidence"`
	ExecutiveSummary string             `json:"executive_summary"`
	Report           analysis.Report    `json:"report"`
	GeneratedAt      time.Time          `json:"generated_at"`
}

// NewRecord lifts the indexed columns out of a synthesized report.
func NewRecord(workspaceID uuid.UUID, report *analysis.Report) Record {
	return Record{
		ID:               report.ID,
		WorkspaceID:      workspaceID,
		AnalysisType:     report.AnalysisType,
		RiskLevel:        report.Risk.Level,
		Confidence:       report.Confidence,
		ExecutiveSummary: report.ExecutiveSummary,
		Report:           *report,
		GeneratedAt:      report.GeneratedAt,
	}
}
