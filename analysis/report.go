package analysis

import (
	"time"

	"github.com/google/uuid"
)

// Importance grades a report section.
type Importance string

// Section importance levels.
const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// RiskLevel grades the overall risk assessment.
type RiskLevel string

// Risk assessment levels.
const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// Priority orders a recommendation by urgency.
type Priority string

// Recommendation priorities.
const (
	PriorityImmediate Priority = "immediate"
	PriorityShortTerm Priority = "short-term"
	PriorityLongTerm  Priority = "long-term"
)

// Section is one detailed-analysis entry, derived from a template focus area.
type Section struct {
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Importance     Importance `json:"importance"`
	ActionRequired bool       `json:"action_required"`
}

// RiskAssessment aggregates the collaborator's risk factors with
// template-defined mitigations.
type RiskAssessment struct {
	Level       RiskLevel `json:"level"`
	Factors     []string  `json:"factors"`
	Mitigations []string  `json:"mitigations"`
}

// ChecklistItem is a single compliance checklist entry.
type ChecklistItem struct {
	Item   string `json:"item"`
	Status string `json:"status"`
}

// Recommendation is one prioritized action with cost and timeline estimates.
type Recommendation struct {
	Priority      Priority `json:"priority"`
	Action        string   `json:"action"`
	Rationale     string   `json:"rationale"`
	EstimatedCost string   `json:"estimated_cost"`
	Timeline      string   `json:"timeline"`
}

// ROIEstimate holds the fixed per-analysis-type return-on-investment figures
// plus the confidence-derived risk reduction sentence.
type ROIEstimate struct {
	EstimatedSavings   string `json:"estimated_savings"`
	ImplementationCost string `json:"implementation_cost"`
	PaybackPeriod      string `json:"payback_period"`
	RiskReduction      string `json:"risk_reduction"`
}

// Report is the final decision-ready artifact produced by the synthesizer.
// It is created once and never mutated.
type Report struct {
	ID               uuid.UUID        `json:"id"`
	AnalysisType     string           `json:"analysis_type"`
	Title            string           `json:"title"`
	ExecutiveSummary string           `json:"executive_summary"`
	Sections         []Section        `json:"sections"`
	Risk             RiskAssessment   `json:"risk_assessment"`
	Checklist        []ChecklistItem  `json:"compliance_checklist"`
	Recommendations  []Recommendation `json:"recommendations"`
	ROI              ROIEstimate      `json:"roi"`
	NextSteps        []string         `json:"next_steps"`
	Confidence       float64          `json:"confidence"`
	Sources          []string         `json:"sources"`
	GeneratedAt      time.Time        `json:"generated_at"`
}

// AnalysisTypeInfo describes one supported analysis specialization.
type AnalysisTypeInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
