package reports

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inovapharm/consilium/analysis"
)

const (
	maxNextSteps        = 5
	confidenceFloor     = 0.5
	confidenceCeiling   = 0.95
	requirementBonus    = 0.02
	maxRequirementBonus = 0.1
)

// SynthesizeRequest carries the inputs for one report synthesis run.
type SynthesizeRequest struct {
	DocumentName   string
	AnalysisType   string
	Classification analysis.Classification
	Insights       analysis.Insights
	SourceNames    []string
}

// Synthesizer turns collaborator insights into structured analysis
// reports. Synthesis is deterministic: identical requests produce
// identical reports apart from ID and GeneratedAt.
type Synthesizer struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewSynthesizer(logger *slog.Logger) *Synthesizer {
	return &Synthesizer{
		logger: logger.With("system", "reports"),
		now:    time.Now,
	}
}

// AnalysisTypes returns the supported analysis type catalog in fixed order.
func AnalysisTypes() []analysis.AnalysisTypeInfo {
	infos := make([]analysis.AnalysisTypeInfo, 0, len(templateOrder))
	for _, id := range templateOrder {
		tmpl := templates[id]
		infos = append(infos, analysis.AnalysisTypeInfo{
			ID:          tmpl.id,
			Name:        tmpl.name,
			Description: tmpl.description,
		})
	}
	return infos
}

// DefaultAnalysisType returns the analysis type applied when the caller
// does not request one for the given document type.
func DefaultAnalysisType(docType analysis.DocumentType) string {
	return defaultTemplates[docType]
}

// Synthesize builds a report from insights using the template for the
// requested analysis type. An empty analysis type falls back to the
// default for the classified document type; an unrecognized one fails.
func (s *Synthesizer) Synthesize(req SynthesizeRequest) (*analysis.Report, error) {
	analysisType := req.AnalysisType
	if analysisType == "" {
		analysisType = DefaultAnalysisType(req.Classification.Type)
	}

	tmpl, ok := templates[analysisType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAnalysisType, analysisType)
	}

	confidence := blendConfidence(req.Insights, req.Classification)

	report := &analysis.Report{
		ID:               uuid.New(),
		AnalysisType:     tmpl.id,
		Title:            fmt.Sprintf(tmpl.titlePattern, req.DocumentName),
		ExecutiveSummary: executiveSummary(tmpl, req),
		Sections:         buildSections(tmpl, req.Insights),
		Risk:             buildRisk(tmpl, req.Insights),
		Checklist:        buildChecklist(tmpl),
		Recommendations:  buildRecommendations(tmpl, req.Insights),
		ROI:              buildROI(tmpl, req.Insights.Confidence),
		NextSteps:        buildNextSteps(tmpl, req.Insights),
		Confidence:       confidence,
		Sources:          req.SourceNames,
		GeneratedAt:      s.now(),
	}

	s.logger.Info(
		"report synthesized",
		"analysis_type", report.AnalysisType,
		"risk", report.Risk.Level,
		"confidence", report.Confidence,
		"sections", len(report.Sections),
	)

	return report, nil
}

func executiveSummary(tmpl template, req SynthesizeRequest) string {
	summary := req.Insights.Summary
	if summary == "" {
		summary = "No summary was produced for this document."
	}

	status := req.Insights.ComplianceStatus
	if status == "" {
		status = "not assessed"
	}

	return fmt.Sprintf(tmpl.summaryPattern, summary, req.Classification.RequiredSourceCount(), status)
}

// buildSections emits one section per template focus area, in order.
// The i-th key finding fills the i-th area; areas beyond the findings
// fall back to the area's key question. A section demands action while
// risk factors outnumber its index.
func buildSections(tmpl template, insights analysis.Insights) []analysis.Section {
	sections := make([]analysis.Section, 0, len(tmpl.focusAreas))

	for i, area := range tmpl.focusAreas {
		content := fmt.Sprintf("No specific findings for %s. Key question: %s", area, tmpl.keyQuestions[i])
		if i < len(insights.KeyFindings) {
			content = insights.KeyFindings[i]
		}

		importance := analysis.ImportanceLow
		switch i {
		case 0:
			importance = analysis.ImportanceHigh
		case 1:
			importance = analysis.ImportanceMedium
		}

		sections = append(sections, analysis.Section{
			Title:          area,
			Content:        content,
			Importance:     importance,
			ActionRequired: len(insights.RiskFactors) > i,
		})
	}

	return sections
}

func buildRisk(tmpl template, insights analysis.Insights) analysis.RiskAssessment {
	level := analysis.RiskLow
	switch {
	case len(insights.RiskFactors) > 2:
		level = analysis.RiskHigh
	case len(insights.RiskFactors) > 0:
		level = analysis.RiskMedium
	}

	mitigations := tmpl.mitigations
	if len(mitigations) == 0 {
		mitigations = genericMitigations
	}

	return analysis.RiskAssessment{
		Level:       level,
		Factors:     insights.RiskFactors,
		Mitigations: mitigations,
	}
}

func buildChecklist(tmpl template) []analysis.ChecklistItem {
	items := make([]analysis.ChecklistItem, 0, len(genericChecklist)+len(tmpl.checklist))
	for _, item := range append(append([]string{}, genericChecklist...), tmpl.checklist...) {
		items = append(items, analysis.ChecklistItem{
			Item:   item,
			Status: "pending",
		})
	}
	return items
}

func buildRecommendations(tmpl template, insights analysis.Insights) []analysis.Recommendation {
	recs := make([]analysis.Recommendation, 0, len(insights.Recommendations))

	for i, action := range insights.Recommendations {
		priority := recommendationPriority(i)
		recs = append(recs, analysis.Recommendation{
			Priority:      priority,
			Action:        action,
			Rationale:     fmt.Sprintf("Identified during %s review", strings.ToLower(tmpl.name)),
			EstimatedCost: estimateCost(action),
			Timeline:      timelineFor(priority),
		})
	}

	return recs
}

func recommendationPriority(index int) analysis.Priority {
	switch index {
	case 0:
		return analysis.PriorityImmediate
	case 1:
		return analysis.PriorityShortTerm
	default:
		return analysis.PriorityLongTerm
	}
}

// estimateCost bands the recommendation cost by the kind of work its
// wording implies.
func estimateCost(action string) string {
	lower := strings.ToLower(action)

	switch {
	case strings.Contains(lower, "study") || strings.Contains(lower, "validation"):
		return "R$ 15.000 - R$ 45.000"
	case strings.Contains(lower, "implement") || strings.Contains(lower, "develop"):
		return "R$ 45.000 - R$ 120.000"
	default:
		return "R$ 5.000 - R$ 15.000"
	}
}

func timelineFor(priority analysis.Priority) string {
	switch priority {
	case analysis.PriorityImmediate:
		return "0-30 days"
	case analysis.PriorityShortTerm:
		return "1-3 months"
	default:
		return "3-12 months"
	}
}

// buildROI fills the template ROI table with a risk reduction sentence
// derived from the collaborator's own confidence, not the blended report
// confidence.
func buildROI(tmpl template, insightConfidence float64) analysis.ROIEstimate {
	roi := tmpl.roi
	roi.RiskReduction = fmt.Sprintf(
		"Estimated %d%% risk reduction when recommendations are implemented",
		int(math.Round(insightConfidence*100)),
	)
	return roi
}

func buildNextSteps(tmpl template, insights analysis.Insights) []string {
	steps := append(append([]string{}, insights.NextSteps...), tmpl.nextSteps...)
	if len(steps) > maxNextSteps {
		steps = steps[:maxNextSteps]
	}
	return steps
}

// blendConfidence averages collaborator and classifier confidence, adds a
// small bonus per satisfied source requirement, and clamps the result.
func blendConfidence(insights analysis.Insights, c analysis.Classification) float64 {
	blended := (insights.Confidence + c.Confidence) / 2

	bonus := float64(len(c.Requirements)) * requirementBonus
	if bonus > maxRequirementBonus {
		bonus = maxRequirementBonus
	}
	blended += bonus

	return math.Min(math.Max(blended, confidenceFloor), confidenceCeiling)
}
