package reports

import (
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/inovapharm/consilium/analysis"
)

func testSynthesizer() *Synthesizer {
	s := NewSynthesizer(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time {
		return time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func testInsights() analysis.Insights {
	return analysis.Insights{
		Summary:          "Dossier is largely complete with minor gaps.",
		KeyFindings:      []string{"Stability data covers 24 months", "Module 3 section missing required specification"},
		Recommendations:  []string{"Implement a document control update", "Run a bridging study", "Review labeling text"},
		RiskFactors:      []string{"Outdated regulation citation"},
		ComplianceStatus: "gaps identified in documentation",
		NextSteps:        []string{"File the missing specification"},
		Confidence:       0.8,
		SourceReferences: []string{"Regulatory Pharma"},
	}
}

func testClassification() analysis.Classification {
	return analysis.Classification{
		Type:         analysis.TypeRegulatory,
		Confidence:   0.9,
		Subtype:      "ANVISA",
		Requirements: []string{"regulatory_pharma", "international_guidelines"},
	}
}

func TestSynthesizeReportStructure(t *testing.T) {
	s := testSynthesizer()

	report, err := s.Synthesize(SynthesizeRequest{
		DocumentName:   "dossier.pdf",
		AnalysisType:   "compliance-regulatorio",
		Classification: testClassification(),
		Insights:       testInsights(),
		SourceNames:    []string{"Regulatory Pharma", "International Guidelines"},
	})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	if report.Title != "Regulatory Compliance Analysis - dossier.pdf" {
		t.Errorf("Title = %q", report.Title)
	}
	wantSummary := "Dossier is largely complete with minor gaps. " +
		"Assessment drew on 2 required knowledge sources. " +
		"Current compliance status: gaps identified in documentation."
	if report.ExecutiveSummary != wantSummary {
		t.Errorf("ExecutiveSummary = %q", report.ExecutiveSummary)
	}

	// one section per focus area
	if len(report.Sections) != 3 {
		t.Fatalf("Sections = %d, want 3", len(report.Sections))
	}
	if report.Sections[0].Title != "Regulatory Framework" {
		t.Errorf("first section = %q, want Regulatory Framework", report.Sections[0].Title)
	}
	if report.Sections[0].Content != "Stability data covers 24 months" {
		t.Errorf("first section content = %q", report.Sections[0].Content)
	}
	if report.Sections[0].Importance != analysis.ImportanceHigh {
		t.Errorf("first section importance = %s, want high", report.Sections[0].Importance)
	}
	if !report.Sections[0].ActionRequired {
		t.Error("first section should require action with one risk factor present")
	}
	if report.Sections[1].Importance != analysis.ImportanceMedium || report.Sections[1].ActionRequired {
		t.Errorf("second section = %s/%v, want medium with no action",
			report.Sections[1].Importance, report.Sections[1].ActionRequired)
	}
	if report.Sections[2].Importance != analysis.ImportanceLow {
		t.Errorf("third section importance = %s, want low", report.Sections[2].Importance)
	}
	if !strings.Contains(report.Sections[2].Content, "Submission Readiness") {
		t.Errorf("third section content = %q, want focus area fallback", report.Sections[2].Content)
	}

	// generic items precede the template checklist
	if len(report.Checklist) != len(genericChecklist)+4 {
		t.Errorf("Checklist = %d items, want %d", len(report.Checklist), len(genericChecklist)+4)
	}
	if report.Checklist[0].Item != genericChecklist[0] || report.Checklist[0].Status != "pending" {
		t.Errorf("Checklist[0] = %+v", report.Checklist[0])
	}
	if len(report.Sources) != 2 {
		t.Errorf("Sources = %v, want two entries", report.Sources)
	}
	if report.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}
}

func TestSynthesizeUnsupportedAnalysisType(t *testing.T) {
	s := testSynthesizer()

	_, err := s.Synthesize(SynthesizeRequest{
		DocumentName:   "dossier.pdf",
		AnalysisType:   "analise-inexistente",
		Classification: testClassification(),
		Insights:       testInsights(),
	})
	if err == nil {
		t.Fatal("expected error for unknown analysis type")
	}
	if !strings.Contains(err.Error(), "unsupported analysis type") {
		t.Errorf("err = %v, want unsupported analysis type", err)
	}
}

func TestSynthesizeDefaultsAnalysisType(t *testing.T) {
	tests := []struct {
		docType analysis.DocumentType
		want    string
	}{
		{analysis.TypeRegulatory, "compliance-regulatorio"},
		{analysis.TypeVeterinary, "registro-veterinario"},
		{analysis.TypeLyophilization, "otimizacao-liofilizacao"},
		{analysis.TypeUnknown, "compliance-regulatorio"},
	}

	for _, tt := range tests {
		t.Run(string(tt.docType), func(t *testing.T) {
			s := testSynthesizer()
			c := testClassification()
			c.Type = tt.docType

			report, err := s.Synthesize(SynthesizeRequest{
				DocumentName:   "doc.pdf",
				Classification: c,
				Insights:       testInsights(),
			})
			if err != nil {
				t.Fatalf("Synthesize: %v", err)
			}
			if report.AnalysisType != tt.want {
				t.Errorf("AnalysisType = %s, want %s", report.AnalysisType, tt.want)
			}
		})
	}
}

func TestRiskLevels(t *testing.T) {
	tests := []struct {
		name    string
		factors []string
		want    analysis.RiskLevel
	}{
		{"no factors", nil, analysis.RiskLow},
		{"one factor", []string{"a"}, analysis.RiskMedium},
		{"two factors", []string{"a", "b"}, analysis.RiskMedium},
		{"three factors", []string{"a", "b", "c"}, analysis.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSynthesizer()
			insights := testInsights()
			insights.RiskFactors = tt.factors

			report, err := s.Synthesize(SynthesizeRequest{
				DocumentName:   "doc.pdf",
				AnalysisType:   "compliance-regulatorio",
				Classification: testClassification(),
				Insights:       insights,
			})
			if err != nil {
				t.Fatalf("Synthesize: %v", err)
			}

			if report.Risk.Level != tt.want {
				t.Errorf("Risk.Level = %s, want %s", report.Risk.Level, tt.want)
			}
			if !reflect.DeepEqual(report.Risk.Mitigations, templates["compliance-regulatorio"].mitigations) {
				t.Errorf("Mitigations = %v, want template mitigations", report.Risk.Mitigations)
			}
		})
	}
}

func TestRecommendationPrioritiesAndCosts(t *testing.T) {
	s := testSynthesizer()
	insights := testInsights()
	insights.Recommendations = []string{
		"Implement a new tracking system",
		"Run a bridging study",
		"Review labeling text",
		"Archive superseded documents",
	}

	report, err := s.Synthesize(SynthesizeRequest{
		DocumentName:   "doc.pdf",
		AnalysisType:   "compliance-regulatorio",
		Classification: testClassification(),
		Insights:       insights,
	})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	recs := report.Recommendations
	if len(recs) != 4 {
		t.Fatalf("Recommendations = %d, want 4", len(recs))
	}

	if recs[0].Priority != analysis.PriorityImmediate || recs[0].Timeline != "0-30 days" {
		t.Errorf("first rec = %s/%s, want immediate/0-30 days", recs[0].Priority, recs[0].Timeline)
	}
	if recs[1].Priority != analysis.PriorityShortTerm || recs[1].Timeline != "1-3 months" {
		t.Errorf("second rec = %s/%s, want short-term/1-3 months", recs[1].Priority, recs[1].Timeline)
	}
	if recs[2].Priority != analysis.PriorityLongTerm || recs[3].Priority != analysis.PriorityLongTerm {
		t.Error("later recs should be long-term")
	}
	if recs[3].Timeline != "3-12 months" {
		t.Errorf("last rec timeline = %s, want 3-12 months", recs[3].Timeline)
	}

	if recs[0].EstimatedCost != "R$ 45.000 - R$ 120.000" {
		t.Errorf("implement cost = %s", recs[0].EstimatedCost)
	}
	if recs[1].EstimatedCost != "R$ 15.000 - R$ 45.000" {
		t.Errorf("study cost = %s", recs[1].EstimatedCost)
	}
	if recs[2].EstimatedCost != "R$ 5.000 - R$ 15.000" {
		t.Errorf("default cost = %s", recs[2].EstimatedCost)
	}
}

func TestEstimateCostBands(t *testing.T) {
	tests := []struct {
		action string
		want   string
	}{
		{"Develop a cleaning procedure", "R$ 45.000 - R$ 120.000"},
		{"Conduct a stability study", "R$ 15.000 - R$ 45.000"},
		{"Complete method validation", "R$ 15.000 - R$ 45.000"},
		{"Implement a validation protocol", "R$ 15.000 - R$ 45.000"},
		{"Update the labeling text", "R$ 5.000 - R$ 15.000"},
	}

	for _, tt := range tests {
		if got := estimateCost(tt.action); got != tt.want {
			t.Errorf("estimateCost(%q) = %s, want %s", tt.action, got, tt.want)
		}
	}
}

func TestROIRiskReductionUsesInsightConfidence(t *testing.T) {
	s := testSynthesizer()

	// insight 0.8 with classifier 0.9 and two requirements blends to 0.89;
	// the ROI sentence must still report the collaborator's own 80%
	report, err := s.Synthesize(SynthesizeRequest{
		DocumentName:   "doc.pdf",
		AnalysisType:   "compliance-regulatorio",
		Classification: testClassification(),
		Insights:       testInsights(),
	})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	if diff := report.Confidence - 0.89; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Confidence = %v, want 0.89", report.Confidence)
	}
	want := "Estimated 80% risk reduction when recommendations are implemented"
	if report.ROI.RiskReduction != want {
		t.Errorf("RiskReduction = %q, want %q", report.ROI.RiskReduction, want)
	}

	low := testInsights()
	low.Confidence = 0.1
	report, err = s.Synthesize(SynthesizeRequest{
		DocumentName:   "doc.pdf",
		AnalysisType:   "compliance-regulatorio",
		Classification: testClassification(),
		Insights:       low,
	})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if !strings.Contains(report.ROI.RiskReduction, "10%") {
		t.Errorf("RiskReduction = %q, want the unclamped 10%%", report.ROI.RiskReduction)
	}
}

func TestBlendConfidence(t *testing.T) {
	tests := []struct {
		name         string
		insight      float64
		classifier   float64
		requirements int
		want         float64
	}{
		{"midrange", 0.8, 0.9, 2, 0.89},
		{"floor applied", 0.1, 0.1, 0, 0.5},
		{"ceiling applied", 1.0, 1.0, 5, 0.95},
		{"bonus capped", 0.6, 0.6, 10, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := analysis.Classification{Confidence: tt.classifier}
			for i := 0; i < tt.requirements; i++ {
				c.Requirements = append(c.Requirements, "src")
			}

			got := blendConfidence(analysis.Insights{Confidence: tt.insight}, c)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("blendConfidence = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextStepsCapped(t *testing.T) {
	s := testSynthesizer()
	insights := testInsights()
	insights.NextSteps = []string{
		"Step one", "Step two", "Step three", "Step four", "Step five", "Step six",
	}

	report, err := s.Synthesize(SynthesizeRequest{
		DocumentName:   "doc.pdf",
		AnalysisType:   "compliance-regulatorio",
		Classification: testClassification(),
		Insights:       insights,
	})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	if len(report.NextSteps) != maxNextSteps {
		t.Errorf("NextSteps = %d, want %d", len(report.NextSteps), maxNextSteps)
	}
	if report.NextSteps[0] != "Step one" {
		t.Errorf("NextSteps[0] = %q, insight steps should come first", report.NextSteps[0])
	}
}

func TestNextStepsAppendTemplate(t *testing.T) {
	s := testSynthesizer()

	report, err := s.Synthesize(SynthesizeRequest{
		DocumentName:   "doc.pdf",
		AnalysisType:   "compliance-regulatorio",
		Classification: testClassification(),
		Insights:       testInsights(),
	})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	want := []string{
		"File the missing specification",
		"Review findings with the regulatory affairs team",
		"Prioritize identified compliance gaps",
	}
	if !reflect.DeepEqual(report.NextSteps, want) {
		t.Errorf("NextSteps = %v, want %v", report.NextSteps, want)
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	s := testSynthesizer()
	req := SynthesizeRequest{
		DocumentName:   "doc.pdf",
		AnalysisType:   "desenvolvimento-formulacao",
		Classification: testClassification(),
		Insights:       testInsights(),
		SourceNames:    []string{"Formulation Science"},
	}

	first, err := s.Synthesize(req)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	second, err := s.Synthesize(req)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	// reports differ only by generated id
	second.ID = first.ID
	if !reflect.DeepEqual(first, second) {
		t.Error("identical requests produced different reports")
	}
}

func TestAnalysisTypesCatalog(t *testing.T) {
	infos := AnalysisTypes()

	if len(infos) != len(templateOrder) {
		t.Fatalf("AnalysisTypes = %d entries, want %d", len(infos), len(templateOrder))
	}

	for i, id := range templateOrder {
		if infos[i].ID != id {
			t.Errorf("infos[%d].ID = %s, want %s", i, infos[i].ID, id)
		}
		if infos[i].Name == "" || infos[i].Description == "" {
			t.Errorf("catalog entry %s incomplete", id)
		}
	}
}
