package analysis

// Insights is the qualitative output of the external insight-extraction
// collaborator for one workspace. The report synthesizer treats it as
// opaque input: fields are interpolated into report templates but never
// reinterpreted.
type Insights struct {
	Summary          string   `json:"summary"`
	KeyFindings      []string `json:"key_findings"`
	Recommendations  []string `json:"recommendations"`
	RiskFactors      []string `json:"risk_factors"`
	ComplianceStatus string   `json:"compliance_status"`
	NextSteps        []string `json:"next_steps"`
	Confidence       float64  `json:"confidence"`
	SourceReferences []string `json:"source_references"`
}
