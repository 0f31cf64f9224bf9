package routing

import "github.com/inovapharm/consilium/analysis"

// primarySources maps each document type to its anchor source ids.
var primarySources = map[analysis.DocumentType][]string{
	analysis.TypeRegulatory:     {"regulatory_pharma", "international_guidelines"},
	analysis.TypeFormulation:    {"formulation_science", "analytical_methods"},
	analysis.TypeVeterinary:     {"veterinary_regulatory", "regulatory_pharma"},
	analysis.TypeSupplements:    {"supplement_regulations", "regulatory_pharma"},
	analysis.TypeLyophilization: {"lyophilization_tech", "formulation_science"},
	analysis.TypeTechnical:      {"analytical_methods"},
	analysis.TypeUnknown:        {"regulatory_pharma"},
}

// regulatorySubtypeSources adds the jurisdiction-specific source when a
// regulatory document carries a recognized subtype.
var regulatorySubtypeSources = map[string]string{
	"ANVISA": "anvisa_resolutions",
	"FDA":    "international_guidelines",
	"ICH":    "international_guidelines",
	"EMA":    "international_guidelines",
}

// complementarySources maps each detected-element flag to the source pulled
// in regardless of the winning document type. Several entries overlap with
// primarySources on purpose: a formulation document that trips the
// regulations flag still gets the regulatory source, and collapsing the
// tables would silently narrow coverage for mixed-signal documents.
type elementSource struct {
	flagged func(analysis.DetectedElements) bool
	id      string
}

var complementarySources = []elementSource{
	{func(e analysis.DetectedElements) bool { return e.Regulations }, "regulatory_pharma"},
	{func(e analysis.DetectedElements) bool { return e.Formulations }, "formulation_science"},
	{func(e analysis.DetectedElements) bool { return e.AnimalContent }, "veterinary_regulatory"},
	{func(e analysis.DetectedElements) bool { return e.SupplementData }, "supplement_regulations"},
	{func(e analysis.DetectedElements) bool { return e.LyophilizationContent }, "lyophilization_tech"},
	{func(e analysis.DetectedElements) bool { return e.TechnicalSpecs }, "analytical_methods"},
}

// analysisTypeSources maps an explicit analysis type to additional sources.
var analysisTypeSources = map[string][]string{
	"compliance-regulatorio":    {"regulatory_pharma", "international_guidelines", "anvisa_resolutions"},
	"desenvolvimento-formulacao": {"formulation_science", "analytical_methods"},
	"registro-veterinario":      {"veterinary_regulatory", "regulatory_pharma"},
	"rotulagem-suplementos":     {"supplement_regulations", "anvisa_resolutions"},
	"otimizacao-liofilizacao":   {"lyophilization_tech", "analytical_methods"},
}

// typeCrossReferences holds the fixed hint strings appended per document type.
var typeCrossReferences = map[analysis.DocumentType][]string{
	analysis.TypeRegulatory: {
		"Verify compliance with the current revision of each cited regulation",
		"Cross-check requirements against international guidelines (ICH)",
	},
	analysis.TypeFormulation: {
		"Cross-check excipient levels against pharmacopeial limits",
		"Verify stability protocol against zone IVb conditions",
	},
	analysis.TypeVeterinary: {
		"Verify target species safety margins against MAPA requirements",
	},
	analysis.TypeSupplements: {
		"Verify declared claims against the permitted claims list",
		"Cross-check composition against daily intake limits",
	},
	analysis.TypeLyophilization: {
		"Cross-check cycle parameters against formulation glass transition data",
	},
	analysis.TypeTechnical: {
		"Verify method parameters against validation acceptance criteria",
	},
}
