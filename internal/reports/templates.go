package reports

import "github.com/inovapharm/consilium/analysis"

// template drives report synthesis for one analysis type. Findings and
// recommendations come from the insight collaborator; the template
// contributes structure, fallback copy, and cost baselines.
type template struct {
	id             string
	name           string
	description    string
	titlePattern   string
	summaryPattern string
	focusAreas     []string
	keyQuestions   []string
	mitigations    []string
	checklist      []string
	roi            analysis.ROIEstimate
	nextSteps      []string
}

// templateOrder fixes the listing order for the analysis type catalog.
var templateOrder = []string{
	"compliance-regulatorio",
	"desenvolvimento-formulacao",
	"registro-veterinario",
	"rotulagem-suplementos",
	"otimizacao-liofilizacao",
}

var templates = map[string]template{
	"compliance-regulatorio": {
		id:             "compliance-regulatorio",
		name:           "Regulatory Compliance",
		description:    "Compliance assessment against ANVISA and international requirements",
		titlePattern:   "Regulatory Compliance Analysis - %s",
		summaryPattern: "%s Assessment drew on %d required knowledge sources. Current compliance status: %s.",
		focusAreas: []string{
			"Regulatory Framework",
			"Documentation Completeness",
			"Submission Readiness",
		},
		keyQuestions: []string{
			"Which regulations govern this product and are they the current revisions?",
			"Are all required sections of the dossier present and consistent?",
			"What gaps must be closed before submission?",
		},
		mitigations: []string{
			"Engage regulatory affairs to confirm requirement interpretation",
			"Schedule a gap assessment against the current checklist",
			"Prepare responses for likely agency questions in advance",
		},
		checklist: []string{
			"Confirm current revision of each cited regulation",
			"Verify dossier section completeness",
			"Review labeling against approved text",
			"Validate stability data coverage",
		},
		roi: analysis.ROIEstimate{
			EstimatedSavings:   "R$ 80.000 - R$ 250.000 in avoided resubmission costs",
			ImplementationCost: "R$ 20.000 - R$ 60.000",
			PaybackPeriod:      "3-6 months",
		},
		nextSteps: []string{
			"Review findings with the regulatory affairs team",
			"Prioritize identified compliance gaps",
		},
	},
	"desenvolvimento-formulacao": {
		id:             "desenvolvimento-formulacao",
		name:           "Formulation Development",
		description:    "Formulation composition, stability, and analytical method review",
		titlePattern:   "Formulation Development Analysis - %s",
		summaryPattern: "%s Technical review corroborated by %d required knowledge sources; compliance status: %s.",
		focusAreas: []string{
			"Composition and Excipients",
			"Stability Profile",
			"Analytical Methods",
		},
		keyQuestions: []string{
			"Are excipient levels within accepted pharmacopeial limits?",
			"Does the stability data support the proposed shelf life?",
			"Are the analytical methods validated for their intended use?",
		},
		mitigations: []string{
			"Run confirmatory compatibility studies for flagged excipients",
			"Extend stability protocol to cover identified gaps",
			"Revalidate methods with updated acceptance criteria",
		},
		checklist: []string{
			"Verify excipient concentrations against monographs",
			"Check stability protocol zone coverage",
			"Confirm method validation status",
		},
		roi: analysis.ROIEstimate{
			EstimatedSavings:   "R$ 50.000 - R$ 150.000 in avoided reformulation",
			ImplementationCost: "R$ 15.000 - R$ 45.000",
			PaybackPeriod:      "4-8 months",
		},
		nextSteps: []string{
			"Share findings with the formulation development team",
			"Plan confirmatory studies for open technical questions",
		},
	},
	"registro-veterinario": {
		id:             "registro-veterinario",
		name:           "Veterinary Registration",
		description:    "Veterinary product registration review against MAPA requirements",
		titlePattern:   "Veterinary Registration Analysis - %s",
		summaryPattern: "%s Registration readiness assessed against %d required knowledge sources. Compliance status: %s.",
		focusAreas: []string{
			"MAPA Requirements",
			"Target Species Safety",
			"Residue and Withdrawal Data",
		},
		keyQuestions: []string{
			"Does the dossier satisfy current MAPA registration requirements?",
			"Are safety margins established for each target species?",
			"Is the withdrawal period supported by residue studies?",
		},
		mitigations: []string{
			"Confirm requirement set with MAPA guidance documents",
			"Commission additional target species studies where margins are thin",
			"Review residue study design against current expectations",
		},
		checklist: []string{
			"Verify MAPA form completeness",
			"Check target species study coverage",
			"Confirm withdrawal period justification",
		},
		roi: analysis.ROIEstimate{
			EstimatedSavings:   "R$ 60.000 - R$ 180.000 in avoided registration delays",
			ImplementationCost: "R$ 18.000 - R$ 50.000",
			PaybackPeriod:      "4-9 months",
		},
		nextSteps: []string{
			"Align registration strategy with the veterinary team",
			"Close documentation gaps before filing",
		},
	},
	"rotulagem-suplementos": {
		id:             "rotulagem-suplementos",
		name:           "Supplement Labeling",
		description:    "Supplement labeling and claims review against ANVISA rules",
		titlePattern:   "Supplement Labeling Analysis - %s",
		summaryPattern: "%s Labeling review cross-checked %d required knowledge sources. Compliance status: %s.",
		focusAreas: []string{
			"Permitted Claims",
			"Composition Declaration",
			"Label Layout Requirements",
		},
		keyQuestions: []string{
			"Are all declared claims on the permitted claims list?",
			"Do declared quantities respect daily intake limits?",
			"Does the label layout satisfy mandatory warnings and format rules?",
		},
		mitigations: []string{
			"Remove or rephrase claims outside the permitted list",
			"Adjust declared quantities to documented limits",
			"Update label artwork to the mandatory layout",
		},
		checklist: []string{
			"Cross-check each claim against the permitted list",
			"Verify ingredient quantities against limits",
			"Confirm mandatory warnings are present",
		},
		roi: analysis.ROIEstimate{
			EstimatedSavings:   "R$ 30.000 - R$ 100.000 in avoided recall and relabeling",
			ImplementationCost: "R$ 8.000 - R$ 25.000",
			PaybackPeriod:      "2-5 months",
		},
		nextSteps: []string{
			"Route label changes through artwork control",
			"Document claim substantiation for audit",
		},
	},
	"otimizacao-liofilizacao": {
		id:             "otimizacao-liofilizacao",
		name:           "Lyophilization Optimization",
		description:    "Freeze-drying cycle and formulation optimization review",
		titlePattern:   "Lyophilization Optimization Analysis - %s",
		summaryPattern: "%s Optimization review referenced %d required knowledge sources. Compliance status: %s.",
		focusAreas: []string{
			"Cycle Parameters",
			"Formulation Thermal Properties",
			"Process Scale Considerations",
		},
		keyQuestions: []string{
			"Are primary drying parameters set safely below collapse temperature?",
			"Do the thermal characterization data support the cycle design?",
			"Will the cycle transfer to production-scale equipment?",
		},
		mitigations: []string{
			"Characterize critical temperatures before cycle changes",
			"Introduce conservative safety margins at scale-up",
			"Qualify production equipment against the development cycle",
		},
		checklist: []string{
			"Verify collapse temperature data",
			"Review primary drying margin",
			"Confirm moisture specification compliance",
		},
		roi: analysis.ROIEstimate{
			EstimatedSavings:   "R$ 100.000 - R$ 400.000 per year in cycle time reduction",
			ImplementationCost: "R$ 25.000 - R$ 70.000",
			PaybackPeriod:      "6-12 months",
		},
		nextSteps: []string{
			"Pilot the optimized cycle at development scale",
			"Plan equipment qualification for transfer",
		},
	},
}

// genericMitigations backs analysis types that define no mitigation
// list of their own.
var genericMitigations = []string{
	"Review findings with the responsible technical team",
	"Define corrective actions with owners and due dates",
	"Re-assess after corrective actions are complete",
}

// genericChecklist opens every compliance checklist ahead of the
// type-specific items.
var genericChecklist = []string{
	"Confirm source document completeness",
	"Validate findings with a subject matter expert",
	"Archive the report with the project record",
}

// defaultTemplates maps a document type to the analysis type used when
// the caller does not request one explicitly.
var defaultTemplates = map[analysis.DocumentType]string{
	analysis.TypeRegulatory:     "compliance-regulatorio",
	analysis.TypeFormulation:    "desenvolvimento-formulacao",
	analysis.TypeVeterinary:     "registro-veterinario",
	analysis.TypeSupplements:    "rotulagem-suplementos",
	analysis.TypeLyophilization: "otimizacao-liofilizacao",
	analysis.TypeTechnical:      "desenvolvimento-formulacao",
	analysis.TypeUnknown:        "compliance-regulatorio",
}
