package classifier

import "github.com/inovapharm/consilium/analysis"

// pattern holds the scoring vocabulary for one document type.
// Keywords score 1 point per hit, phrases 2; the normalized score divides
// the total by len(keywords) + 2*len(phrases) so types with different
// vocabulary sizes compete on equal footing.
type pattern struct {
	docType  analysis.DocumentType
	keywords []string
	phrases  []string
}

// detectionThreshold is the minimum normalized score for a type's content
// signal to be flagged in DetectedElements.
const detectionThreshold = 0.1

// patterns holds the scoring vocabulary in declaration order; the first
// pattern wins score ties.
var patterns = []pattern{
	{
		docType: analysis.TypeRegulatory,
		keywords: []string{
			"anvisa", "fda", "ich", "ema", "rdc", "cfr",
			"regulation", "regulatory", "compliance", "dossier",
			"registration", "submission",
		},
		phrases: []string{
			"regulatory compliance", "marketing authorization",
			"registration dossier", "good manufacturing practices",
		},
	},
	{
		docType: analysis.TypeFormulation,
		keywords: []string{
			"formulation", "excipient", "stability", "dissolution",
			"bioavailability", "dosage", "tablet", "capsule",
			"granulation", "coating",
		},
		phrases: []string{
			"drug product", "stability study", "quality by design",
		},
	},
	{
		docType: analysis.TypeVeterinary,
		keywords: []string{
			"veterinary", "animal", "mapa", "livestock", "bovine",
			"swine", "poultry", "species",
		},
		phrases: []string{
			"animal health", "veterinary product", "target species",
		},
	},
	{
		docType: analysis.TypeSupplements,
		keywords: []string{
			"supplement", "vitamin", "mineral", "nutraceutical",
			"botanical", "herbal", "labeling", "claim",
		},
		phrases: []string{
			"dietary supplement", "daily intake", "nutrition facts",
		},
	},
	{
		docType: analysis.TypeLyophilization,
		keywords: []string{
			"lyophilization", "lyophilized", "sublimation",
			"cryoprotectant", "annealing", "cake", "vial",
		},
		phrases: []string{
			"freeze drying", "primary drying", "secondary drying",
			"glass transition",
		},
	},
	{
		docType: analysis.TypeTechnical,
		keywords: []string{
			"specification", "method", "validation", "hplc",
			"chromatography", "calibration", "equipment",
		},
		phrases: []string{
			"analytical method", "method validation", "technical transfer",
		},
	},
}

// requirements maps each document type to the knowledge source ids a
// complete analysis of that type is expected to consult. The synthesizer
// counts these as a corroboration signal.
var requirements = map[analysis.DocumentType][]string{
	analysis.TypeRegulatory:     {"regulatory_pharma", "international_guidelines"},
	analysis.TypeFormulation:    {"formulation_science", "analytical_methods"},
	analysis.TypeVeterinary:     {"veterinary_regulatory", "regulatory_pharma"},
	analysis.TypeSupplements:    {"supplement_regulations", "regulatory_pharma"},
	analysis.TypeLyophilization: {"lyophilization_tech", "formulation_science"},
	analysis.TypeTechnical:      {"analytical_methods"},
	analysis.TypeUnknown:        {"regulatory_pharma"},
}

// subtypeMarkers maps substring markers to subtypes, per document type.
// Order matters: the first matching marker wins.
type subtypeMarker struct {
	marker  string
	subtype string
}

var subtypeMarkers = map[analysis.DocumentType][]subtypeMarker{
	analysis.TypeRegulatory: {
		{"anvisa", "ANVISA"},
		{"rdc", "ANVISA"},
		{"fda", "FDA"},
		{"cfr", "FDA"},
		{"ich", "ICH"},
		{"ema", "EMA"},
	},
	analysis.TypeVeterinary: {
		{"mapa", "MAPA"},
	},
	analysis.TypeLyophilization: {
		{"primary drying", "cycle-development"},
		{"cryoprotectant", "formulation-protection"},
	},
}
