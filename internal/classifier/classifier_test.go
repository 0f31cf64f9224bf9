package classifier

import (
	"io"
	"log/slog"
	"testing"

	"github.com/inovapharm/consilium/analysis"
)

func testClassifier() *Classifier {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClassifyByType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want analysis.DocumentType
	}{
		{
			"regulatory dossier",
			"Registration dossier prepared for ANVISA under RDC 200/2017, covering regulatory compliance requirements.",
			analysis.TypeRegulatory,
		},
		{
			"formulation report",
			"Tablet formulation with lactose excipient; dissolution and stability study results attached.",
			analysis.TypeFormulation,
		},
		{
			"veterinary submission",
			"Veterinary product for bovine and swine target species, registered with MAPA.",
			analysis.TypeVeterinary,
		},
		{
			"supplement label",
			"Dietary supplement labeling with vitamin and mineral daily intake claims.",
			analysis.TypeSupplements,
		},
		{
			"lyophilization cycle",
			"Freeze drying cycle with annealing step; primary drying below the glass transition of the cryoprotectant.",
			analysis.TypeLyophilization,
		},
		{
			"analytical method",
			"HPLC method validation protocol including calibration and chromatography system suitability.",
			analysis.TypeTechnical,
		},
	}

	c := testClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.text, "")
			if got.Type != tt.want {
				t.Errorf("Classify type = %s, want %s", got.Type, tt.want)
			}
			if got.Confidence <= 0 {
				t.Errorf("Confidence = %f, want > 0", got.Confidence)
			}
			if got.Confidence > 0.95 {
				t.Errorf("Confidence = %f, want <= 0.95", got.Confidence)
			}
		})
	}
}

func TestClassifyFallback(t *testing.T) {
	c := testClassifier()

	got := c.Classify("", "")

	if got.Type != analysis.TypeUnknown {
		t.Errorf("Type = %s, want %s", got.Type, analysis.TypeUnknown)
	}
	if got.Confidence != 0.1 {
		t.Errorf("Confidence = %f, want 0.1", got.Confidence)
	}
	if len(got.Requirements) != 1 || got.Requirements[0] != "regulatory_pharma" {
		t.Errorf("Requirements = %v, want [regulatory_pharma]", got.Requirements)
	}
}

func TestClassifyNoVocabularyMatch(t *testing.T) {
	c := testClassifier()

	got := c.Classify("the quick brown fox jumps over the lazy dog", "")

	if got.Type != analysis.TypeUnknown {
		t.Errorf("Type = %s, want %s", got.Type, analysis.TypeUnknown)
	}
	if got.Confidence != 0 {
		t.Errorf("Confidence = %f, want 0", got.Confidence)
	}
}

func TestClassifyFilenameSignal(t *testing.T) {
	c := testClassifier()

	got := c.Classify("", "veterinary-mapa-submission.pdf")

	if got.Type != analysis.TypeVeterinary {
		t.Errorf("Type = %s, want %s", got.Type, analysis.TypeVeterinary)
	}
	if got.Subtype != "MAPA" {
		t.Errorf("Subtype = %q, want MAPA", got.Subtype)
	}
}

func TestDetectSubtype(t *testing.T) {
	tests := []struct {
		name string
		text string
		typ  analysis.DocumentType
		want string
	}{
		{
			"anvisa marker",
			"Submission dossier for ANVISA regulatory compliance review.",
			analysis.TypeRegulatory,
			"ANVISA",
		},
		{
			"rdc maps to anvisa",
			"Compliance dossier against RDC 786/2023 regulatory requirements.",
			analysis.TypeRegulatory,
			"ANVISA",
		},
		{
			"fda marker",
			"Regulatory dossier for FDA submission under 21 CFR.",
			analysis.TypeRegulatory,
			"FDA",
		},
		{
			"ich marker",
			"Registration dossier following ICH regulatory guidance.",
			analysis.TypeRegulatory,
			"ICH",
		},
		{
			"marker order prefers anvisa",
			"Regulatory dossier comparing ANVISA and FDA submission requirements.",
			analysis.TypeRegulatory,
			"ANVISA",
		},
		{
			"lyophilization cycle development",
			"Freeze drying run with extended primary drying and sublimation control.",
			analysis.TypeLyophilization,
			"cycle-development",
		},
		{
			"no marker yields empty subtype",
			"Tablet formulation with excipient and dissolution profile.",
			analysis.TypeFormulation,
			"",
		},
	}

	c := testClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.text, "")
			if got.Type != tt.typ {
				t.Fatalf("Type = %s, want %s", got.Type, tt.typ)
			}
			if got.Subtype != tt.want {
				t.Errorf("Subtype = %q, want %q", got.Subtype, tt.want)
			}
		})
	}
}

func TestDetectedElementsMixedContent(t *testing.T) {
	c := testClassifier()

	got := c.Classify(
		"ANVISA RDC compliance dossier for a tablet formulation: excipient selection, dissolution and stability data.",
		"",
	)

	if !got.Elements.Regulations {
		t.Error("Elements.Regulations = false, want true")
	}
	if !got.Elements.Formulations {
		t.Error("Elements.Formulations = false, want true")
	}
	if got.Elements.AnimalContent {
		t.Error("Elements.AnimalContent = true, want false")
	}
	if got.Elements.LyophilizationContent {
		t.Error("Elements.LyophilizationContent = true, want false")
	}
}

func TestClassifyRequirements(t *testing.T) {
	c := testClassifier()

	got := c.Classify(
		"Tablet formulation with excipient selection, granulation, coating and dissolution testing.",
		"",
	)

	if got.Type != analysis.TypeFormulation {
		t.Fatalf("Type = %s, want %s", got.Type, analysis.TypeFormulation)
	}

	want := []string{"formulation_science", "analytical_methods"}
	if len(got.Requirements) != len(want) {
		t.Fatalf("Requirements = %v, want %v", got.Requirements, want)
	}
	for i := range want {
		if got.Requirements[i] != want[i] {
			t.Errorf("Requirements[%d] = %q, want %q", i, got.Requirements[i], want[i])
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := testClassifier()
	text := "ANVISA regulatory compliance dossier with stability study data."

	first := c.Classify(text, "doc.pdf")
	second := c.Classify(text, "doc.pdf")

	if first.Type != second.Type || first.Subtype != second.Subtype || first.Confidence != second.Confidence {
		t.Errorf("classification not deterministic: %+v vs %+v", first, second)
	}
}
