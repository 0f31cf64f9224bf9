package routing

import (
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/inovapharm/consilium/analysis"
	"github.com/inovapharm/consilium/internal/knowledge"
)

func testRouter(t *testing.T, mutate func([]knowledge.Source) []knowledge.Source) *Router {
	t.Helper()

	sources := knowledge.DefaultSources()
	if mutate != nil {
		sources = mutate(sources)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(knowledge.NewRegistry(sources, logger), logger)
}

func sourceIDs(b *Bundle) []string {
	ids := make([]string, 0, len(b.Sources))
	for _, s := range b.Sources {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestRoutePrimarySources(t *testing.T) {
	tests := []struct {
		name    string
		docType analysis.DocumentType
		want    []string
	}{
		{
			name:    "regulatory",
			docType: analysis.TypeRegulatory,
			want:    []string{"regulatory_pharma", "international_guidelines"},
		},
		{
			name:    "formulation",
			docType: analysis.TypeFormulation,
			want:    []string{"formulation_science", "analytical_methods"},
		},
		{
			name:    "veterinary",
			docType: analysis.TypeVeterinary,
			want:    []string{"veterinary_regulatory", "regulatory_pharma"},
		},
		{
			name:    "unknown falls back to general regulatory",
			docType: analysis.TypeUnknown,
			want:    []string{"regulatory_pharma"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := testRouter(t, nil)
			bundle := router.Route(analysis.Classification{Type: tt.docType}, "")

			if got := sourceIDs(bundle); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("sources = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRouteRegulatorySubtype(t *testing.T) {
	tests := []struct {
		subtype string
		wantID  string
	}{
		{"ANVISA", "anvisa_resolutions"},
		{"FDA", "international_guidelines"},
		{"ICH", "international_guidelines"},
	}

	for _, tt := range tests {
		t.Run(tt.subtype, func(t *testing.T) {
			router := testRouter(t, nil)
			bundle := router.Route(analysis.Classification{
				Type:    analysis.TypeRegulatory,
				Subtype: tt.subtype,
			}, "")

			found := false
			for _, s := range bundle.Sources {
				if s.ID == tt.wantID {
					found = true
				}
			}
			if !found {
				t.Errorf("sources = %v, want to contain %s", sourceIDs(bundle), tt.wantID)
			}
		})
	}
}

func TestRouteComplementaryElements(t *testing.T) {
	router := testRouter(t, nil)
	bundle := router.Route(analysis.Classification{
		Type: analysis.TypeTechnical,
		Elements: analysis.DetectedElements{
			Regulations:  true,
			Formulations: true,
		},
	}, "")

	want := []string{"analytical_methods", "regulatory_pharma", "formulation_science"}
	if got := sourceIDs(bundle); !reflect.DeepEqual(got, want) {
		t.Errorf("sources = %v, want %v", got, want)
	}
}

func TestRouteAnalysisType(t *testing.T) {
	router := testRouter(t, nil)
	bundle := router.Route(analysis.Classification{Type: analysis.TypeSupplements}, "rotulagem-suplementos")

	found := false
	for _, s := range bundle.Sources {
		if s.ID == "anvisa_resolutions" {
			found = true
		}
	}
	if !found {
		t.Errorf("sources = %v, want to contain anvisa_resolutions", sourceIDs(bundle))
	}
}

func TestRouteDeduplicatesFirstWins(t *testing.T) {
	router := testRouter(t, nil)

	// veterinary primaries and the regulations element both name
	// regulatory_pharma; it must appear exactly once, in primary position.
	bundle := router.Route(analysis.Classification{
		Type:     analysis.TypeVeterinary,
		Elements: analysis.DetectedElements{Regulations: true},
	}, "")

	count := 0
	for _, s := range bundle.Sources {
		if s.ID == "regulatory_pharma" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("regulatory_pharma appears %d times, want 1", count)
	}
	if bundle.Sources[1].ID != "regulatory_pharma" {
		t.Errorf("sources = %v, want regulatory_pharma second", sourceIDs(bundle))
	}
}

func TestRouteSkipsInactiveSources(t *testing.T) {
	router := testRouter(t, func(sources []knowledge.Source) []knowledge.Source {
		for i := range sources {
			if sources[i].ID == "international_guidelines" {
				sources[i].Active = false
			}
		}
		return sources
	})

	bundle := router.Route(analysis.Classification{Type: analysis.TypeRegulatory}, "")

	for _, s := range bundle.Sources {
		if s.ID == "international_guidelines" {
			t.Errorf("inactive source selected: %v", sourceIDs(bundle))
		}
	}
}

func TestRouteMetrics(t *testing.T) {
	router := testRouter(t, nil)
	bundle := router.Route(analysis.Classification{Type: analysis.TypeRegulatory}, "")

	wantDocs := 1240 + 860
	if bundle.TotalDocumentCount != wantDocs {
		t.Errorf("TotalDocumentCount = %d, want %d", bundle.TotalDocumentCount, wantDocs)
	}

	wantSeconds := 2*perSourceSeconds + clientDocSeconds + specializedRunSeconds
	if bundle.EstimatedProcessingSeconds != wantSeconds {
		t.Errorf("EstimatedProcessingSeconds = %d, want %d", bundle.EstimatedProcessingSeconds, wantSeconds)
	}
}

func TestRouteCrossReferences(t *testing.T) {
	router := testRouter(t, nil)
	bundle := router.Route(analysis.Classification{Type: analysis.TypeRegulatory}, "")

	if len(bundle.CrossReferences) == 0 {
		t.Fatal("expected cross references for regulatory routing")
	}

	seen := make(map[string]bool)
	for _, hint := range bundle.CrossReferences {
		if seen[hint] {
			t.Errorf("duplicate cross reference: %s", hint)
		}
		seen[hint] = true
	}
}

func TestRouteDeterministic(t *testing.T) {
	router := testRouter(t, nil)
	c := analysis.Classification{
		Type:    analysis.TypeRegulatory,
		Subtype: "ANVISA",
		Elements: analysis.DetectedElements{
			Regulations:  true,
			Formulations: true,
		},
	}

	first := router.Route(c, "compliance-regulatorio")
	for i := 0; i < 5; i++ {
		next := router.Route(c, "compliance-regulatorio")
		if !reflect.DeepEqual(first, next) {
			t.Fatalf("routing not deterministic: %v vs %v", first, next)
		}
	}
}
