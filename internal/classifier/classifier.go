// Package classifier infers document type and confidence from raw text and
// filename signals using weighted keyword and phrase scoring. Classification
// never fails: unreadable input degrades to the generic unknown result
// instead of surfacing an error.
package classifier

import (
	"log/slog"
	"strings"

	"github.com/inovapharm/consilium/analysis"
)

const (
	// confidenceFactor discounts the best normalized score so the
	// classifier never claims full certainty.
	confidenceFactor = 0.9
	// confidenceCap is the hard upper bound on reported confidence.
	confidenceCap = 0.95
	// fallbackConfidence marks classifications produced from unreadable
	// input; callers can distinguish extraction failure by this value.
	fallbackConfidence = 0.1
)

// Classifier scores document text against the per-type vocabulary tables.
type Classifier struct {
	logger *slog.Logger
}

// New creates a Classifier.
func New(logger *slog.Logger) *Classifier {
	return &Classifier{
		logger: logger.With("system", "classifier"),
	}
}

// Classify infers the document type for the given text and filename.
// When both inputs are empty (content extraction failed and no filename
// signal exists), it returns the generic unknown classification with the
// fallback confidence rather than an error.
func (c *Classifier) Classify(text, filename string) analysis.Classification {
	content := normalize(text, filename)
	if content == "" {
		c.logger.Warn("no classifiable content, using fallback", "filename", filename)
		return fallback()
	}

	scores := scoreAll(content)

	best := patterns[0].docType
	bestScore := scores[best]
	for _, p := range patterns[1:] {
		if scores[p.docType] > bestScore {
			best = p.docType
			bestScore = scores[p.docType]
		}
	}

	if bestScore == 0 {
		best = analysis.TypeUnknown
	}

	result := analysis.Classification{
		Type:         best,
		Confidence:   min(bestScore*confidenceFactor, confidenceCap),
		Subtype:      detectSubtype(best, content),
		Elements:     detectElements(scores),
		Requirements: requirements[best],
	}

	c.logger.Info(
		"document classified",
		"filename", filename,
		"type", result.Type,
		"subtype", result.Subtype,
		"confidence", result.Confidence,
	)

	return result
}

func fallback() analysis.Classification {
	return analysis.Classification{
		Type:         analysis.TypeUnknown,
		Confidence:   fallbackConfidence,
		Requirements: requirements[analysis.TypeUnknown],
	}
}

func normalize(text, filename string) string {
	return strings.ToLower(strings.TrimSpace(text + " " + filename))
}

// scoreAll computes the normalized match score for every document type.
// Keywords weigh 1, phrases 2; the divisor keeps scores in [0,1].
func scoreAll(content string) map[analysis.DocumentType]float64 {
	scores := make(map[analysis.DocumentType]float64, len(patterns))

	for _, p := range patterns {
		hits := 0
		for _, kw := range p.keywords {
			if strings.Contains(content, kw) {
				hits++
			}
		}
		for _, ph := range p.phrases {
			if strings.Contains(content, ph) {
				hits += 2
			}
		}

		scores[p.docType] = float64(hits) / float64(len(p.keywords)+2*len(p.phrases))
	}

	return scores
}

func detectSubtype(docType analysis.DocumentType, content string) string {
	for _, m := range subtypeMarkers[docType] {
		if strings.Contains(content, m.marker) {
			return m.subtype
		}
	}
	return ""
}

// detectElements flags every type whose signal clears the detection
// threshold, independent of which type won. Mixed-signal documents carry
// multiple flags so routing can pull complementary sources.
func detectElements(scores map[analysis.DocumentType]float64) analysis.DetectedElements {
	return analysis.DetectedElements{
		Regulations:           scores[analysis.TypeRegulatory] > detectionThreshold,
		Formulations:          scores[analysis.TypeFormulation] > detectionThreshold,
		AnimalContent:         scores[analysis.TypeVeterinary] > detectionThreshold,
		SupplementData:        scores[analysis.TypeSupplements] > detectionThreshold,
		LyophilizationContent: scores[analysis.TypeLyophilization] > detectionThreshold,
		TechnicalSpecs:        scores[analysis.TypeTechnical] > detectionThreshold,
	}
}
