// Package routing selects the minimal sufficient set of knowledge sources
// for a classified document. Routing is a pure function of the
// classification, the optional analysis type, and the current registry
// snapshot; it never mutates registry state.
package routing

import "github.com/inovapharm/consilium/internal/knowledge"

// Processing time model constants. These model a known-proportional cost
// function (linear in source count plus two fixed terms), not wall-clock
// truth; recalibrate from telemetry without changing the model shape.
const (
	perSourceSeconds      = 120
	clientDocSeconds      = 180
	specializedRunSeconds = 240
)

// Bundle is the deduplicated set of knowledge sources selected for one
// routing call, with cross-reference hints and aggregate metrics. Bundles
// are built fresh per call and never mutated after construction.
type Bundle struct {
	Sources                   []knowledge.Source `json:"sources"`
	CrossReferences           []string           `json:"cross_references"`
	TotalDocumentCount        int                `json:"total_document_count"`
	EstimatedProcessingSeconds int               `json:"estimated_processing_seconds"`
}

// SourceIDs returns the ids of the selected sources in selection order.
func (b *Bundle) SourceIDs() []string {
	ids := make([]string, len(b.Sources))
	for i, s := range b.Sources {
		ids[i] = s.ID
	}
	return ids
}
