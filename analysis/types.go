// Package analysis defines the shared types that flow through the Consilium
// pipeline: document classification, collaborator insights, and the final
// structured analysis report. Internal systems produce and consume these
// types; external callers receive them as API payloads.
package analysis

import (
	"encoding/json"
	"slices"
)

// DocumentType identifies the inferred domain of a client document.
type DocumentType string

// Document types recognized by the classifier. Declaration order matters:
// when two types score identically, the earlier declaration wins.
const (
	TypeRegulatory     DocumentType = "regulatory"
	TypeFormulation    DocumentType = "formulation"
	TypeVeterinary     DocumentType = "veterinary"
	TypeSupplements    DocumentType = "supplements"
	TypeLyophilization DocumentType = "lyophilization"
	TypeTechnical      DocumentType = "technical"
	TypeUnknown        DocumentType = "unknown"
)

var documentTypes = []DocumentType{
	TypeRegulatory,
	TypeFormulation,
	TypeVeterinary,
	TypeSupplements,
	TypeLyophilization,
	TypeTechnical,
	TypeUnknown,
}

// DocumentTypes returns the list of valid document types in declaration order.
func DocumentTypes() []DocumentType {
	return documentTypes
}

// ParseDocumentType validates a string as a known document type.
// Returns ErrInvalidDocumentType if the value is not recognized.
func ParseDocumentType(s string) (DocumentType, error) {
	v := DocumentType(s)
	if !slices.Contains(documentTypes, v) {
		return "", ErrInvalidDocumentType
	}
	return v, nil
}

// UnmarshalJSON validates that the decoded string is a known document type.
func (t *DocumentType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseDocumentType(raw)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// DetectedElements flags every content signal that exceeded the detection
// threshold, independent of which document type won. A single document can
// trip regulatory and formulation signals simultaneously.
type DetectedElements struct {
	Regulations           bool `json:"regulations"`
	Formulations          bool `json:"formulations"`
	AnimalContent         bool `json:"animal_content"`
	SupplementData        bool `json:"supplement_data"`
	LyophilizationContent bool `json:"lyophilization_content"`
	TechnicalSpecs        bool `json:"technical_specs"`
}

// Classification is the immutable result of classifying a single document.
// Confidence is derived from keyword and phrase match density and is always
// capped below 0.95; the classifier never asserts certainty.
type Classification struct {
	Type         DocumentType     `json:"type"`
	Confidence   float64          `json:"confidence"`
	Subtype      string           `json:"subtype,omitempty"`
	Elements     DetectedElements `json:"detected_elements"`
	Requirements []string         `json:"requirements"`
}

// RequiredSourceCount returns the number of knowledge requirements attached
// to the classification. Report synthesis uses it as a corroboration signal.
func (c *Classification) RequiredSourceCount() int {
	return len(c.Requirements)
}
