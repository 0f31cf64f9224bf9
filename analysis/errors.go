package analysis

import "errors"

// Sentinel errors shared across the pipeline.
var (
	ErrInvalidDocumentType = errors.New("unknown document type")
)
