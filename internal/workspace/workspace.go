// Package workspace implements the analysis workspace domain for Consilium.
// A workspace binds one client document to a routed set of knowledge
// sources and tracks its lifecycle from creation through processing.
package workspace

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inovapharm/consilium/analysis"
)

// Status is the lifecycle state of a workspace.
type Status string

const (
	StatusCreating   Status = "creating"
	StatusUploading  Status = "uploading"
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusError      Status = "error"
)

// transitions defines the forward lifecycle. Every non-terminal status
// may additionally move to StatusError.
var transitions = map[Status]Status{
	StatusCreating:   StatusUploading,
	StatusUploading:  StatusProcessing,
	StatusProcessing: StatusReady,
}

// CanTransition reports whether moving from s to next is legal.
func (s Status) CanTransition(next Status) bool {
	if next == StatusError {
		return s != StatusError
	}
	return transitions[s] == next
}

// Workspace binds a client document to its routed knowledge sources.
// StatusMessage carries the failure description when Status is error.
// ProcessedAt is set exactly once, when the workspace first reaches ready.
type Workspace struct {
	ID                         uuid.UUID               `json:"id"`
	Name                       string                  `json:"name"`
	DocumentID                 uuid.UUID               `json:"document_id"`
	AnalysisType               string                  `json:"analysis_type,omitempty"`
	Status                     Status                  `json:"status"`
	StatusMessage              string                  `json:"status_message,omitempty"`
	Classification             analysis.Classification `json:"classification"`
	SourceIDs                  []string                `json:"source_ids"`
	CrossReferences            []string                `json:"cross_references"`
	TotalDocumentCount         int                     `json:"total_document_count"`
	EstimatedProcessingSeconds int                     `json:"estimated_processing_seconds"`
	CreatedAt                  time.Time               `json:"created_at"`
	ProcessedAt                *time.Time              `json:"processed_at,omitempty"`
	UpdatedAt                  time.Time               `json:"updated_at"`
}

// Transition advances the workspace to next, enforcing lifecycle order.
// Reaching ready stamps ProcessedAt if it has not been set before.
func (ws *Workspace) Transition(next Status, now time.Time) error {
	if !ws.Status.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, ws.Status, next)
	}

	ws.Status = next
	if next == StatusReady && ws.ProcessedAt == nil {
		processed := now
		ws.ProcessedAt = &processed
	}

	return nil
}

// Fail moves the workspace to the error status with a failure message.
// Failing an already-failed workspace keeps the original message.
func (ws *Workspace) Fail(message string) {
	if ws.Status == StatusError {
		return
	}
	ws.Status = StatusError
	ws.StatusMessage = message
}
