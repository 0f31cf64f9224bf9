package workspace

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestStatusCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"creating to uploading", StatusCreating, StatusUploading, true},
		{"uploading to processing", StatusUploading, StatusProcessing, true},
		{"processing to ready", StatusProcessing, StatusReady, true},
		{"creating to ready skips steps", StatusCreating, StatusReady, false},
		{"ready to processing reverses", StatusReady, StatusProcessing, false},
		{"uploading to creating reverses", StatusUploading, StatusCreating, false},
		{"creating to error", StatusCreating, StatusError, true},
		{"processing to error", StatusProcessing, StatusError, true},
		{"ready to error", StatusReady, StatusError, true},
		{"error to error", StatusError, StatusError, false},
		{"error to uploading", StatusError, StatusUploading, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestTransitionLifecycle(t *testing.T) {
	ws := &Workspace{ID: uuid.New(), Status: StatusCreating}
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	for _, next := range []Status{StatusUploading, StatusProcessing, StatusReady} {
		if err := ws.Transition(next, now); err != nil {
			t.Fatalf("Transition(%s): %v", next, err)
		}
	}

	if ws.Status != StatusReady {
		t.Errorf("Status = %s, want %s", ws.Status, StatusReady)
	}
	if ws.ProcessedAt == nil || !ws.ProcessedAt.Equal(now) {
		t.Errorf("ProcessedAt = %v, want %v", ws.ProcessedAt, now)
	}
}

func TestTransitionRejectsSkips(t *testing.T) {
	ws := &Workspace{Status: StatusCreating}

	err := ws.Transition(StatusReady, time.Now())
	if err == nil {
		t.Fatal("expected error for creating -> ready")
	}
	if ws.Status != StatusCreating {
		t.Errorf("Status = %s, want unchanged %s", ws.Status, StatusCreating)
	}
}

func TestProcessedAtSetOnce(t *testing.T) {
	first := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)

	ws := &Workspace{Status: StatusProcessing}
	if err := ws.Transition(StatusReady, first); err != nil {
		t.Fatalf("Transition: %v", err)
	}

	// a ready workspace can only fail; ProcessedAt must survive
	ws.Fail("downstream failure")
	ws.Status = StatusProcessing
	if err := ws.Transition(StatusReady, later); err != nil {
		t.Fatalf("Transition: %v", err)
	}

	if !ws.ProcessedAt.Equal(first) {
		t.Errorf("ProcessedAt = %v, want first stamp %v", ws.ProcessedAt, first)
	}
}

func TestFailKeepsOriginalMessage(t *testing.T) {
	ws := &Workspace{Status: StatusUploading}

	ws.Fail("source attach timed out")
	ws.Fail("second failure")

	if ws.Status != StatusError {
		t.Errorf("Status = %s, want %s", ws.Status, StatusError)
	}
	if ws.StatusMessage != "source attach timed out" {
		t.Errorf("StatusMessage = %q, want original message", ws.StatusMessage)
	}
}
