package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/inovapharm/consilium/analysis"
	"github.com/inovapharm/consilium/pkg/pagination"
)

type stubSystem struct {
	prompts    []string
	extractErr error
	insights   analysis.Insights
}

func (s *stubSystem) Handler() *Handler { return nil }

func (s *stubSystem) List(context.Context, pagination.PageRequest, Filters) (*pagination.PageResult[Workspace], error) {
	return nil, nil
}

func (s *stubSystem) Find(context.Context, uuid.UUID) (*Workspace, error) {
	return nil, ErrNotFound
}

func (s *stubSystem) Create(context.Context, CreateCommand) (*Workspace, error) {
	return nil, ErrInvalidCommand
}

func (s *stubSystem) ExtractInsights(_ context.Context, _ uuid.UUID, prompt string) (*analysis.Insights, error) {
	s.prompts = append(s.prompts, prompt)
	if s.extractErr != nil {
		return nil, s.extractErr
	}
	return &s.insights, nil
}

func (s *stubSystem) Cleanup(context.Context, uuid.UUID) error { return nil }

func setupMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func testHandler() (*Handler, *stubSystem) {
	sys := &stubSystem{
		insights: analysis.Insights{Summary: "Dossier reviewed.", Confidence: 0.8},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(sys, logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}), sys
}

func TestHandlerExtractInsightsWithPrompt(t *testing.T) {
	h, sys := testHandler()
	mux := setupMux(h)

	body, _ := json.Marshal(ExtractRequest{Prompt: "Focus on stability data gaps"})
	req := httptest.NewRequest(http.MethodPost, "/workspaces/"+uuid.NewString()+"/insights", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if len(sys.prompts) != 1 || sys.prompts[0] != "Focus on stability data gaps" {
		t.Errorf("prompts = %v, want the request prompt forwarded", sys.prompts)
	}

	var insights analysis.Insights
	if err := json.NewDecoder(rec.Body).Decode(&insights); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if insights.Summary != "Dossier reviewed." {
		t.Errorf("Summary = %q", insights.Summary)
	}
}

func TestHandlerExtractInsightsNoBody(t *testing.T) {
	h, sys := testHandler()
	mux := setupMux(h)

	req := httptest.NewRequest(http.MethodPost, "/workspaces/"+uuid.NewString()+"/insights", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if len(sys.prompts) != 1 || sys.prompts[0] != "" {
		t.Errorf("prompts = %v, want one empty prompt", sys.prompts)
	}
}

func TestHandlerExtractInsightsMalformedBody(t *testing.T) {
	h, sys := testHandler()
	mux := setupMux(h)

	req := httptest.NewRequest(http.MethodPost, "/workspaces/"+uuid.NewString()+"/insights", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if len(sys.prompts) != 0 {
		t.Errorf("prompts = %v, want no extraction on malformed body", sys.prompts)
	}
}
