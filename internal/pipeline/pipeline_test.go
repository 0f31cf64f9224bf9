package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/inovapharm/consilium/analysis"
	"github.com/inovapharm/consilium/internal/classifier"
	"github.com/inovapharm/consilium/internal/documents"
	"github.com/inovapharm/consilium/internal/insight"
	"github.com/inovapharm/consilium/internal/knowledge"
	"github.com/inovapharm/consilium/internal/reports"
	"github.com/inovapharm/consilium/internal/routing"
	"github.com/inovapharm/consilium/internal/workspace"
	"github.com/inovapharm/consilium/pkg/pagination"
	"github.com/inovapharm/consilium/pkg/storage"
)

type fakeDocuments struct {
	docs map[uuid.UUID]documents.Document
}

func (f *fakeDocuments) Handler(int64) *documents.Handler { return nil }

func (f *fakeDocuments) List(context.Context, pagination.PageRequest, documents.Filters) (*pagination.PageResult[documents.Document], error) {
	return nil, nil
}

func (f *fakeDocuments) Find(_ context.Context, id uuid.UUID) (*documents.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, documents.ErrNotFound
	}
	return &doc, nil
}

func (f *fakeDocuments) Create(_ context.Context, cmd documents.CreateCommand) (*documents.Document, error) {
	doc := documents.Document{
		ID:            uuid.New(),
		ClientRef:     cmd.ClientRef,
		Filename:      cmd.Filename,
		ContentType:   cmd.ContentType,
		ExtractedText: cmd.ExtractedText,
		UploadedAt:    time.Now(),
	}
	f.docs[doc.ID] = doc
	return &doc, nil
}

func (f *fakeDocuments) Download(context.Context, uuid.UUID) (*storage.DownloadResult, error) {
	return nil, documents.ErrNotFound
}

func (f *fakeDocuments) Delete(context.Context, uuid.UUID) error { return nil }

type fakeWorkspaces struct {
	created    []workspace.CreateCommand
	cleanedUp  []uuid.UUID
	prompts    []string
	extractErr error
	insights   analysis.Insights
}

func (f *fakeWorkspaces) Handler() *workspace.Handler { return nil }

func (f *fakeWorkspaces) List(context.Context, pagination.PageRequest, workspace.Filters) (*pagination.PageResult[workspace.Workspace], error) {
	return nil, nil
}

func (f *fakeWorkspaces) Find(context.Context, uuid.UUID) (*workspace.Workspace, error) {
	return nil, workspace.ErrNotFound
}

func (f *fakeWorkspaces) Create(_ context.Context, cmd workspace.CreateCommand) (*workspace.Workspace, error) {
	f.created = append(f.created, cmd)
	return &workspace.Workspace{
		ID:             uuid.New(),
		DocumentID:     cmd.DocumentID,
		Status:         workspace.StatusReady,
		Classification: cmd.Classification,
		SourceIDs:      cmd.Bundle.SourceIDs(),
	}, nil
}

func (f *fakeWorkspaces) ExtractInsights(_ context.Context, _ uuid.UUID, prompt string) (*analysis.Insights, error) {
	f.prompts = append(f.prompts, prompt)
	if f.extractErr != nil {
		return nil, f.extractErr
	}
	return &f.insights, nil
}

func (f *fakeWorkspaces) Cleanup(_ context.Context, id uuid.UUID) error {
	f.cleanedUp = append(f.cleanedUp, id)
	return nil
}

type fakeReports struct {
	saved []reports.Record
}

func (f *fakeReports) Handler() *reports.Handler { return nil }

func (f *fakeReports) List(context.Context, pagination.PageRequest, reports.Filters) (*pagination.PageResult[reports.Record], error) {
	return nil, nil
}

func (f *fakeReports) Find(context.Context, uuid.UUID) (*reports.Record, error) {
	return nil, reports.ErrNotFound
}

func (f *fakeReports) Save(_ context.Context, workspaceID uuid.UUID, report *analysis.Report) (*reports.Record, error) {
	rec := reports.NewRecord(workspaceID, report)
	f.saved = append(f.saved, rec)
	return &rec, nil
}

func (f *fakeReports) Delete(context.Context, uuid.UUID) error { return nil }

func testPipeline(workspaces *fakeWorkspaces, reportStore *fakeReports) (*Pipeline, *fakeDocuments) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := knowledge.NewRegistry(knowledge.DefaultSources(), logger)
	docs := &fakeDocuments{docs: make(map[uuid.UUID]documents.Document)}

	p := New(
		classifier.New(logger),
		routing.New(registry, logger),
		docs,
		workspaces,
		reports.NewSynthesizer(logger),
		reportStore,
		logger,
	)
	return p, docs
}

func testWorkspaces() *fakeWorkspaces {
	return &fakeWorkspaces{
		insights: analysis.Insights{
			Summary:         "Dossier reviewed.",
			KeyFindings:     []string{"Registration dossier references RDC 200/2017"},
			Recommendations: []string{"Update the cited resolution"},
			Confidence:      0.8,
		},
	}
}

func TestAnalyzeInlineDocument(t *testing.T) {
	workspaces := testWorkspaces()
	reportStore := &fakeReports{}
	p, docs := testPipeline(workspaces, reportStore)

	result, err := p.Analyze(context.Background(), AnalyzeCommand{
		Text:     "ANVISA registration dossier per RDC 200/2017 regulatory compliance submission",
		Filename: "dossier.txt",
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.Classification.Type != analysis.TypeRegulatory {
		t.Errorf("Type = %s, want regulatory", result.Classification.Type)
	}
	if len(result.Bundle.Sources) == 0 {
		t.Error("expected routed sources")
	}
	if result.Report == nil || result.Report.AnalysisType == "" {
		t.Error("expected synthesized report")
	}

	if len(docs.docs) != 1 {
		t.Errorf("inline document registrations = %d, want 1", len(docs.docs))
	}
	if len(workspaces.created) != 1 {
		t.Fatalf("workspace creations = %d, want 1", len(workspaces.created))
	}
	if len(reportStore.saved) != 1 {
		t.Errorf("saved reports = %d, want 1", len(reportStore.saved))
	}
	if len(workspaces.cleanedUp) != 1 {
		t.Errorf("cleanups = %d, want 1", len(workspaces.cleanedUp))
	}
}

func TestAnalyzeStoredDocument(t *testing.T) {
	workspaces := testWorkspaces()
	p, docs := testPipeline(workspaces, &fakeReports{})

	doc, err := docs.Create(context.Background(), documents.CreateCommand{
		Filename:      "formulation.pdf",
		ClientRef:     "CL-42",
		ExtractedText: "tablet formulation excipient stability batch dissolution",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	result, err := p.Analyze(context.Background(), AnalyzeCommand{DocumentID: doc.ID})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.Classification.Type != analysis.TypeFormulation {
		t.Errorf("Type = %s, want formulation", result.Classification.Type)
	}
	if workspaces.created[0].DocumentID != doc.ID {
		t.Error("workspace not bound to stored document")
	}
}

func TestAnalyzeForwardsPrompt(t *testing.T) {
	workspaces := testWorkspaces()
	p, _ := testPipeline(workspaces, &fakeReports{})

	_, err := p.Analyze(context.Background(), AnalyzeCommand{
		Text:     "regulatory compliance",
		Filename: "doc.txt",
		Prompt:   "Focus on stability data gaps",
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(workspaces.prompts) != 1 || workspaces.prompts[0] != "Focus on stability data gaps" {
		t.Errorf("prompts = %v, want the command prompt forwarded", workspaces.prompts)
	}
}

func TestAnalyzeKeepWorkspace(t *testing.T) {
	workspaces := testWorkspaces()
	p, _ := testPipeline(workspaces, &fakeReports{})

	_, err := p.Analyze(context.Background(), AnalyzeCommand{
		Text:          "regulatory compliance",
		Filename:      "doc.txt",
		KeepWorkspace: true,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(workspaces.cleanedUp) != 0 {
		t.Errorf("cleanups = %d, want 0 with KeepWorkspace", len(workspaces.cleanedUp))
	}
}

func TestAnalyzeExtractionFailureStillCleansUp(t *testing.T) {
	workspaces := testWorkspaces()
	workspaces.extractErr = insight.ErrCollaboratorUnavailable
	p, _ := testPipeline(workspaces, &fakeReports{})

	_, err := p.Analyze(context.Background(), AnalyzeCommand{
		Text:     "regulatory compliance",
		Filename: "doc.txt",
	})
	if !errors.Is(err, insight.ErrCollaboratorUnavailable) {
		t.Fatalf("err = %v, want collaborator unavailable", err)
	}

	if len(workspaces.cleanedUp) != 1 {
		t.Errorf("cleanups = %d, want 1 after failure", len(workspaces.cleanedUp))
	}
}

func TestAnalyzeEmptyRequest(t *testing.T) {
	p, _ := testPipeline(testWorkspaces(), &fakeReports{})

	_, err := p.Analyze(context.Background(), AnalyzeCommand{})
	if !errors.Is(err, ErrEmptyRequest) {
		t.Fatalf("err = %v, want ErrEmptyRequest", err)
	}
}

func TestAnalyzeUnknownDocument(t *testing.T) {
	p, _ := testPipeline(testWorkspaces(), &fakeReports{})

	_, err := p.Analyze(context.Background(), AnalyzeCommand{DocumentID: uuid.New()})
	if !errors.Is(err, documents.ErrNotFound) {
		t.Fatalf("err = %v, want document not found", err)
	}
}
