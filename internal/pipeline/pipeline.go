// Package pipeline composes classification, knowledge routing, workspace
// orchestration, insight extraction, and report synthesis into the
// end-to-end document analysis flow.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/inovapharm/consilium/analysis"
	"github.com/inovapharm/consilium/internal/classifier"
	"github.com/inovapharm/consilium/internal/documents"
	"github.com/inovapharm/consilium/internal/reports"
	"github.com/inovapharm/consilium/internal/routing"
	"github.com/inovapharm/consilium/internal/workspace"
)

// AnalyzeCommand selects the document to analyze. Either DocumentID
// references an uploaded client document, or Text and Filename carry the
// content inline.
type AnalyzeCommand struct {
	DocumentID    uuid.UUID `json:"document_id,omitzero"`
	Text          string    `json:"text,omitempty"`
	Filename      string    `json:"filename,omitempty"`
	AnalysisType  string    `json:"analysis_type,omitempty"`
	WorkspaceName string    `json:"workspace_name,omitempty"`
	Prompt        string    `json:"prompt,omitempty"`
	KeepWorkspace bool      `json:"keep_workspace,omitempty"`
}

// Result is the outcome of one full analysis run.
type Result struct {
	Classification analysis.Classification `json:"classification"`
	Bundle         *routing.Bundle         `json:"bundle"`
	WorkspaceID    uuid.UUID               `json:"workspace_id"`
	Report         *reports.Record         `json:"report"`
}

// Pipeline wires the analysis stages together.
type Pipeline struct {
	classifier  *classifier.Classifier
	router      *routing.Router
	documents   documents.System
	workspaces  workspace.System
	synthesizer *reports.Synthesizer
	reports     reports.System
	logger      *slog.Logger
}

func New(
	c *classifier.Classifier,
	router *routing.Router,
	docs documents.System,
	workspaces workspace.System,
	synthesizer *reports.Synthesizer,
	reportStore reports.System,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		classifier:  c,
		router:      router,
		documents:   docs,
		workspaces:  workspaces,
		synthesizer: synthesizer,
		reports:     reportStore,
		logger:      logger.With("system", "pipeline"),
	}
}

// Classify exposes the classification stage on its own.
func (p *Pipeline) Classify(text, filename string) analysis.Classification {
	return p.classifier.Classify(text, filename)
}

// Route exposes the routing stage on its own.
func (p *Pipeline) Route(c analysis.Classification, analysisType string) *routing.Bundle {
	return p.router.Route(c, analysisType)
}

// AnalysisTypes returns the supported analysis type catalog.
func (p *Pipeline) AnalysisTypes() []analysis.AnalysisTypeInfo {
	return reports.AnalysisTypes()
}

// Analyze runs the full flow: classify the document, route knowledge
// sources, open and process a workspace, extract insights, synthesize
// the report, and persist it. The workspace is released afterwards
// unless the command asks to keep it.
func (p *Pipeline) Analyze(ctx context.Context, cmd AnalyzeCommand) (*Result, error) {
	text, filename, documentID, err := p.resolveDocument(ctx, cmd)
	if err != nil {
		return nil, err
	}

	classification := p.classifier.Classify(text, filename)
	bundle := p.router.Route(classification, cmd.AnalysisType)

	ws, err := p.workspaces.Create(ctx, workspace.CreateCommand{
		Name:           cmd.WorkspaceName,
		DocumentID:     documentID,
		DocumentName:   filename,
		AnalysisType:   cmd.AnalysisType,
		Classification: classification,
		Bundle:         bundle,
	})
	if err != nil {
		return nil, fmt.Errorf("open workspace: %w", err)
	}

	insights, err := p.workspaces.ExtractInsights(ctx, ws.ID, cmd.Prompt)
	if err != nil {
		p.releaseWorkspace(ctx, ws.ID, cmd.KeepWorkspace)
		return nil, fmt.Errorf("extract insights: %w", err)
	}

	report, err := p.synthesizer.Synthesize(reports.SynthesizeRequest{
		DocumentName:   filename,
		AnalysisType:   cmd.AnalysisType,
		Classification: classification,
		Insights:       *insights,
		SourceNames:    sourceNames(bundle),
	})
	if err != nil {
		p.releaseWorkspace(ctx, ws.ID, cmd.KeepWorkspace)
		return nil, fmt.Errorf("synthesize report: %w", err)
	}

	record, err := p.reports.Save(ctx, ws.ID, report)
	if err != nil {
		p.releaseWorkspace(ctx, ws.ID, cmd.KeepWorkspace)
		return nil, fmt.Errorf("save report: %w", err)
	}

	p.releaseWorkspace(ctx, ws.ID, cmd.KeepWorkspace)

	p.logger.InfoContext(
		ctx, "analysis complete",
		"document", filename,
		"type", classification.Type,
		"analysis_type", record.AnalysisType,
		"risk", record.RiskLevel,
	)

	return &Result{
		Classification: classification,
		Bundle:         bundle,
		WorkspaceID:    ws.ID,
		Report:         record,
	}, nil
}

func (p *Pipeline) resolveDocument(ctx context.Context, cmd AnalyzeCommand) (string, string, uuid.UUID, error) {
	if cmd.DocumentID != uuid.Nil {
		doc, err := p.documents.Find(ctx, cmd.DocumentID)
		if err != nil {
			return "", "", uuid.Nil, fmt.Errorf("resolve document: %w", err)
		}
		return doc.ExtractedText, doc.Filename, doc.ID, nil
	}

	if cmd.Text == "" && cmd.Filename == "" {
		return "", "", uuid.Nil, ErrEmptyRequest
	}

	// inline content gets a transient document record so the workspace
	// and report keep a durable reference
	doc, err := p.documents.Create(ctx, documents.CreateCommand{
		Data:          []byte(cmd.Text),
		Filename:      inlineFilename(cmd.Filename),
		ContentType:   "text/plain",
		ClientRef:     "inline",
		ExtractedText: cmd.Text,
	})
	if err != nil {
		return "", "", uuid.Nil, fmt.Errorf("register inline document: %w", err)
	}

	return doc.ExtractedText, doc.Filename, doc.ID, nil
}

// releaseWorkspace applies the cleanup policy. Failures are logged, not
// propagated: analysis outcomes never depend on release succeeding.
func (p *Pipeline) releaseWorkspace(ctx context.Context, id uuid.UUID, keep bool) {
	if keep {
		return
	}

	cleanupCtx := context.WithoutCancel(ctx)
	if err := p.workspaces.Cleanup(cleanupCtx, id); err != nil {
		p.logger.Warn("workspace cleanup failed", "workspace_id", id, "error", err)
	}
}

func sourceNames(bundle *routing.Bundle) []string {
	names := make([]string, 0, len(bundle.Sources))
	for _, s := range bundle.Sources {
		names = append(names, s.Name)
	}
	return names
}

func inlineFilename(filename string) string {
	if filename == "" {
		return "inline-document.txt"
	}
	return filename
}
