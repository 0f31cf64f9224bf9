package workspace

import (
	"context"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/inovapharm/consilium/internal/insight"
)

// State bag keys for the workspace lifecycle graph.
const (
	KeyWorkspace = "workspace"
	KeyCommand   = "command"
)

// Create opens a workspace for a classified document and drives it
// through the lifecycle graph (upload -> process). The workspace row is
// inserted before the graph runs; any failure, including context
// cancellation, is recorded on the row as the error status with a
// message before the error is returned.
func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Workspace, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	ws := newWorkspace(cmd)
	if err := r.insert(ctx, ws); err != nil {
		return nil, fmt.Errorf("insert workspace: %w", err)
	}

	graph, err := buildGraph(r)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyWorkspace, *ws)
	initialState = initialState.Set(KeyCommand, cmd)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		r.recordFailure(ctx, ws, err)
		return nil, fmt.Errorf("execute lifecycle: %w", err)
	}

	final, err := extractWorkspace(finalState)
	if err != nil {
		return nil, err
	}

	r.logger.Info(
		"workspace ready",
		"id", final.ID,
		"document_id", final.DocumentID,
		"sources", len(final.SourceIDs),
	)

	return final, nil
}

func buildGraph(r *repo) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("workspace-lifecycle")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("upload", UploadNode(r)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("process", ProcessNode(r)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("upload", "process", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("upload"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("process"); err != nil {
		return nil, err
	}

	return graph, nil
}

// UploadNode transitions the workspace to uploading, prepares the
// collaborator workspace, and attaches the routed knowledge sources with
// bounded concurrency.
func UploadNode(r *repo) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		ws, cmd, err := extractLifecycleState(s)
		if err != nil {
			return s, fmt.Errorf("upload: %w", err)
		}

		if err := ws.Transition(StatusUploading, r.now()); err != nil {
			return s, fmt.Errorf("upload: %w", err)
		}
		if err := r.persist(ctx, ws); err != nil {
			return s, fmt.Errorf("upload: %w", err)
		}

		spec := insight.WorkspaceSpec{
			ID:           ws.ID,
			Name:         ws.Name,
			Instructions: workspaceInstructions(cmd),
			SourceIDs:    ws.SourceIDs,
		}
		if err := r.collaborator.PrepareWorkspace(ctx, spec); err != nil {
			return s, fmt.Errorf("upload: prepare workspace: %w", err)
		}

		if err := attachSources(ctx, r, ws, cmd); err != nil {
			return s, fmt.Errorf("upload: %w", err)
		}

		r.logger.InfoContext(
			ctx, "upload node complete",
			"workspace_id", ws.ID,
			"sources", len(cmd.Bundle.Sources),
		)

		s = s.Set(KeyWorkspace, *ws)
		return s, nil
	})
}

// ProcessNode transitions the workspace to processing, hands it to the
// collaborator for indexing, and marks it ready once the hand-off
// succeeds. A collaborator failure here leaves the workspace in
// processing for the caller to record as error.
func ProcessNode(r *repo) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		ws, _, err := extractLifecycleState(s)
		if err != nil {
			return s, fmt.Errorf("process: %w", err)
		}

		if err := ws.Transition(StatusProcessing, r.now()); err != nil {
			return s, fmt.Errorf("process: %w", err)
		}
		if err := r.persist(ctx, ws); err != nil {
			return s, fmt.Errorf("process: %w", err)
		}

		if err := r.collaborator.ProcessWorkspace(ctx, ws.ID); err != nil {
			return s, fmt.Errorf("process: collaborator hand-off: %w", err)
		}

		if err := ws.Transition(StatusReady, r.now()); err != nil {
			return s, fmt.Errorf("process: %w", err)
		}
		if err := r.persist(ctx, ws); err != nil {
			return s, fmt.Errorf("process: %w", err)
		}

		r.logger.InfoContext(
			ctx, "process node complete",
			"workspace_id", ws.ID,
			"processed_at", ws.ProcessedAt,
		)

		s = s.Set(KeyWorkspace, *ws)
		return s, nil
	})
}

func attachSources(ctx context.Context, r *repo, ws *Workspace, cmd CreateCommand) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(attachWorkerCount(len(cmd.Bundle.Sources)))

	for _, source := range cmd.Bundle.Sources {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			if err := r.collaborator.AttachSource(gctx, ws.ID, source); err != nil {
				return fmt.Errorf("attach source %s: %w", source.ID, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// recordFailure marks the workspace as failed and persists the message.
// The write uses a detached context so a cancelled lifecycle still leaves
// a durable error record.
func (r *repo) recordFailure(ctx context.Context, ws *Workspace, cause error) {
	ws.Fail(cause.Error())

	persistCtx := context.WithoutCancel(ctx)
	if err := r.persist(persistCtx, ws); err != nil {
		r.logger.Error("failed to record workspace failure", "id", ws.ID, "error", err)
	}
}

func newWorkspace(cmd CreateCommand) *Workspace {
	name := cmd.Name
	if name == "" {
		name = fmt.Sprintf("Analysis - %s", cmd.DocumentName)
	}

	return &Workspace{
		ID:                         uuid.New(),
		Name:                       name,
		DocumentID:                 cmd.DocumentID,
		AnalysisType:               cmd.AnalysisType,
		Status:                     StatusCreating,
		Classification:             cmd.Classification,
		SourceIDs:                  cmd.Bundle.SourceIDs(),
		CrossReferences:            cmd.Bundle.CrossReferences,
		TotalDocumentCount:         cmd.Bundle.TotalDocumentCount,
		EstimatedProcessingSeconds: cmd.Bundle.EstimatedProcessingSeconds,
	}
}

func validateCommand(cmd CreateCommand) error {
	if cmd.DocumentID == uuid.Nil {
		return fmt.Errorf("%w: missing document id", ErrInvalidCommand)
	}
	if cmd.Bundle == nil || len(cmd.Bundle.Sources) == 0 {
		return fmt.Errorf("%w: empty knowledge bundle", ErrInvalidCommand)
	}
	return nil
}

func workspaceInstructions(cmd CreateCommand) string {
	return fmt.Sprintf(
		"Analyze %s as a %s document against the attached knowledge sources.",
		cmd.DocumentName, cmd.Classification.Type,
	)
}

func extractLifecycleState(s state.State) (*Workspace, CreateCommand, error) {
	ws, err := extractWorkspace(s)
	if err != nil {
		return nil, CreateCommand{}, err
	}

	cmdVal, ok := s.Get(KeyCommand)
	if !ok {
		return nil, CreateCommand{}, fmt.Errorf("missing %s in state", KeyCommand)
	}

	cmd, ok := cmdVal.(CreateCommand)
	if !ok {
		return nil, CreateCommand{}, fmt.Errorf("%s is not CreateCommand", KeyCommand)
	}

	return ws, cmd, nil
}

func extractWorkspace(s state.State) (*Workspace, error) {
	val, ok := s.Get(KeyWorkspace)
	if !ok {
		return nil, fmt.Errorf("missing %s in state", KeyWorkspace)
	}

	ws, ok := val.(Workspace)
	if !ok {
		return nil, fmt.Errorf("%s is not Workspace", KeyWorkspace)
	}

	return &ws, nil
}

func attachWorkerCount(sourceCount int) int {
	return max(min(runtime.NumCPU(), sourceCount), 1)
}
