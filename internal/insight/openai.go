package insight

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"

	"github.com/inovapharm/consilium/analysis"
	"github.com/inovapharm/consilium/internal/knowledge"
	"github.com/inovapharm/consilium/pkg/formatting"
)

const openaiMaxTokens = 2048

const openaiSystemPrompt = "You are a pharmaceutical regulatory analyst. " +
	"You analyze client documents against curated knowledge sources and " +
	"respond only with the requested JSON structure."

// OpenAICollaborator extracts insights through the OpenAI chat completion
// API with a JSON response format.
type OpenAICollaborator struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

func NewOpenAICollaborator(apiKey, model string, logger *slog.Logger) *OpenAICollaborator {
	return &OpenAICollaborator{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger.With("system", "insight", "collaborator", "openai"),
	}
}

func (c *OpenAICollaborator) PrepareWorkspace(ctx context.Context, spec WorkspaceSpec) error {
	c.logger.InfoContext(
		ctx, "workspace prepared",
		"workspace_id", spec.ID,
		"sources", len(spec.SourceIDs),
	)
	return nil
}

func (c *OpenAICollaborator) AttachSource(ctx context.Context, workspaceID uuid.UUID, source knowledge.Source) error {
	c.logger.DebugContext(
		ctx, "source attached",
		"workspace_id", workspaceID,
		"source", source.ID,
	)
	return nil
}

func (c *OpenAICollaborator) ProcessWorkspace(ctx context.Context, workspaceID uuid.UUID) error {
	c.logger.InfoContext(ctx, "workspace processed", "workspace_id", workspaceID)
	return nil
}

func (c *OpenAICollaborator) ExtractInsights(ctx context.Context, req Request) (*analysis.Insights, error) {
	model := c.model
	if model == "" {
		model = openai.GPT4o
	}

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openaiSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: composePrompt(req)},
		},
	}

	// reasoning models reject MaxTokens in favor of MaxCompletionTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "gpt-5") {
		chatReq.MaxCompletionTokens = openaiMaxTokens
	} else {
		chatReq.MaxTokens = openaiMaxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("%w: chat completion: %w", ErrCollaboratorUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", ErrExtractFailed)
	}

	insights, err := formatting.Parse[analysis.Insights](resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: parse response: %w", ErrExtractFailed, err)
	}

	c.logger.InfoContext(
		ctx, "insights extracted",
		"workspace_id", req.WorkspaceID,
		"findings", len(insights.KeyFindings),
		"confidence", insights.Confidence,
	)

	return &insights, nil
}

func (c *OpenAICollaborator) ReleaseWorkspace(ctx context.Context, id uuid.UUID) error {
	c.logger.InfoContext(ctx, "workspace released", "workspace_id", id)
	return nil
}
