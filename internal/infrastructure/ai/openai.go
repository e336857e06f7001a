// Package ai adapts the OpenAI chat completions API to ports.ChatModel.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/doeshing/explain-go/internal/domain"
	"github.com/doeshing/explain-go/internal/ports"
)

// OpenAIClient sends chat completions with the configured model pair.
type OpenAIClient struct {
	cfg    domain.Config
	client openai.Client
	logger ports.Logger
}

// NewOpenAIClient builds a client from configuration. A missing API key is
// reported by Complete, not here.
func NewOpenAIClient(cfg domain.Config, logger ports.Logger, opts ...option.RequestOption) *OpenAIClient {
	settings := cfg.OpenAI
	requestOpts := []option.RequestOption{
		option.WithAPIKey(settings.APIKey),
		option.WithMaxRetries(0),
	}
	if settings.Organization != "" {
		requestOpts = append(requestOpts, option.WithOrganization(settings.Organization))
	}
	if settings.BaseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(settings.BaseURL))
	}
	requestOpts = append(requestOpts, opts...)

	return &OpenAIClient{
		cfg:    cfg,
		client: openai.NewClient(requestOpts...),
		logger: logger,
	}
}

// Complete sends messages to the regular model, or the smart model when thinkDeep is set.
func (c *OpenAIClient) Complete(ctx context.Context, messages []domain.ChatMessage, thinkDeep bool) (domain.ChatResponse, error) {
	if !c.cfg.HasAPIKey() {
		return domain.ChatResponse{}, domain.ErrMissingAPIKey
	}

	model := c.cfg.ModelFor(thinkDeep)
	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(model),
		Messages:    toMessageParams(messages),
		Temperature: openai.Float(c.cfg.OpenAI.Temperature),
	}
	if c.cfg.OpenAI.Seed != 0 {
		params.Seed = openai.Int(c.cfg.OpenAI.Seed)
	}

	if c.logger != nil {
		c.logger.Debug("requesting chat completion", map[string]interface{}{
			"model":    model,
			"messages": len(messages),
		})
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return domain.ChatResponse{}, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return domain.ChatResponse{}, domain.ErrEmptyResponse
	}

	modelName := resp.Model
	if modelName == "" {
		modelName = model
	}
	return domain.ChatResponse{
		Text:      resp.Choices[0].Message.Content,
		ModelName: modelName,
		Usage: domain.TokenUsage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}

func toMessageParams(messages []domain.ChatMessage) []openai.ChatCompletionMessageParamUnion {
	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case domain.RoleSystem:
			params = append(params, openai.SystemMessage(msg.Content))
		default:
			params = append(params, openai.UserMessage(msg.Content))
		}
	}
	return params
}

var _ ports.ChatModel = (*OpenAIClient)(nil)
