package genai

import (
	"context"
	"time"

	"github.com/sashabaranov/go-openai"

	perrors "github.com/parley/parley/internal/errors"
	"github.com/parley/parley/internal/logger"
)

// OpenAIClient generates replies via the OpenAI chat completion API.
type OpenAIClient struct {
	client *openai.Client
}

// NewOpenAIClient creates an OpenAI-backed client.
func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, perrors.E(perrors.Op("genai.NewOpenAIClient"), perrors.KindConfig, "OpenAI API key is required")
	}
	return &OpenAIClient{client: openai.NewClient(apiKey)}, nil
}

// Name returns the provider name.
func (c *OpenAIClient) Name() string {
	return "openai"
}

// Generate sends a single-turn chat completion request.
func (c *OpenAIClient) Generate(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()

	model := req.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	})
	if err != nil {
		logger.Log("GenAI: OpenAI request failed: %v", err)
		return nil, perrors.E(perrors.Op("genai.Generate"), perrors.KindTransport, err)
	}

	var content string
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}

	return &Response{
		Content:   content,
		Model:     resp.Model,
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}
