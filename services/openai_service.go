package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"

	"ollamadash/models"
)

// OpenAIClient speaks the OpenAI-compatible API that Ollama, llama.cpp and
// vLLM expose under /v1. Model management is not part of that API.
type OpenAIClient struct {
	client *openai.Client
}

func NewOpenAIClient(baseURL, apiKey string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	return &OpenAIClient{client: openai.NewClientWithConfig(cfg)}
}

func (c *OpenAIClient) Heartbeat(ctx context.Context) error {
	_, err := c.ListModels(ctx)
	return err
}

func (c *OpenAIClient) ListModels(ctx context.Context) ([]models.Model, error) {
	list, err := c.client.ListModels(ctx)
	if err != nil {
		return nil, wrapOpenAIError(ErrUpstreamUnavailable, err)
	}

	out := make([]models.Model, 0, len(list.Models))
	for _, m := range list.Models {
		out = append(out, models.Model{Name: m.ID, Model: m.ID})
	}
	return out, nil
}

// Generate sends prompt as the only message of a chat completion.
func (c *OpenAIClient) Generate(ctx context.Context, model, prompt string) (*models.Generation, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, wrapOpenAIError(ErrGeneration, err)
	}

	if len(resp.Choices) == 0 {
		return nil, &UpstreamError{Kind: ErrGeneration, Message: "no choices in response"}
	}

	if resp.Model == "" {
		resp.Model = model
	}

	return &models.Generation{
		Model:     resp.Model,
		Text:      resp.Choices[0].Message.Content,
		EvalCount: resp.Usage.CompletionTokens,
	}, nil
}

func (c *OpenAIClient) PullModel(ctx context.Context, name string) error {
	return &UpstreamError{Kind: ErrPull, Err: ErrUnsupported}
}

func (c *OpenAIClient) DeleteModel(ctx context.Context, name string) error {
	return &UpstreamError{Kind: ErrDelete, Err: ErrUnsupported}
}

func wrapOpenAIError(kind error, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{Kind: kind, StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &UpstreamError{Kind: kind, StatusCode: reqErr.HTTPStatusCode, Err: reqErr.Err}
	}

	return &UpstreamError{Kind: kind, Err: err}
}
