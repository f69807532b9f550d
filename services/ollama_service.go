package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"ollamadash/models"
)

// OllamaClient speaks the native Ollama HTTP API. The base URL includes the
// /api prefix, e.g. http://localhost:11434/api.
type OllamaClient struct {
	http *resty.Client
}

type tagsResponse struct {
	Models []models.Model `json:"models"`
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Model         string `json:"model"`
	Response      string `json:"response"`
	TotalDuration int64  `json:"total_duration"`
	EvalCount     int    `json:"eval_count"`
}

// Ollama accepts both "model" and the older "name" field.
type modelRequest struct {
	Model  string `json:"model"`
	Name   string `json:"name"`
	Stream *bool  `json:"stream,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewOllamaClient(baseURL string) *OllamaClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &OllamaClient{http: client}
}

func (c *OllamaClient) Heartbeat(ctx context.Context) error {
	_, err := c.ListModels(ctx)
	return err
}

func (c *OllamaClient) ListModels(ctx context.Context) ([]models.Model, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/tags")
	if err := checkResponse(ErrUpstreamUnavailable, resp, err); err != nil {
		return nil, err
	}

	var result tagsResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, &UpstreamError{Kind: ErrUpstreamUnavailable, Err: err}
	}

	if result.Models == nil {
		return []models.Model{}, nil
	}
	return result.Models, nil
}

func (c *OllamaClient) Generate(ctx context.Context, model, prompt string) (*models.Generation, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(generateRequest{Model: model, Prompt: prompt, Stream: false}).
		Post("/generate")
	if err := checkResponse(ErrGeneration, resp, err); err != nil {
		return nil, err
	}

	var result generateResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, &UpstreamError{Kind: ErrGeneration, Err: err}
	}

	if result.Model == "" {
		result.Model = model
	}

	return &models.Generation{
		Model:         result.Model,
		Text:          result.Response,
		TotalDuration: time.Duration(result.TotalDuration),
		EvalCount:     result.EvalCount,
	}, nil
}

// PullModel asks upstream to download name and waits for the single
// non-streamed reply.
func (c *OllamaClient) PullModel(ctx context.Context, name string) error {
	stream := false
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(modelRequest{Model: name, Name: name, Stream: &stream}).
		Post("/pull")
	return checkResponse(ErrPull, resp, err)
}

func (c *OllamaClient) DeleteModel(ctx context.Context, name string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(modelRequest{Model: name, Name: name}).
		Delete("/delete")
	return checkResponse(ErrDelete, resp, err)
}

// checkResponse turns a transport error or a non-2xx reply into an
// *UpstreamError of the given kind.
func checkResponse(kind error, resp *resty.Response, err error) error {
	if err != nil {
		return &UpstreamError{Kind: kind, Err: err}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		var body errorResponse
		if json.Unmarshal(resp.Body(), &body) != nil || body.Error == "" {
			body.Error = strings.TrimSpace(resp.String())
		}
		return &UpstreamError{Kind: kind, StatusCode: resp.StatusCode(), Message: body.Error}
	}

	return nil
}
