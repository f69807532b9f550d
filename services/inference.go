package services

import (
	"context"
	"errors"
	"fmt"

	"ollamadash/config"
	"ollamadash/models"
)

var (
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrGeneration          = errors.New("generation failed")
	ErrPull                = errors.New("pull failed")
	ErrDelete              = errors.New("delete failed")

	// ErrUnsupported is returned by backends that have no equivalent for an
	// operation.
	ErrUnsupported = errors.New("operation not supported by upstream")
)

// InferenceClient talks to the upstream model service. Every method issues
// exactly one upstream request and never retries.
type InferenceClient interface {
	Heartbeat(ctx context.Context) error
	ListModels(ctx context.Context) ([]models.Model, error)
	Generate(ctx context.Context, model, prompt string) (*models.Generation, error)
	PullModel(ctx context.Context, name string) error
	DeleteModel(ctx context.Context, name string) error
}

// UpstreamError is returned by every InferenceClient method. Kind is one of
// the Err* sentinels above and is matched by errors.Is.
type UpstreamError struct {
	Kind       error
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := e.Kind.Error()
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewInferenceClient builds the backend selected by cfg.UpstreamStyle.
func NewInferenceClient(cfg config.Config) (InferenceClient, error) {
	switch cfg.UpstreamStyle {
	case config.APIStyleOllama:
		return NewOllamaClient(cfg.UpstreamURL), nil
	case config.APIStyleOpenAI:
		return NewOpenAIClient(cfg.UpstreamURL, cfg.OpenAIKey), nil
	default:
		return nil, fmt.Errorf("unknown upstream api style %q", cfg.UpstreamStyle)
	}
}
