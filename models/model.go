package models

import "time"

// Model is an installed model as reported by the upstream service.
type Model struct {
	Name       string        `json:"name"`
	Model      string        `json:"model,omitempty"`
	Size       int64         `json:"size"`
	Digest     string        `json:"digest,omitempty"`
	ModifiedAt time.Time     `json:"modified_at"`
	Details    *ModelDetails `json:"details,omitempty"`
}

type ModelDetails struct {
	Format            string `json:"format,omitempty"`
	Family            string `json:"family,omitempty"`
	ParameterSize     string `json:"parameter_size,omitempty"`
	QuantizationLevel string `json:"quantization_level,omitempty"`
}

// Generation is the result of a single non-streamed generate call.
type Generation struct {
	Model         string
	Text          string
	TotalDuration time.Duration
	EvalCount     int
}

// DashboardStats are the aggregate figures shown on the dashboard.
type DashboardStats struct {
	TotalModels  int
	TotalSize    string
	ActiveModels int
}
