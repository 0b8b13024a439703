// Package model provides the classifier provider interface and the
// cloud client implementing it.
package model

import "context"

// Provider is the black-box LLM the classifier calls.
type Provider interface {
	// Generate runs inference on the provider.
	Generate(ctx context.Context, req *Request) (*Response, error)

	// IsAvailable checks if the provider is ready.
	IsAvailable() bool

	// Name returns the provider identifier.
	Name() string
}

// Request represents a provider inference request.
type Request struct {
	System    string `json:"system,omitempty"`
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens,omitempty"`
	JSON      bool   `json:"json,omitempty"` // Request JSON output
}

// Response represents a provider inference response.
type Response struct {
	Text       string `json:"text"`
	TokensUsed int    `json:"tokens_used"`
	Model      string `json:"model"`
	DurationMs int64  `json:"duration_ms"`
}
