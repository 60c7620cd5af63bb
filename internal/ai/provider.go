package ai

import "context"

// CompletionRequest is a single-turn prompt sent to a model endpoint.
type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float64
	JSON        bool // ask the endpoint for a JSON object when it supports it
}

// LLMProvider sends a prompt to a hosted model and returns the raw text response.
type LLMProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
