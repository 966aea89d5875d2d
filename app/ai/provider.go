package ai

import "context"

// Provider is the interface for AI text generation providers
type Provider interface {
	// Name returns the provider name (e.g., "gemini")
	Name() string

	// Available returns true if the provider is configured and ready
	Available() bool

	// Generate sends a prompt and returns the response
	Generate(ctx context.Context, req Request) (Response, error)
}

// Request is a prompt request to an AI provider
type Request struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
	JSONResponse bool // Ask the provider to emit application/json
}

// Response is the AI provider's response
type Response struct {
	Content string
	Model   string
}
