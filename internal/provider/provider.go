// Package provider selects and wraps the LLM backend used for trend
// insights. Concrete adapters share one small interface so the call sites
// never care which backend is configured; the mock is the unconditional
// fallback when nothing usable is configured.
package provider

import "context"

// Message is one turn in a completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionParams are the knobs passed to a completion call.
type CompletionParams struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
	JSONMode    bool
}

// LLM is implemented by each completion backend.
type LLM interface {
	// Name identifies the backend ("OpenAI", "Ollama", "Mock").
	Name() string
	// Model is the model identifier in use.
	Model() string
	// Complete generates a completion for the given conversation.
	Complete(ctx context.Context, params CompletionParams) (string, error)
	// Available reports whether the backend is reachable and configured.
	Available(ctx context.Context) bool
}
