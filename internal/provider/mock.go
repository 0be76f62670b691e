package provider

import "context"

// Mock is a canned-response backend. Always available; used in tests and
// as the fallback when no real backend is configured.
type Mock struct {
	// Response overrides the canned reply when non-empty.
	Response string
}

// NewMock creates a Mock backend.
func NewMock() *Mock {
	return &Mock{}
}

// Name implements LLM.
func (m *Mock) Name() string { return "Mock" }

// Model implements LLM.
func (m *Mock) Model() string { return "mock-v1" }

// Complete implements LLM.
func (m *Mock) Complete(ctx context.Context, params CompletionParams) (string, error) {
	if m.Response != "" {
		return m.Response, nil
	}
	return "Your recent entries look steady. Keep logging daily for a clearer trend.", nil
}

// Available implements LLM; the mock always is.
func (m *Mock) Available(ctx context.Context) bool { return true }
