package llm

import (
	"context"
)

// MockClient is a configurable mock for testing completion-dependent
// code. Set CompleteFunc to control behavior.
type MockClient struct {
	// CompleteFunc is called when Complete is invoked.
	// If nil, returns empty string and nil error.
	CompleteFunc func(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)

	// ModelName is returned by Model. Defaults to "mock-model".
	ModelName string

	// CompleteCalls counts invocations for verification.
	CompleteCalls int

	// LastPrompt records the most recent prompt for assertions.
	LastPrompt string
}

// NewMockClient creates a mock with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{ModelName: "mock-model"}
}

// Complete implements CompletionClient.
func (m *MockClient) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	m.CompleteCalls++
	m.LastPrompt = prompt
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt, maxTokens, temperature)
	}
	return "", nil
}

// Model implements CompletionClient.
func (m *MockClient) Model() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}
