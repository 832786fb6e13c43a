// Package llm provides completion clients for SQL synthesis and
// explanation. Two backends are supported: any OpenAI-compatible
// endpoint, and Anthropic. Both sit behind CompletionClient so the
// synthesizer can be tested with a mock and run without a provider.
package llm

import (
	"context"
)

// CompletionClient issues one bounded completion request. Implementations
// must honor ctx cancellation; the engine treats any error as "no result"
// and falls back to heuristics.
type CompletionClient interface {
	// Complete sends prompt and returns the raw completion text.
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)

	// Model returns the configured model name, for logging.
	Model() string
}

// Compile-time interface checks.
var (
	_ CompletionClient = (*OpenAIClient)(nil)
	_ CompletionClient = (*AnthropicClient)(nil)
	_ CompletionClient = (*MockClient)(nil)
)
