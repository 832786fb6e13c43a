package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/meshquery-inc/meshquery-engine/pkg/config"
)

// NewFromConfig builds a CompletionClient from the AI configuration.
// Returns (nil, nil) when no provider is configured; the engine then
// runs on the heuristic strategy alone.
func NewFromConfig(cfg *config.AIConfig, logger *zap.Logger) (CompletionClient, error) {
	if !cfg.IsAvailable() {
		return nil, nil
	}

	clientCfg := &Config{
		Endpoint: cfg.Endpoint,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
	}

	switch cfg.Provider {
	case "openai":
		return NewOpenAIClient(clientCfg, logger)
	case "anthropic":
		return NewAnthropicClient(clientCfg, logger)
	default:
		return nil, fmt.Errorf("unsupported AI provider %q", cfg.Provider)
	}
}
