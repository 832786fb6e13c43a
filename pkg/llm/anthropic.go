package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"
)

// AnthropicClient talks to the Anthropic messages API.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
	logger *zap.Logger
}

// NewAnthropicClient creates an Anthropic-backed completion client.
func NewAnthropicClient(cfg *Config, logger *zap.Logger) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	return &AnthropicClient{
		client: anthropic.NewClient(cfg.APIKey),
		model:  cfg.Model,
		logger: logger.Named("llm"),
	}, nil
}

// Complete implements CompletionClient.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	c.logger.Debug("completion request",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(prompt)),
		zap.Float64("temperature", temperature))

	start := time.Now()
	temp := float32(temperature)

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(c.model),
		MaxTokens:   maxTokens,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: anthropic.RoleUser, Content: []anthropic.MessageContent{
				{Type: "text", Text: &prompt},
			}},
		},
	})
	if err != nil {
		c.logger.Warn("completion request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", fmt.Errorf("create messages: %w", err)
	}

	var out strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != nil {
			out.WriteString(*block.Text)
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("no text content in response")
	}

	c.logger.Info("completion request done",
		zap.Duration("elapsed", time.Since(start)))

	return strings.TrimSpace(out.String()), nil
}

// Model implements CompletionClient.
func (c *AnthropicClient) Model() string {
	return c.model
}
