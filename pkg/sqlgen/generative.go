package sqlgen

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/meshquery-inc/meshquery-engine/pkg/llm"
	"github.com/meshquery-inc/meshquery-engine/pkg/models"
	sqltext "github.com/meshquery-inc/meshquery-engine/pkg/sql"
)

// Generative produces SQL through a completion provider. Its failures
// are reported to the caller but never treated as fatal; the caller
// falls back to the heuristic strategy.
type Generative struct {
	client      llm.CompletionClient
	maxTokens   int
	temperature float64
	tableLimit  int
	logger      *zap.Logger
}

// NewGenerative wires the strategy to its completion client.
func NewGenerative(client llm.CompletionClient, maxTokens int, temperature float64, tableLimit int, logger *zap.Logger) *Generative {
	return &Generative{
		client:      client,
		maxTokens:   maxTokens,
		temperature: temperature,
		tableLimit:  tableLimit,
		logger:      logger,
	}
}

// Generate issues one low-temperature completion and cleans the
// response into an executable statement. An unusable response is an
// error, not a panic; the result is nil in that case.
func (g *Generative) Generate(ctx context.Context, question string, qIntent models.Intent, catalog []models.FullyQualifiedName, snippets []WikiSnippet) (*models.SQLStatement, error) {
	prompt := BuildSQLPrompt(question, catalog, snippets, g.tableLimit)

	response, err := g.client.Complete(ctx, prompt, g.maxTokens, g.temperature)
	if err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}

	raw := ExtractSQL(response)
	if raw == "" {
		return nil, fmt.Errorf("empty completion response")
	}
	if !strings.HasPrefix(strings.ToUpper(raw), "SELECT") {
		return nil, fmt.Errorf("response is not a SELECT statement")
	}

	normalized, err := sqltext.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize generated sql: %w", err)
	}
	cleaned := sqltext.Sanitize(normalized)

	if findings := sqltext.CheckLiterals(cleaned); len(findings) > 0 {
		g.logger.Warn("generated sql rejected by injection check",
			zap.String("fingerprint", findings[0].Fingerprint))
		return nil, fmt.Errorf("generated sql failed injection check")
	}

	return &models.SQLStatement{
		SQL:             cleaned,
		Intent:          qIntent,
		SelectedColumns: sqltext.SelectedColumns(cleaned),
		Generated:       true,
	}, nil
}
