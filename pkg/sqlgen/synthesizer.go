// Package sqlgen turns a classified question into an executable SQL
// statement. Two strategies run in order: a generative one backed by a
// completion provider, then a deterministic heuristic templater. The
// heuristic path always runs when the generative one is missing or
// fails, so an unavailable provider never blocks an answer on its own.
package sqlgen

import (
	"context"

	"go.uber.org/zap"

	"github.com/meshquery-inc/meshquery-engine/pkg/llm"
	"github.com/meshquery-inc/meshquery-engine/pkg/models"
	"github.com/meshquery-inc/meshquery-engine/pkg/resolver"
)

// WikiLookup fetches wiki text for a table while building prompt
// context. Lookup failures are treated as "no documentation".
type WikiLookup func(ctx context.Context, table models.FullyQualifiedName) (string, error)

// Synthesizer is the strategy pipeline behind SQL generation.
type Synthesizer interface {
	// Synthesize returns a statement for the question, or nil when no
	// strategy could produce one (in practice: no table resolvable).
	Synthesize(ctx context.Context, question string, qIntent models.Intent, catalog []models.FullyQualifiedName, wiki WikiLookup) *models.SQLStatement
}

type synthesizer struct {
	generative *Generative // nil when no completion provider is configured
	heuristic  *Heuristic
	resolver   *resolver.Resolver
	wikiLimit  int
	logger     *zap.Logger
}

// Config bounds prompt context and heuristic templates.
type Config struct {
	MaxTokens        int
	Temperature      float64
	PromptTableLimit int
	PromptWikiLimit  int
	DisplayLimit     int
	SampleLimit      int
}

// NewSynthesizer builds the pipeline. client may be nil; the
// synthesizer then runs the heuristic strategy alone.
func NewSynthesizer(client llm.CompletionClient, tableResolver *resolver.Resolver, cfg Config, logger *zap.Logger) Synthesizer {
	s := &synthesizer{
		heuristic: NewHeuristic(cfg.DisplayLimit, cfg.SampleLimit),
		resolver:  tableResolver,
		wikiLimit: cfg.PromptWikiLimit,
		logger:    logger,
	}
	if client != nil {
		s.generative = NewGenerative(client, cfg.MaxTokens, cfg.Temperature, cfg.PromptTableLimit, logger)
	}
	return s
}

func (s *synthesizer) Synthesize(ctx context.Context, question string, qIntent models.Intent, catalog []models.FullyQualifiedName, wiki WikiLookup) *models.SQLStatement {
	if s.generative != nil {
		snippets := s.collectSnippets(ctx, question, catalog, wiki)
		stmt, err := s.generative.Generate(ctx, question, qIntent, catalog, snippets)
		if err != nil {
			s.logger.Warn("generative strategy failed, falling back to heuristic", zap.Error(err))
		} else if stmt != nil && stmt.SQL != "" {
			if stmt.Table == "" {
				stmt.Table = s.resolver.Resolve(question, catalog)
			}
			return stmt
		}
	}

	table := s.resolver.Resolve(question, catalog)
	return s.heuristic.Generate(question, qIntent, table)
}

// collectSnippets adapts the context-aware WikiLookup into the
// synchronous form SelectSnippets wants, swallowing lookup errors.
func (s *synthesizer) collectSnippets(ctx context.Context, question string, catalog []models.FullyQualifiedName, wiki WikiLookup) []WikiSnippet {
	if wiki == nil {
		return nil
	}
	return SelectSnippets(question, catalog, func(table models.FullyQualifiedName) string {
		text, err := wiki(ctx, table)
		if err != nil {
			s.logger.Debug("wiki lookup failed during prompt build",
				zap.String("table", table.String()), zap.Error(err))
			return ""
		}
		return text
	}, s.wikiLimit)
}

var _ Synthesizer = (*synthesizer)(nil)
