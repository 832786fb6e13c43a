// Package engine wires the interpretation pipeline together and exposes
// the three caller-facing operations: Process, Explain and Suggest.
// Every operation converts internal failures into a ResultEnvelope at
// its boundary; no error crosses into caller code.
package engine

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meshquery-inc/meshquery-engine/pkg/apperrors"
	"github.com/meshquery-inc/meshquery-engine/pkg/config"
	"github.com/meshquery-inc/meshquery-engine/pkg/datasource"
	"github.com/meshquery-inc/meshquery-engine/pkg/formatter"
	"github.com/meshquery-inc/meshquery-engine/pkg/intent"
	"github.com/meshquery-inc/meshquery-engine/pkg/llm"
	"github.com/meshquery-inc/meshquery-engine/pkg/logging"
	"github.com/meshquery-inc/meshquery-engine/pkg/models"
	"github.com/meshquery-inc/meshquery-engine/pkg/resolver"
	"github.com/meshquery-inc/meshquery-engine/pkg/sqlgen"
	"github.com/meshquery-inc/meshquery-engine/pkg/wiki"
)

// Engine is the question-interpretation service.
type Engine interface {
	// Process interprets one question end to end and returns the
	// uniform envelope, failed or successful.
	Process(ctx context.Context, question string) *models.ResultEnvelope
	// Explain describes a SQL statement in natural language, with a
	// static fallback when no completion provider is configured.
	Explain(ctx context.Context, sqlText string) *models.ResultEnvelope
	// Suggest returns prefix-matched completions over catalog names and
	// fixed SQL skeletons. Never fails; worst case is an empty slice.
	Suggest(ctx context.Context, partial string) []string
}

type engine struct {
	warehouse datasource.Warehouse
	client    llm.CompletionClient // nil when no provider is configured
	synth     sqlgen.Synthesizer
	resolver  *resolver.Resolver
	query     config.QueryConfig
	logger    *zap.Logger
}

// New assembles the engine from its collaborators. client may be nil.
func New(warehouse datasource.Warehouse, client llm.CompletionClient, cfg *config.Config, logger *zap.Logger) Engine {
	tableResolver := resolver.New(cfg.Query.PreferredSource)
	synth := sqlgen.NewSynthesizer(client, tableResolver, sqlgen.Config{
		MaxTokens:        cfg.AI.MaxTokens,
		Temperature:      cfg.AI.Temperature,
		PromptTableLimit: cfg.Query.PromptTableLimit,
		PromptWikiLimit:  cfg.Query.PromptWikiLimit,
		DisplayLimit:     cfg.Query.DisplayLimit,
		SampleLimit:      cfg.Query.SampleLimit,
	}, logger.Named("sqlgen"))

	return &engine{
		warehouse: warehouse,
		client:    client,
		synth:     synth,
		resolver:  tableResolver,
		query:     cfg.Query,
		logger:    logger,
	}
}

func (e *engine) Process(ctx context.Context, question string) *models.ResultEnvelope {
	requestID := uuid.NewString()
	question = strings.TrimSpace(question)

	log := e.logger.With(zap.String("request_id", requestID))
	log.Info("processing question", zap.String("question", logging.TruncateSQL(question)))

	if question == "" {
		return failure(requestID, models.IntentGeneral, apperrors.ErrEmptyInput)
	}

	qIntent := intent.Classify(question)
	log.Debug("classified", zap.String("intent", string(qIntent.Type)))

	var env *models.ResultEnvelope
	switch qIntent.Type {
	case models.IntentTableExploration:
		env = e.exploreTables(ctx, requestID, qIntent)
	case models.IntentMetadataRequest:
		env = e.describeTable(ctx, requestID, question, qIntent)
	case models.IntentGeneral:
		env = e.generalGuidance(qIntent)
	default:
		env = e.runQuery(ctx, requestID, question, qIntent)
	}

	env.RequestID = requestID
	return env
}

// exploreTables lists catalog entries, honoring a source filter when
// the question named one.
func (e *engine) exploreTables(ctx context.Context, requestID string, qIntent models.Intent) *models.ResultEnvelope {
	catalog, err := e.warehouse.ListTables(ctx)
	if err != nil {
		e.logger.Error("catalog listing failed", zap.Error(err))
		return failure(requestID, qIntent.Type, apperrors.ErrExecutionFailed)
	}

	if source := qIntent.Filters["source"]; source != "" {
		var filtered []models.FullyQualifiedName
		for _, t := range catalog {
			if strings.Contains(strings.ToLower(t.String()), source) {
				filtered = append(filtered, t)
			}
		}
		catalog = filtered
	}
	return formatter.FormatTableList(catalog)
}

// describeTable resolves the subject table and returns its schema and
// parsed wiki. A missing wiki degrades to nil, never an error.
func (e *engine) describeTable(ctx context.Context, requestID string, question string, qIntent models.Intent) *models.ResultEnvelope {
	catalog, err := e.warehouse.ListTables(ctx)
	if err != nil {
		e.logger.Error("catalog listing failed", zap.Error(err))
		return failure(requestID, qIntent.Type, apperrors.ErrExecutionFailed)
	}

	table := e.resolver.Resolve(question, catalog)
	if table == "" {
		return failure(requestID, qIntent.Type, apperrors.ErrNoTableResolved)
	}

	schema, err := e.warehouse.GetSchema(ctx, table)
	if err != nil {
		e.logger.Error("schema retrieval failed", zap.String("table", table.String()), zap.Error(err))
		return failure(requestID, qIntent.Type, apperrors.ErrExecutionFailed)
	}

	var wikiFields *models.WikiFields
	if text, err := e.warehouse.GetWikiText(ctx, table); err != nil {
		e.logger.Debug("wiki retrieval failed", zap.String("table", table.String()), zap.Error(err))
	} else if text != "" {
		parsed := wiki.Parse(text)
		wikiFields = &parsed
	}

	return formatter.FormatMetadata(table, schema, wikiFields)
}

// runQuery is the synthesis-and-execution path shared by count,
// aggregation, field-selection and data queries.
func (e *engine) runQuery(ctx context.Context, requestID string, question string, qIntent models.Intent) *models.ResultEnvelope {
	catalog, err := e.warehouse.ListTables(ctx)
	if err != nil {
		e.logger.Error("catalog listing failed", zap.Error(err))
		return failure(requestID, qIntent.Type, apperrors.ErrExecutionFailed)
	}
	if len(catalog) == 0 {
		return failure(requestID, qIntent.Type, apperrors.ErrNoTableResolved)
	}

	stmt := e.synth.Synthesize(ctx, question, qIntent, catalog, e.warehouse.GetWikiText)
	if stmt == nil || stmt.SQL == "" {
		return failure(requestID, qIntent.Type, apperrors.ErrSQLGenerationFailed)
	}

	e.logger.Info("executing",
		zap.String("sql", logging.TruncateSQL(stmt.SQL)),
		zap.Bool("generated", stmt.Generated))

	result, err := e.warehouse.Execute(ctx, stmt.SQL)
	if err != nil {
		e.logger.Error("execution failed", zap.Error(err))
		env := failure(requestID, qIntent.Type, apperrors.ErrExecutionFailed)
		env.SQL = stmt.SQL
		return env
	}

	return formatter.Format(stmt, result)
}

// generalGuidance answers questions the classifier could not place.
func (e *engine) generalGuidance(qIntent models.Intent) *models.ResultEnvelope {
	return &models.ResultEnvelope{
		Success: true,
		Intent:  qIntent.Type,
		Message: "I can answer questions about your data. Try asking things like " +
			`"show me all tables", "how many accounts are there", or "describe the accounts table".`,
	}
}

// failure maps a sentinel to its envelope: error code, user-facing
// message and a next-step suggestion instead of raw internals.
func failure(requestID string, intentType models.IntentType, err error) *models.ResultEnvelope {
	env := &models.ResultEnvelope{
		RequestID: requestID,
		Success:   false,
		Intent:    intentType,
		Error:     err.Error(),
	}

	switch {
	case errors.Is(err, apperrors.ErrEmptyInput):
		env.ErrorCode = "EmptyInput"
		env.Message = "Please provide a question."
		env.Suggestion = `Try asking something like "show me all tables".`
	case errors.Is(err, apperrors.ErrNoTableResolved):
		env.ErrorCode = "NoTableResolved"
		env.Message = "I could not find a table matching your question."
		env.Suggestion = "Try listing tables first to see what is available."
	case errors.Is(err, apperrors.ErrSQLGenerationFailed):
		env.ErrorCode = "SqlGenerationFailed"
		env.Message = "I could not generate a query for that question."
		env.Suggestion = "Try rephrasing the question or naming a table explicitly."
	case errors.Is(err, apperrors.ErrUnsafeSQL):
		env.ErrorCode = "UnsafeSql"
		env.Message = "The generated query did not pass the safety check."
		env.Suggestion = "Try rephrasing the question."
	default:
		env.ErrorCode = "ExecutionError"
		env.Message = "The data source reported an error while answering your question."
		env.Suggestion = "Try again, or try a simpler question."
	}
	return env
}

var _ Engine = (*engine)(nil)
