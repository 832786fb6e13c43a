package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meshquery-inc/meshquery-engine/pkg/config"
	"github.com/meshquery-inc/meshquery-engine/pkg/datasource"
	"github.com/meshquery-inc/meshquery-engine/pkg/llm"
	"github.com/meshquery-inc/meshquery-engine/pkg/models"
)

func testEngineConfig() *config.Config {
	return &config.Config{
		AI: config.AIConfig{MaxTokens: 500, Temperature: 0.1},
		Query: config.QueryConfig{
			PreferredSource:  "DataMesh",
			DisplayLimit:     100,
			SampleLimit:      10,
			PromptTableLimit: 10,
			PromptWikiLimit:  3,
			SuggestLimit:     10,
		},
	}
}

func testWarehouse() *datasource.MockWarehouse {
	return &datasource.MockWarehouse{
		ListTablesFunc: func(ctx context.Context) ([]models.FullyQualifiedName, error) {
			return []models.FullyQualifiedName{
				"DataMesh.app.accounts",
				"DataMesh.app.orders",
			}, nil
		},
	}
}

func newTestEngine(wh *datasource.MockWarehouse, client llm.CompletionClient) Engine {
	return New(wh, client, testEngineConfig(), zap.NewNop())
}

func TestProcess_EmptyInput(t *testing.T) {
	eng := newTestEngine(testWarehouse(), nil)

	env := eng.Process(context.Background(), "   ")
	assert.False(t, env.Success)
	assert.Equal(t, "EmptyInput", env.ErrorCode)
	assert.NotEmpty(t, env.Suggestion)
	assert.NotEmpty(t, env.RequestID)
}

func TestProcess_TableExploration(t *testing.T) {
	eng := newTestEngine(testWarehouse(), nil)

	env := eng.Process(context.Background(), "show me all tables")
	require.True(t, env.Success)
	assert.Equal(t, models.IntentTableExploration, env.Intent)
	assert.Equal(t, []string{"DataMesh.app.accounts", "DataMesh.app.orders"}, env.Tables)
}

func TestProcess_CountQueryEndToEnd(t *testing.T) {
	wh := testWarehouse()
	wh.ExecuteFunc = func(ctx context.Context, sqlText string) (*models.TabularResult, error) {
		return &models.TabularResult{
			Columns: []string{"total_count"},
			Rows:    []map[string]any{{"total_count": int64(42)}},
		}, nil
	}
	eng := newTestEngine(wh, nil)

	env := eng.Process(context.Background(), "how many accounts are there")
	require.True(t, env.Success)
	assert.Equal(t, models.IntentCountQuery, env.Intent)
	assert.Equal(t, int64(42), env.CountValue)

	require.Len(t, wh.ExecutedSQL, 1)
	assert.Equal(t, "SELECT COUNT(*) as total_count FROM DataMesh.app.accounts", wh.ExecutedSQL[0])
}

func TestProcess_MetadataRequest(t *testing.T) {
	wh := testWarehouse()
	wh.GetSchemaFunc = func(ctx context.Context, table models.FullyQualifiedName) ([]models.ColumnSchema, error) {
		return []models.ColumnSchema{{ColumnName: "id", DataType: "integer"}}, nil
	}
	wh.GetWikiTextFunc = func(ctx context.Context, table models.FullyQualifiedName) (string, error) {
		return "# Accounts Table\n## Business Purpose\nTracks customer accounts.\n", nil
	}
	eng := newTestEngine(wh, nil)

	env := eng.Process(context.Background(), "describe the accounts table")
	require.True(t, env.Success)
	assert.Equal(t, models.IntentMetadataRequest, env.Intent)
	assert.Equal(t, "DataMesh.app.accounts", env.TableName)
	require.Len(t, env.Schema, 1)
	require.NotNil(t, env.Wiki)
	assert.Equal(t, "Accounts Table", env.Wiki.Description)
	assert.Equal(t, "Tracks customer accounts.", env.Wiki.BusinessPurpose)
}

func TestProcess_MetadataRequestWithoutWiki(t *testing.T) {
	wh := testWarehouse()
	wh.GetSchemaFunc = func(ctx context.Context, table models.FullyQualifiedName) ([]models.ColumnSchema, error) {
		return []models.ColumnSchema{{ColumnName: "id", DataType: "integer"}}, nil
	}
	eng := newTestEngine(wh, nil)

	env := eng.Process(context.Background(), "describe the accounts table")
	require.True(t, env.Success)
	assert.Nil(t, env.Wiki)
}

func TestProcess_EmptyCatalog(t *testing.T) {
	wh := &datasource.MockWarehouse{}
	eng := newTestEngine(wh, nil)

	env := eng.Process(context.Background(), "how many accounts are there")
	assert.False(t, env.Success)
	assert.Equal(t, "NoTableResolved", env.ErrorCode)
	assert.NotEmpty(t, env.Suggestion)
}

func TestProcess_ExecutionFailure(t *testing.T) {
	wh := testWarehouse()
	wh.ExecuteFunc = func(ctx context.Context, sqlText string) (*models.TabularResult, error) {
		return nil, errors.New("connection reset")
	}
	eng := newTestEngine(wh, nil)

	env := eng.Process(context.Background(), "how many accounts are there")
	assert.False(t, env.Success)
	assert.Equal(t, "ExecutionError", env.ErrorCode)
	// The attempted SQL is still surfaced for debugging.
	assert.NotEmpty(t, env.SQL)
}

func TestProcess_GeneralGuidance(t *testing.T) {
	eng := newTestEngine(testWarehouse(), nil)

	env := eng.Process(context.Background(), "hello")
	require.True(t, env.Success)
	assert.Equal(t, models.IntentGeneral, env.Intent)
	assert.NotEmpty(t, env.Message)
	assert.Empty(t, env.SQL)
}

func TestProcess_ProviderFailureStillAnswers(t *testing.T) {
	wh := testWarehouse()
	wh.ExecuteFunc = func(ctx context.Context, sqlText string) (*models.TabularResult, error) {
		return &models.TabularResult{
			Columns: []string{"total_count"},
			Rows:    []map[string]any{{"total_count": 3}},
		}, nil
	}
	client := llm.NewMockClient()
	client.CompleteFunc = func(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
		return "", errors.New("quota exceeded")
	}
	eng := newTestEngine(wh, client)

	env := eng.Process(context.Background(), "how many accounts are there")
	require.True(t, env.Success)
	assert.Equal(t, 3, env.CountValue)
}

func TestExplain_StaticFallback(t *testing.T) {
	eng := newTestEngine(testWarehouse(), nil)

	env := eng.Explain(context.Background(), "SELECT * FROM t")
	require.True(t, env.Success)
	assert.Equal(t, staticExplanation, env.Message)
	assert.Equal(t, "SELECT * FROM t", env.SQL)
}

func TestExplain_EmptySQL(t *testing.T) {
	eng := newTestEngine(testWarehouse(), nil)

	env := eng.Explain(context.Background(), "  ")
	assert.False(t, env.Success)
	assert.Equal(t, "EmptyInput", env.ErrorCode)
}

func TestExplain_UsesProvider(t *testing.T) {
	client := llm.NewMockClient()
	client.CompleteFunc = func(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
		return "This query counts the rows in the accounts table.", nil
	}
	eng := newTestEngine(testWarehouse(), client)

	env := eng.Explain(context.Background(), "SELECT COUNT(*) FROM accounts")
	require.True(t, env.Success)
	assert.Equal(t, "This query counts the rows in the accounts table.", env.Message)
}

func TestExplain_ProviderFailureFallsBack(t *testing.T) {
	client := llm.NewMockClient()
	client.CompleteFunc = func(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
		return "", errors.New("timeout")
	}
	eng := newTestEngine(testWarehouse(), client)

	env := eng.Explain(context.Background(), "SELECT 1")
	require.True(t, env.Success)
	assert.Equal(t, staticExplanation, env.Message)
}

func TestSuggest_PrefixMatchesCatalog(t *testing.T) {
	eng := newTestEngine(testWarehouse(), nil)

	got := eng.Suggest(context.Background(), "DataMesh.app.acc")
	require.NotEmpty(t, got)
	assert.Equal(t, "DataMesh.app.accounts", got[0])
}

func TestSuggest_MatchesBareTableName(t *testing.T) {
	eng := newTestEngine(testWarehouse(), nil)

	got := eng.Suggest(context.Background(), "acc")
	require.NotEmpty(t, got)
	assert.Equal(t, "DataMesh.app.accounts", got[0])
}

func TestSuggest_SkeletonsForEmptyInput(t *testing.T) {
	eng := newTestEngine(testWarehouse(), nil)

	got := eng.Suggest(context.Background(), "")
	require.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), 10)
}

func TestSuggest_SkeletonPrefix(t *testing.T) {
	eng := newTestEngine(testWarehouse(), nil)

	got := eng.Suggest(context.Background(), "SELECT COUNT")
	require.NotEmpty(t, got)
	assert.Equal(t, "SELECT COUNT(*) as total_count FROM <table>", got[0])
}

func TestSuggest_CatalogFailureDegrades(t *testing.T) {
	wh := &datasource.MockWarehouse{
		ListTablesFunc: func(ctx context.Context) ([]models.FullyQualifiedName, error) {
			return nil, errors.New("unreachable")
		},
	}
	eng := newTestEngine(wh, nil)

	got := eng.Suggest(context.Background(), "show")
	// Catalog is gone; skeleton matches still come back.
	require.NotEmpty(t, got)
	assert.Equal(t, "show me all tables", got[0])
}
