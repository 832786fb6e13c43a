package sqlgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshquery-inc/meshquery-engine/pkg/models"
)

func TestHeuristic_CountTemplate(t *testing.T) {
	h := NewHeuristic(100, 10)
	qIntent := models.Intent{Type: models.IntentCountQuery}

	stmt := h.Generate("how many accounts are there", qIntent, "DataMesh.app.accounts")
	require.NotNil(t, stmt)
	assert.Equal(t, "SELECT COUNT(*) as total_count FROM DataMesh.app.accounts", stmt.SQL)
	assert.Equal(t, models.AggCount, stmt.Aggregation)
	assert.False(t, stmt.Generated)
}

func TestHeuristic_TopNTemplate(t *testing.T) {
	h := NewHeuristic(100, 10)
	qIntent := models.Intent{Type: models.IntentDataQuery}

	stmt := h.Generate("top 5 orders", qIntent, "DataMesh.app.orders")
	require.NotNil(t, stmt)
	assert.Equal(t, "SELECT * FROM DataMesh.app.orders LIMIT 5", stmt.SQL)
}

func TestHeuristic_DisplayTemplate(t *testing.T) {
	h := NewHeuristic(100, 10)
	qIntent := models.Intent{Type: models.IntentDataQuery}

	stmt := h.Generate("show me the orders", qIntent, "DataMesh.app.orders")
	require.NotNil(t, stmt)
	assert.Equal(t, "SELECT * FROM DataMesh.app.orders LIMIT 100", stmt.SQL)
}

func TestHeuristic_GenericTemplate(t *testing.T) {
	h := NewHeuristic(100, 10)
	qIntent := models.Intent{Type: models.IntentDataQuery}

	stmt := h.Generate("orders with a big total", qIntent, "DataMesh.app.orders")
	require.NotNil(t, stmt)
	assert.Equal(t, "SELECT * FROM DataMesh.app.orders LIMIT 10", stmt.SQL)
}

func TestHeuristic_CountBeatsTopN(t *testing.T) {
	h := NewHeuristic(100, 10)
	qIntent := models.Intent{Type: models.IntentCountQuery}

	// Count is the most specific family and wins over the top-N cue.
	stmt := h.Generate("how many of the top 5 orders", qIntent, "DataMesh.app.orders")
	require.NotNil(t, stmt)
	assert.Equal(t, "SELECT COUNT(*) as total_count FROM DataMesh.app.orders", stmt.SQL)
}

func TestHeuristic_NoTable(t *testing.T) {
	h := NewHeuristic(100, 10)
	stmt := h.Generate("how many", models.Intent{Type: models.IntentCountQuery}, "")
	assert.Nil(t, stmt)
}

func TestExtractSQL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "SELECT 1", "SELECT 1"},
		{"sql fence", "```sql\nSELECT 1\n```", "SELECT 1"},
		{"bare fence", "```\nSELECT 1\n```", "SELECT 1"},
		{"surrounding whitespace", "  \nSELECT 1\n ", "SELECT 1"},
		{"multiline inside fence", "```sql\nSELECT a\nFROM t\n```", "SELECT a\nFROM t"},
		{"empty", "", ""},
		{"fence only", "```sql\n```", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSQL(tt.input))
		})
	}
}
