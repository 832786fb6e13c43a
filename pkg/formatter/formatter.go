// Package formatter shapes tabular query results into the uniform
// response envelope, keyed on the intent that produced them. Empty
// result sets are a successful outcome with an explanatory message,
// never an error.
package formatter

import (
	"fmt"

	"github.com/meshquery-inc/meshquery-engine/pkg/models"
)

// Format builds the envelope for an executed statement. The statement
// carries the intent and any selection/aggregation metadata collected
// during synthesis.
func Format(stmt *models.SQLStatement, result *models.TabularResult) *models.ResultEnvelope {
	env := &models.ResultEnvelope{
		Success:  true,
		Intent:   stmt.Intent.Type,
		SQL:      stmt.SQL,
		RowCount: result.RowCount(),
		Rows:     result.Rows,
		Columns:  result.Columns,
	}

	switch stmt.Intent.Type {
	case models.IntentCountQuery:
		formatCount(env, result)
	case models.IntentAggregationQuery:
		env.Aggregation = stmt.Aggregation
		if env.Aggregation == "" && len(stmt.Intent.Aggregations) > 0 {
			env.Aggregation = stmt.Intent.Aggregations[0]
		}
		env.Message = rowCountMessage(result)
	case models.IntentFieldSelection:
		env.SelectedColumns = stmt.SelectedColumns
		if len(env.SelectedColumns) == 0 {
			env.SelectedColumns = result.Columns
		}
		env.Message = rowCountMessage(result)
	default:
		env.Message = rowCountMessage(result)
	}

	if result.Empty() && env.CountValue == nil {
		env.Message = "The query ran successfully but returned no rows."
	}
	return env
}

// formatCount extracts a single count value when the shape allows:
// exactly one row with a total_count column, or one row with a sole
// column. Anything else stays a generic pass-through.
func formatCount(env *models.ResultEnvelope, result *models.TabularResult) {
	if result.RowCount() != 1 {
		env.Message = rowCountMessage(result)
		return
	}
	row := result.Rows[0]

	if v, ok := row["total_count"]; ok {
		env.CountValue = v
		env.Message = fmt.Sprintf("Found %v matching records.", v)
		return
	}
	if len(row) == 1 {
		for _, v := range row {
			env.CountValue = v
			env.Message = fmt.Sprintf("Found %v matching records.", v)
		}
		return
	}
	env.Message = rowCountMessage(result)
}

// FormatTableList builds the structural envelope for table exploration.
func FormatTableList(catalog []models.FullyQualifiedName) *models.ResultEnvelope {
	names := make([]string, len(catalog))
	for i, t := range catalog {
		names[i] = t.String()
	}
	return &models.ResultEnvelope{
		Success:  true,
		Intent:   models.IntentTableExploration,
		Tables:   names,
		RowCount: len(names),
		Message:  fmt.Sprintf("Found %d tables.", len(names)),
	}
}

// FormatMetadata builds the structural envelope for a metadata request:
// the table's schema plus its parsed wiki fields when present.
func FormatMetadata(table models.FullyQualifiedName, schema []models.ColumnSchema, wiki *models.WikiFields) *models.ResultEnvelope {
	return &models.ResultEnvelope{
		Success:   true,
		Intent:    models.IntentMetadataRequest,
		TableName: table.String(),
		Schema:    schema,
		Wiki:      wiki,
		Message:   fmt.Sprintf("Metadata for %s.", table),
	}
}

func rowCountMessage(result *models.TabularResult) string {
	n := result.RowCount()
	if n == 1 {
		return "Query returned 1 row."
	}
	return fmt.Sprintf("Query returned %d rows.", n)
}
