package models

// TabularResult is the neutral shape query execution collaborators return.
type TabularResult struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// RowCount returns the number of rows in the result.
func (t *TabularResult) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the result carries no rows.
func (t *TabularResult) Empty() bool {
	return t.RowCount() == 0
}

// ResultEnvelope is the uniform response shape returned to every caller,
// regardless of entry point. Failures never surface as errors to caller
// code; they arrive as Success=false envelopes with a suggestion.
type ResultEnvelope struct {
	RequestID string     `json:"request_id,omitempty"`
	Success   bool       `json:"success"`
	Intent    IntentType `json:"intent,omitempty"`
	Message   string     `json:"message,omitempty"`

	SQL       string `json:"sql,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
	// Suggestion gives the user a next step when Success is false.
	Suggestion string `json:"suggestion,omitempty"`

	RowCount int              `json:"row_count"`
	Rows     []map[string]any `json:"rows,omitempty"`
	Columns  []string         `json:"columns,omitempty"`

	// CountValue is set for count queries that resolved to one number.
	CountValue any `json:"count_value,omitempty"`
	// Aggregation is echoed for aggregation queries.
	Aggregation AggregationKind `json:"aggregation,omitempty"`
	// SelectedColumns lists the columns a field-selection query picked.
	SelectedColumns []string `json:"selected_columns,omitempty"`

	// Tables is the structural listing for table exploration.
	Tables []string `json:"tables,omitempty"`
	// TableName and Schema describe the subject of a metadata request.
	TableName string          `json:"table_name,omitempty"`
	Schema    []ColumnSchema  `json:"schema,omitempty"`
	Wiki      *WikiFields     `json:"wiki,omitempty"`
}

// ColumnSchema is one column of a table schema as reported by the
// schema collaborator.
type ColumnSchema struct {
	ColumnName string `json:"column_name"`
	DataType   string `json:"data_type"`
}
