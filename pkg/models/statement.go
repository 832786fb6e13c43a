package models

// SQLStatement is a generated statement plus the metadata the formatter
// needs later: the intent it answers and any selected columns or
// aggregation kind the synthesis step chose.
type SQLStatement struct {
	SQL             string          `json:"sql"`
	Intent          Intent          `json:"intent"`
	Table           FullyQualifiedName `json:"table,omitempty"`
	SelectedColumns []string        `json:"selected_columns,omitempty"`
	Aggregation     AggregationKind `json:"aggregation,omitempty"`

	// Generated reports whether the statement came from the completion
	// provider (true) or the heuristic templates (false).
	Generated bool `json:"generated"`
}
