package models

// IntentType is the classified purpose of a question. The set is closed;
// dispatch over it should be an exhaustive switch.
type IntentType string

const (
	IntentTableExploration IntentType = "table_exploration"
	IntentMetadataRequest  IntentType = "metadata_request"
	IntentAggregationQuery IntentType = "aggregation_query"
	IntentCountQuery       IntentType = "count_query"
	IntentFieldSelection   IntentType = "field_selection_query"
	IntentDataQuery        IntentType = "data_query"
	IntentGeneral          IntentType = "general"
)

// AggregationKind names a SQL aggregate extracted from a question.
type AggregationKind string

const (
	AggSum   AggregationKind = "sum"
	AggAvg   AggregationKind = "avg"
	AggMin   AggregationKind = "min"
	AggMax   AggregationKind = "max"
	AggCount AggregationKind = "count"
)

// Intent carries the classification for one question together with the
// attributes extracted for it. Created fresh per question, never persisted.
type Intent struct {
	Type IntentType `json:"type"`

	// Entities holds candidate table references found in the question
	// (dotted names, or names following "table"/"dataset"). May be empty.
	Entities []string `json:"entities,omitempty"`

	// Aggregations holds aggregate kinds mentioned in the question.
	// Populated only for aggregation and count intents.
	Aggregations []AggregationKind `json:"aggregations,omitempty"`

	// Filters holds extracted filter hints, e.g. "source" -> name.
	Filters map[string]string `json:"filters,omitempty"`
}
