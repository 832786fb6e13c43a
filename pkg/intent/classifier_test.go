package intent

import (
	"testing"

	"github.com/meshquery-inc/meshquery-engine/pkg/models"
)

func TestClassify_Precedence(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     models.IntentType
	}{
		// Exploration beats the generic display patterns.
		{"show all tables", "show me all tables", models.IntentTableExploration},
		{"list tables", "list tables", models.IntentTableExploration},
		{"display datasets", "display all datasets", models.IntentTableExploration},
		{"what tables available", "what tables are available", models.IntentTableExploration},

		{"describe table", "describe the accounts table", models.IntentMetadataRequest},
		{"columns of", "what are the columns of accounts", models.IntentMetadataRequest},
		{"schema keyword", "show me the schema for orders", models.IntentMetadataRequest},

		{"sum of", "what is the sum of revenue", models.IntentAggregationQuery},
		{"average", "average order value", models.IntentAggregationQuery},
		{"maximum", "highest account balance", models.IntentAggregationQuery},

		{"how many", "how many accounts are there", models.IntentCountQuery},
		{"count", "count the orders", models.IntentCountQuery},
		{"number of", "number of customers", models.IntentCountQuery},

		{"just the", "just the names from accounts", models.IntentFieldSelection},

		{"show me rows", "show me accounts", models.IntentDataQuery},
		{"top n", "top 5 customers by region", models.IntentDataQuery},
		{"where clause", "orders where total > 100", models.IntentDataQuery},

		{"greeting", "hello", models.IntentGeneral},
		{"unrelated", "what is the weather like", models.IntentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.question)
			if got.Type != tt.want {
				t.Errorf("Classify(%q).Type = %q, want %q", tt.question, got.Type, tt.want)
			}
		})
	}
}

func TestClassify_CountExtractsAggregation(t *testing.T) {
	got := Classify("how many accounts are there")
	if len(got.Aggregations) == 0 || got.Aggregations[0] != models.AggCount {
		t.Errorf("expected count aggregation, got %v", got.Aggregations)
	}
}

func TestClassify_AggregationKinds(t *testing.T) {
	got := Classify("what is the sum of revenue")
	found := false
	for _, k := range got.Aggregations {
		if k == models.AggSum {
			found = true
		}
	}
	if !found {
		t.Errorf("expected sum aggregation, got %v", got.Aggregations)
	}
}

func TestClassify_EntityExtraction(t *testing.T) {
	got := Classify("describe the table accounts in DataMesh.app.accounts")
	if got.Type != models.IntentMetadataRequest {
		t.Fatalf("intent = %q, want metadata_request", got.Type)
	}

	wantDotted, wantNamed := false, false
	for _, e := range got.Entities {
		if e == "DataMesh.app.accounts" {
			wantDotted = true
		}
		if e == "accounts" {
			wantNamed = true
		}
	}
	if !wantDotted || !wantNamed {
		t.Errorf("entities = %v, want dotted name and named table", got.Entities)
	}
}

func TestClassify_NoEntitiesIsValid(t *testing.T) {
	got := Classify("describe the table")
	if got.Type != models.IntentMetadataRequest {
		t.Fatalf("intent = %q, want metadata_request", got.Type)
	}
	// Absence of entities must not be an error condition.
	if got.Entities == nil {
		return
	}
	if len(got.Entities) != 0 {
		t.Errorf("expected no entities, got %v", got.Entities)
	}
}

func TestClassify_SourceFilter(t *testing.T) {
	got := Classify("show me all tables from source: datamesh")
	if got.Type != models.IntentTableExploration {
		t.Fatalf("intent = %q, want table_exploration", got.Type)
	}
	if got.Filters["source"] != "datamesh" {
		t.Errorf("source filter = %q, want %q", got.Filters["source"], "datamesh")
	}
}
