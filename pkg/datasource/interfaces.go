// Package datasource defines the collaborator contracts the engine
// consumes - catalog listing, schema retrieval, SQL execution, and wiki
// text - and the adapters that implement them. Catalog entries are
// normalized into FullyQualifiedName here, at the boundary; no
// downstream code branches on how a backend represents a table.
package datasource

import (
	"context"

	"github.com/meshquery-inc/meshquery-engine/pkg/models"
)

// Catalog lists the tables available for querying, in the backend's
// order. Every call reflects the backend's current answer; the engine
// performs no caching.
type Catalog interface {
	ListTables(ctx context.Context) ([]models.FullyQualifiedName, error)
}

// SchemaProvider returns column name/type pairs for one table.
type SchemaProvider interface {
	GetSchema(ctx context.Context, table models.FullyQualifiedName) ([]models.ColumnSchema, error)
}

// Executor runs one SQL statement and returns a tabular result.
type Executor interface {
	Execute(ctx context.Context, sqlText string) (*models.TabularResult, error)
}

// WikiProvider returns the raw wiki markdown attached to a table.
// A table without wiki text yields ("", nil), not an error.
type WikiProvider interface {
	GetWikiText(ctx context.Context, table models.FullyQualifiedName) (string, error)
}

// Warehouse is the full collaborator surface the engine is wired with.
// Each implementation owns its connection and must be closed when done.
type Warehouse interface {
	Catalog
	SchemaProvider
	Executor
	WikiProvider
	Close() error
}

// NormalizeEntry converts however a backend names a table - a single
// dotted string, a (schema, table) pair, or a (source, schema, table)
// triple - into the canonical FullyQualifiedName.
func NormalizeEntry(segments ...string) models.FullyQualifiedName {
	return models.NewFQN(segments...)
}
