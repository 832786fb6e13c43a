package datasource

import (
	"context"

	"github.com/meshquery-inc/meshquery-engine/pkg/models"
)

// MockWarehouse is a configurable fake for testing engine behavior
// without a live backend. Set the function fields to control responses.
type MockWarehouse struct {
	ListTablesFunc  func(ctx context.Context) ([]models.FullyQualifiedName, error)
	GetSchemaFunc   func(ctx context.Context, table models.FullyQualifiedName) ([]models.ColumnSchema, error)
	ExecuteFunc     func(ctx context.Context, sqlText string) (*models.TabularResult, error)
	GetWikiTextFunc func(ctx context.Context, table models.FullyQualifiedName) (string, error)

	// Call tracking for verification.
	ExecutedSQL []string
}

// ListTables implements Catalog.
func (m *MockWarehouse) ListTables(ctx context.Context) ([]models.FullyQualifiedName, error) {
	if m.ListTablesFunc != nil {
		return m.ListTablesFunc(ctx)
	}
	return nil, nil
}

// GetSchema implements SchemaProvider.
func (m *MockWarehouse) GetSchema(ctx context.Context, table models.FullyQualifiedName) ([]models.ColumnSchema, error) {
	if m.GetSchemaFunc != nil {
		return m.GetSchemaFunc(ctx, table)
	}
	return nil, nil
}

// Execute implements Executor.
func (m *MockWarehouse) Execute(ctx context.Context, sqlText string) (*models.TabularResult, error) {
	m.ExecutedSQL = append(m.ExecutedSQL, sqlText)
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, sqlText)
	}
	return &models.TabularResult{}, nil
}

// GetWikiText implements WikiProvider.
func (m *MockWarehouse) GetWikiText(ctx context.Context, table models.FullyQualifiedName) (string, error) {
	if m.GetWikiTextFunc != nil {
		return m.GetWikiTextFunc(ctx, table)
	}
	return "", nil
}

// Close implements Warehouse.
func (m *MockWarehouse) Close() error { return nil }

var _ Warehouse = (*MockWarehouse)(nil)
