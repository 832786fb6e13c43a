package datasource

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/meshquery-inc/meshquery-engine/pkg/models"
)

// PostgresWarehouse implements Warehouse over a pgx connection pool.
// Catalog entries are (schema, table) pairs from information_schema;
// table comments stand in for wiki text.
type PostgresWarehouse struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresWarehouse connects a pool and verifies it with a ping.
func NewPostgresWarehouse(ctx context.Context, connString string, logger *zap.Logger) (*PostgresWarehouse, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &PostgresWarehouse{pool: pool, logger: logger.Named("postgres")}, nil
}

// ListTables implements Catalog, excluding system schemas.
func (w *PostgresWarehouse) ListTables(ctx context.Context) ([]models.FullyQualifiedName, error) {
	rows, err := w.pool.Query(ctx, `
		SELECT table_schema, table_name
		FROM information_schema.tables
		WHERE table_type IN ('BASE TABLE', 'VIEW')
		  AND table_schema NOT IN ('pg_catalog', 'information_schema')
		ORDER BY table_schema, table_name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []models.FullyQualifiedName
	for rows.Next() {
		var schema, name string
		if err := rows.Scan(&schema, &name); err != nil {
			return nil, fmt.Errorf("scan table row: %w", err)
		}
		tables = append(tables, NormalizeEntry(schema, name))
	}
	return tables, rows.Err()
}

// GetSchema implements SchemaProvider.
func (w *PostgresWarehouse) GetSchema(ctx context.Context, table models.FullyQualifiedName) ([]models.ColumnSchema, error) {
	rows, err := w.pool.Query(ctx, `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_name = $1
		ORDER BY ordinal_position`, table.Table())
	if err != nil {
		return nil, fmt.Errorf("get schema: %w", err)
	}
	defer rows.Close()

	var columns []models.ColumnSchema
	for rows.Next() {
		var col models.ColumnSchema
		if err := rows.Scan(&col.ColumnName, &col.DataType); err != nil {
			return nil, fmt.Errorf("scan column row: %w", err)
		}
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

// Execute implements Executor. Column order follows the statement's
// select list; row values come back as driver-native Go types.
func (w *PostgresWarehouse) Execute(ctx context.Context, sqlText string) (*models.TabularResult, error) {
	rows, err := w.pool.Query(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, fd := range fields {
		columns[i] = string(fd.Name)
	}

	result := &models.TabularResult{Columns: columns, Rows: []map[string]any{}}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row values: %w", err)
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		result.Rows = append(result.Rows, row)
	}
	return result, rows.Err()
}

// GetWikiText implements WikiProvider using the table's comment.
// Tables without a comment yield ("", nil).
func (w *PostgresWarehouse) GetWikiText(ctx context.Context, table models.FullyQualifiedName) (string, error) {
	var comment *string
	err := w.pool.QueryRow(ctx, `
		SELECT obj_description(c.oid)
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE c.relname = $1 AND n.nspname = ANY($2)`,
		table.Table(), []string{table.Schema(), "public"}).Scan(&comment)
	if err != nil {
		// No matching relation means no wiki, not a failure.
		return "", nil
	}
	if comment == nil {
		return "", nil
	}
	return *comment, nil
}

// Close implements Warehouse.
func (w *PostgresWarehouse) Close() error {
	w.pool.Close()
	return nil
}

var _ Warehouse = (*PostgresWarehouse)(nil)
