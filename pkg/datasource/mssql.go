package datasource

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/microsoft/go-mssqldb"
	"go.uber.org/zap"

	"github.com/meshquery-inc/meshquery-engine/pkg/models"
)

// MSSQLWarehouse implements Warehouse over database/sql with the
// go-mssqldb driver. Extended properties (MS_Description) stand in for
// wiki text.
type MSSQLWarehouse struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMSSQLWarehouse opens and pings a SQL Server connection.
func NewMSSQLWarehouse(ctx context.Context, connString string, logger *zap.Logger) (*MSSQLWarehouse, error) {
	db, err := sql.Open("sqlserver", connString)
	if err != nil {
		return nil, fmt.Errorf("open connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &MSSQLWarehouse{db: db, logger: logger.Named("mssql")}, nil
}

// ListTables implements Catalog.
func (w *MSSQLWarehouse) ListTables(ctx context.Context) ([]models.FullyQualifiedName, error) {
	rows, err := w.db.QueryContext(ctx, `
		SELECT TABLE_SCHEMA, TABLE_NAME
		FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_TYPE IN ('BASE TABLE', 'VIEW')
		ORDER BY TABLE_SCHEMA, TABLE_NAME`)
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
func (w *MSSQLWarehouse) GetSchema(ctx context.Context, table models.FullyQualifiedName) ([]models.ColumnSchema, error) {
	rows, err := w.db.QueryContext(ctx, `
		SELECT COLUMN_NAME, DATA_TYPE
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_NAME = @p1
		ORDER BY ORDINAL_POSITION`, table.Table())
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

// Execute implements Executor. database/sql hands every value back as
// a driver type behind any; byte slices are converted to strings so
// text columns serialize readably.
func (w *MSSQLWarehouse) Execute(ctx context.Context, sqlText string) (*models.TabularResult, error) {
	rows, err := w.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	result := &models.TabularResult{Columns: columns, Rows: []map[string]any{}}
	values := make([]any, len(columns))
	scanTargets := make([]any, len(columns))
	for i := range values {
		scanTargets[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, fmt.Errorf("scan result row: %w", err)
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		result.Rows = append(result.Rows, row)
	}
	return result, rows.Err()
}

// GetWikiText implements WikiProvider using the MS_Description
// extended property. Missing property yields ("", nil).
func (w *MSSQLWarehouse) GetWikiText(ctx context.Context, table models.FullyQualifiedName) (string, error) {
	var description sql.NullString
	err := w.db.QueryRowContext(ctx, `
		SELECT CAST(ep.value AS NVARCHAR(MAX))
		FROM sys.extended_properties ep
		JOIN sys.tables t ON ep.major_id = t.object_id
		WHERE ep.name = 'MS_Description' AND ep.minor_id = 0 AND t.name = @p1`,
		table.Table()).Scan(&description)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("get description: %w", err)
	}
	if !description.Valid {
		return "", nil
	}
	return description.String, nil
}

// Close implements Warehouse.
func (w *MSSQLWarehouse) Close() error { return w.db.Close() }

var _ Warehouse = (*MSSQLWarehouse)(nil)
