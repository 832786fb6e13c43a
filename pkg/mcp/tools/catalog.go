package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/meshquery-inc/meshquery-engine/pkg/datasource"
	"github.com/meshquery-inc/meshquery-engine/pkg/models"
	"github.com/meshquery-inc/meshquery-engine/pkg/wiki"
)

type tableListResult struct {
	Tables []string `json:"tables"`
	Count  int      `json:"count"`
}

type tableWikiResult struct {
	Table string             `json:"table"`
	Wiki  *models.WikiFields `json:"wiki,omitempty"`
	Raw   string             `json:"raw,omitempty"`
}

// RegisterListTablesTool adds the list_tables tool.
func RegisterListTablesTool(s *server.MCPServer, catalog datasource.Catalog) {
	tool := mcp.NewTool(
		"list_tables",
		mcp.WithDescription("Lists the fully-qualified table names available for querying"),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tables, err := catalog.ListTables(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list tables: %v", err)), nil
		}

		names := make([]string, len(tables))
		for i, t := range tables {
			names[i] = t.String()
		}
		jsonResult, err := json.Marshal(tableListResult{Tables: names, Count: len(names)})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// RegisterTableWikiTool adds the get_table_wiki tool: raw wiki text
// plus its parsed fields for one table.
func RegisterTableWikiTool(s *server.MCPServer, provider datasource.WikiProvider) {
	tool := mcp.NewTool(
		"get_table_wiki",
		mcp.WithDescription("Returns the documentation wiki attached to a table, parsed into structured fields"),
		mcp.WithString(
			"table",
			mcp.Required(),
			mcp.Description("Fully-qualified table name, e.g. DataMesh.app.accounts"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := req.RequireString("table")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		table := models.FullyQualifiedName(name)
		text, err := provider.GetWikiText(ctx, table)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to fetch wiki: %v", err)), nil
		}

		result := tableWikiResult{Table: name, Raw: text}
		if text != "" {
			parsed := wiki.Parse(text)
			result.Wiki = &parsed
		}
		jsonResult, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}
