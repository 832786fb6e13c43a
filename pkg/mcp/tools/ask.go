// Package tools registers the engine's MCP tools: question answering,
// SQL explanation, catalog browsing and table documentation.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/meshquery-inc/meshquery-engine/pkg/engine"
)

// RegisterAskTool adds the ask_question tool. The full result envelope
// is returned as JSON; interpretation failures arrive as success=false
// envelopes, not tool errors.
func RegisterAskTool(s *server.MCPServer, eng engine.Engine) {
	tool := mcp.NewTool(
		"ask_question",
		mcp.WithDescription("Answers a natural-language question about the data by generating and executing SQL"),
		mcp.WithString(
			"question",
			mcp.Required(),
			mcp.Description("The question to answer, e.g. 'how many accounts are there'"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		question, err := req.RequireString("question")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		env := eng.Process(ctx, question)
		jsonResult, err := json.Marshal(env)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// RegisterExplainTool adds the explain_sql tool.
func RegisterExplainTool(s *server.MCPServer, eng engine.Engine) {
	tool := mcp.NewTool(
		"explain_sql",
		mcp.WithDescription("Explains what a SQL statement does in plain language"),
		mcp.WithString(
			"sql",
			mcp.Required(),
			mcp.Description("The SQL statement to explain"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sqlText, err := req.RequireString("sql")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		env := eng.Explain(ctx, sqlText)
		if !env.Success {
			return mcp.NewToolResultError(env.Message), nil
		}
		return mcp.NewToolResultText(env.Message), nil
	})
}
