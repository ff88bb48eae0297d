// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/formlens/formlens/internal/contract"
)

// NewMCPServer initializes and configures the Formlens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Formlens Comparison Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	// --- 1. Tool: compare_forms ---
	s.AddTool(mcp.NewTool("compare_forms",
		mcp.WithDescription("Compare two form definition snapshots and report per-category differences (settings, columns, groups, questions, choice lists, choices)."),
		mcp.WithString("current", mcp.Description("Path to the current (newer) form snapshot file."), mcp.Required()),
		mcp.WithString("reference", mcp.Description("Path to the reference (older) form snapshot file."), mcp.Required()),
		mcp.WithString("stages", mcp.Description("Comma-separated stages to run (settings, columns, groups, lists, choices, questions). Defaults to all.")),
	), h.handleCompareForms)

	// --- 2. Tool: similar_labels ---
	s.AddTool(mcp.NewTool("similar_labels",
		mcp.WithDescription("Find question labels in the current form that closely match labels in the reference form."),
		mcp.WithString("current", mcp.Description("Path to the current (newer) form snapshot file."), mcp.Required()),
		mcp.WithString("reference", mcp.Description("Path to the reference (older) form snapshot file."), mcp.Required()),
	), h.handleSimilarLabels)

	return s
}

// StartMCPServer starts the Formlens MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
