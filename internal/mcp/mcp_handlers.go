package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/formlens/formlens/core"
	"github.com/formlens/formlens/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

func (h *toolHandler) handleCompareForms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.CurrentPath = request.GetString("current", "")
	cfg.ReferencePath = request.GetString("reference", "")
	if cfg.CurrentPath == "" || cfg.ReferencePath == "" {
		return mcp.NewToolResultError("both current and reference snapshot paths are required"), nil
	}
	if s := request.GetString("stages", ""); s != "" {
		stages, err := contract.ParseStages(s)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid stages: %v", err)), nil
		}
		cfg.Stages = stages
	}

	result, err := core.GetFormComparisonResult(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleSimilarLabels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.CurrentPath = request.GetString("current", "")
	cfg.ReferencePath = request.GetString("reference", "")
	if cfg.CurrentPath == "" || cfg.ReferencePath == "" {
		return mcp.NewToolResultError("both current and reference snapshot paths are required"), nil
	}

	result, err := core.GetSimilarLabelsResult(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("similar-label detection failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
