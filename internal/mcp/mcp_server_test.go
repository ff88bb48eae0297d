package mcp_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlens/formlens/internal/contract"
	mcp_internal "github.com/formlens/formlens/internal/mcp"
	"github.com/formlens/formlens/schema"
)

func writeSnapshot(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{Output: schema.TextOut, Precision: 2}
	s := mcp_internal.NewMCPServer(baseCfg)

	ctx := context.Background()

	t.Run("compare_forms missing paths", func(t *testing.T) {
		tool := s.GetTool("compare_forms")
		require.NotNil(t, tool, "Tool compare_forms should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "compare_forms",
				Arguments: map[string]any{"current": ""},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "required")
	})

	t.Run("compare_forms invalid stages", func(t *testing.T) {
		tool := s.GetTool("compare_forms")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "compare_forms",
				Arguments: map[string]any{
					"current":   "a.yaml",
					"reference": "b.yaml",
					"stages":    "bogus_stage",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid stages")
	})

	t.Run("similar_labels missing reference", func(t *testing.T) {
		tool := s.GetTool("similar_labels")
		require.NotNil(t, tool, "Tool similar_labels should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "similar_labels",
				Arguments: map[string]any{"current": "a.yaml"},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "required")
	})
}

func TestMCPServerCompareForms(t *testing.T) {
	baseCfg := &contract.Config{Output: schema.JSONOut, Precision: 2}
	s := mcp_internal.NewMCPServer(baseCfg)

	current := writeSnapshot(t, "current.yaml", `
settings:
  form_id: demo
  version: "2"
survey:
  - type: text
    name: name
    label: What is your name?
  - type: integer
    name: age
    label: How old are you?
`)
	reference := writeSnapshot(t, "reference.yaml", `
settings:
  form_id: demo
  version: "1"
survey:
  - type: text
    name: name
    label: What is your name?
`)

	tool := s.GetTool("compare_forms")
	require.NotNil(t, tool)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "compare_forms",
			Arguments: map[string]any{
				"current":   current,
				"reference": reference,
			},
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := res.Content[0].(mcp.TextContent).Text
	assert.Contains(t, text, `"current_version": "2"`)
	assert.Contains(t, text, `"age"`)
	assert.Contains(t, text, `"added"`)
}
