package cmd

import (
	"github.com/spf13/cobra"

	"github.com/formlens/formlens/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:     "mcp",
	Short:   "Start a Model Context Protocol server exposing comparison tools over stdio",
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
