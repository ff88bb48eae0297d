package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/formlens/formlens/core"
	"github.com/formlens/formlens/internal/contract"
)

var compareCmd = &cobra.Command{
	Use:     "compare [current] [reference]",
	Short:   "Compare two form snapshots and report every change by category",
	Args:    cobra.MaximumNArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		checkSnapshotsAndExecute(core.ExecuteFormCompare)
	},
}

// checkSnapshotsAndExecute verifies both snapshot paths are set before
// handing off to the executor.
func checkSnapshotsAndExecute(executor core.ExecutorFunc) {
	if cfg.CurrentPath == "" || cfg.ReferencePath == "" {
		contract.LogFatal("Invalid arguments",
			fmt.Errorf("a current and a reference snapshot are required (positional args or --current/--reference)"))
	}
	if err := executor(rootCtx, cfg, runStore); err != nil {
		contract.LogFatal("Comparison failed", err)
	}
}
