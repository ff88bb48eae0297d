package cmd

import (
	"github.com/spf13/cobra"

	"github.com/formlens/formlens/core"
)

var similarCmd = &cobra.Command{
	Use:     "similar [current] [reference]",
	Short:   "Find question pairs with suspiciously similar labels across two snapshots",
	Args:    cobra.MaximumNArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		checkSnapshotsAndExecute(core.ExecuteSimilarLabels)
	},
}
