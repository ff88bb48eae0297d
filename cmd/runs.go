package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/formlens/formlens/internal/runstore"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect and manage the stored comparison run history",
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

var runsStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show run store health and table sizes",
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		status, err := runStore.GetStatus()
		if err != nil {
			return fmt.Errorf("failed to get run store status: %w", err)
		}
		runstore.PrintRunStoreStatus(status)
		return nil
	},
}

var runsClearCmd = &cobra.Command{
	Use:     "clear",
	Short:   "Delete all stored comparison runs",
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := runStore.Clear(); err != nil {
			return fmt.Errorf("failed to clear run store: %w", err)
		}
		fmt.Println("Run history cleared.")
		return nil
	},
}

var runsExportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Export stored runs to a Parquet file",
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runstore.ExecuteRunsExport(runStore, cfg.OutputFile, cfg.RunLimit)
	},
}

var runsMigrateCmd = &cobra.Command{
	Use:     "migrate",
	Short:   "Apply run store schema migrations",
	PreRunE: runsMigrateSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runstore.MigrateRuns(cfg.StoreBackend, cfg.StoreConnect, viper.GetInt("target-version"))
	},
}

// runsMigrateSetup validates config without opening the run store. Migration
// manages the database connection and tables itself.
func runsMigrateSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	validated, err := input.Validate()
	if err != nil {
		return err
	}
	*cfg = *validated
	return nil
}
