package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/formlens/formlens/internal/contract"
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)

	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Global flags shared by every subcommand.
	rootCmd.PersistentFlags().String("current", "", "Path to the current form snapshot")
	rootCmd.PersistentFlags().String("reference", "", "Path to the reference form snapshot")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format: text, json, csv, or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Write output to a file instead of stdout")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal places for distance values")
	rootCmd.PersistentFlags().String("color", "", "Colorize terminal output: yes or no")
	rootCmd.PersistentFlags().Bool("detail", false, "Include unchanged entries in tables")
	rootCmd.PersistentFlags().Int("width", 0, "Override terminal width for table truncation")
	rootCmd.PersistentFlags().String("stages", "", "Comma-separated comparison stages to run (e.g. questions,choices)")
	rootCmd.PersistentFlags().Int("run-limit", contract.DefaultRunLimit, "Maximum number of runs to list or export")
	rootCmd.PersistentFlags().String("store-backend", "", "Run store backend: sqlite, mysql, postgres, or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Connection string for the run store database")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default .formlens.yaml)")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	runsMigrateCmd.Flags().Int("target-version", -1, "Target schema version (-1 latest, 0 down)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding migrate flags", err)
	}
}
