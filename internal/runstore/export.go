package runstore

import (
	"errors"
	"fmt"

	"github.com/formlens/formlens/internal/contract"
	"github.com/formlens/formlens/internal/parquet"
)

// ExecuteRunsExport exports the persisted run history to a Parquet file.
func ExecuteRunsExport(store contract.RunStore, outputFile string, limit int) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run store status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)

	runs, err := store.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	if err := parquet.WriteComparisonRunsParquet(parquet.ConvertRunRecords(runs), outputFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(runs), outputFile)

	return nil
}
