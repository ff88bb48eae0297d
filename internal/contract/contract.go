// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/formlens/formlens/schema"
)

// RunStore defines the interface for the comparison-run history store.
// This allows the persistence layer to be mocked for testing.
type RunStore interface {
	// BeginRun records the start of a comparison and returns its id.
	BeginRun(startTime time.Time, cur, ref *schema.FormModel, configParams map[string]any) (int64, error)

	// EndRun finalizes a run with its end time and per-category counts.
	EndRun(runID int64, endTime time.Time, summary []schema.SummaryRow) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]schema.RunRecord, error)

	// ListCategoryCounts returns the persisted counts for one run.
	ListCategoryCounts(runID int64) ([]schema.RunCategoryCount, error)

	// GetStatus describes the store for the status command.
	GetStatus() (schema.RunStoreStatus, error)

	// Clear drops all persisted runs.
	Clear() error

	// Close releases the underlying connection.
	Close() error
}
