// Package core has the reconciliation and classification engine that turns
// two form snapshots into a classified, field-level difference report.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/formlens/formlens/internal/contract"
	"github.com/formlens/formlens/internal/ingest"
	"github.com/formlens/formlens/internal/outwriter"
	"github.com/formlens/formlens/internal/textnorm"
	"github.com/formlens/formlens/schema"
)

// ExecutorFunc defines the function signature for executing the different
// comparison modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, store contract.RunStore) error

// loadPair reads and validates the two snapshots named by the config.
func loadPair(cfg *contract.Config) (cur, ref *schema.FormModel, err error) {
	cur, err = ingest.LoadFormFile(cfg.CurrentPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load current form %q: %w", cfg.CurrentPath, err)
	}
	ref, err = ingest.LoadFormFile(cfg.ReferencePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load reference form %q: %w", cfg.ReferencePath, err)
	}
	return cur, ref, nil
}

func optionsFromConfig(cfg *contract.Config) Options {
	normalizer := textnorm.NewNormalizer(textnorm.DefaultStopWords())
	return Options{
		Stages:         cfg.StageMap(),
		NormalizeLabel: normalizer.Normalize,
	}
}

// GetFormComparisonResult loads both snapshots and runs the full
// comparison. This is the programmatic entry point used by the MCP server.
func GetFormComparisonResult(_ context.Context, cfg *contract.Config) (*schema.ComparisonResult, error) {
	cur, ref, err := loadPair(cfg)
	if err != nil {
		return nil, err
	}
	return CompareForms(cur, ref, optionsFromConfig(cfg)), nil
}

// GetSimilarLabelsResult loads both snapshots and runs similar-label
// detection. This is the programmatic entry point used by the MCP server.
func GetSimilarLabelsResult(_ context.Context, cfg *contract.Config) (*schema.SimilarLabelsResult, error) {
	cur, ref, err := loadPair(cfg)
	if err != nil {
		return nil, err
	}
	return SimilarLabels(cur, ref, optionsFromConfig(cfg)), nil
}

// ExecuteFormCompare runs the comparison between the current and reference
// snapshots, records the run in the history store, and writes the report.
// It serves as the main entry point for the 'compare' command.
func ExecuteFormCompare(_ context.Context, cfg *contract.Config, store contract.RunStore) error {
	start := time.Now()

	cur, ref, err := loadPair(cfg)
	if err != nil {
		return err
	}

	var runID int64
	if store != nil {
		params := map[string]any{
			"current":   cfg.CurrentPath,
			"reference": cfg.ReferencePath,
			"output":    string(cfg.Output),
		}
		runID, err = store.BeginRun(start, cur, ref, params)
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
		}
	}

	result := CompareForms(cur, ref, optionsFromConfig(cfg))

	if store != nil && runID > 0 {
		if err := store.EndRun(runID, time.Now(), result.Summary); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	duration := time.Since(start)
	return outwriter.PrintComparisonResults(result, cfg, duration)
}

// ExecuteSimilarLabels runs the standalone similar-label detection between
// the two snapshots and writes the report. It serves as the main entry
// point for the 'similar' command.
func ExecuteSimilarLabels(_ context.Context, cfg *contract.Config, _ contract.RunStore) error {
	start := time.Now()

	cur, ref, err := loadPair(cfg)
	if err != nil {
		return err
	}

	result := SimilarLabels(cur, ref, optionsFromConfig(cfg))
	duration := time.Since(start)
	return outwriter.PrintSimilarResults(result, cfg, duration)
}
