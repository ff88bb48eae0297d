// Package parquet provides data structures and functions for exporting form
// comparison data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/formlens/formlens/schema"
)

// ComparisonRun represents a single persisted comparison run with metadata.
// This struct maps to the formlens_runs database table.
type ComparisonRun struct {
	// RunID is the unique identifier for this comparison run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the comparison began (unix seconds)
	StartTime int64 `parquet:"start_time,snappy"`

	// EndTime is when the comparison completed (nullable)
	EndTime *int64 `parquet:"end_time,optional,snappy"`

	// CurrentID and CurrentVersion identify the newer form snapshot
	CurrentID      string `parquet:"current_id,snappy"`
	CurrentVersion string `parquet:"current_version,snappy"`

	// ReferenceID and ReferenceVersion identify the older form snapshot
	ReferenceID      string `parquet:"reference_id,snappy"`
	ReferenceVersion string `parquet:"reference_version,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// QuestionDiffRow represents one question comparison row for export.
type QuestionDiffRow struct {
	Name           string  `parquet:"name,snappy"`
	CurrentType    *string `parquet:"current_type,optional,snappy"`
	ReferenceType  *string `parquet:"reference_type,optional,snappy"`
	CurrentLabel   *string `parquet:"current_label,optional,snappy"`
	ReferenceLabel *string `parquet:"reference_label,optional,snappy"`

	Order  float64 `parquet:"order,snappy"`
	Status string  `parquet:"status,snappy"`

	LabelTier     string   `parquet:"label_tier,snappy"`
	LabelDistance *float64 `parquet:"label_distance,optional,snappy"`

	TypeChanged         bool `parquet:"type_changed,snappy"`
	RelevantChanged     bool `parquet:"relevant_changed,snappy"`
	CalculationChanged  bool `parquet:"calculation_changed,snappy"`
	RequiredChanged     bool `parquet:"required_changed,snappy"`
	ChoiceFilterChanged bool `parquet:"choice_filter_changed,snappy"`
	GroupChanged        bool `parquet:"group_changed,snappy"`
}

// WriteComparisonRunsParquet writes a slice of ComparisonRun structs to a Parquet file.
func WriteComparisonRunsParquet(data []ComparisonRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the ComparisonRun struct tags
	writer := parquet.NewGenericWriter[ComparisonRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteQuestionDiffs writes the question rows of a comparison result to a
// Parquet file.
func WriteQuestionDiffs(outputPath string, result *schema.ComparisonResult) error {
	if result.Questions.Failed() {
		return fmt.Errorf("question rows unavailable: %s", result.Questions.Err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[QuestionDiffRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(ConvertQuestionDiffs(result.Questions.Rows)); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord to ComparisonRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []ComparisonRun {
	result := make([]ComparisonRun, len(records))
	for i, record := range records {
		result[i] = ComparisonRun{
			RunID:            record.RunID,
			StartTime:        record.StartTime,
			EndTime:          record.EndTime,
			CurrentID:        record.CurrentID,
			CurrentVersion:   record.CurrentVersion,
			ReferenceID:      record.ReferenceID,
			ReferenceVersion: record.ReferenceVersion,
			ConfigParams:     record.ConfigParams,
		}
	}
	return result
}

// ConvertQuestionDiffs converts schema.QuestionDiff to QuestionDiffRow for Parquet export.
func ConvertQuestionDiffs(rows []schema.QuestionDiff) []QuestionDiffRow {
	result := make([]QuestionDiffRow, len(rows))
	for i, r := range rows {
		result[i] = QuestionDiffRow{
			Name:                r.Name,
			CurrentType:         r.CurrentType,
			ReferenceType:       r.ReferenceType,
			CurrentLabel:        r.CurrentLabel,
			ReferenceLabel:      r.ReferenceLabel,
			Order:               r.Order,
			Status:              string(r.Status),
			LabelTier:           string(r.LabelTier),
			LabelDistance:       r.LabelDistance,
			TypeChanged:         r.TypeChanged,
			RelevantChanged:     r.RelevantChanged,
			CalculationChanged:  r.CalculationChanged,
			RequiredChanged:     r.RequiredChanged,
			ChoiceFilterChanged: r.ChoiceFilterChanged,
			GroupChanged:        r.GroupChanged,
		}
	}
	return result
}
