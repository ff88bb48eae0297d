// Package outwriter renders comparison results as tables, CSV, JSON, or
// parquet, honoring the configured output target.
package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/formlens/formlens/internal/contract"
	"github.com/formlens/formlens/schema"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, fmtOrder func(float64) string) {
	fmtFloat = func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
	// Orders are whole or half positions; one decimal is exact.
	fmtOrder = func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmtFloat, fmtOrder
}

// optCell renders an optional string cell. Absence and empty string render
// differently so the table stays faithful to the model.
func optCell(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

// optFloatCell renders an optional distance cell.
func optFloatCell(v *float64, fmtFloat func(float64) string) string {
	if v == nil {
		return "-"
	}
	return fmtFloat(*v)
}

// statusCell renders a status with or without color.
func statusCell(status schema.Status, useColors bool) string {
	if useColors {
		return contract.GetColorLabel(status)
	}
	return contract.GetPlainLabel(status)
}

// getMaxTableLabelWidth calculates the maximum width for label text in table
// output based on terminal width and table configuration.
func getMaxTableLabelWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed name, order, status, and indicator columns
	// with borders and padding. Labels split the remainder.
	baseWidth := 45

	available := (termWidth - baseWidth) / 2
	if available < 15 {
		// Minimum reasonable label width
		return 15
	}
	if available > 60 {
		// Maximum label width to prevent overly wide tables
		return 60
	}
	return available
}
