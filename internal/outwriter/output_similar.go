package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/formlens/formlens/internal/contract"
	"github.com/formlens/formlens/schema"
)

// PrintSimilarResults outputs the similar-labels report, dispatching based on
// the output format configured.
func PrintSimilarResults(result *schema.SimilarLabelsResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
		if err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForSimilar(w, result, fmtFloat)
		}, "Wrote CSV")
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSimilarTable(w, result, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
	return nil
}

// writeSimilarTable renders the cross-form label similarity pairs.
func writeSimilarTable(w io.Writer, result *schema.SimilarLabelsResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if len(result.Pairs) == 0 {
		_, err := fmt.Fprintln(w, "no similar labels found")
		return err
	}

	maxLabel := getMaxTableLabelWidth(cfg)
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Current", "Current label", "Reference", "Reference label", "Similarity"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, p := range result.Pairs {
		data = append(data, []string{
			p.CurrentName,
			contract.TruncateCell(p.CurrentLabel, maxLabel),
			p.ReferenceName,
			contract.TruncateCell(p.ReferenceLabel, maxLabel),
			fmtFloat(p.Similarity),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Found %d similar label pairs in %v\n", len(result.Pairs), duration)
	return err
}

// writeCSVResultsForSimilar writes the similarity pairs to a CSV stream.
func writeCSVResultsForSimilar(w io.Writer, result *schema.SimilarLabelsResult, fmtFloat func(float64) string) error {
	header := []string{
		"current_name",
		"current_label",
		"current_order",
		"reference_name",
		"reference_label",
		"reference_order",
		"similarity",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, p := range result.Pairs {
			row := []string{
				p.CurrentName,
				p.CurrentLabel,
				strconv.Itoa(p.CurrentOrder),
				p.ReferenceName,
				p.ReferenceLabel,
				strconv.Itoa(p.ReferenceOrder),
				fmtFloat(p.Similarity),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
