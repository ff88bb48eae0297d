package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/formlens/formlens/internal/contract"
	"github.com/formlens/formlens/internal/parquet"
	"github.com/formlens/formlens/schema"
)

// PrintComparisonResults outputs the comparison results, dispatching based on
// the output format configured.
func PrintComparisonResults(result *schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtOrder := createFormatters(cfg.Precision)

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
			return writeCSVResultsForComparison(w, result, fmtFloat, fmtOrder)
		}, "Wrote CSV")
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteQuestionDiffs(cfg.OutputFile, result); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote parquet to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable tables
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonTables(w, result, cfg, fmtFloat, fmtOrder, duration)
		}, "Wrote table")
	}
	return nil
}

// writeComparisonTables renders one table per category plus the overview
// summary and a completion footer.
func writeComparisonTables(w io.Writer, result *schema.ComparisonResult, cfg *contract.Config, fmtFloat, fmtOrder func(float64) string, duration time.Duration) error {
	maxLabel := getMaxTableLabelWidth(cfg)

	if err := writeSettingsTable(w, result.Settings, cfg, fmtOrder); err != nil {
		return err
	}
	if err := writeColumnsTable(w, result.Columns, cfg, fmtFloat, fmtOrder); err != nil {
		return err
	}
	if err := writeGroupsTable(w, result.Groups, cfg, fmtOrder); err != nil {
		return err
	}
	if err := writeQuestionsTable(w, result.Questions, cfg, fmtFloat, fmtOrder, maxLabel); err != nil {
		return err
	}
	if err := writeListsTable(w, result.Lists, cfg, fmtOrder); err != nil {
		return err
	}
	if err := writeChoicesTable(w, result.Choices, cfg, fmtFloat, fmtOrder, maxLabel); err != nil {
		return err
	}
	if err := writeSummaryTable(w, result.Summary); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Compared %s@%s against %s@%s in %v\n",
		result.CurrentID, result.CurrentVersion,
		result.ReferenceID, result.ReferenceVersion, duration); err != nil {
		return err
	}
	return nil
}

// renderCategoryTable renders one category block: a title line, then either a
// failure notice, an empty notice, or the table itself.
func renderCategoryTable(w io.Writer, title string, errMsg string, headers []string, data [][]string) error {
	if _, err := fmt.Fprintf(w, "== %s ==\n", title); err != nil {
		return err
	}
	if errMsg != "" {
		_, err := fmt.Fprintf(w, "unavailable: %s\n\n", errMsg)
		return err
	}
	if len(data) == 0 {
		_, err := fmt.Fprintln(w, "no changes")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeSettingsTable(w io.Writer, res schema.CategoryResult[schema.SettingDiff], cfg *contract.Config, fmtOrder func(float64) string) error {
	var data [][]string
	for _, r := range res.Rows {
		if r.Status == schema.UnchangedStatus && !cfg.Detail {
			continue
		}
		data = append(data, []string{
			r.Name,
			optCell(r.ReferenceValue),
			optCell(r.CurrentValue),
			fmtOrder(r.Order),
			statusCell(r.Status, cfg.UseColors),
		})
	}
	return renderCategoryTable(w, "Settings", res.Err,
		[]string{"Name", "Reference", "Current", "Order", "Status"}, data)
}

func writeColumnsTable(w io.Writer, res schema.CategoryResult[schema.ColumnDiff], cfg *contract.Config, fmtFloat, fmtOrder func(float64) string) error {
	var data [][]string
	for _, r := range res.Rows {
		if r.Status == schema.UnchangedStatus && !cfg.Detail {
			continue
		}
		data = append(data, []string{
			optCell(r.ReferenceName),
			optCell(r.CurrentName),
			optFloatCell(r.TagDistance, fmtFloat),
			fmtOrder(r.Order),
			statusCell(r.Status, cfg.UseColors),
		})
	}
	return renderCategoryTable(w, "Survey columns", res.Err,
		[]string{"Reference", "Current", "Tag dist", "Order", "Status"}, data)
}

func writeGroupsTable(w io.Writer, res schema.CategoryResult[schema.GroupDiff], cfg *contract.Config, fmtOrder func(float64) string) error {
	var data [][]string
	for _, r := range res.Rows {
		if r.Status == schema.UnchangedStatus && !cfg.Detail {
			continue
		}
		data = append(data, []string{
			r.Name,
			kindCell(r.ReferenceKind, r.CurrentKind),
			pairCell(optCell(r.ReferenceParent), optCell(r.CurrentParent), r.ParentChanged),
			groupChangeFlags(r),
			fmtOrder(r.Order),
			statusCell(r.Status, cfg.UseColors),
		})
	}
	return renderCategoryTable(w, "Survey groups and repeats", res.Err,
		[]string{"Name", "Kind", "Parent", "Changes", "Order", "Status"}, data)
}

func writeQuestionsTable(w io.Writer, res schema.CategoryResult[schema.QuestionDiff], cfg *contract.Config, fmtFloat, fmtOrder func(float64) string, maxLabel int) error {
	var data [][]string
	for _, r := range res.Rows {
		if r.Status == schema.UnchangedStatus && !cfg.Detail {
			continue
		}
		data = append(data, []string{
			r.Name,
			pairCell(optCell(r.ReferenceType), optCell(r.CurrentType), r.TypeChanged),
			contract.TruncateCell(optCell(r.ReferenceLabel), maxLabel),
			contract.TruncateCell(optCell(r.CurrentLabel), maxLabel),
			questionChangeFlags(r, fmtFloat),
			fmtOrder(r.Order),
			statusCell(r.Status, cfg.UseColors),
		})
	}
	return renderCategoryTable(w, "Survey questions", res.Err,
		[]string{"Name", "Type", "Reference label", "Current label", "Changes", "Order", "Status"}, data)
}

func writeListsTable(w io.Writer, res schema.CategoryResult[schema.ListDiff], cfg *contract.Config, fmtOrder func(float64) string) error {
	var data [][]string
	for _, r := range res.Rows {
		if r.Status == schema.UnchangedStatus && !cfg.Detail {
			continue
		}
		data = append(data, []string{
			r.Name,
			fmtOrder(r.Order),
			statusCell(r.Status, cfg.UseColors),
		})
	}
	return renderCategoryTable(w, "Choice lists", res.Err,
		[]string{"Name", "Order", "Status"}, data)
}

func writeChoicesTable(w io.Writer, res schema.CategoryResult[schema.ChoiceDiff], cfg *contract.Config, fmtFloat, fmtOrder func(float64) string, maxLabel int) error {
	var data [][]string
	for _, r := range res.Rows {
		if r.Status == schema.UnchangedStatus && !cfg.Detail {
			continue
		}
		data = append(data, []string{
			r.ListName,
			r.Name,
			contract.TruncateCell(optCell(r.ReferenceLabel), maxLabel),
			contract.TruncateCell(optCell(r.CurrentLabel), maxLabel),
			choiceChangeFlags(r, fmtFloat),
			fmtOrder(r.Order),
			statusCell(r.Status, cfg.UseColors),
		})
	}
	return renderCategoryTable(w, "Choices", res.Err,
		[]string{"List", "Name", "Reference label", "Current label", "Changes", "Order", "Status"}, data)
}

func writeSummaryTable(w io.Writer, summary []schema.SummaryRow) error {
	var data [][]string
	for _, r := range summary {
		data = append(data, []string{
			r.Label,
			fmt.Sprint(r.Unchanged),
			fmt.Sprint(r.Added),
			fmt.Sprint(r.Removed),
			fmt.Sprint(r.Modified),
			fmt.Sprint(r.Total),
		})
	}
	if _, err := fmt.Fprintln(w, "== Overview =="); err != nil {
		return err
	}
	if len(data) == 0 {
		_, err := fmt.Fprintln(w, "no categories were run")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Category", "Unchanged", "Added", "Removed", "Modified", "Total"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// kindCell renders a group kind transition.
func kindCell(ref, cur *schema.GroupKind) string {
	refStr, curStr := "-", "-"
	if ref != nil {
		refStr = string(*ref)
	}
	if cur != nil {
		curStr = string(*cur)
	}
	return pairCell(refStr, curStr, refStr != curStr)
}

// pairCell renders a reference/current transition, collapsing to a single
// value when nothing changed.
func pairCell(ref, cur string, changed bool) string {
	if !changed {
		return cur
	}
	return ref + " -> " + cur
}

func groupChangeFlags(r schema.GroupDiff) string {
	var flags []string
	if r.KindChanged {
		flags = append(flags, "kind")
	}
	if r.ParentChanged {
		flags = append(flags, "parent")
	}
	if r.DepthChanged {
		flags = append(flags, "depth")
	}
	return strings.Join(flags, ",")
}

func questionChangeFlags(r schema.QuestionDiff, fmtFloat func(float64) string) string {
	var flags []string
	if r.TypeChanged {
		flags = append(flags, "type")
	}
	if r.LabelTier == schema.LabelMinor || r.LabelTier == schema.LabelMajor {
		flags = append(flags, fmt.Sprintf("label(%s %s)", r.LabelTier, optFloatCell(r.LabelDistance, fmtFloat)))
	}
	if r.RelevantChanged {
		flags = append(flags, "relevant")
	}
	if r.CalculationChanged {
		flags = append(flags, "calculation")
	}
	if r.RequiredChanged {
		flags = append(flags, "required")
	}
	if r.ChoiceFilterChanged {
		flags = append(flags, "choice_filter")
	}
	if r.GroupChanged {
		flags = append(flags, "group")
	}
	if r.Closest != nil {
		flags = append(flags, fmt.Sprintf("closest=%s(%s)", r.Closest.Name, fmtFloat(r.Closest.Distance)))
	}
	return strings.Join(flags, ",")
}

func choiceChangeFlags(r schema.ChoiceDiff, fmtFloat func(float64) string) string {
	var flags []string
	if r.LabelTier == schema.LabelMinor || r.LabelTier == schema.LabelMajor {
		flags = append(flags, fmt.Sprintf("label(%s %s)", r.LabelTier, optFloatCell(r.LabelDistance, fmtFloat)))
	}
	if r.ListAdded {
		flags = append(flags, "new_list")
	}
	if r.ListRemoved {
		flags = append(flags, "removed_list")
	}
	return strings.Join(flags, ",")
}

// writeCSVResultsForComparison writes all categories as one flat CSV stream
// with a category discriminator column.
func writeCSVResultsForComparison(w io.Writer, result *schema.ComparisonResult, fmtFloat, fmtOrder func(float64) string) error {
	header := []string{
		"category",
		"name",
		"reference",
		"current",
		"order",
		"status",
		"changes",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		emit := func(category schema.Category, name, ref, cur, order string, status schema.Status, changes string) error {
			return cw.Write([]string{string(category), name, ref, cur, order, string(status), changes})
		}
		for _, r := range result.Columns.Rows {
			if err := emit(schema.ColumnsCategory, optCell(r.CurrentName), optCell(r.ReferenceName), optCell(r.CurrentName), fmtOrder(r.Order), r.Status, optFloatCell(r.TagDistance, fmtFloat)); err != nil {
				return err
			}
		}
		for _, r := range result.Groups.Rows {
			if err := emit(schema.GroupsCategory, r.Name, optCell(r.ReferenceParent), optCell(r.CurrentParent), fmtOrder(r.Order), r.Status, groupChangeFlags(r)); err != nil {
				return err
			}
		}
		for _, r := range result.Questions.Rows {
			if err := emit(schema.QuestionsCategory, r.Name, optCell(r.ReferenceLabel), optCell(r.CurrentLabel), fmtOrder(r.Order), r.Status, questionChangeFlags(r, fmtFloat)); err != nil {
				return err
			}
		}
		for _, r := range result.Lists.Rows {
			if err := emit(schema.ListsCategory, r.Name, "", "", fmtOrder(r.Order), r.Status, ""); err != nil {
				return err
			}
		}
		for _, r := range result.Choices.Rows {
			if err := emit(schema.ChoicesCategory, r.ListName+"/"+r.Name, optCell(r.ReferenceLabel), optCell(r.CurrentLabel), fmtOrder(r.Order), r.Status, choiceChangeFlags(r, fmtFloat)); err != nil {
				return err
			}
		}
		for _, r := range result.Settings.Rows {
			if err := emit(schema.SettingsCategory, r.Name, optCell(r.ReferenceValue), optCell(r.CurrentValue), fmtOrder(r.Order), r.Status, ""); err != nil {
				return err
			}
		}
		return nil
	})
}
