package core

import (
	"errors"
	"fmt"
	"sync"

	"github.com/formlens/formlens/schema"
)

// ErrStructural marks a category that cannot be compared because mandatory
// identity fields are missing from the input. One category's structural
// error never aborts the others.
var ErrStructural = errors.New("structural error")

// Options configures a comparison run.
type Options struct {
	// Stages toggles individual categories. A nil map enables all of them.
	Stages map[schema.Category]bool

	// NormalizeLabel preprocesses labels before fuzzy matching. Optional.
	NormalizeLabel func(string) string
}

func (o Options) enabled(c schema.Category) bool {
	if o.Stages == nil {
		return true
	}
	return o.Stages[c]
}

// CompareForms runs every enabled category comparison between the current
// and reference snapshots and assembles the full result. The categories are
// pure functions of the two immutable snapshots, so they fan out across
// goroutines, each writing its own result slot, and join before returning.
func CompareForms(cur, ref *schema.FormModel, opts Options) *schema.ComparisonResult {
	matcher := NewFuzzyMatcher(opts.NormalizeLabel)

	curTree, curQuestions := surveyView(cur)
	refTree, refQuestions := surveyView(ref)

	result := &schema.ComparisonResult{
		CurrentID:        cur.ID,
		CurrentVersion:   cur.Version,
		ReferenceID:      ref.ID,
		ReferenceVersion: ref.Version,
	}

	var wg sync.WaitGroup
	if opts.enabled(schema.SettingsCategory) {
		wg.Go(func() {
			result.Settings = runCategory(func() ([]schema.SettingDiff, error) {
				if err := validateSettings(cur.Settings); err != nil {
					return nil, err
				}
				if err := validateSettings(ref.Settings); err != nil {
					return nil, err
				}
				return classifySettings(cur.Settings, ref.Settings), nil
			})
		})
	}
	if opts.enabled(schema.ColumnsCategory) {
		wg.Go(func() {
			result.Columns = runCategory(func() ([]schema.ColumnDiff, error) {
				return classifyColumns(cur.Columns, ref.Columns), nil
			})
		})
	}
	if opts.enabled(schema.GroupsCategory) {
		wg.Go(func() {
			result.Groups = runCategory(func() ([]schema.GroupDiff, error) {
				if err := validateTree(curTree); err != nil {
					return nil, err
				}
				if err := validateTree(refTree); err != nil {
					return nil, err
				}
				return classifyGroups(curTree, refTree), nil
			})
		})
	}
	if opts.enabled(schema.ListsCategory) {
		wg.Go(func() {
			result.Lists = runCategory(func() ([]schema.ListDiff, error) {
				return classifyLists(cur.Choices, ref.Choices), nil
			})
		})
	}
	if opts.enabled(schema.ChoicesCategory) {
		wg.Go(func() {
			result.Choices = runCategory(func() ([]schema.ChoiceDiff, error) {
				if err := validateChoices(cur.Choices); err != nil {
					return nil, err
				}
				if err := validateChoices(ref.Choices); err != nil {
					return nil, err
				}
				// The enclosing-list verdicts are recomputed here rather
				// than shared with the lists stage, keeping the stages
				// free of cross-category ordering.
				lists := classifyLists(cur.Choices, ref.Choices)
				return classifyChoices(cur.Choices, ref.Choices, lists), nil
			})
		})
	}
	if opts.enabled(schema.QuestionsCategory) {
		wg.Go(func() {
			result.Questions = runCategory(func() ([]schema.QuestionDiff, error) {
				if err := validateQuestions(curQuestions); err != nil {
					return nil, err
				}
				if err := validateQuestions(refQuestions); err != nil {
					return nil, err
				}
				return classifyQuestions(curQuestions, refQuestions, matcher), nil
			})
		})
	}
	wg.Wait()

	result.Summary = buildSummary(result, opts)
	return result
}

// SimilarLabels runs the standalone similar-label detection between two
// snapshots.
func SimilarLabels(cur, ref *schema.FormModel, opts Options) *schema.SimilarLabelsResult {
	matcher := NewFuzzyMatcher(opts.NormalizeLabel)
	_, curQuestions := surveyView(cur)
	_, refQuestions := surveyView(ref)
	return &schema.SimilarLabelsResult{
		Pairs: matcher.DetectSimilarLabels(curQuestions, refQuestions),
	}
}

// surveyView resolves a snapshot's tree and question sequence, building
// both from the raw survey stream when the ingest layer has not already
// done so. The snapshot itself is never mutated.
func surveyView(f *schema.FormModel) (*schema.GroupTree, []schema.QuestionRecord) {
	if f.Groups != nil || f.Survey == nil {
		return f.Groups, f.Questions
	}
	return BuildSurvey(f.Survey)
}

// runCategory captures a category's rows or its failure.
func runCategory[T any](fn func() ([]T, error)) schema.CategoryResult[T] {
	rows, err := fn()
	if err != nil {
		return schema.CategoryResult[T]{Err: err.Error()}
	}
	return schema.CategoryResult[T]{Rows: rows}
}

func validateSettings(settings []schema.SettingRecord) error {
	for i, s := range settings {
		if s.Name == "" {
			return fmt.Errorf("%w: setting at position %d has no name", ErrStructural, i)
		}
	}
	return nil
}

func validateQuestions(questions []schema.QuestionRecord) error {
	for i, q := range questions {
		if q.Name == "" {
			return fmt.Errorf("%w: question at position %d has no name", ErrStructural, i)
		}
	}
	return nil
}

func validateTree(t *schema.GroupTree) error {
	if t == nil {
		return nil
	}
	for i, n := range t.Nodes {
		if n.Name == "" {
			return fmt.Errorf("%w: group node %d has no name", ErrStructural, i)
		}
	}
	return nil
}

func validateChoices(choices []schema.ChoiceRecord) error {
	for i, c := range choices {
		if c.ListName == "" || c.Name == "" {
			return fmt.Errorf("%w: choice at position %d is missing its list name or name", ErrStructural, i)
		}
	}
	return nil
}

// countStatuses tallies one category's rows into a summary row.
func countStatuses[T any](label string, rows []T, status func(T) schema.Status, keep func(T) bool) schema.SummaryRow {
	row := schema.SummaryRow{Label: label}
	for _, r := range rows {
		if keep != nil && !keep(r) {
			continue
		}
		switch status(r) {
		case schema.UnchangedStatus:
			row.Unchanged++
		case schema.AddedStatus:
			row.Added++
		case schema.RemovedStatus:
			row.Removed++
		case schema.ModifiedStatus, schema.LikelyModifiedStatus:
			row.Modified++
		}
	}
	row.Total = row.Unchanged + row.Added + row.Removed + row.Modified
	return row
}

// buildSummary assembles the overview count table, in the original
// overview order, with groups and repeats tallied separately.
func buildSummary(r *schema.ComparisonResult, opts Options) []schema.SummaryRow {
	var summary []schema.SummaryRow

	if opts.enabled(schema.ColumnsCategory) {
		summary = append(summary, countStatuses("Survey column names", r.Columns.Rows,
			func(d schema.ColumnDiff) schema.Status { return d.Status }, nil))
	}
	if opts.enabled(schema.GroupsCategory) {
		kindIs := func(kind schema.GroupKind) func(schema.GroupDiff) bool {
			return func(d schema.GroupDiff) bool {
				if d.CurrentKind != nil {
					return *d.CurrentKind == kind
				}
				return d.ReferenceKind != nil && *d.ReferenceKind == kind
			}
		}
		groupStatus := func(d schema.GroupDiff) schema.Status { return d.Status }
		summary = append(summary,
			countStatuses("Survey group names", r.Groups.Rows, groupStatus, kindIs(schema.GroupKindGroup)),
			countStatuses("Survey repeat names", r.Groups.Rows, groupStatus, kindIs(schema.GroupKindRepeat)),
		)
	}
	if opts.enabled(schema.QuestionsCategory) {
		summary = append(summary, countStatuses("Survey question names", r.Questions.Rows,
			func(d schema.QuestionDiff) schema.Status { return d.Status }, nil))
	}
	if opts.enabled(schema.ListsCategory) {
		summary = append(summary, countStatuses("Choices list names", r.Lists.Rows,
			func(d schema.ListDiff) schema.Status { return d.Status }, nil))
	}
	if opts.enabled(schema.ChoicesCategory) {
		summary = append(summary, countStatuses("Choices names", r.Choices.Rows,
			func(d schema.ChoiceDiff) schema.Status { return d.Status }, nil))
	}
	if opts.enabled(schema.SettingsCategory) {
		summary = append(summary, countStatuses("Settings", r.Settings.Rows,
			func(d schema.SettingDiff) schema.Status { return d.Status }, nil))
	}
	return summary
}
