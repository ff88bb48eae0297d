package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlens/formlens/schema"
)

func sampleModel() *schema.FormModel {
	return &schema.FormModel{
		ID:      "household_survey",
		Title:   "Household Survey",
		Version: "3",
		Settings: []schema.SettingRecord{
			{Name: "form_id", Order: 0, Value: strPtr("household_survey")},
			{Name: "version", Order: 1, Value: strPtr("3")},
		},
		Columns: []string{"type", "name", "label::en", "relevant"},
		Survey: []schema.SurveyRow{
			question("consent"),
			marker(schema.BeginGroupRow, "household"),
			{Type: schema.QuestionRow, Name: "hh_size", Kind: "integer", Label: strPtr("Household size")},
			marker(schema.BeginRepeatRow, "members"),
			{Type: schema.QuestionRow, Name: "member_name", Kind: "text", Label: strPtr("Member name")},
			marker(schema.EndRepeatRow, "members"),
			marker(schema.EndGroupRow, "household"),
		},
		Choices: []schema.ChoiceRecord{
			{ListName: "yesno", Name: "yes", Order: 0, Label: strPtr("Yes")},
			{ListName: "yesno", Name: "no", Order: 1, Label: strPtr("No")},
		},
	}
}

func summaryByLabel(rows []schema.SummaryRow) map[string]schema.SummaryRow {
	out := make(map[string]schema.SummaryRow, len(rows))
	for _, r := range rows {
		out[r.Label] = r
	}
	return out
}

func TestCompareFormsSelfIdentity(t *testing.T) {
	m := sampleModel()
	result := CompareForms(m, sampleModel(), Options{})

	for _, r := range result.Settings.Rows {
		assert.Equal(t, schema.UnchangedStatus, r.Status)
	}
	for _, r := range result.Columns.Rows {
		assert.Equal(t, schema.UnchangedStatus, r.Status)
	}
	for _, r := range result.Groups.Rows {
		assert.Equal(t, schema.UnchangedStatus, r.Status)
	}
	for _, r := range result.Lists.Rows {
		assert.Equal(t, schema.UnchangedStatus, r.Status)
	}
	for _, r := range result.Choices.Rows {
		assert.Equal(t, schema.UnchangedStatus, r.Status)
	}
	for _, r := range result.Questions.Rows {
		assert.Equal(t, schema.UnchangedStatus, r.Status)
		assert.False(t, r.TypeChanged)
		assert.False(t, r.RelevantChanged)
	}

	for _, row := range result.Summary {
		assert.Zero(t, row.Added, row.Label)
		assert.Zero(t, row.Removed, row.Label)
		assert.Zero(t, row.Modified, row.Label)
		assert.Equal(t, row.Unchanged, row.Total, row.Label)
	}
}

func TestCompareFormsSummaryCounts(t *testing.T) {
	cur := sampleModel()
	ref := sampleModel()
	// One new question at the end of the survey.
	cur.Survey = append(cur.Survey, schema.SurveyRow{
		Type: schema.QuestionRow, Name: "remarks", Kind: "text", Label: strPtr("Remarks"),
	})

	result := CompareForms(cur, ref, Options{})
	byLabel := summaryByLabel(result.Summary)

	questions := byLabel["Survey question names"]
	assert.Equal(t, 1, questions.Added)
	assert.Equal(t, 3, questions.Unchanged)
	assert.Equal(t, 4, questions.Total)

	groups := byLabel["Survey group names"]
	assert.Equal(t, 1, groups.Unchanged)
	repeats := byLabel["Survey repeat names"]
	assert.Equal(t, 1, repeats.Unchanged)
}

func TestCompareFormsCategoryIsolation(t *testing.T) {
	cur := sampleModel()
	// A nameless choice is a structural error for the choices category
	// only; every other category still completes.
	cur.Choices = append(cur.Choices, schema.ChoiceRecord{ListName: "yesno", Order: 2})

	result := CompareForms(cur, sampleModel(), Options{})

	require.True(t, result.Choices.Failed())
	assert.Contains(t, result.Choices.Err, "structural error")
	assert.False(t, result.Settings.Failed())
	assert.False(t, result.Columns.Failed())
	assert.False(t, result.Groups.Failed())
	assert.False(t, result.Questions.Failed())
	assert.NotEmpty(t, result.Questions.Rows)
}

func TestCompareFormsStageToggle(t *testing.T) {
	stages := map[schema.Category]bool{
		schema.QuestionsCategory: true,
	}
	result := CompareForms(sampleModel(), sampleModel(), Options{Stages: stages})

	assert.NotEmpty(t, result.Questions.Rows)
	assert.Empty(t, result.Settings.Rows)
	assert.Empty(t, result.Columns.Rows)
	assert.Empty(t, result.Choices.Rows)

	require.Len(t, result.Summary, 1)
	assert.Equal(t, "Survey question names", result.Summary[0].Label)
}

func TestCompareFormsMissingChoicesDegrade(t *testing.T) {
	cur := sampleModel()
	ref := sampleModel()
	ref.Choices = nil

	result := CompareForms(cur, ref, Options{})
	require.False(t, result.Choices.Failed())
	for _, r := range result.Choices.Rows {
		assert.Equal(t, schema.AddedStatus, r.Status)
		assert.True(t, r.ListAdded)
	}
	require.Len(t, result.Choices.Rows, 2)
}

func TestCompareFormsVersionHeader(t *testing.T) {
	cur := sampleModel()
	cur.Version = "4"
	result := CompareForms(cur, sampleModel(), Options{})
	assert.Equal(t, "household_survey", result.CurrentID)
	assert.Equal(t, "4", result.CurrentVersion)
	assert.Equal(t, "3", result.ReferenceVersion)
}

func TestCompareFormsPrebuiltTree(t *testing.T) {
	// A snapshot whose tree and questions were already resolved upstream is
	// used as is.
	m := sampleModel()
	tree, questions := BuildSurvey(m.Survey)
	pre := &schema.FormModel{
		ID:        m.ID,
		Version:   m.Version,
		Settings:  m.Settings,
		Columns:   m.Columns,
		Choices:   m.Choices,
		Groups:    tree,
		Questions: questions,
	}

	result := CompareForms(pre, sampleModel(), Options{})
	for _, r := range result.Groups.Rows {
		assert.Equal(t, schema.UnchangedStatus, r.Status)
	}
	for _, r := range result.Questions.Rows {
		assert.Equal(t, schema.UnchangedStatus, r.Status)
	}
}

func TestSimilarLabelsStandalone(t *testing.T) {
	cur := sampleModel()
	ref := sampleModel()

	result := SimilarLabels(cur, ref, Options{})
	require.NotEmpty(t, result.Pairs)
	// Identical snapshots produce exact pairs at full similarity first.
	assert.Equal(t, 1.0, result.Pairs[0].Similarity)
}
