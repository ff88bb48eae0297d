package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlens/formlens/schema"
)

func TestExactChange(t *testing.T) {
	assert.False(t, exactChange(nil, nil))
	assert.False(t, exactChange(strPtr(""), nil))
	assert.False(t, exactChange(strPtr(""), strPtr("")))
	assert.True(t, exactChange(strPtr("x"), nil))
	assert.True(t, exactChange(nil, strPtr("x")))
	assert.True(t, exactChange(strPtr("x"), strPtr("y")))
	assert.False(t, exactChange(strPtr("x"), strPtr("x")))
}

func TestTextChangePresenceAsymmetry(t *testing.T) {
	changed, dist := textChange(strPtr("some condition"), nil)
	assert.True(t, changed)
	require.NotNil(t, dist)
	assert.Equal(t, IncomparableScore, *dist)

	changed, dist = textChange(nil, nil)
	assert.False(t, changed)
	assert.Nil(t, dist)
}

func TestLabelChangeTiers(t *testing.T) {
	tier, dist := labelChange(strPtr("abcde"), strPtr("abcde"))
	assert.Equal(t, schema.LabelUnchanged, tier)
	require.NotNil(t, dist)
	assert.Equal(t, 0.0, *dist)

	// One edit over five runes lands exactly on the boundary, which is
	// still minor.
	tier, dist = labelChange(strPtr("abcde"), strPtr("abcdX"))
	assert.Equal(t, schema.LabelMinor, tier)
	assert.InDelta(t, 0.2, *dist, 1e-9)

	tier, dist = labelChange(strPtr("abcde"), strPtr("abXYZ"))
	assert.Equal(t, schema.LabelMajor, tier)
	assert.Greater(t, *dist, 0.2)

	// Label present on only one side is a major change at the sentinel.
	tier, dist = labelChange(strPtr("anything"), nil)
	assert.Equal(t, schema.LabelMajor, tier)
	assert.Equal(t, IncomparableScore, *dist)
}

func TestClassifySettings(t *testing.T) {
	cur := []schema.SettingRecord{
		{Name: "form_title", Order: 0, Value: strPtr("Household Survey v2")},
		{Name: "version", Order: 1, Value: strPtr("2")},
		{Name: "style", Order: 2, Value: strPtr("pages")},
	}
	ref := []schema.SettingRecord{
		{Name: "form_title", Order: 0, Value: strPtr("Household Survey")},
		{Name: "version", Order: 1, Value: strPtr("2")},
		{Name: "public_key", Order: 2, Value: strPtr("abc")},
	}

	rows := classifySettings(cur, ref)
	require.Len(t, rows, 4)

	byName := make(map[string]schema.SettingDiff)
	for _, r := range rows {
		byName[r.Name] = r
	}
	assert.Equal(t, schema.ModifiedStatus, byName["form_title"].Status)
	assert.Equal(t, schema.UnchangedStatus, byName["version"].Status)
	assert.Equal(t, schema.AddedStatus, byName["style"].Status)
	assert.Equal(t, schema.RemovedStatus, byName["public_key"].Status)
}

func TestClassifyGroupsMoveIsModification(t *testing.T) {
	cur, _ := BuildSurvey([]schema.SurveyRow{
		marker(schema.BeginGroupRow, "outer"),
		marker(schema.BeginGroupRow, "inner"),
		marker(schema.EndGroupRow, "inner"),
		marker(schema.EndGroupRow, "outer"),
	})
	ref, _ := BuildSurvey([]schema.SurveyRow{
		marker(schema.BeginGroupRow, "outer"),
		marker(schema.EndGroupRow, "outer"),
		marker(schema.BeginGroupRow, "inner"),
		marker(schema.EndGroupRow, "inner"),
	})

	rows := classifyGroups(cur, ref)
	require.Len(t, rows, 2)

	byName := make(map[string]schema.GroupDiff)
	for _, r := range rows {
		byName[r.Name] = r
	}
	assert.Equal(t, schema.UnchangedStatus, byName["outer"].Status)

	inner := byName["inner"]
	assert.Equal(t, schema.ModifiedStatus, inner.Status)
	assert.True(t, inner.ParentChanged)
	assert.True(t, inner.DepthChanged)
	assert.False(t, inner.KindChanged)
}

func TestClassifyGroupsKindSwitch(t *testing.T) {
	cur, _ := BuildSurvey([]schema.SurveyRow{
		marker(schema.BeginRepeatRow, "members"),
		marker(schema.EndRepeatRow, "members"),
	})
	ref, _ := BuildSurvey([]schema.SurveyRow{
		marker(schema.BeginGroupRow, "members"),
		marker(schema.EndGroupRow, "members"),
	})

	rows := classifyGroups(cur, ref)
	require.Len(t, rows, 1)
	assert.Equal(t, schema.ModifiedStatus, rows[0].Status)
	assert.True(t, rows[0].KindChanged)
}

func TestClassifyListsAndChoices(t *testing.T) {
	cur := []schema.ChoiceRecord{
		{ListName: "yesno", Name: "yes", Order: 0, Label: strPtr("Yes")},
		{ListName: "yesno", Name: "no", Order: 1, Label: strPtr("No")},
		{ListName: "regions", Name: "north", Order: 2, Label: strPtr("North")},
	}
	ref := []schema.ChoiceRecord{
		{ListName: "yesno", Name: "yes", Order: 0, Label: strPtr("Yes")},
		{ListName: "yesno", Name: "no", Order: 1, Label: strPtr("No")},
		{ListName: "colors", Name: "red", Order: 2, Label: strPtr("Red")},
	}

	lists := classifyLists(cur, ref)
	require.Len(t, lists, 3)
	listByName := make(map[string]schema.ListDiff)
	for _, l := range lists {
		listByName[l.Name] = l
	}
	assert.Equal(t, schema.UnchangedStatus, listByName["yesno"].Status)
	assert.Equal(t, schema.AddedStatus, listByName["regions"].Status)
	assert.Equal(t, schema.RemovedStatus, listByName["colors"].Status)

	choices := classifyChoices(cur, ref, lists)
	require.Len(t, choices, 4)
	choiceByKey := make(map[string]schema.ChoiceDiff)
	for _, c := range choices {
		choiceByKey[c.ListName+"/"+c.Name] = c
	}
	north := choiceByKey["regions/north"]
	assert.Equal(t, schema.AddedStatus, north.Status)
	assert.True(t, north.ListAdded)

	red := choiceByKey["colors/red"]
	assert.Equal(t, schema.RemovedStatus, red.Status)
	assert.True(t, red.ListRemoved)
}

func TestClassifyChoicesNewItemInExistingList(t *testing.T) {
	cur := []schema.ChoiceRecord{
		{ListName: "yesno", Name: "yes", Order: 0, Label: strPtr("Yes")},
		{ListName: "yesno", Name: "maybe", Order: 1, Label: strPtr("Maybe")},
	}
	ref := []schema.ChoiceRecord{
		{ListName: "yesno", Name: "yes", Order: 0, Label: strPtr("Yes")},
	}

	lists := classifyLists(cur, ref)
	choices := classifyChoices(cur, ref, lists)
	for _, c := range choices {
		if c.Name == "maybe" {
			assert.Equal(t, schema.AddedStatus, c.Status)
			assert.False(t, c.ListAdded)
		}
	}
}

func TestClassifyQuestions(t *testing.T) {
	group := "household"
	cur := []schema.QuestionRecord{
		{Name: "age", Type: "integer", Order: 0, Label: strPtr("How old are you?"), Required: strPtr("yes")},
		{Name: "income", Type: "decimal", Order: 1, Label: strPtr("Monthly income")},
		{Name: "hh_size", Type: "integer", Order: 2, Label: strPtr("Household size"), GroupName: &group},
	}
	ref := []schema.QuestionRecord{
		{Name: "age", Type: "text", Order: 0, Label: strPtr("How old are you?")},
		{Name: "salary", Type: "decimal", Order: 1, Label: strPtr("Monthly income")},
		{Name: "hh_size", Type: "integer", Order: 2, Label: strPtr("Household size")},
	}

	rows := classifyQuestions(cur, ref, NewFuzzyMatcher(nil))
	require.Len(t, rows, 4)

	byName := make(map[string]schema.QuestionDiff)
	for _, r := range rows {
		byName[r.Name] = r
	}

	age := byName["age"]
	assert.Equal(t, schema.ModifiedStatus, age.Status)
	assert.True(t, age.TypeChanged)
	assert.True(t, age.RequiredChanged)
	assert.Equal(t, schema.LabelUnchanged, age.LabelTier)

	hh := byName["hh_size"]
	assert.Equal(t, schema.ModifiedStatus, hh.Status)
	assert.True(t, hh.GroupChanged)

	// Renamed question surfaces as an add/remove pair, each annotated with
	// the identical label found on the other side.
	income := byName["income"]
	assert.Equal(t, schema.AddedStatus, income.Status)
	require.NotNil(t, income.Closest)
	assert.Equal(t, "salary", income.Closest.Name)
	assert.Equal(t, 0.0, income.Closest.Distance)

	salary := byName["salary"]
	assert.Equal(t, schema.RemovedStatus, salary.Status)
	require.NotNil(t, salary.Closest)
	assert.Equal(t, "income", salary.Closest.Name)
}

func TestClassifyQuestionsSelfComparisonIdentity(t *testing.T) {
	qs := []schema.QuestionRecord{
		{Name: "q1", Type: "text", Order: 0, Label: strPtr("First question")},
		{Name: "q2", Type: "integer", Order: 1, Label: strPtr("Second question"), Relevant: strPtr("${q1} != ''")},
	}
	rows := classifyQuestions(qs, qs, NewFuzzyMatcher(nil))
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, schema.UnchangedStatus, r.Status)
		assert.Equal(t, schema.LabelUnchanged, r.LabelTier)
	}
}

func TestDiffRowsSortedByMergedOrder(t *testing.T) {
	cur := []schema.SettingRecord{
		{Name: "b", Order: 0, Value: strPtr("1")},
		{Name: "c", Order: 1, Value: strPtr("1")},
	}
	ref := []schema.SettingRecord{
		{Name: "a", Order: 0, Value: strPtr("1")},
		{Name: "b", Order: 1, Value: strPtr("1")},
	}
	rows := classifySettings(cur, ref)
	require.Len(t, rows, 3)
	for i := 1; i < len(rows); i++ {
		assert.LessOrEqual(t, rows[i-1].Order, rows[i].Order)
	}
}
