package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlens/formlens/schema"
)

func question(name string) schema.SurveyRow {
	return schema.SurveyRow{Type: schema.QuestionRow, Name: name, Kind: "text"}
}

func marker(rt schema.RowType, name string) schema.SurveyRow {
	return schema.SurveyRow{Type: rt, Name: name}
}

func TestBuildSurveyFlat(t *testing.T) {
	tree, questions := BuildSurvey([]schema.SurveyRow{
		question("name"), question("age"),
	})
	assert.Empty(t, tree.Nodes)
	require.Len(t, questions, 2)
	assert.Equal(t, 0, questions[0].Order)
	assert.Equal(t, 1, questions[1].Order)
	assert.Nil(t, questions[0].GroupName)
}

func TestBuildSurveyNestedScopes(t *testing.T) {
	tree, questions := BuildSurvey([]schema.SurveyRow{
		marker(schema.BeginGroupRow, "household"),
		question("hh_size"),
		marker(schema.BeginRepeatRow, "members"),
		question("member_name"),
		marker(schema.EndRepeatRow, "members"),
		marker(schema.EndGroupRow, "household"),
		question("consent"),
	})

	require.Len(t, tree.Nodes, 2)
	household := tree.Find("household")
	members := tree.Find("members")
	require.NotNil(t, household)
	require.NotNil(t, members)

	assert.Equal(t, schema.GroupKindGroup, household.Kind)
	assert.Equal(t, schema.RootParent, household.Parent)
	assert.Equal(t, 0, household.Depth)
	assert.Nil(t, household.ParentName)

	assert.Equal(t, schema.GroupKindRepeat, members.Kind)
	assert.Equal(t, 1, members.Depth)
	require.NotNil(t, members.ParentName)
	assert.Equal(t, "household", *members.ParentName)

	require.Len(t, questions, 3)
	require.NotNil(t, questions[0].GroupName)
	assert.Equal(t, "household", *questions[0].GroupName)
	require.NotNil(t, questions[1].GroupName)
	assert.Equal(t, "members", *questions[1].GroupName)
	assert.Nil(t, questions[2].GroupName)
}

func TestBuildSurveyParentPrecedesChild(t *testing.T) {
	tree, _ := BuildSurvey([]schema.SurveyRow{
		marker(schema.BeginGroupRow, "a"),
		marker(schema.BeginGroupRow, "b"),
		marker(schema.BeginGroupRow, "c"),
		marker(schema.EndGroupRow, "c"),
		marker(schema.EndGroupRow, "b"),
		marker(schema.EndGroupRow, "a"),
		marker(schema.BeginGroupRow, "d"),
		marker(schema.EndGroupRow, "d"),
	})

	require.Len(t, tree.Nodes, 4)
	for _, n := range tree.Nodes {
		if n.Parent == schema.RootParent {
			continue
		}
		parent := tree.Node(n.Parent)
		require.NotNil(t, parent)
		assert.Less(t, parent.ID, n.ID)
		assert.Equal(t, parent.Depth+1, n.Depth)
	}

	// Sibling order at root level.
	a, d := tree.Find("a"), tree.Find("d")
	assert.Equal(t, 0, a.Order)
	assert.Equal(t, 1, d.Order)
}

func TestBuildSurveyUnmatchedEndMarkerIgnored(t *testing.T) {
	tree, questions := BuildSurvey([]schema.SurveyRow{
		marker(schema.EndGroupRow, "phantom"),
		question("q1"),
		marker(schema.BeginGroupRow, "g"),
		question("q2"),
		// Missing end marker: the scope stays open to the end.
	})

	require.Len(t, tree.Nodes, 1)
	require.Len(t, questions, 2)
	assert.Nil(t, questions[0].GroupName)
	require.NotNil(t, questions[1].GroupName)
	assert.Equal(t, "g", *questions[1].GroupName)
}

func TestBuildSurveyOrderSkipsMarkers(t *testing.T) {
	_, questions := BuildSurvey([]schema.SurveyRow{
		question("q1"),
		marker(schema.BeginGroupRow, "g"),
		question("q2"),
		marker(schema.EndGroupRow, "g"),
		question("q3"),
	})
	require.Len(t, questions, 3)
	for i, q := range questions {
		assert.Equal(t, i, q.Order)
	}
}
