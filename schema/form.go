// Package schema has the form data model and diff result types.
package schema

// FormModel is one immutable snapshot of a survey definition. It is built
// once by the ingest layer and never mutated afterwards; the two snapshots
// of a comparison share no state.
type FormModel struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Version         string `json:"version"`
	DefaultLanguage string `json:"default_language"`

	Settings  []SettingRecord  `json:"settings"`
	Columns   []string         `json:"columns"` // ordered survey sheet column names
	Survey    []SurveyRow      `json:"survey"`  // ordered marker-annotated row stream
	Choices   []ChoiceRecord   `json:"choices"`
	Questions []QuestionRecord `json:"questions"`
	Groups    *GroupTree       `json:"groups"`
}

// SurveyRow is one ordered row of the survey sheet: either a structural
// begin/end marker or a question. Optional attributes are pointers because
// absence is distinct from an empty string.
type SurveyRow struct {
	Type  RowType `json:"type"`
	Name  string  `json:"name"`
	Kind  string  `json:"kind,omitempty"` // question type, e.g. "text", "select_one yesno"
	Label *string `json:"label,omitempty"`

	Relevant     *string `json:"relevant,omitempty"`
	Calculation  *string `json:"calculation,omitempty"`
	Required     *string `json:"required,omitempty"`
	ChoiceFilter *string `json:"choice_filter,omitempty"`
}

// IsMarker reports whether the row opens or closes a structural scope.
func (r SurveyRow) IsMarker() bool {
	switch r.Type {
	case BeginGroupRow, BeginRepeatRow, EndGroupRow, EndRepeatRow:
		return true
	default:
		return false
	}
}

// QuestionRecord is one question of the flattened, group-stripped survey
// sequence. Name is the identity key across the form.
type QuestionRecord struct {
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Order int     `json:"order"` // position in the group-stripped sequence
	Label *string `json:"label,omitempty"`

	// GroupName is the innermost enclosing group/repeat, nil at root.
	GroupName *string `json:"group_name,omitempty"`

	Relevant     *string `json:"relevant,omitempty"`
	Calculation  *string `json:"calculation,omitempty"`
	Required     *string `json:"required,omitempty"`
	ChoiceFilter *string `json:"choice_filter,omitempty"`
}

// ChoiceRecord is one selectable option. The composite (ListName, Name) key
// is not guaranteed unique by the source; duplicates are reconciled as a
// multiset.
type ChoiceRecord struct {
	ListName string  `json:"list_name"`
	Name     string  `json:"name"`
	Order    int     `json:"order"`
	Label    *string `json:"label,omitempty"`
}

// Key returns the composite identity of the choice.
func (c ChoiceRecord) Key() string {
	return c.ListName + "\x1f" + c.Name
}

// SettingRecord is one named global setting. Value may be absent.
type SettingRecord struct {
	Name  string  `json:"name"`
	Order int     `json:"order"`
	Value *string `json:"value,omitempty"`
}
