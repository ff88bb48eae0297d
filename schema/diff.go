package schema

// ClosestLabel is a diagnostic annotation on an orphaned (added/removed)
// entity: the nearest label found on the other side of the comparison. It
// never changes the entity's status.
type ClosestLabel struct {
	Name     string  `json:"name"`
	Label    string  `json:"label"`
	Distance float64 `json:"distance"`
}

// SettingDiff is one settings row of the comparison.
type SettingDiff struct {
	Name           string  `json:"name"`
	CurrentValue   *string `json:"current_value,omitempty"`
	ReferenceValue *string `json:"reference_value,omitempty"`
	Order          float64 `json:"order"`
	Status         Status  `json:"status"`
}

// ColumnDiff is one survey-schema column row. For a likely_modified pair
// both names are set and TagDistance carries the tagged-name distance that
// triggered the reclassification.
type ColumnDiff struct {
	CurrentName   *string  `json:"current_name,omitempty"`
	ReferenceName *string  `json:"reference_name,omitempty"`
	Order         float64  `json:"order"`
	Status        Status   `json:"status"`
	TagDistance   *float64 `json:"tag_distance,omitempty"`
}

// GroupDiff is one group/repeat row. An unchanged name still reports
// modified when the node moved (parent or depth) or switched kind.
type GroupDiff struct {
	Name            string     `json:"name"`
	CurrentKind     *GroupKind `json:"current_kind,omitempty"`
	ReferenceKind   *GroupKind `json:"reference_kind,omitempty"`
	CurrentParent   *string    `json:"current_parent,omitempty"`
	ReferenceParent *string    `json:"reference_parent,omitempty"`
	CurrentDepth    *int       `json:"current_depth,omitempty"`
	ReferenceDepth  *int       `json:"reference_depth,omitempty"`
	Order           float64    `json:"order"`
	Status          Status     `json:"status"`
	KindChanged     bool       `json:"kind_changed,omitempty"`
	ParentChanged   bool       `json:"parent_changed,omitempty"`
	DepthChanged    bool       `json:"depth_changed,omitempty"`
}

// ListDiff is one choice-list-name row.
type ListDiff struct {
	Name   string  `json:"name"`
	Order  float64 `json:"order"`
	Status Status  `json:"status"`
}

// ChoiceDiff is one choice row. ListAdded/ListRemoved distinguish "new item
// in an existing list" from "item of a brand new list".
type ChoiceDiff struct {
	ListName       string    `json:"list_name"`
	Name           string    `json:"name"`
	CurrentLabel   *string   `json:"current_label,omitempty"`
	ReferenceLabel *string   `json:"reference_label,omitempty"`
	Order          float64   `json:"order"`
	Status         Status    `json:"status"`
	LabelTier      LabelTier `json:"label_tier,omitempty"`
	LabelDistance  *float64  `json:"label_distance,omitempty"`
	ListAdded      bool      `json:"list_name_added,omitempty"`
	ListRemoved    bool      `json:"list_name_removed,omitempty"`
}

// QuestionDiff is one question row with per-field change indicators.
type QuestionDiff struct {
	Name           string  `json:"name"`
	CurrentType    *string `json:"current_type,omitempty"`
	ReferenceType  *string `json:"reference_type,omitempty"`
	CurrentLabel   *string `json:"current_label,omitempty"`
	ReferenceLabel *string `json:"reference_label,omitempty"`
	Order          float64 `json:"order"`
	Status         Status  `json:"status"`

	LabelTier     LabelTier `json:"label_tier,omitempty"`
	LabelDistance *float64  `json:"label_distance,omitempty"`

	TypeChanged         bool `json:"type_changed,omitempty"`
	RelevantChanged     bool `json:"relevant_changed,omitempty"`
	CalculationChanged  bool `json:"calculation_changed,omitempty"`
	RequiredChanged     bool `json:"required_changed,omitempty"`
	ChoiceFilterChanged bool `json:"choice_filter_changed,omitempty"`
	GroupChanged        bool `json:"group_changed,omitempty"`

	// Closest annotates added/removed rows with the nearest label on the
	// other side.
	Closest *ClosestLabel `json:"closest,omitempty"`
}

// SimilarLabelPair is one row of the standalone similar-labels report.
type SimilarLabelPair struct {
	CurrentName    string  `json:"current_name"`
	CurrentLabel   string  `json:"current_label"`
	CurrentOrder   int     `json:"current_order"`
	ReferenceName  string  `json:"reference_name"`
	ReferenceLabel string  `json:"reference_label"`
	ReferenceOrder int     `json:"reference_order"`
	Similarity     float64 `json:"similarity"`
}

// CategoryResult holds one category's rows, or the error that made the
// category unavailable. A failed category never aborts the others.
type CategoryResult[T any] struct {
	Rows []T    `json:"rows,omitempty"`
	Err  string `json:"error,omitempty"`
}

// Failed reports whether the category could not be computed.
func (c CategoryResult[T]) Failed() bool { return c.Err != "" }

// SummaryRow is one line of the overview count table.
type SummaryRow struct {
	Label     string `json:"label"`
	Unchanged int    `json:"unchanged"`
	Added     int    `json:"added"`
	Removed   int    `json:"removed"`
	Modified  int    `json:"modified"`
	Total     int    `json:"total"`
}

// ComparisonResult is the full output of one form comparison: one result
// slot per category plus the overview summary.
type ComparisonResult struct {
	CurrentID        string `json:"current_id"`
	CurrentVersion   string `json:"current_version"`
	ReferenceID      string `json:"reference_id"`
	ReferenceVersion string `json:"reference_version"`

	Settings  CategoryResult[SettingDiff]  `json:"settings"`
	Columns   CategoryResult[ColumnDiff]   `json:"survey_columns"`
	Groups    CategoryResult[GroupDiff]    `json:"survey_groups_repeats"`
	Lists     CategoryResult[ListDiff]     `json:"choice_lists"`
	Choices   CategoryResult[ChoiceDiff]   `json:"choices"`
	Questions CategoryResult[QuestionDiff] `json:"survey_questions"`

	Summary []SummaryRow `json:"summary"`
}

// SimilarLabelsResult is the output of the standalone similar-labels run.
type SimilarLabelsResult struct {
	Pairs []SimilarLabelPair `json:"pairs"`
}

// RunRecord is a persisted comparison run for the history store.
type RunRecord struct {
	RunID            int64   `json:"run_id"`
	StartTime        int64   `json:"start_time"` // unix seconds
	EndTime          *int64  `json:"end_time,omitempty"`
	CurrentID        string  `json:"current_id"`
	CurrentVersion   string  `json:"current_version"`
	ReferenceID      string  `json:"reference_id"`
	ReferenceVersion string  `json:"reference_version"`
	ConfigParams     *string `json:"config_params,omitempty"`
}

// RunCategoryCount is one persisted per-category count row of a run.
type RunCategoryCount struct {
	RunID     int64  `json:"run_id"`
	Label     string `json:"label"`
	Unchanged int    `json:"unchanged"`
	Added     int    `json:"added"`
	Removed   int    `json:"removed"`
	Modified  int    `json:"modified"`
}

// RunStoreStatus describes the run-history store for the status command.
type RunStoreStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   int64            `json:"last_run_time"`
	OldestRunTime int64            `json:"oldest_run_time"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}
