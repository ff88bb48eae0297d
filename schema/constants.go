package schema

// Custom string types for type safety.
type (
	// Status classifies an entity in a diff result.
	Status string

	// Category identifies one comparison stage.
	Category string

	// RowType discriminates survey rows between structural markers and questions.
	RowType string

	// GroupKind distinguishes groups from repeats.
	GroupKind string

	// LabelTier grades how far apart two matched labels are.
	LabelTier string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string
)

// All diff statuses supported.
const (
	UnchangedStatus Status = "unchanged"
	AddedStatus     Status = "added"
	RemovedStatus   Status = "removed"
	ModifiedStatus  Status = "modified"

	// LikelyModifiedStatus marks a reclassified add/remove pair that the
	// column rename heuristic resolved into a single rename.
	LikelyModifiedStatus Status = "likely_modified"
)

// All comparison categories, in overview order.
const (
	ColumnsCategory   Category = "survey_columns"
	GroupsCategory    Category = "survey_groups_repeats"
	QuestionsCategory Category = "survey_questions"
	ListsCategory     Category = "choice_lists"
	ChoicesCategory   Category = "choices"
	SettingsCategory  Category = "settings"
)

// Survey row types. Anything that is not a structural marker is a question.
const (
	BeginGroupRow  RowType = "begin_group"
	BeginRepeatRow RowType = "begin_repeat"
	EndGroupRow    RowType = "end_group"
	EndRepeatRow   RowType = "end_repeat"
	QuestionRow    RowType = "question"
)

// Group kinds.
const (
	GroupKindGroup  GroupKind = "group"
	GroupKindRepeat GroupKind = "repeat"
)

// Label modification tiers. The boundary between minor and major is
// inclusive on the minor side.
const (
	LabelUnchanged LabelTier = "unchanged"
	LabelMinor     LabelTier = "minor"
	LabelMajor     LabelTier = "major"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported for run tracking.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Fixed classification thresholds. These are documented constants of the
// comparison model, not tunables.
const (
	// MinorLabelThreshold splits minor from major label modifications.
	// A normalized distance of exactly this value is still minor.
	MinorLabelThreshold = 0.2

	// RenameTagThreshold is the maximum tagged-name distance at which an
	// added/removed column pair is reclassified as one rename.
	RenameTagThreshold = 0.5

	// SimilarityFloor is the minimum similarity (1 - distance) for a pair
	// to appear in the similar-labels report.
	SimilarityFloor = 0.6
)

// RecognizedSettings are the XLSForm settings keys the comparator tracks.
// Unknown keys are dropped at the ingest boundary.
var RecognizedSettings = []string{
	"form_title",
	"form_id",
	"version",
	"instance_name",
	"default_language",
	"style",
	"public_key",
	"submission_url",
	"allow_choice_duplicates",
}

// LanguageTaggablePrefixes are the survey column prefixes that may carry a
// "::language" suffix. Only these participate in the rename heuristic.
var LanguageTaggablePrefixes = []string{
	"label",
	"hint",
	"guidance_hint",
	"constraint_message",
	"required_message",
	"image",
	"audio",
	"video",
}

// AllCategories lists every comparison stage in overview order.
var AllCategories = []Category{
	ColumnsCategory,
	GroupsCategory,
	QuestionsCategory,
	ListsCategory,
	ChoicesCategory,
	SettingsCategory,
}
