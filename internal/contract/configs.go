package contract

import (
	"fmt"
	"strings"

	"github.com/formlens/formlens/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 2
	DefaultRunLimit  = 25
	MaxRunLimit      = 1000
)

// Config holds the validated runtime configuration for a comparison.
type Config struct {
	CurrentPath   string
	ReferencePath string

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	UseColors  bool
	Detail     bool
	Width      int

	// Stages holds the enabled comparison categories; empty means all.
	Stages []schema.Category

	RunLimit     int
	StoreBackend schema.DatabaseBackend
	StoreConnect string
}

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	Current   string `mapstructure:"current"`
	Reference string `mapstructure:"reference"`

	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	Color      string `mapstructure:"color"`
	Detail     bool   `mapstructure:"detail"`
	Width      int    `mapstructure:"width"`

	Stages string `mapstructure:"stages"`

	RunLimit     int    `mapstructure:"run-limit"`
	StoreBackend string `mapstructure:"store-backend"`
	StoreConnect string `mapstructure:"store-db-connect"`
}

// Validate converts the raw input into a validated Config.
func (in *ConfigRawInput) Validate() (*Config, error) {
	cfg := &Config{
		CurrentPath:   in.Current,
		ReferencePath: in.Reference,
		OutputFile:    in.OutputFile,
		Precision:     in.Precision,
		Detail:        in.Detail,
		Width:         in.Width,
		RunLimit:      in.RunLimit,
		StoreConnect:  in.StoreConnect,
	}

	switch out := schema.OutputMode(strings.ToLower(in.Output)); out {
	case "", schema.TextOut:
		cfg.Output = schema.TextOut
	case schema.CSVOut, schema.JSONOut, schema.ParquetOut:
		cfg.Output = out
	default:
		return nil, fmt.Errorf("invalid output mode: %s", in.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return nil, fmt.Errorf("parquet output requires --output-file")
	}

	useColors := true
	if in.Color != "" {
		v, err := ParseBoolString(in.Color)
		if err != nil {
			return nil, err
		}
		useColors = v
	}
	cfg.UseColors = useColors

	if cfg.Precision < 0 {
		return nil, fmt.Errorf("precision must be non-negative, got %d", cfg.Precision)
	}
	if cfg.Precision == 0 {
		cfg.Precision = DefaultPrecision
	}

	stages, err := ParseStages(in.Stages)
	if err != nil {
		return nil, err
	}
	cfg.Stages = stages

	switch backend := schema.DatabaseBackend(strings.ToLower(in.StoreBackend)); backend {
	case "":
		cfg.StoreBackend = schema.SQLiteBackend
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend, schema.NoneBackend:
		cfg.StoreBackend = backend
	default:
		return nil, fmt.Errorf("invalid store backend: %s", in.StoreBackend)
	}

	if cfg.RunLimit < 0 {
		return nil, fmt.Errorf("run limit must be non-negative, got %d", cfg.RunLimit)
	}
	if cfg.RunLimit == 0 {
		cfg.RunLimit = DefaultRunLimit
	}
	if cfg.RunLimit > MaxRunLimit {
		cfg.RunLimit = MaxRunLimit
	}

	return cfg, nil
}

// ParseStages parses a comma-separated stage list. Each entry may be a
// category name or one of the short aliases used on the command line.
func ParseStages(s string) ([]schema.Category, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	aliases := map[string]schema.Category{
		"settings":  schema.SettingsCategory,
		"columns":   schema.ColumnsCategory,
		"groups":    schema.GroupsCategory,
		"lists":     schema.ListsCategory,
		"choices":   schema.ChoicesCategory,
		"questions": schema.QuestionsCategory,
	}
	var out []schema.Category
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(strings.ToLower(part))
		if name == "" {
			continue
		}
		if cat, ok := aliases[name]; ok {
			out = append(out, cat)
			continue
		}
		found := false
		for _, cat := range schema.AllCategories {
			if name == string(cat) {
				out = append(out, cat)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown stage: %s", part)
		}
	}
	return out, nil
}

// StageMap converts the enabled stage list into the toggle map consumed by
// the orchestrator. Nil means all stages.
func (c *Config) StageMap() map[schema.Category]bool {
	if len(c.Stages) == 0 {
		return nil
	}
	m := make(map[schema.Category]bool, len(c.Stages))
	for _, s := range c.Stages {
		m[s] = true
	}
	return m
}

// Clone returns a deep copy of the config, used when a handler needs an
// isolated variant.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Stages = append([]schema.Category(nil), c.Stages...)
	return &clone
}
