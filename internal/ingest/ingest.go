// Package ingest loads form snapshot files into the comparison data model.
// Snapshots are YAML (or JSON, which YAML subsumes) documents with settings,
// columns, survey, and choices sections; every section is optional.
package ingest

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/formlens/formlens/schema"
)

// rawForm mirrors the on-disk snapshot layout. Settings stays a yaml.Node
// because mapping order must survive decoding.
type rawForm struct {
	Settings yaml.Node      `yaml:"settings"`
	Columns  []string       `yaml:"columns"`
	Survey   []rawSurveyRow `yaml:"survey"`
	Choices  []rawChoice    `yaml:"choices"`
}

type rawSurveyRow struct {
	Type         string  `yaml:"type"`
	Name         string  `yaml:"name"`
	Label        *string `yaml:"label"`
	Relevant     *string `yaml:"relevant"`
	Calculation  *string `yaml:"calculation"`
	Required     *string `yaml:"required"`
	ChoiceFilter *string `yaml:"choice_filter"`
}

type rawChoice struct {
	ListName string  `yaml:"list_name"`
	Name     string  `yaml:"name"`
	Label    *string `yaml:"label"`
}

// LoadFormFile reads and parses one form snapshot from disk.
func LoadFormFile(path string) (*schema.FormModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read form file: %w", err)
	}
	form, err := ParseForm(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse form file %s: %w", path, err)
	}
	return form, nil
}

// ParseForm decodes a form snapshot document into an immutable FormModel.
// Unknown settings keys are dropped; group trees and question sequences are
// derived later from the survey stream.
func ParseForm(data []byte) (*schema.FormModel, error) {
	var raw rawForm
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	settings, err := decodeSettings(&raw.Settings)
	if err != nil {
		return nil, err
	}

	form := &schema.FormModel{
		Settings: settings,
		Columns:  raw.Columns,
		Survey:   make([]schema.SurveyRow, 0, len(raw.Survey)),
		Choices:  make([]schema.ChoiceRecord, 0, len(raw.Choices)),
	}
	fillHeader(form)

	for i, row := range raw.Survey {
		rowType, kind := parseRowType(row.Type)
		if row.Name == "" {
			return nil, fmt.Errorf("survey row %d has no name", i)
		}
		form.Survey = append(form.Survey, schema.SurveyRow{
			Type:         rowType,
			Name:         row.Name,
			Kind:         kind,
			Label:        row.Label,
			Relevant:     row.Relevant,
			Calculation:  row.Calculation,
			Required:     row.Required,
			ChoiceFilter: row.ChoiceFilter,
		})
	}

	for i, choice := range raw.Choices {
		if choice.ListName == "" || choice.Name == "" {
			return nil, fmt.Errorf("choice row %d is missing list_name or name", i)
		}
		form.Choices = append(form.Choices, schema.ChoiceRecord{
			ListName: choice.ListName,
			Name:     choice.Name,
			Order:    i,
			Label:    choice.Label,
		})
	}

	return form, nil
}

// decodeSettings walks the settings mapping in document order, keeping only
// recognized XLSForm keys.
func decodeSettings(node *yaml.Node) ([]schema.SettingRecord, error) {
	if node.Kind == 0 || node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("settings must be a mapping, got %s", node.Tag)
	}

	recognized := make(map[string]struct{}, len(schema.RecognizedSettings))
	for _, name := range schema.RecognizedSettings {
		recognized[name] = struct{}{}
	}

	var out []schema.SettingRecord
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if _, ok := recognized[keyNode.Value]; !ok {
			continue
		}
		var value *string
		if valNode.Tag != "!!null" {
			v := valNode.Value
			value = &v
		}
		out = append(out, schema.SettingRecord{
			Name:  keyNode.Value,
			Order: len(out),
			Value: value,
		})
	}
	return out, nil
}

// fillHeader promotes the identity settings onto the model header.
func fillHeader(form *schema.FormModel) {
	for _, s := range form.Settings {
		if s.Value == nil {
			continue
		}
		switch s.Name {
		case "form_id":
			form.ID = *s.Value
		case "form_title":
			form.Title = *s.Value
		case "version":
			form.Version = *s.Value
		case "default_language":
			form.DefaultLanguage = *s.Value
		}
	}
}

// parseRowType classifies an XLSForm type cell. Both the canonical
// space-separated spelling ("begin group") and the underscore variant are
// accepted for markers; anything else is a question and keeps its type.
func parseRowType(t string) (schema.RowType, string) {
	switch strings.ReplaceAll(strings.TrimSpace(t), " ", "_") {
	case "begin_group":
		return schema.BeginGroupRow, ""
	case "begin_repeat":
		return schema.BeginRepeatRow, ""
	case "end_group":
		return schema.EndGroupRow, ""
	case "end_repeat":
		return schema.EndRepeatRow, ""
	default:
		return schema.QuestionRow, t
	}
}
