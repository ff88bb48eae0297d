package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/formlens/formlens/schema"
)

// Color variables for console output.
var (
	AddedColor          = color.New(color.FgGreen)               // new entity in the current form.
	RemovedColor        = color.New(color.FgRed)                 // entity gone from the current form.
	ModifiedColor       = color.New(color.FgYellow)              // matched entity whose fields changed.
	LikelyModifiedColor = color.New(color.FgMagenta, color.Bold) // heuristic rename, worth a second look.
	UnchangedColor      = color.New(color.FgCyan)                // informational only.
)

// GetPlainLabel returns the plain text label for a diff status. This is the
// core form used for CSV, JSON, and parquet output.
func GetPlainLabel(status schema.Status) string {
	return string(status)
}

// GetColorLabel returns a colored status label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(status schema.Status) string {
	text := GetPlainLabel(status)

	switch status {
	case schema.AddedStatus:
		return AddedColor.Sprint(text)
	case schema.RemovedStatus:
		return RemovedColor.Sprint(text)
	case schema.ModifiedStatus:
		return ModifiedColor.Sprint(text)
	case schema.LikelyModifiedStatus:
		return LikelyModifiedColor.Sprint(text)
	default: // "unchanged"
		return UnchangedColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetRunsDBFilePath returns the path to the SQLite DB file for run tracking.
func GetRunsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".formlens_runs.db"
	}
	return filepath.Join(homeDir, ".formlens_runs.db")
}

// TruncateCell truncates a table cell to a maximum width with an ellipsis
// suffix. Requires maxWidth > 3 so there is space for both the "..." and at
// least one character of content.
func TruncateCell(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
