package renderer

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Output formats.
const (
	// FormatText is the boxed human-readable report.
	FormatText = "text"
	// FormatCompact is one line per report section.
	FormatCompact = "compact"
	// FormatJSON is schema-validated JSON.
	FormatJSON = "json"
	// FormatYAML is YAML with the same shape as JSON.
	FormatYAML = "yaml"
	// FormatPlot is a standalone HTML page of charts.
	FormatPlot = "plot"

	formatYMLAlias = "yml"
)

// ErrUnsupportedFormat indicates the requested output format is not supported.
var ErrUnsupportedFormat = errors.New("unsupported format")

// NormalizeFormat canonicalizes a user-provided output format string.
func NormalizeFormat(format string) string {
	normalized := strings.ToLower(strings.TrimSpace(format))
	if normalized == formatYMLAlias {
		return FormatYAML
	}

	return normalized
}

// Formats returns the canonical output formats.
func Formats() []string {
	return []string{FormatText, FormatCompact, FormatJSON, FormatYAML, FormatPlot}
}

// ValidateFormat returns the canonical form of format or ErrUnsupportedFormat.
func ValidateFormat(format string) (string, error) {
	normalized := NormalizeFormat(format)
	if slices.Contains(Formats(), normalized) {
		return normalized, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}
