// Package terminal renders the text report: headers, percent bars and colour.
package terminal

import (
	"os"
	"strconv"
)

// Width bounds.
const (
	DefaultWidth = 80
	MinWidth     = 60
	MaxWidth     = 120
)

// Config holds terminal rendering configuration.
type Config struct {
	Width   int
	NoColor bool
}

// NewConfig creates a Config from COLUMNS and NO_COLOR.
func NewConfig() Config {
	return Config{
		Width:   DetectWidth(),
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}

// DetectWidth returns the COLUMNS width clamped to [MinWidth, MaxWidth],
// or DefaultWidth if unset or invalid.
func DetectWidth() int {
	columnsEnv := os.Getenv("COLUMNS")
	if columnsEnv == "" {
		return DefaultWidth
	}

	width, err := strconv.Atoi(columnsEnv)
	if err != nil || width <= 0 {
		return DefaultWidth
	}

	return min(max(width, MinWidth), MaxWidth)
}
