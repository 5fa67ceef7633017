// Package renderer turns analysis results into text, compact, JSON, YAML and
// HTML plot output.
package renderer

// Metric is a labelled value shown in the key metrics block.
type Metric struct {
	Label string
	Value string
}

// DistributionItem is one percent bar in the distribution block.
type DistributionItem struct {
	Label string
	Ratio float64
	Count int
}

// Table is the per-item detail shown in verbose mode.
type Table struct {
	Header []string
	Rows   [][]string
}

// Section is what the text and compact renderers draw.
type Section interface {
	// SectionTitle is the header text, e.g. "REPORT SAFETY".
	SectionTitle() string
	// Headline is the right-aligned header text, usually the answer.
	Headline() string
	// Ratio is a 0-1 health figure used for colouring.
	Ratio() float64
	// StatusMessage is a one-line summary.
	StatusMessage() string
	KeyMetrics() []Metric
	Distribution() []DistributionItem
	// Details is rendered only in verbose mode. It may be empty.
	Details() Table
}
