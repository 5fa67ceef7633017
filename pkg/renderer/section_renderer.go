package renderer

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/reportscan/pkg/terminal"
)

// Layout constants.
const (
	IndentWidth          = 2
	SummaryPrefix        = "Summary: "
	MetricsLabel         = "Key Metrics"
	MetricsPerRow        = 2
	MetricLabelWidth     = 22
	MetricValueWidth     = 16
	DistributionLabel    = "Distribution"
	DistributionBarWidth = 30
	DistLabelWidth       = 18
	DetailsLabel         = "Details"
	CompactBarWidth      = 10
	CompactTitleWidth    = 16
)

// SectionRenderer renders a Section to terminal text.
type SectionRenderer struct {
	config  terminal.Config
	verbose bool
}

// NewSectionRenderer creates a renderer with the given configuration.
func NewSectionRenderer(width int, verbose, noColor bool) *SectionRenderer {
	return &SectionRenderer{
		config: terminal.Config{
			Width:   width,
			NoColor: noColor,
		},
		verbose: verbose,
	}
}

// RenderCompact produces single-line output.
// Format: "Title            [████████░░] headline  message".
func (r *SectionRenderer) RenderCompact(section Section) string {
	title := terminal.PadRight(section.SectionTitle(), CompactTitleWidth)
	bar := "[" + terminal.DrawProgressBar(section.Ratio(), CompactBarWidth) + "]"
	bar = r.config.Colorize(bar, terminal.ColorForRatio(section.Ratio()))

	return fmt.Sprintf("%s %s %s  %s", title, bar, section.Headline(), section.StatusMessage())
}

// Render produces the full boxed report for a section.
func (r *SectionRenderer) Render(section Section) string {
	var parts []string

	title := r.config.Colorize(section.SectionTitle(), terminal.ColorBlue)
	headline := r.config.Colorize(section.Headline(), terminal.ColorForRatio(section.Ratio()))
	parts = append(parts, terminal.DrawHeader(title, headline, r.config.Width))

	indent := strings.Repeat(" ", IndentWidth)
	parts = append(parts, fmt.Sprintf("\n%s%s%s", indent, SummaryPrefix, section.StatusMessage()))

	if metrics := section.KeyMetrics(); len(metrics) > 0 {
		parts = append(parts, r.renderMetrics(metrics, indent))
	}

	if distribution := section.Distribution(); len(distribution) > 0 {
		parts = append(parts, r.renderDistribution(distribution, indent))
	}

	if r.verbose {
		if details := section.Details(); len(details.Rows) > 0 {
			parts = append(parts, r.renderDetails(details, indent))
		}
	}

	return strings.Join(parts, "\n")
}

func (r *SectionRenderer) blockHeader(label, indent string) []string {
	separatorWidth := r.config.Width - (IndentWidth * 2)

	return []string{
		"",
		indent + r.config.Colorize(label, terminal.ColorGray),
		indent + terminal.DrawSeparator(separatorWidth),
	}
}

func (r *SectionRenderer) renderMetrics(metrics []Metric, indent string) string {
	lines := r.blockHeader(MetricsLabel, indent)

	for i := 0; i < len(metrics); i += MetricsPerRow {
		var row strings.Builder

		for j := 0; j < MetricsPerRow && i+j < len(metrics); j++ {
			m := metrics[i+j]
			row.WriteString(terminal.PadRight(m.Label, MetricLabelWidth))
			row.WriteString(terminal.PadRight(m.Value, MetricValueWidth))
		}

		lines = append(lines, indent+strings.TrimRight(row.String(), " "))
	}

	return strings.Join(lines, "\n")
}

func (r *SectionRenderer) renderDistribution(items []DistributionItem, indent string) string {
	lines := r.blockHeader(DistributionLabel, indent)

	for _, item := range items {
		lines = append(lines, indent+terminal.DrawPercentBar(item.Label, item.Ratio, item.Count, DistLabelWidth, DistributionBarWidth))
	}

	return strings.Join(lines, "\n")
}

func (r *SectionRenderer) renderDetails(details Table, indent string) string {
	lines := r.blockHeader(DetailsLabel, indent)

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false

	header := make(table.Row, len(details.Header))
	for i, h := range details.Header {
		header[i] = h
	}

	tbl.AppendHeader(header)

	for _, cells := range details.Rows {
		row := make(table.Row, len(cells))
		for i, c := range cells {
			row[i] = c
		}

		tbl.AppendRow(row)
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d", len(details.Rows))})

	for line := range strings.SplitSeq(tbl.Render(), "\n") {
		lines = append(lines, indent+line)
	}

	return strings.Join(lines, "\n")
}
