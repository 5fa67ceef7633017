package renderer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrNoReports is returned when Write is called without reports.
var ErrNoReports = errors.New("no reports to write")

// Report is a result every format can render.
type Report interface {
	Section
	MetricsOutput
	Plottable
	// Schema returns the JSON schema the JSON form must satisfy.
	Schema() []byte
}

// Options control Write.
type Options struct {
	Format  string
	Width   int
	Verbose bool
	NoColor bool
}

// Write renders reports to w in the requested format. A single report is
// written as its own document; several are keyed by Kind in one document.
func Write(w io.Writer, o Options, reports ...Report) error {
	if len(reports) == 0 {
		return ErrNoReports
	}

	format, err := ValidateFormat(o.Format)
	if err != nil {
		return err
	}

	switch format {
	case FormatText:
		err = writeText(w, o, reports)
	case FormatCompact:
		err = writeCompact(w, o, reports)
	case FormatJSON:
		err = writeJSON(w, reports)
	case FormatYAML:
		err = writeYAML(w, reports)
	case FormatPlot:
		err = RenderPlot(w, reports[0].SectionTitle(), plotSet(reports))
	}

	if err != nil {
		return fmt.Errorf("write %s output: %w", format, err)
	}

	return nil
}

func writeText(w io.Writer, o Options, reports []Report) error {
	sr := NewSectionRenderer(o.Width, o.Verbose, o.NoColor)

	for i, report := range reports {
		if i > 0 {
			_, err := fmt.Fprintln(w)
			if err != nil {
				return err //nolint:wrapcheck // wrapped by Write.
			}
		}

		_, err := fmt.Fprintln(w, sr.Render(report))
		if err != nil {
			return err //nolint:wrapcheck // wrapped by Write.
		}
	}

	return nil
}

func writeCompact(w io.Writer, o Options, reports []Report) error {
	sr := NewSectionRenderer(o.Width, false, o.NoColor)

	for _, report := range reports {
		_, err := fmt.Fprintln(w, sr.RenderCompact(report))
		if err != nil {
			return err //nolint:wrapcheck // wrapped by Write.
		}
	}

	return nil
}

// validatedJSON renders one report and checks it against its schema.
func validatedJSON(report Report) ([]byte, error) {
	data, err := RenderMetricsJSON(report)
	if err != nil {
		return nil, err
	}

	err = ValidateJSON(report.Schema(), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", report.Kind(), err)
	}

	return data, nil
}

func writeJSON(w io.Writer, reports []Report) error {
	if len(reports) == 1 {
		data, err := validatedJSON(reports[0])
		if err != nil {
			return err
		}

		_, err = w.Write(append(data, '\n'))

		return err //nolint:wrapcheck // wrapped by Write.
	}

	combined := make(map[string]json.RawMessage, len(reports))

	for _, report := range reports {
		data, err := validatedJSON(report)
		if err != nil {
			return err
		}

		combined[report.Kind()] = data
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")

	err := enc.Encode(combined)
	if err != nil {
		return fmt.Errorf("marshal combined JSON: %w", err)
	}

	_, err = w.Write(buf.Bytes())

	return err //nolint:wrapcheck // wrapped by Write.
}

func writeYAML(w io.Writer, reports []Report) error {
	if len(reports) == 1 {
		data, err := RenderMetricsYAML(reports[0])
		if err != nil {
			return err
		}

		_, err = w.Write(data)

		return err //nolint:wrapcheck // wrapped by Write.
	}

	combined := make(map[string]any, len(reports))
	for _, report := range reports {
		combined[report.Kind()] = report.ToYAML()
	}

	data, err := yaml.Marshal(combined)
	if err != nil {
		return fmt.Errorf("marshal combined YAML: %w", err)
	}

	_, err = w.Write(data)

	return err //nolint:wrapcheck // wrapped by Write.
}

// plotSet merges the charts of several reports onto one page.
type plotSet []Report

func (p plotSet) Charts() []Chart {
	var out []Chart
	for _, report := range p {
		out = append(out, report.Charts()...)
	}

	return out
}
