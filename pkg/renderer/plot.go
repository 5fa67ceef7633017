package renderer

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Chart dimensions.
const (
	chartWidth  = "100%"
	chartHeight = "420px"
)

// BarSeries is one named series of a bar chart.
type BarSeries struct {
	Name string
	Data []int
}

// Chart is a bar chart over shared category labels.
type Chart struct {
	Title    string
	Subtitle string
	Labels   []string
	Series   []BarSeries
	YAxis    string
}

// Plottable results contribute charts to the plot page.
type Plottable interface {
	Charts() []Chart
}

// BuildBarChart converts a Chart into a go-echarts bar chart.
func BuildBarChart(chart Chart) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: chart.Title, Subtitle: chart.Subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "10%"}),
		charts.WithYAxisOpts(opts.YAxis{Name: chart.YAxis}),
	)

	bar.SetXAxis(chart.Labels)

	for _, s := range chart.Series {
		data := make([]opts.BarData, len(s.Data))
		for i, v := range s.Data {
			data[i] = opts.BarData{Value: v}
		}

		bar.AddSeries(s.Name, data)
	}

	return bar
}

// RenderPlot writes a standalone HTML page with one bar chart per Chart.
func RenderPlot(w io.Writer, title string, p Plottable) error {
	page := components.NewPage()
	page.SetPageTitle(title)

	for _, chart := range p.Charts() {
		page.AddCharts(BuildBarChart(chart))
	}

	err := page.Render(w)
	if err != nil {
		return fmt.Errorf("render plot: %w", err)
	}

	return nil
}
