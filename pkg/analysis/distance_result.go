package analysis

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/reportscan/pkg/distance"
	"github.com/Sumatoshi-tech/reportscan/pkg/renderer"
	"github.com/Sumatoshi-tech/reportscan/pkg/safeconv"
	"github.com/Sumatoshi-tech/reportscan/pkg/terminal"
)

// DistanceResult is the outcome of a distance run.
type DistanceResult struct {
	Pairs           int
	TotalDistance   uint64
	SimilarityScore uint64
	DistinctLeft    int
	DistinctRight   int
	SharedValues    int
	// Rows is only filled when details were requested.
	Rows []distance.Row
}

// DistanceJSON is the serialized form of a DistanceResult.
type DistanceJSON struct {
	Kind            string    `json:"kind"             yaml:"kind"`
	Pairs           int       `json:"pairs"            yaml:"pairs"`
	TotalDistance   uint64    `json:"total_distance"   yaml:"total_distance"`
	SimilarityScore uint64    `json:"similarity_score" yaml:"similarity_score"`
	DistinctLeft    int       `json:"distinct_left"    yaml:"distinct_left"`
	DistinctRight   int       `json:"distinct_right"   yaml:"distinct_right"`
	SharedValues    int       `json:"shared_values"    yaml:"shared_values"`
	Rows            []RowJSON `json:"rows,omitempty"   yaml:"rows,omitempty"`
}

// RowJSON is one serialized sorted row.
type RowJSON struct {
	Left     uint32 `json:"left"     yaml:"left"`
	Right    uint32 `json:"right"    yaml:"right"`
	Distance uint64 `json:"distance" yaml:"distance"`
}

// Kind implements renderer.MetricsOutput.
func (r *DistanceResult) Kind() string { return KindDistance }

// ToJSON implements renderer.MetricsOutput.
func (r *DistanceResult) ToJSON() any {
	var rows []RowJSON
	if len(r.Rows) > 0 {
		rows = make([]RowJSON, len(r.Rows))
		for i, row := range r.Rows {
			rows[i] = RowJSON(row)
		}
	}

	return DistanceJSON{
		Kind:            KindDistance,
		Pairs:           r.Pairs,
		TotalDistance:   r.TotalDistance,
		SimilarityScore: r.SimilarityScore,
		DistinctLeft:    r.DistinctLeft,
		DistinctRight:   r.DistinctRight,
		SharedValues:    r.SharedValues,
		Rows:            rows,
	}
}

// ToYAML implements renderer.MetricsOutput.
func (r *DistanceResult) ToYAML() any { return r.ToJSON() }

// Schema implements renderer.Report.
func (r *DistanceResult) Schema() []byte { return mustSchema(KindDistance) }

// SectionTitle implements renderer.Section.
func (r *DistanceResult) SectionTitle() string { return "LIST DISTANCE" }

// Headline implements renderer.Section.
func (r *DistanceResult) Headline() string {
	return "distance " + humanize.Comma(safeconv.Uint64ToInt64(r.TotalDistance))
}

// Ratio is the share of distinct left values that also appear on the right.
func (r *DistanceResult) Ratio() float64 {
	if r.DistinctLeft == 0 {
		return 1
	}

	return terminal.Ratio(r.SharedValues, r.DistinctLeft)
}

// StatusMessage implements renderer.Section.
func (r *DistanceResult) StatusMessage() string {
	if r.Pairs == 0 {
		return "Both lists are empty"
	}

	return fmt.Sprintf("Similarity score %s over %s pairs",
		humanize.Comma(safeconv.Uint64ToInt64(r.SimilarityScore)), humanize.Comma(int64(r.Pairs)))
}

// KeyMetrics implements renderer.Section.
func (r *DistanceResult) KeyMetrics() []renderer.Metric {
	return []renderer.Metric{
		{Label: "Pairs", Value: humanize.Comma(int64(r.Pairs))},
		{Label: "Total distance", Value: strconv.FormatUint(r.TotalDistance, 10)},
		{Label: "Similarity score", Value: strconv.FormatUint(r.SimilarityScore, 10)},
		{Label: "Shared values", Value: humanize.Comma(int64(r.SharedValues))},
		{Label: "Distinct left", Value: humanize.Comma(int64(r.DistinctLeft))},
		{Label: "Distinct right", Value: humanize.Comma(int64(r.DistinctRight))},
	}
}

// Distribution implements renderer.Section.
func (r *DistanceResult) Distribution() []renderer.DistributionItem {
	if r.DistinctLeft == 0 {
		return nil
	}

	return []renderer.DistributionItem{
		{Label: "Shared", Ratio: r.Ratio(), Count: r.SharedValues},
		{Label: "Left only", Ratio: 1 - r.Ratio(), Count: r.DistinctLeft - r.SharedValues},
	}
}

// Details lists the sorted pairing when it was computed.
func (r *DistanceResult) Details() renderer.Table {
	rows := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			strconv.FormatUint(uint64(row.Left), 10),
			strconv.FormatUint(uint64(row.Right), 10),
			strconv.FormatUint(row.Distance, 10),
		}
	}

	return renderer.Table{Header: []string{"rank", "left", "right", "distance"}, Rows: rows}
}

// Charts implements renderer.Plottable.
func (r *DistanceResult) Charts() []renderer.Chart {
	charts := []renderer.Chart{{
		Title:    "Distinct values",
		Subtitle: fmt.Sprintf("%d pairs", r.Pairs),
		Labels:   []string{"left", "right", "shared"},
		Series:   []renderer.BarSeries{{Name: "values", Data: []int{r.DistinctLeft, r.DistinctRight, r.SharedValues}}},
		YAxis:    "values",
	}}

	if len(r.Rows) == 0 {
		return charts
	}

	labels := make([]string, len(r.Rows))
	data := make([]int, len(r.Rows))

	for i, row := range r.Rows {
		labels[i] = strconv.Itoa(i + 1)
		data[i] = safeconv.Uint64ToInt(row.Distance)
	}

	return append(charts, renderer.Chart{
		Title:  "Distance by rank",
		Labels: labels,
		Series: []renderer.BarSeries{{Name: "distance", Data: data}},
		YAxis:  "distance",
	})
}
