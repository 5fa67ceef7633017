package analysis

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/reportscan/pkg/renderer"
	"github.com/Sumatoshi-tech/reportscan/pkg/safety"
	"github.com/Sumatoshi-tech/reportscan/pkg/terminal"
)

// SafetyResult is the outcome of a safety run.
type SafetyResult struct {
	Rule       safety.Rule
	Summary    safety.Summary
	Violations map[safety.Kind]int
	Verdicts   []safety.Verdict
}

// NewSafetyResult aggregates verdicts produced under rule.
func NewSafetyResult(rule safety.Rule, verdicts []safety.Verdict) *SafetyResult {
	return &SafetyResult{
		Rule:       rule,
		Summary:    safety.Tally(verdicts),
		Violations: safety.ViolationCounts(verdicts),
		Verdicts:   verdicts,
	}
}

// SafetyJSON is the serialized form of a SafetyResult.
type SafetyJSON struct {
	Kind             string         `json:"kind"               yaml:"kind"`
	Rule             RuleJSON       `json:"rule"               yaml:"rule"`
	Reports          int            `json:"reports"            yaml:"reports"`
	Safe             int            `json:"safe"               yaml:"safe"`
	SafeWithDampener int            `json:"safe_with_dampener" yaml:"safe_with_dampener"`
	Dampened         int            `json:"dampened"           yaml:"dampened"`
	Unsafe           int            `json:"unsafe"             yaml:"unsafe"`
	Violations       map[string]int `json:"violations"         yaml:"violations"`
	Verdicts         []VerdictJSON  `json:"verdicts"           yaml:"verdicts"`
}

// RuleJSON is the serialized step rule.
type RuleJSON struct {
	MinStep uint32 `json:"min_step" yaml:"min_step"`
	MaxStep uint32 `json:"max_step" yaml:"max_step"`
}

// VerdictJSON is one serialized verdict.
type VerdictJSON struct {
	Index            int            `json:"index"               yaml:"index"`
	Length           int            `json:"length"              yaml:"length"`
	Direction        string         `json:"direction"           yaml:"direction"`
	Safe             bool           `json:"safe"                yaml:"safe"`
	SafeWithDampener bool           `json:"safe_with_dampener"  yaml:"safe_with_dampener"`
	Removed          int            `json:"removed"             yaml:"removed"`
	Violation        *ViolationJSON `json:"violation,omitempty" yaml:"violation,omitempty"`
}

// ViolationJSON is the first rule violation of a report.
type ViolationJSON struct {
	Kind string `json:"kind" yaml:"kind"`
	At   int    `json:"at"   yaml:"at"`
}

// Kind implements renderer.MetricsOutput.
func (r *SafetyResult) Kind() string { return KindSafety }

// ToJSON implements renderer.MetricsOutput.
func (r *SafetyResult) ToJSON() any {
	violations := make(map[string]int, len(r.Violations))
	for kind, count := range r.Violations {
		violations[kind.String()] = count
	}

	verdicts := make([]VerdictJSON, len(r.Verdicts))
	for i, vd := range r.Verdicts {
		verdicts[i] = VerdictJSON{
			Index:            vd.Index,
			Length:           vd.Length,
			Direction:        vd.Direction.String(),
			Safe:             vd.Safe,
			SafeWithDampener: vd.SafeWithDampener,
			Removed:          vd.Removed,
		}

		if !vd.Violation.OK() {
			verdicts[i].Violation = &ViolationJSON{Kind: vd.Violation.Kind.String(), At: vd.Violation.At}
		}
	}

	return SafetyJSON{
		Kind:             KindSafety,
		Rule:             RuleJSON{MinStep: r.Rule.MinStep, MaxStep: r.Rule.MaxStep},
		Reports:          r.Summary.Reports,
		Safe:             r.Summary.Safe,
		SafeWithDampener: r.Summary.SafeWithDampener,
		Dampened:         r.Summary.Dampened(),
		Unsafe:           r.Summary.Unsafe(),
		Violations:       violations,
		Verdicts:         verdicts,
	}
}

// ToYAML implements renderer.MetricsOutput.
func (r *SafetyResult) ToYAML() any { return r.ToJSON() }

// Schema implements renderer.Report.
func (r *SafetyResult) Schema() []byte { return mustSchema(KindSafety) }

// SectionTitle implements renderer.Section.
func (r *SafetyResult) SectionTitle() string { return "REPORT SAFETY" }

// Headline implements renderer.Section.
func (r *SafetyResult) Headline() string {
	return fmt.Sprintf("safe %s / dampened %s",
		humanize.Comma(int64(r.Summary.Safe)), humanize.Comma(int64(r.Summary.SafeWithDampener)))
}

// Ratio is the share of reports safe with the dampener.
func (r *SafetyResult) Ratio() float64 {
	if r.Summary.Reports == 0 {
		return 1
	}

	return terminal.Ratio(r.Summary.SafeWithDampener, r.Summary.Reports)
}

// StatusMessage implements renderer.Section.
func (r *SafetyResult) StatusMessage() string {
	s := r.Summary

	switch {
	case s.Reports == 0:
		return "No reports to evaluate"
	case s.Unsafe() == 0 && s.Dampened() == 0:
		return "Every report is safe"
	case s.Unsafe() == 0:
		return fmt.Sprintf("Every report is safe once the dampener removes one level from %d of them", s.Dampened())
	default:
		return fmt.Sprintf("%d of %d reports stay unsafe even with the dampener", s.Unsafe(), s.Reports)
	}
}

// KeyMetrics implements renderer.Section.
func (r *SafetyResult) KeyMetrics() []renderer.Metric {
	s := r.Summary

	return []renderer.Metric{
		{Label: "Reports", Value: humanize.Comma(int64(s.Reports))},
		{Label: "Step rule", Value: fmt.Sprintf("%d..%d", r.Rule.MinStep, r.Rule.MaxStep)},
		{Label: "Safe", Value: humanize.Comma(int64(s.Safe))},
		{Label: "Safe (dampener)", Value: humanize.Comma(int64(s.SafeWithDampener))},
		{Label: "Dampened", Value: humanize.Comma(int64(s.Dampened()))},
		{Label: "Unsafe", Value: humanize.Comma(int64(s.Unsafe()))},
	}
}

// Distribution implements renderer.Section.
func (r *SafetyResult) Distribution() []renderer.DistributionItem {
	s := r.Summary
	if s.Reports == 0 {
		return nil
	}

	items := []renderer.DistributionItem{
		{Label: "Safe", Ratio: terminal.Ratio(s.Safe, s.Reports), Count: s.Safe},
		{Label: "Dampened", Ratio: terminal.Ratio(s.Dampened(), s.Reports), Count: s.Dampened()},
		{Label: "Unsafe", Ratio: terminal.Ratio(s.Unsafe(), s.Reports), Count: s.Unsafe()},
	}

	unsafeTotal := s.Reports - s.Safe

	for _, kind := range safety.Kinds() {
		if count := r.Violations[kind]; count > 0 {
			items = append(items, renderer.DistributionItem{
				Label: "  " + kind.String(),
				Ratio: terminal.Ratio(count, unsafeTotal),
				Count: count,
			})
		}
	}

	return items
}

// Details lists every verdict.
func (r *SafetyResult) Details() renderer.Table {
	rows := make([][]string, len(r.Verdicts))

	for i, vd := range r.Verdicts {
		violation, removed := "-", "-"
		if !vd.Violation.OK() {
			violation = fmt.Sprintf("%s@%d", vd.Violation.Kind, vd.Violation.At)
		}

		if vd.Dampened() {
			removed = strconv.Itoa(vd.Removed)
		}

		rows[i] = []string{
			strconv.Itoa(vd.Index + 1),
			strconv.Itoa(vd.Length),
			vd.Direction.String(),
			yesNo(vd.Safe),
			yesNo(vd.SafeWithDampener),
			removed,
			violation,
		}
	}

	return renderer.Table{
		Header: []string{"#", "levels", "direction", "safe", "dampened", "removed", "violation"},
		Rows:   rows,
	}
}

// Charts implements renderer.Plottable.
func (r *SafetyResult) Charts() []renderer.Chart {
	s := r.Summary

	kinds := safety.Kinds()
	labels := make([]string, len(kinds))
	counts := make([]int, len(kinds))

	for i, kind := range kinds {
		labels[i] = kind.String()
		counts[i] = r.Violations[kind]
	}

	return []renderer.Chart{
		{
			Title:    "Report verdicts",
			Subtitle: fmt.Sprintf("%d reports, steps %d..%d", s.Reports, r.Rule.MinStep, r.Rule.MaxStep),
			Labels:   []string{"safe", "dampened", "unsafe"},
			Series:   []renderer.BarSeries{{Name: "reports", Data: []int{s.Safe, s.Dampened(), s.Unsafe()}}},
			YAxis:    "reports",
		},
		{
			Title:  "First violation",
			Labels: labels,
			Series: []renderer.BarSeries{{Name: "reports", Data: counts}},
			YAxis:  "reports",
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}
