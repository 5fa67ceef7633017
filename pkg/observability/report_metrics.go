package observability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricReportsEvaluated   = "reportscan.reports.evaluated.total"
	metricReportsSafe        = "reportscan.reports.safe.total"
	metricPairsTotal         = "reportscan.pairs.total"
	metricEvaluationDuration = "reportscan.evaluation.duration.seconds"

	attrDampener = "dampener"
	attrKind     = "kind"
)

// ReportMetrics holds instruments for report and list evaluation.
type ReportMetrics struct {
	reportsEvaluated   metric.Int64Counter
	reportsSafe        metric.Int64Counter
	pairsTotal         metric.Int64Counter
	evaluationDuration metric.Float64Histogram
}

// SafetyStats summarises one safety evaluation.
type SafetyStats struct {
	Reports          int
	Safe             int
	SafeWithDampener int
	Duration         time.Duration
}

// NewReportMetrics creates report metric instruments from the given meter.
func NewReportMetrics(mt metric.Meter) (*ReportMetrics, error) {
	evaluated, err := mt.Int64Counter(metricReportsEvaluated,
		metric.WithDescription("Total reports evaluated"),
		metric.WithUnit("{report}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricReportsEvaluated, err)
	}

	safe, err := mt.Int64Counter(metricReportsSafe,
		metric.WithDescription("Reports judged safe, split by dampener use"),
		metric.WithUnit("{report}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricReportsSafe, err)
	}

	pairs, err := mt.Int64Counter(metricPairsTotal,
		metric.WithDescription("Total list pairs compared"),
		metric.WithUnit("{pair}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricPairsTotal, err)
	}

	duration, err := mt.Float64Histogram(metricEvaluationDuration,
		metric.WithDescription("Evaluation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricEvaluationDuration, err)
	}

	return &ReportMetrics{
		reportsEvaluated:   evaluated,
		reportsSafe:        safe,
		pairsTotal:         pairs,
		evaluationDuration: duration,
	}, nil
}

// RecordSafety records one safety evaluation. Safe on a nil receiver.
func (rm *ReportMetrics) RecordSafety(ctx context.Context, stats SafetyStats) {
	if rm == nil {
		return
	}

	rm.reportsEvaluated.Add(ctx, int64(stats.Reports))
	rm.reportsSafe.Add(ctx, int64(stats.Safe), metric.WithAttributes(attribute.String(attrDampener, strconv.FormatBool(false))))
	rm.reportsSafe.Add(ctx, int64(stats.SafeWithDampener), metric.WithAttributes(attribute.String(attrDampener, strconv.FormatBool(true))))
	rm.evaluationDuration.Record(ctx, stats.Duration.Seconds(), metric.WithAttributes(attribute.String(attrKind, "safety")))
}

// RecordDistance records one distance computation over n pairs. Safe on a nil receiver.
func (rm *ReportMetrics) RecordDistance(ctx context.Context, pairs int, duration time.Duration) {
	if rm == nil {
		return
	}

	rm.pairsTotal.Add(ctx, int64(pairs))
	rm.evaluationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String(attrKind, "distance")))
}
