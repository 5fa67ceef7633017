package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricRequestsTotal    = "reportscan.requests.total"
	metricRequestDuration  = "reportscan.request.duration.seconds"
	metricErrorsTotal      = "reportscan.errors.total"
	metricInflightRequests = "reportscan.inflight.requests"

	attrOp     = "op"
	attrStatus = "status"
	attrReason = "reason"

	// StatusOK marks a successful request.
	StatusOK = "ok"
	// StatusError marks a failed request.
	StatusError = "error"
)

// Error reasons recorded on reportscan.errors.total.
const (
	ReasonCanceled = "canceled"
	ReasonTimeout  = "timeout"
	ReasonFailed   = "failed"
)

// durationBucketBoundaries spans 10us to 10s. A whole analysis of a typical
// input finishes well under a millisecond, so most of the resolution sits there.
var durationBucketBoundaries = []float64{
	0.00001, 0.000025, 0.00005, 0.0001, 0.00025, 0.0005,
	0.001, 0.0025, 0.005, 0.01, 0.05, 0.25, 1, 10,
}

// REDMetrics holds the OTel instruments for Rate, Error, Duration metrics
// of CLI commands and MCP tool calls.
type REDMetrics struct {
	requestsTotal    metric.Int64Counter
	requestDuration  metric.Float64Histogram
	errorsTotal      metric.Int64Counter
	inflightRequests metric.Int64UpDownCounter
}

// NewREDMetrics creates RED metric instruments from the given meter.
func NewREDMetrics(mt metric.Meter) (*REDMetrics, error) {
	reqTotal, err := mt.Int64Counter(metricRequestsTotal,
		metric.WithDescription("Commands and tool calls handled"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRequestsTotal, err)
	}

	reqDuration, err := mt.Float64Histogram(metricRequestDuration,
		metric.WithDescription("Wall time of a command or tool call, parsing included"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRequestDuration, err)
	}

	errTotal, err := mt.Int64Counter(metricErrorsTotal,
		metric.WithDescription("Failed commands and tool calls by reason"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricErrorsTotal, err)
	}

	inflight, err := mt.Int64UpDownCounter(metricInflightRequests,
		metric.WithDescription("Commands and tool calls in progress"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricInflightRequests, err)
	}

	return &REDMetrics{
		requestsTotal:    reqTotal,
		requestDuration:  reqDuration,
		errorsTotal:      errTotal,
		inflightRequests: inflight,
	}, nil
}

// Measure runs fn as operation op: it tracks it in flight, records its
// outcome and duration, and tags ctx with op so log records carry it.
// Safe on a nil receiver, in which case only the context is tagged.
func (rm *REDMetrics) Measure(ctx context.Context, op string, fn func(context.Context) error) error {
	ctx = WithOperation(ctx, op)

	if rm == nil {
		return fn(ctx)
	}

	start := time.Now()
	done := rm.TrackInflight(ctx, op)

	err := fn(ctx)

	done()

	status := StatusOK
	if err != nil {
		status = StatusError
	}

	rm.record(ctx, op, status, ErrorReason(err), time.Since(start))

	return err
}

// RecordRequest records a completed request. Safe on a nil receiver.
func (rm *REDMetrics) RecordRequest(ctx context.Context, op, status string, duration time.Duration) {
	if rm == nil {
		return
	}

	rm.record(ctx, op, status, ReasonFailed, duration)
}

func (rm *REDMetrics) record(ctx context.Context, op, status, reason string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrOp, op),
		attribute.String(attrStatus, status),
	)

	rm.requestsTotal.Add(ctx, 1, attrs)
	rm.requestDuration.Record(ctx, duration.Seconds(), attrs)

	if status == StatusError {
		rm.errorsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String(attrOp, op),
			attribute.String(attrReason, reason),
		))
	}
}

// TrackInflight increments the in-flight gauge and returns a function to decrement it.
func (rm *REDMetrics) TrackInflight(ctx context.Context, op string) func() {
	if rm == nil {
		return func() {}
	}

	attrs := metric.WithAttributes(attribute.String(attrOp, op))
	rm.inflightRequests.Add(ctx, 1, attrs)

	return func() {
		rm.inflightRequests.Add(ctx, -1, attrs)
	}
}

// ErrorReason buckets err for the errors counter. A nil error has no reason.
func ErrorReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return ReasonCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	default:
		return ReasonFailed
	}
}
