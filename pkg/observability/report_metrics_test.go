package observability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Sumatoshi-tech/reportscan/pkg/observability"
)

func sumOf(t *testing.T, m *metricdata.Metrics) int64 {
	t.Helper()

	require.NotNil(t, m)

	data, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok)

	var total int64
	for _, dp := range data.DataPoints {
		total += dp.Value
	}

	return total
}

func TestReportMetrics_RecordSafety(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	metrics, err := observability.NewReportMetrics(mp.Meter("test"))
	require.NoError(t, err)

	metrics.RecordSafety(context.Background(), observability.SafetyStats{
		Reports:          6,
		Safe:             2,
		SafeWithDampener: 4,
		Duration:         time.Millisecond,
	})

	rm := collectMetrics(t, reader)

	assert.Equal(t, int64(6), sumOf(t, findMetric(rm, "reportscan.reports.evaluated.total")))
	assert.Equal(t, int64(6), sumOf(t, findMetric(rm, "reportscan.reports.safe.total")))
	assert.NotNil(t, findMetric(rm, "reportscan.evaluation.duration.seconds"))
}

func TestReportMetrics_RecordDistance(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	metrics, err := observability.NewReportMetrics(mp.Meter("test"))
	require.NoError(t, err)

	metrics.RecordDistance(context.Background(), 6, time.Microsecond)

	rm := collectMetrics(t, reader)

	assert.Equal(t, int64(6), sumOf(t, findMetric(rm, "reportscan.pairs.total")))
}

func TestReportMetrics_NilReceiver(t *testing.T) {
	t.Parallel()

	var metrics *observability.ReportMetrics

	metrics.RecordSafety(context.Background(), observability.SafetyStats{Reports: 1})
	metrics.RecordDistance(context.Background(), 1, time.Second)
}
