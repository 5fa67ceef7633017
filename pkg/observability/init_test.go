package observability_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/reportscan/pkg/observability"
)

func TestInit_NoopWhenNoEndpoint(t *testing.T) {
	t.Parallel()

	providers, err := observability.Init(observability.DefaultConfig())
	require.NoError(t, err)

	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Logger)
	assert.NotNil(t, providers.Shutdown)

	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestInit_NoopSpanIsValid(t *testing.T) {
	t.Parallel()

	providers, err := observability.Init(observability.DefaultConfig())
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, providers.Shutdown(context.Background())) })

	ctx, span := providers.Tracer.Start(context.Background(), "test-op")
	defer span.End()

	assert.NotNil(t, ctx)
	assert.NotNil(t, span)
}

func TestInit_LoggerWritesJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cfg := observability.DefaultConfig()
	cfg.LogJSON = true
	cfg.LogWriter = &buf

	providers, err := observability.Init(cfg)
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, providers.Shutdown(context.Background())) })

	providers.Logger.InfoContext(context.Background(), "init test")

	assert.Contains(t, buf.String(), `"msg":"init test"`)
	assert.Contains(t, buf.String(), `"service":"reportscan"`)
}

func TestInit_LogLevelFilters(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cfg := observability.DefaultConfig()
	cfg.LogWriter = &buf

	providers, err := observability.Init(cfg)
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, providers.Shutdown(context.Background())) })

	providers.Logger.DebugContext(context.Background(), "hidden")
	assert.Empty(t, buf.String())
}

func TestInit_ShutdownIdempotent(t *testing.T) {
	t.Parallel()

	providers, err := observability.Init(observability.DefaultConfig())
	require.NoError(t, err)

	require.NoError(t, providers.Shutdown(context.Background()))
	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestInit_MetricsSnapshotOnShutdown(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "metrics.prom")

	cfg := observability.DefaultConfig()
	cfg.MetricsOut = path

	providers, err := observability.Init(cfg)
	require.NoError(t, err)

	metrics, err := observability.NewReportMetrics(providers.Meter)
	require.NoError(t, err)

	metrics.RecordSafety(context.Background(), observability.SafetyStats{
		Reports:          6,
		Safe:             2,
		SafeWithDampener: 4,
		Duration:         time.Millisecond,
	})

	require.NoError(t, providers.Shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(data), "reportscan_reports_evaluated_total")
	assert.Contains(t, string(data), `dampener="true"`)
}

func TestBuildResource_IncludesAppMode(t *testing.T) {
	t.Parallel()

	cfg := observability.DefaultConfig()
	cfg.Mode = observability.ModeMCP

	res, err := observability.BuildResourceForTest(cfg)
	require.NoError(t, err)

	found := false

	for _, attr := range res.Attributes() {
		if string(attr.Key) == "app.mode" {
			assert.Equal(t, "mcp", attr.Value.AsString())

			found = true
		}
	}

	assert.True(t, found, "app.mode attribute not found in resource")
}

func TestSampler_DefaultSamples(t *testing.T) {
	t.Parallel()

	assert.True(t, observability.RootSpanSampled(observability.DefaultConfig()))
}

func TestSampler_FullRatioSamples(t *testing.T) {
	t.Parallel()

	cfg := observability.DefaultConfig()
	cfg.SampleRatio = 1.0

	assert.True(t, observability.RootSpanSampled(cfg))
}
