package observability

import (
	"context"

	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// BuildResourceForTest exposes buildResource for tests.
func BuildResourceForTest(cfg Config) (*resource.Resource, error) {
	return buildResource(cfg)
}

// RootSpanSampled reports whether a root span is sampled under cfg.
func RootSpanSampled(cfg Config) bool {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(selectSampler(cfg)))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer("sampler-test").Start(context.Background(), "root")
	defer span.End()

	return span.SpanContext().IsSampled()
}
