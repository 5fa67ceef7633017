package observability

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
)

// NewPrometheusReader creates an OTel metric reader that exports into a fresh
// Prometheus registry. Each call is independent so collectors never clash.
func NewPrometheusReader() (*promexporter.Exporter, *prometheus.Registry, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(
		promexporter.WithRegisterer(registry),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	return exporter, registry, nil
}

// WriteSnapshot gathers every metric family and writes it in the Prometheus
// text exposition format.
func WriteSnapshot(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	for _, family := range families {
		_, err = expfmt.MetricFamilyToText(w, family)
		if err != nil {
			return fmt.Errorf("write metric family %s: %w", family.GetName(), err)
		}
	}

	return nil
}

// WriteSnapshotFile writes a snapshot to path, replacing any previous file.
func WriteSnapshotFile(path string, gatherer prometheus.Gatherer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metrics snapshot: %w", err)
	}

	err = WriteSnapshot(f, gatherer)
	closeErr := f.Close()

	if err != nil {
		return err
	}

	if closeErr != nil {
		return fmt.Errorf("close metrics snapshot: %w", closeErr)
	}

	return nil
}
