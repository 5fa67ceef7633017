package renderer

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrNilMetricsOutput is returned when nil is passed to render functions.
var ErrNilMetricsOutput = errors.New("metrics output is nil")

// MetricsOutput provides serializable output for the JSON and YAML renderers.
type MetricsOutput interface {
	// Kind names the result, e.g. "safety" or "distance".
	Kind() string

	// ToJSON returns a value suitable for json.Marshal.
	ToJSON() any

	// ToYAML returns a value suitable for yaml.Marshal.
	ToYAML() any
}

// RenderMetricsJSON serializes metrics output to indented JSON bytes.
func RenderMetricsJSON(m MetricsOutput) ([]byte, error) {
	if m == nil {
		return nil, ErrNilMetricsOutput
	}

	data, err := json.MarshalIndent(m.ToJSON(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal metrics to JSON: %w", err)
	}

	return data, nil
}

// RenderMetricsYAML serializes metrics output to YAML bytes.
func RenderMetricsYAML(m MetricsOutput) ([]byte, error) {
	if m == nil {
		return nil, ErrNilMetricsOutput
	}

	data, err := yaml.Marshal(m.ToYAML())
	if err != nil {
		return nil, fmt.Errorf("marshal metrics to YAML: %w", err)
	}

	return data, nil
}
