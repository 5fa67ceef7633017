package config

import (
	"github.com/Sumatoshi-tech/reportscan/pkg/parse"
	"github.com/Sumatoshi-tech/reportscan/pkg/renderer"
	"github.com/Sumatoshi-tech/reportscan/pkg/safety"
)

// Safety defaults.
const (
	DefaultMinStep = safety.DefaultMinStep
	DefaultMaxStep = safety.DefaultMaxStep
)

// Input defaults.
const (
	DefaultEmptyLines = parse.EmptyLinesSkip
	DefaultMaxSize    = "64MiB"
)

// Pipeline defaults.
const (
	DefaultWorkers = 0
)

// Output defaults.
const (
	DefaultFormat  = renderer.FormatText
	DefaultVerbose = false
	DefaultNoColor = false
)

// Observability defaults.
const (
	DefaultLogLevel     = "info"
	DefaultLogJSON      = false
	DefaultOTLPEndpoint = ""
	DefaultOTLPInsecure = false
	DefaultMetricsOut   = ""
)
