// Package mcp implements a Model Context Protocol server exposing the
// reportscan analyses as MCP tools over stdio.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/reportscan/pkg/analysis"
	"github.com/Sumatoshi-tech/reportscan/pkg/observability"
	"github.com/Sumatoshi-tech/reportscan/pkg/safety"
	"github.com/Sumatoshi-tech/reportscan/pkg/version"
)

const (
	serverName = "reportscan"
	toolCount  = 2
)

// ServerDeps holds injectable dependencies for the MCP server.
// Zero-value fields use defaults.
type ServerDeps struct {
	// Service runs the analyses. Nil uses the default step rule.
	Service *analysis.Service

	// Logger is an optional structured logger. Nil uses slog default.
	Logger *slog.Logger

	// Metrics is an optional RED metrics recorder. Nil disables per-tool metrics.
	Metrics *observability.REDMetrics

	// Tracer is an optional OTel tracer for per-tool-call spans. Nil disables tracing.
	Tracer trace.Tracer
}

// Server wraps the MCP SDK server with the reportscan tools.
type Server struct {
	inner   *mcpsdk.Server
	service *analysis.Service
	mu      sync.RWMutex
	tools   []string
	metrics *observability.REDMetrics
	tracer  trace.Tracer
}

// NewServer creates a new MCP server with all tools registered.
func NewServer(deps ServerDeps) (*Server, error) {
	service := deps.Service
	if service == nil {
		var err error

		service, err = analysis.NewService(safety.DefaultRule)
		if err != nil {
			return nil, err
		}
	}

	opts := &mcpsdk.ServerOptions{}
	if deps.Logger != nil {
		opts.Logger = deps.Logger
	}

	inner := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    serverName,
			Version: version.Version,
		},
		opts,
	)

	srv := &Server{
		inner:   inner,
		service: service,
		tools:   make([]string, 0, toolCount),
		metrics: deps.Metrics,
		tracer:  deps.Tracer,
	}

	srv.registerTools()

	return srv, nil
}

// ListToolNames returns the sorted names of all registered tools.
func (s *Server) ListToolNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.tools))
	copy(names, s.tools)
	sort.Strings(names)

	return names
}

// Run starts the MCP server on stdio. It blocks until the context is
// canceled or the connection closes.
func (s *Server) Run(ctx context.Context) error {
	return s.RunWithTransport(ctx, &mcpsdk.StdioTransport{})
}

// RunWithTransport starts the MCP server on the given transport.
func (s *Server) RunWithTransport(ctx context.Context, transport mcpsdk.Transport) error {
	err := s.inner.Run(ctx, transport)
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameSafety,
		Description: safetyToolDescription,
	}, withMetrics(s.metrics, ToolNameSafety, withTracing(s.tracer, ToolNameSafety, s.handleSafety)))

	s.trackTool(ToolNameSafety)

	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameDistance,
		Description: distanceToolDescription,
	}, withMetrics(s.metrics, ToolNameDistance, withTracing(s.tracer, ToolNameDistance, s.handleDistance)))

	s.trackTool(ToolNameDistance)
}

// errToolResult marks a tool call that returned an error result to the client.
var errToolResult = errors.New("tool returned an error result")

const (
	mcpSpanPrefix  = "mcp."
	traceIDMetaKey = "trace_id"
)

// withTracing wraps a tool handler in a server span and appends the trace id
// to the response when the span is sampled.
func withTracing[Input any](
	tracer trace.Tracer,
	toolName string,
	handler func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error),
) func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if tracer == nil {
		return handler
	}

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
		ctx, span := tracer.Start(ctx, mcpSpanPrefix+toolName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("mcp.tool", toolName)),
		)
		defer span.End()

		result, output, err := handler(ctx, req, input)

		sc := span.SpanContext()
		if sc.IsSampled() && result != nil {
			result.Content = append(result.Content, &mcpsdk.TextContent{
				Text: fmt.Sprintf("%s=%s", traceIDMetaKey, sc.TraceID().String()),
			})
		}

		return result, output, err
	}
}

// withMetrics wraps a tool handler to record RED metrics per invocation.
func withMetrics[Input any](
	metrics *observability.REDMetrics,
	toolName string,
	handler func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error),
) func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if metrics == nil {
		return handler
	}

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
		var (
			result *mcpsdk.CallToolResult
			output ToolOutput
			err    error
		)

		_ = metrics.Measure(ctx, mcpSpanPrefix+toolName, func(ctx context.Context) error {
			result, output, err = handler(ctx, req, input)
			if err == nil && result != nil && result.IsError {
				return errToolResult
			}

			return err
		})

		return result, output, err
	}
}

func (s *Server) trackTool(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools = append(s.tools, name)
}

const (
	safetyToolDescription = "Count safe reports. Each line of `reports` is one report of " +
		"space-separated levels. A report is safe when it strictly increases or decreases " +
		"with every step inside the configured range; the dampener also accepts reports " +
		"that become safe after removing one level."

	distanceToolDescription = "Compare two lists given as `lists`, one `left right` pair per line. " +
		"Returns the total distance of the sorted lists and the similarity score."
)
