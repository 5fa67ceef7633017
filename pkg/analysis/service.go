// Package analysis runs the safety and distance analyses end to end: parse,
// evaluate, trace, record metrics and log.
package analysis

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/reportscan/pkg/distance"
	"github.com/Sumatoshi-tech/reportscan/pkg/observability"
	"github.com/Sumatoshi-tech/reportscan/pkg/parse"
	"github.com/Sumatoshi-tech/reportscan/pkg/safety"
	"github.com/Sumatoshi-tech/reportscan/pkg/sequence"
)

const (
	spanSafety   = "reportscan.safety"
	spanDistance = "reportscan.distance"
)

// Service runs analyses with a fixed rule, parser options and telemetry.
type Service struct {
	verifier  *safety.Verifier
	parseOpts parse.Options
	workers   int
	details   bool
	tracer    trace.Tracer
	metrics   *observability.ReportMetrics
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithWorkers bounds the evaluator goroutines. Zero uses the CPU count.
func WithWorkers(workers int) Option {
	return func(s *Service) { s.workers = workers }
}

// WithParseOptions sets how input text is parsed.
func WithParseOptions(opts parse.Options) Option {
	return func(s *Service) { s.parseOpts = opts }
}

// WithDetails keeps the sorted rows of distance runs.
func WithDetails(details bool) Option {
	return func(s *Service) { s.details = details }
}

// WithTracer sets the tracer used for analysis spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) { s.tracer = tracer }
}

// WithMetrics sets the report metric instruments.
func WithMetrics(metrics *observability.ReportMetrics) Option {
	return func(s *Service) { s.metrics = metrics }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService builds a Service for rule.
func NewService(rule safety.Rule, opts ...Option) (*Service, error) {
	verifier, err := safety.NewVerifier(rule)
	if err != nil {
		return nil, err
	}

	s := &Service{
		verifier: verifier,
		tracer:   nooptrace.NewTracerProvider().Tracer(""),
		logger:   slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// With returns a copy of s with opts applied.
func (s *Service) With(opts ...Option) *Service {
	clone := *s

	for _, opt := range opts {
		opt(&clone)
	}

	return &clone
}

// ParseOptions returns the parser options in force.
func (s *Service) ParseOptions() parse.Options {
	return s.parseOpts
}

// Rule returns the step rule in force.
func (s *Service) Rule() safety.Rule {
	return s.verifier.Rule()
}

// Safety parses reports from r and evaluates them.
func (s *Service) Safety(ctx context.Context, r io.Reader) (*SafetyResult, error) {
	reports, err := parse.Reports(r, s.parseOpts)
	if err != nil {
		return nil, fmt.Errorf("parse reports: %w", err)
	}

	return s.SafetyReports(ctx, reports)
}

// SafetyReports evaluates already parsed reports.
func (s *Service) SafetyReports(ctx context.Context, reports sequence.Collection) (*SafetyResult, error) {
	ctx, span := s.tracer.Start(ctx, spanSafety, trace.WithAttributes(
		attribute.Int("reportscan.reports", len(reports)),
		attribute.Int("reportscan.workers", s.workers),
	))
	defer span.End()

	start := time.Now()

	verdicts, err := s.verifier.Evaluate(ctx, reports, s.workers)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	result := NewSafetyResult(s.verifier.Rule(), verdicts)
	elapsed := time.Since(start)

	span.SetAttributes(
		attribute.Int("reportscan.safe", result.Summary.Safe),
		attribute.Int("reportscan.safe_with_dampener", result.Summary.SafeWithDampener),
	)

	s.metrics.RecordSafety(ctx, observability.SafetyStats{
		Reports:          result.Summary.Reports,
		Safe:             result.Summary.Safe,
		SafeWithDampener: result.Summary.SafeWithDampener,
		Duration:         elapsed,
	})

	s.logger.InfoContext(ctx, "safety evaluated",
		slog.Int("reports", result.Summary.Reports),
		slog.Int("safe", result.Summary.Safe),
		slog.Int("safe_with_dampener", result.Summary.SafeWithDampener),
		slog.Duration("elapsed", elapsed),
	)

	return result, nil
}

// Distance parses the paired lists from r and compares them.
func (s *Service) Distance(ctx context.Context, r io.Reader) (*DistanceResult, error) {
	pair, err := parse.Pair(r, s.parseOpts)
	if err != nil {
		return nil, fmt.Errorf("parse lists: %w", err)
	}

	return s.DistancePair(ctx, pair)
}

// DistancePair compares an already parsed pair.
func (s *Service) DistancePair(ctx context.Context, pair sequence.Pair) (*DistanceResult, error) {
	ctx, span := s.tracer.Start(ctx, spanDistance, trace.WithAttributes(
		attribute.Int("reportscan.pairs", pair.Len()),
	))
	defer span.End()

	start := time.Now()

	result, err := s.compare(pair)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	elapsed := time.Since(start)

	s.metrics.RecordDistance(ctx, result.Pairs, elapsed)

	s.logger.InfoContext(ctx, "distance computed",
		slog.Int("pairs", result.Pairs),
		slog.Uint64("total_distance", result.TotalDistance),
		slog.Uint64("similarity_score", result.SimilarityScore),
		slog.Duration("elapsed", elapsed),
	)

	return result, nil
}

func (s *Service) compare(pair sequence.Pair) (*DistanceResult, error) {
	total, err := distance.TotalDistance(pair)
	if err != nil {
		return nil, fmt.Errorf("total distance: %w", err)
	}

	score, err := distance.SimilarityScore(pair)
	if err != nil {
		return nil, fmt.Errorf("similarity score: %w", err)
	}

	result := &DistanceResult{
		Pairs:           pair.Len(),
		TotalDistance:   total,
		SimilarityScore: score,
		DistinctLeft:    len(distance.Frequencies(pair.Left)),
		DistinctRight:   len(distance.Frequencies(pair.Right)),
		SharedValues:    distance.SharedValues(pair),
	}

	if s.details {
		result.Rows, err = distance.Rows(pair)
		if err != nil {
			return nil, fmt.Errorf("sorted rows: %w", err)
		}
	}

	return result, nil
}
