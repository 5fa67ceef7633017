package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/reportscan/pkg/analysis"
	"github.com/Sumatoshi-tech/reportscan/pkg/parse"
	"github.com/Sumatoshi-tech/reportscan/pkg/renderer"
	"github.com/Sumatoshi-tech/reportscan/pkg/units"
)

// Tool names.
const (
	ToolNameSafety   = "reportscan_safety"
	ToolNameDistance = "reportscan_distance"
)

// MaxInputBytes is the maximum size of inline tool input.
const MaxInputBytes = units.MiB

// Sentinel errors for tool input validation.
var (
	// ErrEmptyInput indicates the text parameter is empty.
	ErrEmptyInput = errors.New("input text is required and must not be empty")
	// ErrInputTooLarge indicates the input exceeds MaxInputBytes.
	ErrInputTooLarge = errors.New("input exceeds maximum size")
)

// SafetyInput is the input schema for the reportscan_safety tool.
type SafetyInput struct {
	Reports    string `json:"reports"               jsonschema:"reports, one per line, levels separated by spaces"`
	EmptyLines string `json:"empty_lines,omitempty" jsonschema:"skip (default) or keep blank lines as empty reports"`
}

// DistanceInput is the input schema for the reportscan_distance tool.
type DistanceInput struct {
	Lists   string `json:"lists"             jsonschema:"two lists, one left right pair per line"`
	Details bool   `json:"details,omitempty" jsonschema:"include the sorted row pairing"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

func (s *Server) handleSafety(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input SafetyInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	err := validateInput(input.Reports)
	if err != nil {
		return errorResult(err)
	}

	service := s.service

	if input.EmptyLines != "" {
		policy, policyErr := parse.ParseEmptyLines(input.EmptyLines)
		if policyErr != nil {
			return errorResult(policyErr)
		}

		opts := service.ParseOptions()
		opts.EmptyLines = policy
		service = service.With(analysis.WithParseOptions(opts))
	}

	result, err := service.Safety(ctx, strings.NewReader(input.Reports))
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(result)
}

func (s *Server) handleDistance(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input DistanceInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	err := validateInput(input.Lists)
	if err != nil {
		return errorResult(err)
	}

	result, err := s.service.With(analysis.WithDetails(input.Details)).Distance(ctx, strings.NewReader(input.Lists))
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(result)
}

func validateInput(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyInput
	}

	if len(text) > MaxInputBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(text), MaxInputBytes)
	}

	return nil
}

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult renders report exactly as the CLI json format does.
func jsonResult(report renderer.Report) (*mcpsdk.CallToolResult, ToolOutput, error) {
	var buf bytes.Buffer

	err := renderer.Write(&buf, renderer.Options{Format: renderer.FormatJSON}, report)
	if err != nil {
		return errorResult(err)
	}

	var data any

	err = json.Unmarshal(buf.Bytes(), &data)
	if err != nil {
		return errorResult(fmt.Errorf("decode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: buf.String()},
		},
	}, ToolOutput{Data: data}, nil
}
