// Package parse turns whitespace and line delimited text into sequences.
//
// Tokens are base-10 unsigned 32-bit integers. Any other token aborts parsing
// with an error wrapping ErrMalformedInput; nothing is skipped silently.
package parse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/reportscan/pkg/sequence"
	"github.com/Sumatoshi-tech/reportscan/pkg/units"
)

// Sentinel parse errors.
var (
	// ErrMalformedInput is wrapped by every token or layout error.
	ErrMalformedInput = errors.New("malformed input")
	// ErrOddTokenCount indicates list input that cannot be split into two equal columns.
	ErrOddTokenCount = errors.New("odd number of list tokens")
	// ErrInputTooLarge indicates the input exceeds Options.MaxBytes.
	ErrInputTooLarge = errors.New("input exceeds size limit")
	// ErrUnknownEmptyLines indicates an unrecognised empty-line policy name.
	ErrUnknownEmptyLines = errors.New("unknown empty-line policy")
)

// defaultMaxLineBytes caps a single line when no input limit is set.
const defaultMaxLineBytes = 16 * units.MiB

// initialBufferBytes is the scanner's starting buffer size.
const initialBufferBytes = 64 * units.KiB

// Error reports where parsing failed.
type Error struct {
	Line  int
	Token string
	Err   error
}

func (e *Error) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%v: line %d: %v", ErrMalformedInput, e.Line, e.Err)
	}

	return fmt.Sprintf("%v: line %d: token %q: %v", ErrMalformedInput, e.Line, e.Token, e.Err)
}

// Unwrap exposes both ErrMalformedInput and the underlying cause.
func (e *Error) Unwrap() []error {
	return []error{ErrMalformedInput, e.Err}
}

// EmptyLines selects what happens to blank report lines.
type EmptyLines int

// Empty-line policies.
const (
	// SkipEmpty drops blank lines before they reach the verifier.
	SkipEmpty EmptyLines = iota
	// KeepEmpty turns blank lines into zero-length reports.
	KeepEmpty
)

// Policy names.
const (
	EmptyLinesSkip = "skip"
	EmptyLinesKeep = "keep"
)

// String returns the policy name.
func (e EmptyLines) String() string {
	if e == KeepEmpty {
		return EmptyLinesKeep
	}

	return EmptyLinesSkip
}

// ParseEmptyLines maps a policy name to its value.
func ParseEmptyLines(name string) (EmptyLines, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EmptyLinesSkip:
		return SkipEmpty, nil
	case EmptyLinesKeep:
		return KeepEmpty, nil
	default:
		return SkipEmpty, fmt.Errorf("%w: %q", ErrUnknownEmptyLines, name)
	}
}

// Options controls parsing.
type Options struct {
	// EmptyLines applies to report input only.
	EmptyLines EmptyLines
	// MaxBytes caps the input size. Zero means unlimited.
	MaxBytes int64
}

// Reports reads one report per line.
func Reports(r io.Reader, opts Options) (sequence.Collection, error) {
	var reports sequence.Collection

	err := scanLines(r, opts, func(lineNo int, fields []string) error {
		if len(fields) == 0 && opts.EmptyLines == SkipEmpty {
			return nil
		}

		report := make(sequence.Sequence, 0, len(fields))

		for _, token := range fields {
			level, err := parseLevel(lineNo, token)
			if err != nil {
				return err
			}

			report = append(report, level)
		}

		reports = append(reports, report)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return reports, nil
}

// Pair reads two interleaved lists. Tokens alternate left, right, left, ...
// in reading order, so the usual "left   right" per-line layout works.
func Pair(r io.Reader, opts Options) (sequence.Pair, error) {
	var (
		pair     sequence.Pair
		tokens   int
		lastLine int
	)

	err := scanLines(r, opts, func(lineNo int, fields []string) error {
		lastLine = lineNo

		for _, token := range fields {
			value, err := parseLevel(lineNo, token)
			if err != nil {
				return err
			}

			if tokens%2 == 0 {
				pair.Left = append(pair.Left, value)
			} else {
				pair.Right = append(pair.Right, value)
			}

			tokens++
		}

		return nil
	})
	if err != nil {
		return sequence.Pair{}, err
	}

	if tokens%2 != 0 {
		return sequence.Pair{}, &Error{Line: lastLine, Err: fmt.Errorf("%w: %d", ErrOddTokenCount, tokens)}
	}

	return pair, nil
}

func parseLevel(lineNo int, token string) (uint32, error) {
	value, err := strconv.ParseUint(token, 10, 32)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}

		return 0, &Error{Line: lineNo, Token: token, Err: err}
	}

	return uint32(value), nil
}

// countingReader tracks how many bytes the scanner pulled.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)

	return n, err //nolint:wrapcheck // io.Reader contract.
}

func scanLines(r io.Reader, opts Options, handle func(lineNo int, fields []string) error) error {
	maxLine := defaultMaxLineBytes

	var counter *countingReader

	if opts.MaxBytes > 0 {
		counter = &countingReader{r: io.LimitReader(r, opts.MaxBytes+1)}
		r = counter
		maxLine = int(min(opts.MaxBytes+1, int64(defaultMaxLineBytes)))
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(initialBufferBytes, maxLine)), maxLine)

	lineNo := 0

	for scanner.Scan() {
		lineNo++

		if counter != nil && counter.n > opts.MaxBytes {
			return fmt.Errorf("%w: more than %d bytes", ErrInputTooLarge, opts.MaxBytes)
		}

		err := handle(lineNo, strings.Fields(scanner.Text()))
		if err != nil {
			return err
		}
	}

	err := scanner.Err()
	if errors.Is(err, bufio.ErrTooLong) {
		return fmt.Errorf("%w: line %d is too long", ErrInputTooLarge, lineNo+1)
	}

	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if counter != nil && counter.n > opts.MaxBytes {
		return fmt.Errorf("%w: more than %d bytes", ErrInputTooLarge, opts.MaxBytes)
	}

	return nil
}
