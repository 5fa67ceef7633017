// Package sequence defines the integer sequences the analyzers operate on.
package sequence

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch indicates the two sides of a Pair have different lengths.
var ErrLengthMismatch = errors.New("left and right lists must have the same length")

// Sequence is an ordered list of non-negative levels.
// Analyzers treat a Sequence as read-only.
type Sequence []uint32

// Pair holds two positionally independent sequences read side by side.
type Pair struct {
	Left  Sequence
	Right Sequence
}

// Validate reports ErrLengthMismatch when the sides differ in length.
func (p Pair) Validate() error {
	if len(p.Left) != len(p.Right) {
		return fmt.Errorf("%w: left=%d right=%d", ErrLengthMismatch, len(p.Left), len(p.Right))
	}

	return nil
}

// Len returns the number of rows in the pair.
func (p Pair) Len() int {
	return len(p.Left)
}

// Collection is an ordered list of reports.
type Collection []Sequence

// Direction is the trend of a report, fixed by its first two levels.
type Direction int

// Direction values.
const (
	Undefined Direction = iota
	Increasing
	Decreasing
)

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case Increasing:
		return "increasing"
	case Decreasing:
		return "decreasing"
	default:
		return "undefined"
	}
}

// DirectionOf returns Increasing when s[0] < s[1] and Decreasing otherwise.
// Sequences shorter than two elements have no direction.
func DirectionOf(s Sequence) Direction {
	if len(s) < 2 {
		return Undefined
	}

	if s[0] < s[1] {
		return Increasing
	}

	return Decreasing
}
