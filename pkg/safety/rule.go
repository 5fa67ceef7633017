// Package safety decides whether reports are safe, with and without the
// single-removal dampener, and aggregates the verdicts over a collection.
//
// A report is safe when it is strictly monotonic in the direction fixed by its
// first two levels and every step between neighbours lies in [MinStep, MaxStep].
package safety

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/reportscan/pkg/sequence"
)

// Default step bounds.
const (
	DefaultMinStep = 1
	DefaultMaxStep = 3
)

// ErrInvalidRule indicates step bounds that cannot describe a strictly monotonic report.
var ErrInvalidRule = errors.New("invalid step rule")

// Rule bounds the absolute difference between neighbouring levels.
type Rule struct {
	MinStep uint32
	MaxStep uint32
}

// DefaultRule is the [1, 3] step rule.
var DefaultRule = Rule{MinStep: DefaultMinStep, MaxStep: DefaultMaxStep}

// Validate checks that MinStep is at least 1 and MaxStep is not below MinStep.
func (r Rule) Validate() error {
	if r.MinStep < 1 {
		return fmt.Errorf("%w: min step must be at least 1, got %d", ErrInvalidRule, r.MinStep)
	}

	if r.MaxStep < r.MinStep {
		return fmt.Errorf("%w: max step %d is below min step %d", ErrInvalidRule, r.MaxStep, r.MinStep)
	}

	return nil
}

// Kind classifies the first rule violation found in a report.
type Kind int

// Violation kinds.
const (
	KindNone Kind = iota
	KindPlateau
	KindReversal
	KindSmallStep
	KindJump
)

// String returns the kind name used in rendered output.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "ok"
	case KindPlateau:
		return "plateau"
	case KindReversal:
		return "reversal"
	case KindSmallStep:
		return "small-step"
	case KindJump:
		return "jump"
	default:
		return "unknown"
	}
}

// Kinds lists every violation kind in display order.
func Kinds() []Kind {
	return []Kind{KindPlateau, KindReversal, KindSmallStep, KindJump}
}

// classify checks one step from prev to next against the fixed direction.
func (r Rule) classify(prev, next uint32, dir sequence.Direction) Kind {
	if prev == next {
		return KindPlateau
	}

	rising := prev < next
	if rising != (dir == sequence.Increasing) {
		return KindReversal
	}

	var diff uint32
	if rising {
		diff = next - prev
	} else {
		diff = prev - next
	}

	switch {
	case diff < r.MinStep:
		return KindSmallStep
	case diff > r.MaxStep:
		return KindJump
	default:
		return KindNone
	}
}
