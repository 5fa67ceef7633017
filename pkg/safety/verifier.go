package safety

import (
	"github.com/Sumatoshi-tech/reportscan/pkg/sequence"
)

// noSkip disables index skipping in scan.
const noSkip = -1

// Violation describes the first step that broke the rule.
// At is the index, in the original report, of the level that broke it.
type Violation struct {
	Kind Kind
	At   int
}

// OK reports whether no violation was found.
func (v Violation) OK() bool {
	return v.Kind == KindNone
}

// Verifier checks reports against a step Rule.
type Verifier struct {
	rule Rule
}

// NewVerifier creates a Verifier after validating the rule.
func NewVerifier(rule Rule) (*Verifier, error) {
	err := rule.Validate()
	if err != nil {
		return nil, err
	}

	return &Verifier{rule: rule}, nil
}

// defaultVerifier backs the package-level helpers.
var defaultVerifier = &Verifier{rule: DefaultRule}

// Default returns a Verifier using DefaultRule.
func Default() *Verifier {
	return defaultVerifier
}

// Rule returns the verifier's step rule.
func (v *Verifier) Rule() Rule {
	return v.rule
}

// Check returns the first violation in report, or a Violation with KindNone.
func (v *Verifier) Check(report sequence.Sequence) Violation {
	return v.scan(report, noSkip)
}

// IsSafe reports whether report satisfies the rule as is.
// Reports with fewer than two levels are always safe.
func (v *Verifier) IsSafe(report sequence.Sequence) bool {
	return v.scan(report, noSkip).OK()
}

// SafeWithout reports whether report is safe once the level at skip is removed.
// The report itself is left untouched.
func (v *Verifier) SafeWithout(report sequence.Sequence, skip int) bool {
	return v.scan(report, skip).OK()
}

// scan walks report once, skipping the level at index skip (noSkip for none).
// The direction is fixed by the first two visited levels and never re-derived.
func (v *Verifier) scan(report sequence.Sequence, skip int) Violation {
	var (
		prev    uint32
		started bool
		dir     = sequence.Undefined
	)

	for i, level := range report {
		if i == skip {
			continue
		}

		if !started {
			prev, started = level, true

			continue
		}

		if dir == sequence.Undefined {
			dir = sequence.Decreasing
			if prev < level {
				dir = sequence.Increasing
			}
		}

		kind := v.rule.classify(prev, level, dir)
		if kind != KindNone {
			return Violation{Kind: kind, At: i}
		}

		prev = level
	}

	return Violation{Kind: KindNone, At: noSkip}
}

// IsSafe checks report against DefaultRule.
func IsSafe(report sequence.Sequence) bool {
	return defaultVerifier.IsSafe(report)
}

// Check returns the first DefaultRule violation in report.
func Check(report sequence.Sequence) Violation {
	return defaultVerifier.Check(report)
}
