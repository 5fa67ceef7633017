package safety

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/reportscan/pkg/sequence"
)

// Verdict is the full evaluation of one report.
type Verdict struct {
	// Index is the report position in its collection.
	Index int
	// Length is the number of levels in the report.
	Length int
	// Direction is the trend fixed by the first two levels.
	Direction sequence.Direction
	// Safe is the plain verdict.
	Safe bool
	// SafeWithDampener is the verdict with one removal allowed.
	SafeWithDampener bool
	// Removed is the index the dampener dropped, or -1.
	Removed int
	// Violation is the first plain-rule violation.
	Violation Violation
}

// Dampened reports whether the dampener was needed to make the report safe.
func (vd Verdict) Dampened() bool {
	return !vd.Safe && vd.SafeWithDampener
}

// Judge evaluates a single report.
func (v *Verifier) Judge(index int, report sequence.Sequence) Verdict {
	violation := v.Check(report)
	removed, dampenedOK := noSkip, true

	if !violation.OK() {
		removed, dampenedOK = v.Dampen(report)
	}

	return Verdict{
		Index:            index,
		Length:           len(report),
		Direction:        sequence.DirectionOf(report),
		Safe:             violation.OK(),
		SafeWithDampener: dampenedOK,
		Removed:          removed,
		Violation:        violation,
	}
}

// CountSafe counts reports that pass IsSafe, or IsSafeWithDampener when
// dampener is true.
func (v *Verifier) CountSafe(reports sequence.Collection, dampener bool) int {
	check := v.IsSafe
	if dampener {
		check = v.IsSafeWithDampener
	}

	count := 0

	for _, report := range reports {
		if check(report) {
			count++
		}
	}

	return count
}

// CountSafe counts safe reports under DefaultRule.
func CountSafe(reports sequence.Collection, dampener bool) int {
	return defaultVerifier.CountSafe(reports, dampener)
}

// Evaluate judges every report using at most workers goroutines.
// Zero or negative workers uses the CPU count. Verdicts keep report order.
func (v *Verifier) Evaluate(ctx context.Context, reports sequence.Collection, workers int) ([]Verdict, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	verdicts := make([]Verdict, len(reports))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, report := range reports {
		if groupCtx.Err() != nil {
			break
		}

		group.Go(func() error {
			err := groupCtx.Err()
			if err != nil {
				return err
			}

			// Each goroutine owns its slot; no locking needed.
			verdicts[i] = v.Judge(i, report)

			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, fmt.Errorf("evaluate reports: %w", err)
	}

	if ctx.Err() != nil {
		return nil, fmt.Errorf("evaluate reports: %w", ctx.Err())
	}

	return verdicts, nil
}

// Summary holds the two aggregate counts.
type Summary struct {
	Reports          int
	Safe             int
	SafeWithDampener int
}

// Dampened returns how many reports only the dampener could salvage.
func (s Summary) Dampened() int {
	return s.SafeWithDampener - s.Safe
}

// Unsafe returns how many reports stay unsafe even with the dampener.
func (s Summary) Unsafe() int {
	return s.Reports - s.SafeWithDampener
}

// Tally aggregates verdicts into a Summary.
func Tally(verdicts []Verdict) Summary {
	summary := Summary{Reports: len(verdicts)}

	for _, vd := range verdicts {
		if vd.Safe {
			summary.Safe++
		}

		if vd.SafeWithDampener {
			summary.SafeWithDampener++
		}
	}

	return summary
}

// ViolationCounts counts the first plain-rule violation kind over verdicts.
func ViolationCounts(verdicts []Verdict) map[Kind]int {
	counts := make(map[Kind]int, len(Kinds()))

	for _, vd := range verdicts {
		if vd.Safe {
			continue
		}

		counts[vd.Violation.Kind]++
	}

	return counts
}
