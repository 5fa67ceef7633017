package safety_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/reportscan/pkg/safety"
	"github.com/Sumatoshi-tech/reportscan/pkg/sequence"
)

// exampleReports is the six-report sample collection.
func exampleReports() sequence.Collection {
	return sequence.Collection{
		{7, 6, 4, 2, 1},
		{1, 2, 7, 8, 9},
		{9, 7, 6, 2, 1},
		{1, 3, 2, 4, 5},
		{8, 6, 4, 4, 1},
		{1, 3, 6, 7, 9},
	}
}

func TestIsSafe_Examples(t *testing.T) {
	t.Parallel()

	expected := []bool{true, false, false, false, false, true}

	for i, report := range exampleReports() {
		assert.Equal(t, expected[i], safety.IsSafe(report), "report %d %v", i, report)
	}
}

func TestIsSafeWithDampener_Examples(t *testing.T) {
	t.Parallel()

	expected := []bool{true, false, false, true, true, true}

	for i, report := range exampleReports() {
		assert.Equal(t, expected[i], safety.IsSafeWithDampener(report), "report %d %v", i, report)
	}
}

func TestIsSafe_ShortReports(t *testing.T) {
	t.Parallel()

	assert.True(t, safety.IsSafe(nil))
	assert.True(t, safety.IsSafe(sequence.Sequence{}))
	assert.True(t, safety.IsSafe(sequence.Sequence{42}))
	assert.True(t, safety.IsSafeWithDampener(sequence.Sequence{}))
}

func TestIsSafe_Boundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		report   sequence.Sequence
		safe     bool
		dampened bool
	}{
		{name: "all_steps_three_up", report: sequence.Sequence{1, 4, 7, 10}, safe: true, dampened: true},
		{name: "all_steps_three_down", report: sequence.Sequence{10, 7, 4, 1}, safe: true, dampened: true},
		{name: "one_step_four", report: sequence.Sequence{1, 2, 6, 7}, safe: false, dampened: false},
		{name: "leading_jump_removable", report: sequence.Sequence{1, 5, 6, 7}, safe: false, dampened: true},
		{name: "trailing_jump_removable", report: sequence.Sequence{1, 2, 3, 9}, safe: false, dampened: true},
		{name: "two_level_plateau", report: sequence.Sequence{5, 5}, safe: false, dampened: true},
		{name: "single_reversal", report: sequence.Sequence{1, 2, 1}, safe: false, dampened: true},
		{name: "two_reversals", report: sequence.Sequence{1, 2, 1, 2, 1}, safe: false, dampened: false},
		{name: "uint32_extremes", report: sequence.Sequence{0, math.MaxUint32}, safe: false, dampened: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.safe, safety.IsSafe(tt.report))
			assert.Equal(t, tt.dampened, safety.IsSafeWithDampener(tt.report))
		})
	}
}

func TestIsSafe_DirectionFixedByFirstPair(t *testing.T) {
	t.Parallel()

	// Two monotonic runs are not a safe report.
	report := sequence.Sequence{1, 2, 3, 2, 1}

	assert.False(t, safety.IsSafe(report))

	violation := safety.Check(report)
	assert.Equal(t, safety.KindReversal, violation.Kind)
	assert.Equal(t, 3, violation.At)
}

func TestCheck_Kinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		report sequence.Sequence
		kind   safety.Kind
		at     int
	}{
		{name: "safe", report: sequence.Sequence{7, 6, 4, 2, 1}, kind: safety.KindNone, at: -1},
		{name: "jump", report: sequence.Sequence{1, 2, 7, 8, 9}, kind: safety.KindJump, at: 2},
		{name: "late_jump", report: sequence.Sequence{9, 7, 6, 2, 1}, kind: safety.KindJump, at: 3},
		{name: "reversal", report: sequence.Sequence{1, 3, 2, 4, 5}, kind: safety.KindReversal, at: 2},
		{name: "plateau", report: sequence.Sequence{8, 6, 4, 4, 1}, kind: safety.KindPlateau, at: 3},
		{name: "leading_plateau", report: sequence.Sequence{3, 3, 4}, kind: safety.KindPlateau, at: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := safety.Check(tt.report)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.at, got.At)
			assert.Equal(t, tt.kind == safety.KindNone, got.OK())
		})
	}
}

func TestDampen_RemovedIndex(t *testing.T) {
	t.Parallel()

	verifier := safety.Default()

	tests := []struct {
		name    string
		report  sequence.Sequence
		removed int
		ok      bool
	}{
		{name: "already_safe", report: sequence.Sequence{1, 3, 6, 7, 9}, removed: -1, ok: true},
		{name: "remove_reversal", report: sequence.Sequence{1, 3, 2, 4, 5}, removed: 1, ok: true},
		{name: "remove_plateau", report: sequence.Sequence{8, 6, 4, 4, 1}, removed: 2, ok: true},
		{name: "remove_first_fixes_later_reversal", report: sequence.Sequence{3, 1, 2, 3, 4}, removed: 0, ok: true},
		{name: "remove_first_fixes_jump", report: sequence.Sequence{5, 1, 2, 3}, removed: 0, ok: true},
		{name: "unsalvageable", report: sequence.Sequence{9, 7, 6, 2, 1}, removed: -1, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			removed, ok := verifier.Dampen(tt.report)
			assert.Equal(t, tt.removed, removed)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestDampen_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	report := sequence.Sequence{8, 6, 4, 4, 1}
	original := append(sequence.Sequence(nil), report...)

	safety.IsSafeWithDampener(report)

	assert.Equal(t, original, report)
}

func TestIsSafe_Idempotent(t *testing.T) {
	t.Parallel()

	for _, report := range exampleReports() {
		first := safety.IsSafe(report)
		firstDampened := safety.IsSafeWithDampener(report)

		for range 3 {
			assert.Equal(t, first, safety.IsSafe(report))
			assert.Equal(t, firstDampened, safety.IsSafeWithDampener(report))
		}
	}
}

func TestIsSafeWithDampener_RemovalOrderIndependent(t *testing.T) {
	t.Parallel()

	verifier := safety.Default()

	reports := append(exampleReports(),
		sequence.Sequence{3, 1, 2, 3, 4},
		sequence.Sequence{1, 2, 3, 9},
		sequence.Sequence{1, 2, 1, 2, 1},
		sequence.Sequence{5, 5},
	)

	for _, report := range reports {
		backwards := verifier.IsSafe(report)

		for i := len(report) - 1; i >= 0 && !backwards; i-- {
			backwards = verifier.SafeWithout(report, i)
		}

		assert.Equal(t, backwards, verifier.IsSafeWithDampener(report), "report %v", report)
	}
}

func TestNewVerifier_CustomRule(t *testing.T) {
	t.Parallel()

	verifier, err := safety.NewVerifier(safety.Rule{MinStep: 2, MaxStep: 4})
	require.NoError(t, err)

	assert.True(t, verifier.IsSafe(sequence.Sequence{1, 3, 7, 9}))

	violation := verifier.Check(sequence.Sequence{1, 2, 4})
	assert.Equal(t, safety.KindSmallStep, violation.Kind)
	assert.Equal(t, 1, violation.At)

	assert.True(t, verifier.IsSafeWithDampener(sequence.Sequence{1, 2, 4}))
	assert.Equal(t, safety.Rule{MinStep: 2, MaxStep: 4}, verifier.Rule())
}

func TestNewVerifier_InvalidRule(t *testing.T) {
	t.Parallel()

	_, err := safety.NewVerifier(safety.Rule{MinStep: 0, MaxStep: 3})
	require.ErrorIs(t, err, safety.ErrInvalidRule)

	_, err = safety.NewVerifier(safety.Rule{MinStep: 3, MaxStep: 2})
	require.ErrorIs(t, err, safety.ErrInvalidRule)
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ok", safety.KindNone.String())
	assert.Equal(t, "plateau", safety.KindPlateau.String())
	assert.Equal(t, "reversal", safety.KindReversal.String())
	assert.Equal(t, "small-step", safety.KindSmallStep.String())
	assert.Equal(t, "jump", safety.KindJump.String())
	assert.Equal(t, "unknown", safety.Kind(99).String())
	assert.Len(t, safety.Kinds(), 4)
}
