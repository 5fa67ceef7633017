package safety

import (
	"github.com/Sumatoshi-tech/reportscan/pkg/sequence"
)

// Dampen tries to make report safe by removing at most one level.
// It returns the removed index (-1 when the report was already safe) and
// whether a safe form was found. Every index is tried, because removing an
// earlier level can fix a later violation and vice versa.
func (v *Verifier) Dampen(report sequence.Sequence) (int, bool) {
	if v.IsSafe(report) {
		return noSkip, true
	}

	for i := range report {
		if v.SafeWithout(report, i) {
			return i, true
		}
	}

	return noSkip, false
}

// IsSafeWithDampener reports whether report is safe as is or after removing one level.
func (v *Verifier) IsSafeWithDampener(report sequence.Sequence) bool {
	_, ok := v.Dampen(report)

	return ok
}

// IsSafeWithDampener checks report against DefaultRule with the dampener enabled.
func IsSafeWithDampener(report sequence.Sequence) bool {
	return defaultVerifier.IsSafeWithDampener(report)
}
