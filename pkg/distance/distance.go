// Package distance compares two lists of location IDs.
package distance

import (
	"slices"

	"github.com/Sumatoshi-tech/reportscan/pkg/sequence"
)

// Row is one rank of the sorted pairing.
type Row struct {
	Left     uint32
	Right    uint32
	Distance uint64
}

// TotalDistance sorts copies of both lists ascending and sums the absolute
// differences of the rows. The pair itself is not modified.
func TotalDistance(pair sequence.Pair) (uint64, error) {
	left, right, err := sortedCopies(pair)
	if err != nil {
		return 0, err
	}

	var total uint64

	for i := range left {
		total += absDiff(left[i], right[i])
	}

	return total, nil
}

// Rows returns the sorted pairing that TotalDistance sums over.
func Rows(pair sequence.Pair) ([]Row, error) {
	left, right, err := sortedCopies(pair)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, len(left))
	for i := range left {
		rows[i] = Row{Left: left[i], Right: right[i], Distance: absDiff(left[i], right[i])}
	}

	return rows, nil
}

func sortedCopies(pair sequence.Pair) (sequence.Sequence, sequence.Sequence, error) {
	err := pair.Validate()
	if err != nil {
		return nil, nil, err
	}

	left := slices.Clone(pair.Left)
	right := slices.Clone(pair.Right)

	slices.Sort(left)
	slices.Sort(right)

	return left, right, nil
}

// SimilarityScore sums each left value multiplied by how often it appears on the right.
func SimilarityScore(pair sequence.Pair) (uint64, error) {
	err := pair.Validate()
	if err != nil {
		return 0, err
	}

	frequency := Frequencies(pair.Right)

	var score uint64

	for _, value := range pair.Left {
		score += uint64(value) * uint64(frequency[value])
	}

	return score, nil
}

// SharedValues counts distinct left values that also occur on the right.
func SharedValues(pair sequence.Pair) int {
	right := Frequencies(pair.Right)
	seen := make(map[uint32]struct{}, len(pair.Left))

	shared := 0

	for _, value := range pair.Left {
		if _, dup := seen[value]; dup {
			continue
		}

		seen[value] = struct{}{}

		if right[value] > 0 {
			shared++
		}
	}

	return shared
}

// Frequencies counts occurrences of each value in s.
func Frequencies(s sequence.Sequence) map[uint32]int {
	frequency := make(map[uint32]int, len(s))

	for _, value := range s {
		frequency[value]++
	}

	return frequency
}

func absDiff(a, b uint32) uint64 {
	if a > b {
		return uint64(a - b)
	}

	return uint64(b - a)
}
