package parse_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/reportscan/pkg/parse"
	"github.com/Sumatoshi-tech/reportscan/pkg/sequence"
)

const exampleReports = `7 6 4 2 1
1 2 7 8 9
9 7 6 2 1
1 3 2 4 5
8 6 4 4 1
1 3 6 7 9
`

const exampleLists = `3   4
4   3
2   5
1   3
3   9
3   3
`

func TestReports_Example(t *testing.T) {
	t.Parallel()

	reports, err := parse.Reports(strings.NewReader(exampleReports), parse.Options{})
	require.NoError(t, err)
	require.Len(t, reports, 6)

	assert.Equal(t, sequence.Sequence{7, 6, 4, 2, 1}, reports[0])
	assert.Equal(t, sequence.Sequence{1, 3, 6, 7, 9}, reports[5])
}

func TestReports_NoTrailingNewline(t *testing.T) {
	t.Parallel()

	reports, err := parse.Reports(strings.NewReader("1 2\n3 4"), parse.Options{})
	require.NoError(t, err)
	assert.Equal(t, sequence.Collection{{1, 2}, {3, 4}}, reports)
}

func TestReports_EmptyLinePolicies(t *testing.T) {
	t.Parallel()

	input := "1 2 3\n\n   \t\n5 4\n"

	skipped, err := parse.Reports(strings.NewReader(input), parse.Options{EmptyLines: parse.SkipEmpty})
	require.NoError(t, err)
	assert.Equal(t, sequence.Collection{{1, 2, 3}, {5, 4}}, skipped)

	kept, err := parse.Reports(strings.NewReader(input), parse.Options{EmptyLines: parse.KeepEmpty})
	require.NoError(t, err)
	require.Len(t, kept, 4)
	assert.Empty(t, kept[1])
	assert.Empty(t, kept[2])
	assert.Equal(t, sequence.Sequence{5, 4}, kept[3])
}

func TestReports_EmptyInput(t *testing.T) {
	t.Parallel()

	reports, err := parse.Reports(strings.NewReader(""), parse.Options{})
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestReports_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		line  int
		token string
		cause error
	}{
		{name: "word", input: "1 2\n1 x 3\n", line: 2, token: "x", cause: strconv.ErrSyntax},
		{name: "negative", input: "-1 2\n", line: 1, token: "-1", cause: strconv.ErrSyntax},
		{name: "decimal", input: "1.5 2\n", line: 1, token: "1.5", cause: strconv.ErrSyntax},
		{name: "overflow", input: "1\n2\n4294967296\n", line: 3, token: "4294967296", cause: strconv.ErrRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := parse.Reports(strings.NewReader(tt.input), parse.Options{})
			require.ErrorIs(t, err, parse.ErrMalformedInput)
			require.ErrorIs(t, err, tt.cause)

			var parseErr *parse.Error
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.line, parseErr.Line)
			assert.Equal(t, tt.token, parseErr.Token)
			assert.Contains(t, err.Error(), "line "+strconv.Itoa(tt.line))
		})
	}
}

func TestReports_MaxBytes(t *testing.T) {
	t.Parallel()

	_, err := parse.Reports(strings.NewReader(exampleReports), parse.Options{MaxBytes: 10})
	require.ErrorIs(t, err, parse.ErrInputTooLarge)

	reports, err := parse.Reports(strings.NewReader("7 6 4 2 1\n"), parse.Options{MaxBytes: 10})
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestPair_Example(t *testing.T) {
	t.Parallel()

	pair, err := parse.Pair(strings.NewReader(exampleLists), parse.Options{})
	require.NoError(t, err)

	assert.Equal(t, sequence.Sequence{3, 4, 2, 1, 3, 3}, pair.Left)
	assert.Equal(t, sequence.Sequence{4, 3, 5, 3, 9, 3}, pair.Right)
}

func TestPair_TokensAlternateAcrossLines(t *testing.T) {
	t.Parallel()

	pair, err := parse.Pair(strings.NewReader("1\n2\n\n3 4 5\n6"), parse.Options{})
	require.NoError(t, err)

	assert.Equal(t, sequence.Sequence{1, 3, 5}, pair.Left)
	assert.Equal(t, sequence.Sequence{2, 4, 6}, pair.Right)
}

func TestPair_OddTokenCount(t *testing.T) {
	t.Parallel()

	_, err := parse.Pair(strings.NewReader("1 2\n3\n"), parse.Options{})
	require.ErrorIs(t, err, parse.ErrMalformedInput)
	require.ErrorIs(t, err, parse.ErrOddTokenCount)

	var parseErr *parse.Error
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
}

func TestPair_Malformed(t *testing.T) {
	t.Parallel()

	_, err := parse.Pair(strings.NewReader("3 4\n4 abc\n"), parse.Options{})
	require.ErrorIs(t, err, parse.ErrMalformedInput)
}

func TestParseEmptyLines(t *testing.T) {
	t.Parallel()

	policy, err := parse.ParseEmptyLines("keep")
	require.NoError(t, err)
	assert.Equal(t, parse.KeepEmpty, policy)
	assert.Equal(t, "keep", policy.String())

	policy, err = parse.ParseEmptyLines(" SKIP ")
	require.NoError(t, err)
	assert.Equal(t, parse.SkipEmpty, policy)

	policy, err = parse.ParseEmptyLines("")
	require.NoError(t, err)
	assert.Equal(t, parse.SkipEmpty, policy)
	assert.Equal(t, "skip", policy.String())

	_, err = parse.ParseEmptyLines("drop")
	require.ErrorIs(t, err, parse.ErrUnknownEmptyLines)
}
