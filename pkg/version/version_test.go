package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/reportscan/pkg/version"
)

func TestString(t *testing.T) {
	t.Parallel()

	got := version.String()

	assert.Contains(t, got, "reportscan ")
	assert.Contains(t, got, "commit: "+version.Commit)
	assert.Contains(t, got, "built: "+version.Date)
}

func TestInitBinaryVersion_KeepsValue(t *testing.T) {
	version.InitBinaryVersion()

	assert.NotEmpty(t, version.Version)
	assert.NotEmpty(t, version.Commit)
}
