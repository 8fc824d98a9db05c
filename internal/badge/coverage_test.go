package badge

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	cerrors "github.com/imagematrix/matrix-cli/util/common/errors"
)

const coberturaXML = `<?xml version="1.0" ?>
<coverage version="7.4.1" timestamp="1719234000" line-rate="0.9321" branch-rate="0.81" lines-covered="4123" lines-valid="4423">
  <packages/>
</coverage>`

func writeCoverage(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coverage.xml")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCoverageFromFile(t *testing.T) {
	percent, err := CoverageFromFile(writeCoverage(t, coberturaXML))
	assert.NoError(t, err)
	assert.InDelta(t, 93.21, percent, 0.001)
}

func TestCoverageFromFile_Missing(t *testing.T) {
	_, err := CoverageFromFile(filepath.Join(t.TempDir(), "coverage.xml"))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, cerrors.ErrArtifactMissing))
}

func TestCoverageFromFile_OutOfRange(t *testing.T) {
	_, err := CoverageFromFile(writeCoverage(t, `<coverage line-rate="1.5"/>`))
	assert.Error(t, err)
}

func TestNew_RoundsMessage(t *testing.T) {
	b := New("coverage", 93.21)
	assert.Equal(t, 1, b.SchemaVersion)
	assert.Equal(t, "coverage", b.Label)
	assert.Equal(t, "93%", b.Message)
	assert.Equal(t, "green", b.Color)

	assert.Equal(t, "94%", New("coverage", 93.5).Message)
}

func TestColorFor(t *testing.T) {
	cases := []struct {
		percent float64
		color   string
	}{
		{100, "brightgreen"},
		{95, "brightgreen"},
		{94.9, "green"},
		{90, "green"},
		{80, "yellowgreen"},
		{75, "yellowgreen"},
		{60, "yellow"},
		{50, "orange"},
		{39.9, "red"},
		{0, "red"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.color, ColorFor(tc.percent), "percent %v", tc.percent)
	}
}
