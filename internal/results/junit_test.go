package results

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	cerrors "github.com/imagematrix/matrix-cli/util/common/errors"
)

const passingXML = `<?xml version="1.0" encoding="utf-8"?>
<testsuites>
  <testsuite name="pytest-cuda12" tests="120" failures="0" errors="0" skipped="3" time="84.2"/>
</testsuites>`

const failingXML = `<?xml version="1.0" encoding="utf-8"?>
<testsuites>
  <testsuite name="pytest-cpu" tests="120" failures="2" errors="0" skipped="3" time="93.7"/>
</testsuites>`

const bareSuiteXML = `<?xml version="1.0" encoding="utf-8"?>
<testsuite name="pytest-cpu" tests="10" failures="1" errors="1" skipped="0" time="4.2"/>`

const multiSuiteXML = `<?xml version="1.0" encoding="utf-8"?>
<testsuites>
  <testsuite name="unit" tests="50" failures="0" errors="0" skipped="1" time="10.5"/>
  <testsuite name="integration" tests="20" failures="3" errors="0" skipped="0" time="42.0"/>
</testsuites>`

func writeResults(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseFile(t *testing.T) {
	path := writeResults(t, "results.xml", passingXML)

	job, err := ParseFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "pytest-cuda12", job.Name)
	assert.Equal(t, 120, job.Tests)
	assert.Equal(t, 0, job.Failures)
	assert.Equal(t, 3, job.Skipped)
	assert.True(t, job.Passed())
}

func TestParseFile_BareSuiteRoot(t *testing.T) {
	path := writeResults(t, "results.xml", bareSuiteXML)

	job, err := ParseFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "pytest-cpu", job.Name)
	assert.Equal(t, 10, job.Tests)
	assert.Equal(t, 1, job.Failures)
	assert.Equal(t, 1, job.Errors)
	assert.False(t, job.Passed())
}

func TestParseFile_SumsSuites(t *testing.T) {
	path := writeResults(t, "results.xml", multiSuiteXML)

	job, err := ParseFile(path)
	assert.NoError(t, err)
	assert.Equal(t, 70, job.Tests)
	assert.Equal(t, 3, job.Failures)
	assert.Equal(t, 1, job.Skipped)
	assert.InDelta(t, 52.5, job.Time, 0.001)
}

func TestParseFile_MissingIsArtifactError(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "never-written.xml"))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, cerrors.ErrArtifactMissing))

	var resErr *cerrors.ResultsError
	assert.True(t, errors.As(err, &resErr))
}

func TestParseFile_Malformed(t *testing.T) {
	path := writeResults(t, "results.xml", "not xml at all")
	_, err := ParseFile(path)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, cerrors.ErrArtifactMissing))
}

func TestAggregate_SiblingJobsStayIsolated(t *testing.T) {
	passing := writeResults(t, "cuda12.xml", passingXML)
	failing := writeResults(t, "cpu.xml", failingXML)

	summary, err := Aggregate([]string{passing, failing})
	assert.NoError(t, err)
	assert.True(t, summary.Failed())
	assert.Equal(t, 2, summary.Failures)
	assert.Equal(t, 240, summary.Tests)
	assert.Contains(t, summary.Status(), "2 failures")

	// the passing sibling still reports its own success
	assert.Len(t, summary.Jobs, 2)
	assert.True(t, summary.Jobs[0].Passed())
	assert.False(t, summary.Jobs[1].Passed())
}

func TestAggregate_MissingFileAborts(t *testing.T) {
	passing := writeResults(t, "cuda12.xml", passingXML)

	_, err := Aggregate([]string{passing, filepath.Join(t.TempDir(), "gone.xml")})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, cerrors.ErrArtifactMissing))
}

func TestSummary_StatusPassing(t *testing.T) {
	passing := writeResults(t, "cuda12.xml", passingXML)

	summary, err := Aggregate([]string{passing})
	assert.NoError(t, err)
	assert.False(t, summary.Failed())
	assert.Contains(t, summary.Status(), "120 tests passed")
}
