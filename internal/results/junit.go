package results

import (
	"encoding/xml"
	"errors"
	"io/fs"
	"os"

	cerrors "github.com/imagematrix/matrix-cli/util/common/errors"
)

// testSuites is the <testsuites> root most runners emit.
type testSuites struct {
	XMLName xml.Name    `xml:"testsuites"`
	Suites  []testSuite `xml:"testsuite"`
}

// testSuite is a single <testsuite> element. Some runners emit it as the
// document root, without a wrapping <testsuites>.
type testSuite struct {
	XMLName  xml.Name `xml:"testsuite"`
	Name     string   `xml:"name,attr"`
	Tests    int      `xml:"tests,attr"`
	Failures int      `xml:"failures,attr"`
	Errors   int      `xml:"errors,attr"`
	Skipped  int      `xml:"skipped,attr"`
	Time     float64  `xml:"time,attr"`
}

// JobResult holds the aggregated counts of one fan-out job's results file.
type JobResult struct {
	Path     string
	Name     string
	Tests    int
	Failures int
	Errors   int
	Skipped  int
	Time     float64
}

// Passed reports whether the job completed without failures or errors.
func (j *JobResult) Passed() bool {
	return j.Failures == 0 && j.Errors == 0
}

// ParseFile reads a JUnit XML results file. An absent file means the test
// run never completed, which is a configuration error distinct from a run
// that completed with failing tests.
func ParseFile(path string) (*JobResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cerrors.NewResultsError(path, cerrors.ErrArtifactMissing)
		}
		return nil, cerrors.NewResultsError(path, err)
	}
	return parse(path, data)
}

func parse(path string, data []byte) (*JobResult, error) {
	result := &JobResult{Path: path}

	var root testSuites
	if err := xml.Unmarshal(data, &root); err == nil {
		for _, suite := range root.Suites {
			if result.Name == "" {
				result.Name = suite.Name
			}
			result.Tests += suite.Tests
			result.Failures += suite.Failures
			result.Errors += suite.Errors
			result.Skipped += suite.Skipped
			result.Time += suite.Time
		}
		return result, nil
	}

	// fall back to a bare <testsuite> root
	var suite testSuite
	if err := xml.Unmarshal(data, &suite); err != nil {
		return nil, cerrors.NewResultsError(path, err)
	}
	result.Name = suite.Name
	result.Tests = suite.Tests
	result.Failures = suite.Failures
	result.Errors = suite.Errors
	result.Skipped = suite.Skipped
	result.Time = suite.Time
	return result, nil
}
