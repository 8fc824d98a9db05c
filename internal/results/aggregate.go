package results

import "fmt"

// Summary aggregates the results of all fan-out jobs into a single pipeline
// verdict. Jobs are isolated from each other: one job's failures never stop
// a sibling's results from being read and reported.
type Summary struct {
	Jobs     []JobResult
	Tests    int
	Failures int
	Errors   int
	Skipped  int
}

// Aggregate parses every listed results file. Each file is expected to
// exist; a missing one aborts with ErrArtifactMissing.
func Aggregate(paths []string) (*Summary, error) {
	summary := &Summary{}
	for _, path := range paths {
		job, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		summary.Jobs = append(summary.Jobs, *job)
		summary.Tests += job.Tests
		summary.Failures += job.Failures
		summary.Errors += job.Errors
		summary.Skipped += job.Skipped
	}
	return summary, nil
}

// Failed reports whether any job had failures or errors.
func (s *Summary) Failed() bool {
	return s.Failures > 0 || s.Errors > 0
}

// Status renders a human-readable verdict naming the failure counts.
func (s *Summary) Status() string {
	if !s.Failed() {
		return fmt.Sprintf("%d tests passed across %d jobs (%d skipped)",
			s.Tests, len(s.Jobs), s.Skipped)
	}
	return fmt.Sprintf("%d failures, %d errors across %d jobs (%d tests)",
		s.Failures, s.Errors, len(s.Jobs), s.Tests)
}
