package errors

import (
	"errors"
	"fmt"
)

// Common errors that can be used across packages
var (
	// ErrAuthentication indicates a missing or rejected credential. Always
	// fatal: resolution must abort before any fan-out is scheduled.
	ErrAuthentication = errors.New("authentication failed")

	// ErrRegistryQuery indicates the registry listing or probe endpoint was
	// unreachable or returned an unexpected status. Always fatal.
	ErrRegistryQuery = errors.New("registry query failed")

	// ErrArtifactMissing indicates an expected results file was absent after a
	// test run. Configuration error, distinct from a failed test run.
	ErrArtifactMissing = errors.New("results artifact missing")

	ErrInvalidArgument = errors.New("invalid argument")
)

// RegistryError represents an error that occurs while talking to a package
// registry.
type RegistryError struct {
	Op      string
	Org     string
	Wrapped error
}

func (e *RegistryError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("registry %s failed for %s: %v", e.Op, e.Org, e.Wrapped)
	}
	return fmt.Sprintf("registry %s failed for %s", e.Op, e.Org)
}

func (e *RegistryError) Unwrap() error {
	return e.Wrapped
}

// NewRegistryError creates a new RegistryError
func NewRegistryError(op, org string, wrapped error) error {
	return &RegistryError{
		Op:      op,
		Org:     org,
		Wrapped: wrapped,
	}
}

// ResultsError represents an error that occurs while reading or parsing a
// test-results artifact.
type ResultsError struct {
	Path    string
	Wrapped error
}

func (e *ResultsError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("results file %s: %v", e.Path, e.Wrapped)
	}
	return fmt.Sprintf("results file %s", e.Path)
}

func (e *ResultsError) Unwrap() error {
	return e.Wrapped
}

// NewResultsError creates a new ResultsError
func NewResultsError(path string, wrapped error) error {
	return &ResultsError{
		Path:    path,
		Wrapped: wrapped,
	}
}

// Is reports whether target matches err.
// It enables errors.Is() to work with our custom error types.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// It enables errors.As() to work with our custom error types.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
