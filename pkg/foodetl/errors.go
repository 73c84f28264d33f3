package foodetl

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	report, err := loader.Load(ctx, config)
//	if errors.Is(err, foodetl.ErrConstraintViolation) {
//	    // rows were rejected by a primary or foreign key
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInputNotFound indicates a raw dataset file does not exist.
	ErrInputNotFound = errors.New("input file not found")

	// ErrMalformedInput indicates a raw dataset could not be parsed as CSV.
	ErrMalformedInput = errors.New("malformed input")

	// ErrTransformFailed indicates a cleaning or derivation step failed,
	// for example an unparseable date of birth.
	ErrTransformFailed = errors.New("transform failed")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrSchemaFailed indicates table creation failed.
	ErrSchemaFailed = errors.New("schema creation failed")

	// ErrConstraintViolation indicates storage rejected appended rows because of a
	// duplicate primary key or a missing foreign key target.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrUnsupportedAuthMethod indicates the requested authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")
)

// usageErrorPatterns are cobra's messages for command line misuse.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts at most",
	"accepts 1 arg(s)",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrInputNotFound), errors.Is(err, ErrMalformedInput):
		return ExitInputError
	case errors.Is(err, ErrTransformFailed):
		return ExitTransformFailed
	case errors.Is(err, ErrConstraintViolation):
		return ExitConstraintViolation
	case errors.Is(err, ErrSchemaFailed):
		return ExitSchemaFailed
	}

	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
