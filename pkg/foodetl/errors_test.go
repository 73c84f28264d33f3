package foodetl_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/foodetl/pkg/foodetl"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, foodetl.ExitSuccess},
		{"general error", errors.New("something went wrong"), foodetl.ExitGeneralError},
		{"unknown flag", errors.New("unknown flag --foo"), foodetl.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x'"), foodetl.ExitUsageError},
		{"too many args", errors.New("accepts at most 1 arg(s), received 2"), foodetl.ExitUsageError},
		{"invalid config", fmt.Errorf("bad: %w", foodetl.ErrInvalidConfig), foodetl.ExitConfigError},
		{"unsupported auth", foodetl.ErrUnsupportedAuthMethod, foodetl.ExitConfigError},
		{"connection failed", foodetl.ErrConnectionFailed, foodetl.ExitConnectionError},
		{"connection refused text", errors.New("dial tcp: connection refused"), foodetl.ExitConnectionError},
		{"input missing", fmt.Errorf("users: %w", foodetl.ErrInputNotFound), foodetl.ExitInputError},
		{"input malformed", foodetl.ErrMalformedInput, foodetl.ExitInputError},
		{"transform", fmt.Errorf("users: %w", foodetl.ErrTransformFailed), foodetl.ExitTransformFailed},
		{"schema", foodetl.ErrSchemaFailed, foodetl.ExitSchemaFailed},
		{"constraint", fmt.Errorf("append: %w", foodetl.ErrConstraintViolation), foodetl.ExitConstraintViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := foodetl.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeForError_ConstraintBeatsSchema(t *testing.T) {
	err := fmt.Errorf("%w: %w", foodetl.ErrSchemaFailed, foodetl.ErrConstraintViolation)
	if got := foodetl.ExitCodeForError(err); got != foodetl.ExitConstraintViolation {
		t.Errorf("ExitCodeForError() = %d, want %d", got, foodetl.ExitConstraintViolation)
	}
}
