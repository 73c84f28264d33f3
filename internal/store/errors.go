package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vvka-141/foodetl/pkg/foodetl"
)

// Integrity constraint SQLSTATEs that reject an append.
// See: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgCodeForeignKeyViolation = "23503"
	pgCodeUniqueViolation     = "23505"
)

// ConstraintError reports rows rejected by a primary key or foreign key.
// It matches foodetl.ErrConstraintViolation with errors.Is.
type ConstraintError struct {
	Table      string
	Constraint string
	Code       string
	Detail     string
	Err        error
}

func (e *ConstraintError) Error() string {
	kind := "constraint violation"
	switch e.Code {
	case pgCodeUniqueViolation:
		kind = "duplicate key"
	case pgCodeForeignKeyViolation:
		kind = "missing foreign key target"
	}
	msg := fmt.Sprintf("append %s: %s (%s)", e.Table, kind, e.Constraint)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ConstraintError) Unwrap() []error {
	return []error{foodetl.ErrConstraintViolation, e.Err}
}

// IsForeignKeyViolation reports whether e was raised by a foreign key.
func (e *ConstraintError) IsForeignKeyViolation() bool {
	return e.Code == pgCodeForeignKeyViolation
}

// classify turns key violations into *ConstraintError and wraps anything else.
func classify(table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodeUniqueViolation, pgCodeForeignKeyViolation:
			return &ConstraintError{
				Table:      table,
				Constraint: pgErr.ConstraintName,
				Code:       pgErr.Code,
				Detail:     pgErr.Detail,
				Err:        err,
			}
		}
	}
	return fmt.Errorf("append %s: %w", table, err)
}
