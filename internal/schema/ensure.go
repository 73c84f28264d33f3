package schema

import (
	"context"
	"fmt"

	"github.com/vvka-141/foodetl/pkg/foodetl"
)

// EnsureTable creates t if it does not exist.
func EnsureTable(ctx context.Context, conn foodetl.DBConnection, t Table) error {
	if _, err := conn.Exec(ctx, CreateTableSQL(t)); err != nil {
		return fmt.Errorf("%w: create table %s: %w", foodetl.ErrSchemaFailed, t.Name, err)
	}
	return nil
}

// Ensure creates every missing table, parents first. Tables that already
// exist are left untouched.
func Ensure(ctx context.Context, conn foodetl.DBConnection) error {
	for _, t := range All() {
		if err := EnsureTable(ctx, conn, t); err != nil {
			return err
		}
	}
	return nil
}
