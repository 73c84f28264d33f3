package foodetl

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBConnection is the subset of a single PostgreSQL connection used to create
// tables and append rows. *pgxpool.Conn and *pgx.Conn both satisfy it.
//
// Thread-Safety: follows the underlying connection, which is NOT safe for
// concurrent use.
type DBConnection interface {
	// Exec executes a statement without returning any rows.
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	// CopyFrom bulk-loads rows into tableName using the COPY protocol.
	// Returns the number of rows copied.
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}
