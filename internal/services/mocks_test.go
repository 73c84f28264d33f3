package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/foodetl/pkg/foodetl"
)

type mockConnector struct {
	pool *pgxpool.Pool
	err  error
}

func (m *mockConnector) Connect(_ context.Context) (*pgxpool.Pool, error) {
	return m.pool, m.err
}

// closingConnector is a mockConnector that also owns resources, like the
// Cloud SQL connector.
type closingConnector struct {
	mockConnector
	closed int
}

func (c *closingConnector) Close() error {
	c.closed++
	return nil
}

type mockSessions struct {
	calls int
	err   error
}

func (m *mockSessions) PrepareSession(context.Context, *foodetl.ConnectionConfig) (*foodetl.Session, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return nil, errors.New("mockSessions cannot open real sessions")
}

type copyCall struct {
	table   string
	columns []string
	rows    [][]any
}

// fakeConn records DDL and COPY calls. A COPY into failTable returns failErr.
type fakeConn struct {
	statements []string
	copies     []copyCall
	failTable  string
	failErr    error
}

func (c *fakeConn) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	c.statements = append(c.statements, sql)
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (c *fakeConn) CopyFrom(_ context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error) {
	name := strings.Join(table, ".")
	if name == c.failTable {
		return 0, c.failErr
	}

	call := copyCall{table: name, columns: columns}
	for src.Next() {
		values, err := src.Values()
		if err != nil {
			return 0, err
		}
		call.rows = append(call.rows, values)
	}
	c.copies = append(c.copies, call)
	return int64(len(call.rows)), src.Err()
}

func (c *fakeConn) tables() []string {
	var out []string
	for _, cp := range c.copies {
		out = append(out, cp.table)
	}
	return out
}
