package foodetl

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionPreparer abstracts session opening for testability.
type SessionPreparer interface {
	PrepareSession(ctx context.Context, connConfig *ConnectionConfig) (*Session, error)
}

// Session encapsulates the storage session of one pipeline run: a connection
// pool and the single connection acquired from it. Every table creation and
// append of the run goes through Conn().
//
// Thread-Safety: NOT safe for concurrent use.
//
// Lifecycle:
//  1. Created by SessionManager.PrepareSession()
//  2. Used for the three appends and the schema ensure
//  3. Cleaned up via Close() (idempotent)
//
// Example usage:
//
//	session, err := sessionManager.PrepareSession(ctx, connConfig)
//	if err != nil {
//	    return err
//	}
//	defer session.Close()
type Session struct {
	pool    *pgxpool.Pool
	conn    *pgxpool.Conn
	cleanup func()
}

// NewSession creates a new Session instance.
// This is intended to be called by SessionManager, not by external code.
// cleanup, if non-nil, runs after the pool is closed (e.g. to release a
// Cloud SQL dialer).
//
// Panics if pool or conn is nil (programmer error).
func NewSession(pool *pgxpool.Pool, conn *pgxpool.Conn, cleanup func()) *Session {
	if pool == nil {
		panic("pool cannot be nil")
	}
	if conn == nil {
		panic("conn cannot be nil")
	}

	return &Session{
		pool:    pool,
		conn:    conn,
		cleanup: cleanup,
	}
}

// Pool returns the connection pool for the session.
// The pool is valid until Close() is called.
func (s *Session) Pool() *pgxpool.Pool {
	return s.pool
}

// Conn returns the acquired connection all loads run on.
// The connection is valid until Close() is called.
func (s *Session) Conn() *pgxpool.Conn {
	return s.conn
}

// Close releases all resources associated with the session.
// This method is idempotent and safe to call multiple times.
//
// Resource cleanup order:
//  1. Release the acquired connection back to the pool
//  2. Close the connection pool
//  3. Run the connector cleanup
func (s *Session) Close() error {
	if s.conn != nil {
		s.conn.Release()
		s.conn = nil
	}

	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}

	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}

	return nil
}
