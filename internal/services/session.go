package services

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/foodetl/pkg/foodetl"
)

// SessionManager connects to the target database and acquires the one
// connection a run works on.
//
// SessionManager is safe for concurrent use as long as the connector factory
// and logger are.
type SessionManager struct {
	connectorFactory foodetl.ConnectorFactory
	logger           foodetl.Logger
}

// NewSessionManager panics if any dependency is nil.
func NewSessionManager(connectorFactory foodetl.ConnectorFactory, logger foodetl.Logger) *SessionManager {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &SessionManager{connectorFactory: connectorFactory, logger: logger}
}

// PrepareSession returns a Session holding the pool and an acquired
// connection. The caller must Close it.
func (sm *SessionManager) PrepareSession(ctx context.Context, connConfig *foodetl.ConnectionConfig) (*foodetl.Session, error) {
	sm.logger.Verbose("Connecting to database '%s' on %s:%d (%s)",
		connConfig.Database, connConfig.Host, connConfig.Port, connConfig.AuthMethod)

	connector, err := sm.connectorFactory(connConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connector: %w", err)
	}

	var cleanup func()
	if closer, ok := connector.(io.Closer); ok {
		cleanup = func() {
			if err := closer.Close(); err != nil {
				sm.logger.Verbose("closing connector: %v", err)
			}
		}
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		if cleanup != nil {
			cleanup()
		}
		return nil, fmt.Errorf("failed to connect to database %q: %w", connConfig.Database, err)
	}

	conn, err := acquire(ctx, pool)
	if err != nil {
		pool.Close()
		if cleanup != nil {
			cleanup()
		}
		return nil, err
	}

	sm.logger.Info("✓ Connected to database '%s'", connConfig.Database)
	return foodetl.NewSession(pool, conn, cleanup), nil
}

func acquire(ctx context.Context, pool *pgxpool.Pool) (*pgxpool.Conn, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to acquire connection: %w", foodetl.ErrConnectionFailed, err)
	}
	return conn, nil
}
