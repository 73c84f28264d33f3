// Package testing holds helpers for integration tests that need a real
// PostgreSQL database.
package testing

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/foodetl/internal/checksum"
	"github.com/vvka-141/foodetl/internal/db"
	"github.com/vvka-141/foodetl/internal/files/filesystem"
	"github.com/vvka-141/foodetl/internal/services"
	"github.com/vvka-141/foodetl/internal/testinfra"
	"github.com/vvka-141/foodetl/pkg/foodetl"
)

// TestConnEnvVar names an existing server to use instead of a container.
const TestConnEnvVar = "FOODETL_TEST_CONN"

var (
	testContainerOnce sync.Once
	testContainerConn string
	testContainerErr  error
)

// The container lives until the test binary exits; Ryuk removes it.
func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		container, err := testinfra.StartPostgres(context.Background())
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerConn = container.ConnString
	})
	return testContainerConn, testContainerErr
}

// GetTestConnectionString returns $FOODETL_TEST_CONN, else the connection
// string of a shared container. It skips the test when neither is available.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv(TestConnEnvVar); connString != "" {
		return connString
	}

	connString, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("%s not set and Docker unavailable: %v", TestConnEnvVar, err)
	}
	return connString
}

func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase skips under -short and otherwise returns a server
// connection string.
func RequireDatabase(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	return GetTestConnectionString(t)
}

// CreateTestDB creates an empty database with a unique name, drops it when
// the test ends and returns a connection string pointing at it.
func CreateTestDB(t *testing.T, connString string) string {
	t.Helper()

	ctx := context.Background()
	dbName := "foodetl_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Fatalf("Failed to connect for test DB creation: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{dbName}.Sanitize()); err != nil {
		t.Fatalf("Failed to create test database %s: %v", dbName, err)
	}
	t.Cleanup(func() { CleanupTestDB(t, connString, dbName) })

	cfg, err := db.ParseConnectionString(connString)
	if err != nil {
		t.Fatalf("Failed to parse connection string: %v", err)
	}
	cfg.Database = dbName
	return db.BuildConnectionString(cfg)
}

// CleanupTestDB drops dbName after terminating its sessions. Failures are
// logged, not fatal.
func CleanupTestDB(t *testing.T, connString, dbName string) {
	t.Helper()

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Logf("Warning: Failed to connect for cleanup: %v", err)
		return
	}
	defer pool.Close()

	_, err = pool.Exec(ctx, `
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid()
	`, dbName)
	if err != nil {
		t.Logf("Warning: Failed to terminate connections to %s: %v", dbName, err)
	}

	if _, err := pool.Exec(ctx, "DROP DATABASE IF EXISTS "+pgx.Identifier{dbName}.Sanitize()); err != nil {
		t.Logf("Warning: Failed to drop database %s: %v", dbName, err)
	}
}

// GetTestPool opens a pool that is closed when the test ends.
func GetTestPool(t *testing.T, connString string) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, pool *pgxpool.Pool, table string) int64 {
	t.Helper()

	var n int64
	err := pool.QueryRow(context.Background(), "SELECT count(*) FROM "+pgx.Identifier{table}.Sanitize()).Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// NewTestPipeline wires a PipelineService with the real connector factory
// and an OS filesystem.
func NewTestPipeline(t *testing.T, logger foodetl.Logger) *services.PipelineService {
	t.Helper()

	sessions := services.NewSessionManager(db.NewConnectorFactory(logger), logger)
	return services.NewPipelineService(sessions, filesystem.NewOSFileSystem(), checksum.New(), logger)
}

// ConnectionConfig parses connString for use in a LoadConfig.
func ConnectionConfig(t *testing.T, connString string) *foodetl.ConnectionConfig {
	t.Helper()

	cfg, err := db.ParseConnectionString(connString)
	if err != nil {
		t.Fatalf("Failed to parse connection string: %v", err)
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	cfg.AppName = foodetl.DefaultAppName
	return cfg
}
