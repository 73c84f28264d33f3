package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/foodetl/internal/retry"
	"github.com/vvka-141/foodetl/pkg/foodetl"
)

// Pool settings. A run holds a single connection for its whole duration.
const (
	DefaultMaxConns        = 2
	DefaultMinConns        = 0
	DefaultMaxConnIdleTime = 30 * time.Minute
)

func configurePool(poolConfig *pgxpool.Config, logger foodetl.Logger) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		logger.Verbose("postgres %s: %s", strings.ToLower(notice.Severity), notice.Message)
	}
}

// openPool parses connStr, opens a pool and pings it.
func openPool(ctx context.Context, connStr string, cfg *foodetl.ConnectionConfig, logger foodetl.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}
	configurePool(poolConfig, logger)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, wrapConnectionError(err, cfg)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, wrapConnectionError(err, cfg)
	}
	return pool, nil
}

// newRetryExecutor retries transient connection failures cfg.RetryAttempts times.
func newRetryExecutor(cfg *foodetl.ConnectionConfig, logger foodetl.Logger) *retry.Executor {
	strategy := retry.NewExponentialBackoff(cfg.RetryAttempts,
		retry.WithInitialDelay(foodetl.DefaultRetryInitialDelay),
		retry.WithMaxDelay(foodetl.DefaultRetryMaxDelay),
	)
	return retry.NewExecutor(retry.NewPostgreSQLErrorClassifier(), strategy).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Info("Connection attempt %d failed, retrying in %v: %v", attempt+1, delay.Round(time.Millisecond), err)
		})
}

// StandardConnector authenticates with username and password.
type StandardConnector struct {
	config   *foodetl.ConnectionConfig
	logger   foodetl.Logger
	executor *retry.Executor
}

func NewStandardConnector(config *foodetl.ConnectionConfig, logger foodetl.Logger) *StandardConnector {
	return &StandardConnector{
		config:   config,
		logger:   logger,
		executor: newRetryExecutor(config, logger),
	}
}

func (c *StandardConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	connStr := BuildConnectionString(c.config)

	err := c.executor.Execute(ctx, func(ctx context.Context) error {
		var err error
		pool, err = openPool(ctx, connStr, c.config, c.logger)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// NewConnectorFactory returns a factory that picks the Connector for a
// config's AuthMethod. Connectors report retries and notices to logger.
func NewConnectorFactory(logger foodetl.Logger) foodetl.ConnectorFactory {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return func(config *foodetl.ConnectionConfig) (foodetl.Connector, error) {
		switch config.AuthMethod {
		case foodetl.AuthMethodStandard:
			return NewStandardConnector(config, logger), nil
		case foodetl.AuthMethodAWSIAM:
			return newAWSConnector(config, logger)
		case foodetl.AuthMethodGoogleIAM:
			return newGoogleConnector(config, logger)
		case foodetl.AuthMethodAzureEntraID:
			return newAzureConnector(config, logger)
		default:
			return nil, fmt.Errorf("auth method %v: %w", config.AuthMethod, foodetl.ErrUnsupportedAuthMethod)
		}
	}
}

func newAWSConnector(config *foodetl.ConnectionConfig, logger foodetl.Logger) (foodetl.Connector, error) {
	endpoint := fmt.Sprintf("%s:%d", config.Host, config.Port)
	provider, err := NewAWSIAMTokenProvider(endpoint, config.AWSRegion, config.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", foodetl.ErrInvalidConfig, err)
	}
	return NewTokenBasedConnector(config, provider, "AWS IAM", logger), nil
}

func newGoogleConnector(config *foodetl.ConnectionConfig, logger foodetl.Logger) (foodetl.Connector, error) {
	if config.GoogleInstance == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires --google-instance (project:region:instance): %w", foodetl.ErrInvalidConfig)
	}
	if config.Username == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires a username (-U): %w", foodetl.ErrInvalidConfig)
	}
	return NewGoogleCloudSQLConnector(config, logger), nil
}

// newAzureConnector uses Service Principal credentials when tenant, client and
// secret are all set, and DefaultAzureCredential otherwise.
func newAzureConnector(config *foodetl.ConnectionConfig, logger foodetl.Logger) (foodetl.Connector, error) {
	var provider TokenProvider
	var err error

	if config.AzureTenantID != "" && config.AzureClientID != "" && config.AzureClientSecret != "" {
		provider, err = NewAzureServicePrincipalProvider(config.AzureTenantID, config.AzureClientID, config.AzureClientSecret)
	} else {
		provider, err = NewAzureDefaultCredentialProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", foodetl.ErrInvalidConfig, err)
	}
	return NewTokenBasedConnector(config, provider, "Azure", logger), nil
}

// wrapConnectionError marks err as a connection failure and adds a hint for
// the common causes.
func wrapConnectionError(err error, cfg *foodetl.ConnectionConfig) error {
	msg := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	var hint string
	switch {
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "actively refused"):
		hint = fmt.Sprintf("nothing is listening on %s; is PostgreSQL running? (pg_isready -h %s -p %d)", addr, cfg.Host, cfg.Port)
	case strings.Contains(msg, "no such host"):
		hint = fmt.Sprintf("cannot resolve host %q", cfg.Host)
	case strings.Contains(msg, "password authentication failed"):
		hint = fmt.Sprintf("check the password for user %q ($PGPASSWORD or the connection string)", cfg.Username)
	case strings.Contains(msg, "does not exist"):
		hint = fmt.Sprintf("create the database first: createdb %s", cfg.Database)
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		hint = fmt.Sprintf("no answer from %s; check the host, port and firewall", addr)
	case strings.Contains(msg, "ssl") || strings.Contains(msg, "tls"):
		hint = "SSL negotiation failed; check --sslmode"
	}

	if hint == "" {
		return fmt.Errorf("%w: %w", foodetl.ErrConnectionFailed, err)
	}
	return fmt.Errorf("%w: %s: %w", foodetl.ErrConnectionFailed, hint, err)
}
