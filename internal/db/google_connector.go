package db

import (
	"context"
	"fmt"
	"net"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/foodetl/pkg/foodetl"
)

// GoogleCloudSQLConnector connects through the Cloud SQL Go Connector with
// IAM database authentication.
//
// It implements io.Closer: Close must be called after the pool is closed to
// release the dialer.
type GoogleCloudSQLConnector struct {
	config *foodetl.ConnectionConfig
	logger foodetl.Logger
	dialer *cloudsqlconn.Dialer
}

func NewGoogleCloudSQLConnector(config *foodetl.ConnectionConfig, logger foodetl.Logger) *GoogleCloudSQLConnector {
	return &GoogleCloudSQLConnector{config: config, logger: logger}
}

func (c *GoogleCloudSQLConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	instance := c.config.GoogleInstance
	c.logger.Verbose("Dialing Cloud SQL instance %s", instance)

	dialer, err := cloudsqlconn.NewDialer(ctx, cloudsqlconn.WithIAMAuthN())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Cloud SQL dialer: %w", foodetl.ErrConnectionFailed, err)
	}

	// the dialer handles TLS; host is only a label
	dsn := fmt.Sprintf("host=%s user=%s dbname=%s sslmode=disable application_name=%s",
		instance, c.config.Username, c.config.Database, foodetl.DefaultAppName)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		dialer.Close()
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}
	poolConfig.ConnConfig.DialFunc = func(ctx context.Context, _, _ string) (net.Conn, error) {
		return dialer.Dial(ctx, instance)
	}
	configurePool(poolConfig, c.logger)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		dialer.Close()
		return nil, wrapConnectionError(err, c.config)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		dialer.Close()
		return nil, wrapConnectionError(err, c.config)
	}

	c.dialer = dialer
	return pool, nil
}

func (c *GoogleCloudSQLConnector) Close() error {
	if c.dialer != nil {
		err := c.dialer.Close()
		c.dialer = nil
		return err
	}
	return nil
}
