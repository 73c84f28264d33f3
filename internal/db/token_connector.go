package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/foodetl/internal/retry"
	"github.com/vvka-141/foodetl/pkg/foodetl"
)

// TokenBasedConnector connects with a token from a TokenProvider as the
// password (AWS RDS IAM, Azure Entra ID). Every attempt fetches a new token.
type TokenBasedConnector struct {
	config       *foodetl.ConnectionConfig
	provider     TokenProvider
	providerName string
	logger       foodetl.Logger
	executor     *retry.Executor
}

func NewTokenBasedConnector(config *foodetl.ConnectionConfig, provider TokenProvider, providerName string, logger foodetl.Logger) *TokenBasedConnector {
	return &TokenBasedConnector{
		config:       config,
		provider:     provider,
		providerName: providerName,
		logger:       logger,
		executor:     newRetryExecutor(config, logger),
	}
}

func (c *TokenBasedConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool

	err := c.executor.Execute(ctx, func(ctx context.Context) error {
		c.logger.Verbose("Acquiring %s token from %s", c.providerName, c.provider)
		token, expiresOn, err := c.provider.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("%w: failed to acquire %s token: %w", foodetl.ErrConnectionFailed, c.providerName, err)
		}
		if left := time.Until(expiresOn); left < tokenExpiryWarning {
			c.logger.Info("Warning: %s token expires in %v", c.providerName, left.Round(time.Second))
		}

		withToken := *c.config
		withToken.Password = token

		pool, err = openPool(ctx, BuildConnectionString(&withToken), c.config, c.logger)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}
