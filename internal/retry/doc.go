// Package retry re-runs PostgreSQL connection attempts that fail for
// transient reasons, waiting an exponentially growing delay in between.
//
//	executor := retry.NewExecutor(
//	    retry.NewPostgreSQLErrorClassifier(),
//	    retry.NewExponentialBackoff(cfg.RetryAttempts),
//	)
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    pool, err = openPool(ctx, connStr)
//	    return err
//	})
//
// Data loading is never retried: a COPY that failed halfway has already
// been rolled back by the server and repeating it would not change the
// outcome of a constraint violation.
package retry
