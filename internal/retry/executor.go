package retry

import (
	"context"
	"time"

	"github.com/vvka-141/foodetl/pkg/foodetl"
)

// OnRetryFunc is told about every retry before its delay starts. attempt is
// zero-indexed.
type OnRetryFunc func(attempt int, err error, delay time.Duration)

// Executor runs an operation once and then retries it while the classifier
// calls its error transient and the strategy allows more attempts.
//
// Execute may be called concurrently. WithOnRetry returns a copy and leaves
// the receiver unchanged.
type Executor struct {
	classifier foodetl.ErrorClassifier
	strategy   foodetl.BackoffStrategy
	onRetry    OnRetryFunc
}

// NewExecutor panics if classifier or strategy is nil.
func NewExecutor(classifier foodetl.ErrorClassifier, strategy foodetl.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{classifier: classifier, strategy: strategy}
}

func (e *Executor) WithOnRetry(fn OnRetryFunc) *Executor {
	clone := *e
	clone.onRetry = fn
	return &clone
}

// Execute returns nil on the first success, the first fatal error, the
// context error if ctx ends while waiting, or the last transient error once
// the attempts are used up. A negative MaxAttempts retries until ctx ends.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	err := operation(ctx)
	limit := e.strategy.MaxAttempts()

	for attempt := 0; err != nil && e.classifier.IsTransient(err); attempt++ {
		if limit >= 0 && attempt >= limit {
			break
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}
		if waitErr := sleep(ctx, delay); waitErr != nil {
			return waitErr
		}

		err = operation(ctx)
	}
	return err
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
