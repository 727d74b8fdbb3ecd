package services

import (
	"context"
	"fmt"
	"time"

	"github.com/crestline-labs/confsync/internal/core/domain"
	"github.com/crestline-labs/confsync/internal/core/ports/driven"
	"github.com/crestline-labs/confsync/internal/logger"
)

// pollPolicy runs a condition at a fixed interval until it holds or the
// maximum wait elapses. The first attempt is immediate, so a condition
// that already holds terminates without sleeping.
type pollPolicy struct {
	interval time.Duration
	maxWait  time.Duration
	clock    driven.Clock
}

// poll calls check until it returns true. A false result sleeps interval
// and retries; exceeding maxWait yields domain.ErrPollTimeout wrapped with
// what. Errors from check abort the loop immediately.
func (p pollPolicy) poll(ctx context.Context, what string, check func(ctx context.Context) (bool, error)) error {
	start := p.clock.Now()

	for attempt := 1; ; attempt++ {
		done, err := check(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		if elapsed := p.clock.Now().Sub(start); elapsed >= p.maxWait {
			return fmt.Errorf("%s after %s: %w", what, elapsed.Round(time.Second), domain.ErrPollTimeout)
		}

		logger.Debug("waiting for %s (attempt %d)", what, attempt)
		if err := p.clock.Sleep(ctx, p.interval); err != nil {
			return err
		}
	}
}
