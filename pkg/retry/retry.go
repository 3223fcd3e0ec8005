// Package retry implements bounded exponential backoff: 3 attempts,
// 1s base delay, doubling.
package retry

import (
	"context"
	"time"
)

const (
	DefaultAttempts  = 3
	DefaultBaseDelay = time.Second
)

type Policy struct {
	Attempts  int
	BaseDelay time.Duration
}

func DefaultPolicy() Policy {
	return Policy{Attempts: DefaultAttempts, BaseDelay: DefaultBaseDelay}
}

// Do runs fn until it succeeds, the attempt budget is spent, or ctx is done.
// The last error is returned when all attempts fail.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	delay := p.BaseDelay

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		if err = fn(); err == nil {
			return nil
		}
	}
	return err
}

// Do runs fn under the default policy.
func Do(ctx context.Context, fn func() error) error {
	return DefaultPolicy().Do(ctx, fn)
}
