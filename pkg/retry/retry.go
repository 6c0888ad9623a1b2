package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

// Config holds retry configuration. Attempts counts every try, including the
// first one.
type Config struct {
	MaxAttempts uint
	Delay       time.Duration
	MaxDelay    time.Duration
	Backoff     bool
}

// Fixed returns a fixed-delay retry configuration.
func Fixed(attempts uint, delay time.Duration) Config {
	return Config{
		MaxAttempts: attempts,
		Delay:       delay,
		Backoff:     false,
	}
}

// Exponential returns an exponential-backoff retry configuration.
func Exponential(attempts uint, initialDelay, maxDelay time.Duration) Config {
	return Config{
		MaxAttempts: attempts,
		Delay:       initialDelay,
		MaxDelay:    maxDelay,
		Backoff:     true,
	}
}

// Do executes fn, retrying per the configuration. The last error is returned
// once the attempt budget is exhausted; context cancellation stops retrying
// early.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	delayType := retry.FixedDelay
	if cfg.Backoff {
		delayType = retry.BackOffDelay
	}

	opts := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(cfg.MaxAttempts),
		retry.Delay(cfg.Delay),
		retry.DelayType(delayType),
		retry.LastErrorOnly(true),
	}
	if cfg.MaxDelay > 0 {
		opts = append(opts, retry.MaxDelay(cfg.MaxDelay))
	}

	return retry.Do(fn, opts...)
}
