package ai

import (
	"context"
	"time"

	"finchat/internal/logging"
)

// RetryConfig controls the exponential backoff applied to provider calls.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	Factor         float64

	// sleep is replaceable in tests
	sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryConfig matches the production defaults: up to 5 attempts,
// 1s initial backoff, doubling each time.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     5,
		InitialBackoff: time.Second,
		Factor:         2.0,
	}
}

func (c RetryConfig) wait(ctx context.Context, d time.Duration) error {
	if c.sleep != nil {
		return c.sleep(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// WithRetry runs fn up to MaxRetries times, sleeping with exponential
// backoff between transient failures. Non-transient errors propagate
// immediately; on exhaustion the last error is returned.
func WithRetry(ctx context.Context, cfg RetryConfig, fn func() error) error {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 1
	}
	backoff := cfg.InitialBackoff

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !IsTransient(lastErr) {
			return lastErr
		}
		if attempt == cfg.MaxRetries {
			break
		}

		logging.Warnf("transient provider error (attempt %d/%d), retrying in %s: %v",
			attempt, cfg.MaxRetries, backoff, lastErr)
		if err := cfg.wait(ctx, backoff); err != nil {
			return err
		}
		backoff = time.Duration(float64(backoff) * cfg.Factor)
	}
	return lastErr
}

// CompleteWithRetry collects a full response from the provider, retrying
// transient failures. A failure mid-collection restarts the call from
// the beginning; nothing collected so far is reused (at-least-once
// semantics at the provider, exactly-once toward the caller since the
// partial text is discarded).
func CompleteWithRetry(ctx context.Context, cfg RetryConfig, p Provider, req *ChatRequest) (string, error) {
	var out string
	err := WithRetry(ctx, cfg, func() error {
		text, err := Collect(ctx, p, req)
		if err != nil {
			return err
		}
		out = text
		return nil
	})
	return out, err
}
