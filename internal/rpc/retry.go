package rpc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goran-ethernal/ChainActivity/pkg/config"
)

var retryableSubstrings = []string{
	// Timeouts
	"timeout", "deadline exceeded",
	// Rate limiting
	"429", "too many requests", "rate limit",
	// Temporary server errors
	"502", "503", "504", "bad gateway", "service unavailable", "gateway timeout",
	// Connection pool exhausted
	"connection pool", "no available connection",
	// Abruptly closed connections
	"eof", "connection reset",
}

// retryableError checks if an error should trigger a retry.
func retryableError(err error) bool {
	if err == nil {
		return false
	}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusTooManyRequests, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, s := range retryableSubstrings {
		if strings.Contains(errStr, s) {
			return true
		}
	}

	return false
}

// calculateBackoff computes the backoff duration for a given attempt with jitter.
func calculateBackoff(attempt int, cfg *config.RetryConfig) time.Duration {
	if attempt <= 1 {
		return 0
	}

	backoff := float64(cfg.InitialBackoff.Duration) * math.Pow(cfg.BackoffMultiplier, float64(attempt-2))
	if backoff > float64(cfg.MaxBackoff.Duration) {
		backoff = float64(cfg.MaxBackoff.Duration)
	}

	// +/-25% jitter
	jitterRange := backoff * 0.25
	backoff += (rand.Float64() * 2 * jitterRange) - jitterRange
	if backoff < 0 {
		backoff = 0
	}

	return time.Duration(backoff)
}

// RetryWithBackoff executes fn with exponential backoff, retrying only transport level failures.
// It respects context cancellation and deadlines.
func RetryWithBackoff(ctx context.Context, cfg *config.RetryConfig, operation string, fn func() error) error {
	if cfg == nil {
		return fn()
	}

	var lastErr error
	startTime := time.Now()

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("context cancelled before attempt %d: %w", attempt, err)
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryableError(err) {
			return fmt.Errorf("non-retryable error on attempt %d/%d: %w", attempt, cfg.MaxAttempts, err)
		}
		if attempt >= cfg.MaxAttempts {
			break
		}

		if wait := calculateBackoff(attempt+1, cfg); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("context cancelled during backoff (attempt %d/%d): %w",
					attempt, cfg.MaxAttempts, ctx.Err())
			}
		}

		recordRetry(operation)
	}

	return fmt.Errorf("all %d attempts failed after %v (last error: %w)",
		cfg.MaxAttempts, time.Since(startTime), lastErr)
}

// Policy bounds every attempt of a request with a timeout and retries transport failures.
type Policy struct {
	Retry          *config.RetryConfig
	RequestTimeout time.Duration
}

// NewPolicy builds the request policy from the scanner configuration.
func NewPolicy(cfg *config.ScannerConfig) Policy {
	return Policy{Retry: cfg.Retry, RequestTimeout: cfg.RequestTimeout.Duration}
}

// Do runs fn under the policy. Each attempt gets its own deadline derived from ctx.
func (p Policy) Do(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	return RetryWithBackoff(ctx, p.Retry, operation, func() error {
		if p.RequestTimeout <= 0 {
			return fn(ctx)
		}

		attemptCtx, cancel := context.WithTimeout(ctx, p.RequestTimeout)
		defer cancel()

		return fn(attemptCtx)
	})
}
