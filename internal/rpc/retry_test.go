package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goran-ethernal/ChainActivity/internal/common"
	"github.com/goran-ethernal/ChainActivity/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockNetError implements net.Error for testing
type mockNetError struct {
	msg     string
	timeout bool
}

func (e *mockNetError) Error() string   { return e.msg }
func (e *mockNetError) Timeout() bool   { return e.timeout }
func (e *mockNetError) Temporary() bool { return false }

func fastRetry(attempts int) *config.RetryConfig {
	return &config.RetryConfig{
		MaxAttempts:       attempts,
		InitialBackoff:    common.NewDuration(5 * time.Millisecond),
		MaxBackoff:        common.NewDuration(20 * time.Millisecond),
		BackoffMultiplier: 2.0,
	}
}

func TestRetryableError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{name: "nil error", err: nil, retryable: false},
		{name: "net error", err: &mockNetError{msg: "network timeout", timeout: true}, retryable: true},
		{name: "op error", err: &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, retryable: true},
		{name: "connection refused", err: syscall.ECONNREFUSED, retryable: true},
		{name: "wrapped connection reset", err: fmt.Errorf("read: %w", syscall.ECONNRESET), retryable: true},
		{name: "broken pipe", err: syscall.EPIPE, retryable: true},
		{name: "context deadline", err: context.DeadlineExceeded, retryable: true},
		{name: "rate limited status", err: rpc.HTTPError{StatusCode: 429, Status: "429"}, retryable: true},
		{name: "unauthorized status", err: rpc.HTTPError{StatusCode: 401, Status: "401 Unauthorized"}, retryable: false},
		{name: "rate limit message", err: errors.New("rate limit exceeded"), retryable: true},
		{name: "gateway timeout", err: errors.New("504 Gateway Timeout"), retryable: true},
		{name: "pool exhausted", err: errors.New("no available connection"), retryable: true},
		{name: "unexpected eof", err: errors.New("unexpected EOF"), retryable: true},
		{name: "invalid parameter", err: errors.New("invalid parameter"), retryable: false},
		{name: "not found", err: errors.New("404 Not Found"), retryable: false},
		{name: "context canceled", err: context.Canceled, retryable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, retryableError(tt.err))
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	cfg := &config.RetryConfig{
		InitialBackoff:    common.NewDuration(1 * time.Second),
		MaxBackoff:        common.NewDuration(5 * time.Second),
		BackoffMultiplier: 2.0,
	}

	bounds := map[int][2]time.Duration{
		1:  {0, 0},
		2:  {750 * time.Millisecond, 1250 * time.Millisecond},
		3:  {1500 * time.Millisecond, 2500 * time.Millisecond},
		4:  {3 * time.Second, 5 * time.Second},
		10: {3750 * time.Millisecond, 6250 * time.Millisecond}, // capped
	}

	for attempt, b := range bounds {
		for range 10 {
			backoff := calculateBackoff(attempt, cfg)
			assert.GreaterOrEqual(t, backoff, b[0], "attempt %d", attempt)
			assert.LessOrEqual(t, backoff, b[1], "attempt %d", attempt)
		}
	}
}

func TestRetryWithBackoff(t *testing.T) {
	transient := &mockNetError{msg: "temporary error", timeout: true}
	permanent := errors.New("invalid parameter")

	tests := []struct {
		name      string
		cfg       *config.RetryConfig
		failures  int
		err       error
		wantCalls int
		wantErr   string
	}{
		{name: "first attempt succeeds", cfg: fastRetry(3), wantCalls: 1},
		{name: "succeeds after retries", cfg: fastRetry(5), failures: 2, err: transient, wantCalls: 3},
		{name: "non-retryable fails fast", cfg: fastRetry(5), failures: 5, err: permanent, wantCalls: 1,
			wantErr: "non-retryable error"},
		{name: "attempts exhausted", cfg: fastRetry(3), failures: 10, err: transient, wantCalls: 3,
			wantErr: "all 3 attempts failed"},
		{name: "nil config runs once", cfg: nil, failures: 1, err: permanent, wantCalls: 1,
			wantErr: "invalid parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(context.Background(), tt.cfg, "test_operation", func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})

			require.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	err := RetryWithBackoff(ctx, fastRetry(5), "test_operation", func() error {
		calls++
		if calls == 2 {
			cancel()
		}
		return &mockNetError{msg: "temporary error", timeout: true}
	})

	require.ErrorContains(t, err, "context cancelled")
	require.Equal(t, 2, calls)
}

func TestPolicy_Do(t *testing.T) {
	t.Run("each attempt gets its own deadline", func(t *testing.T) {
		p := Policy{Retry: fastRetry(3), RequestTimeout: 10 * time.Millisecond}

		calls := 0
		err := p.Do(context.Background(), "slow", func(ctx context.Context) error {
			calls++
			_, hasDeadline := ctx.Deadline()
			require.True(t, hasDeadline)
			if calls < 3 {
				<-ctx.Done()
				return ctx.Err()
			}
			return nil
		})

		require.NoError(t, err)
		require.Equal(t, 3, calls)
	})

	t.Run("no timeout passes the context through", func(t *testing.T) {
		p := NewPolicy(&config.ScannerConfig{Retry: fastRetry(1)})

		err := p.Do(context.Background(), "plain", func(ctx context.Context) error {
			_, hasDeadline := ctx.Deadline()
			require.False(t, hasDeadline)
			return nil
		})
		require.NoError(t, err)
	})
}
