package scryfall

import (
	"context"
	"errors"
	"net"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func retryableErr() error {
	return &url.Error{Op: "Get", URL: "https://api.scryfall.com", Err: errors.New("read: connection reset by peer")}
}

func TestRetryPolicyRetriesTransientFailures(t *testing.T) {
	attempts := 0
	call := func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return retryableErr()
		}
		return nil
	}

	err := retryPolicy(3, 10*time.Second)(call)(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryPolicyGivesUpAfterMaxAttempts(t *testing.T) {
	attempts := 0
	call := func(ctx context.Context) error {
		attempts++
		return retryableErr()
	}

	err := retryPolicy(2, 10*time.Second)(call)(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, attempts)
}

func TestRetryPolicyDoesNotRetryPermanentErrors(t *testing.T) {
	attempts := 0
	call := func(ctx context.Context) error {
		attempts++
		return errors.New("invalid character '<' looking for beginning of value")
	}

	err := retryPolicy(3, 10*time.Second)(call)(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryPolicyBackoffBudgetCapsAttempts(t *testing.T) {
	attempts := 0
	call := func(ctx context.Context) error {
		attempts++
		return retryableErr()
	}

	// A 1ms budget is spent on the first backoff, so the second failure
	// is final even though three attempts were allowed.
	start := time.Now()
	err := retryPolicy(3, time.Millisecond)(call)(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, attempts)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRetryPolicyHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	call := func(c context.Context) error {
		attempts++
		cancel()
		return retryableErr()
	}

	err := retryPolicy(3, 10*time.Second)(call)(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestPipelineWrapOrder(t *testing.T) {
	var order []string
	mark := func(name string) policy {
		return func(next callFunc) callFunc {
			return func(ctx context.Context) error {
				order = append(order, name)
				return next(ctx)
			}
		}
	}

	p := pipeline{mark("outer"), mark("inner")}
	err := p.wrap(func(ctx context.Context) error {
		order = append(order, "call")
		return nil
	})(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner", "call"}, order)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"connection reset", retryableErr(), true},
		{"timeout", &url.Error{Op: "Get", Err: &net.DNSError{IsTimeout: true}}, true},
		{"decode failure", errors.New("unexpected end of JSON input"), false},
		{"server error", errors.New("scryfall: server error 503"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

func TestBackoffDelayGrows(t *testing.T) {
	assert.Equal(t, 250*time.Millisecond, backoffDelay(1))
	assert.Equal(t, 500*time.Millisecond, backoffDelay(2))
	assert.Equal(t, time.Second, backoffDelay(3))
}
