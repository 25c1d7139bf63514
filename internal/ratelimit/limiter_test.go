package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitAllowsBurst(t *testing.T) {
	l := New("test", 20)

	start := time.Now()
	for i := 0; i < 20; i++ {
		require.NoError(t, l.Wait(context.Background()))
	}
	// A full burst should be admitted without any sleeping.
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

// Issuing more calls than the per-second quota must delay the overflow
// so that no one-second sliding window ever contains more than the
// quota of call starts.
func TestSlidingWindowNeverExceedsQuota(t *testing.T) {
	const quota = 20
	const calls = 25

	l := New("test", quota)

	starts := make([]time.Time, 0, calls)
	for i := 0; i < calls; i++ {
		require.NoError(t, l.Wait(context.Background()))
		starts = append(starts, time.Now())
	}

	delayed := 0
	for i := range starts {
		// Count call starts inside the window opening at starts[i].
		inWindow := 0
		for j := i; j < len(starts); j++ {
			if starts[j].Sub(starts[i]) < time.Second {
				inWindow++
			}
		}
		assert.LessOrEqual(t, inWindow, quota,
			"window starting at call %d holds %d call starts", i, inWindow)
		if i > 0 && starts[i].Sub(starts[i-1]) > 10*time.Millisecond {
			delayed++
		}
	}
	assert.GreaterOrEqual(t, delayed, calls-quota,
		"expected at least %d calls to be delayed past the burst", calls-quota)
}

func TestWaitHonoursCancelledContext(t *testing.T) {
	// Burst of one: the second Wait has to sleep, so cancellation bites.
	l := NewWithBurst("test", 1, 1)
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Wait(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait for test")
}

func TestAllow(t *testing.T) {
	l := NewWithBurst("test", 1, 1)
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
	assert.Equal(t, "test", l.Name())
}
