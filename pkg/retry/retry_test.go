package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Fixed(3, time.Millisecond), func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	err := Do(context.Background(), Fixed(4, time.Millisecond), func() error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom, "only the last error is returned")
	assert.Equal(t, 4, calls)
}

func TestDo_RecoversMidway(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Fixed(5, time.Millisecond), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ContextCancellationStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, Fixed(100, 10*time.Millisecond), func() error {
		calls++
		if calls == 2 {
			cancel()
		}
		return errors.New("still failing")
	})
	assert.Error(t, err)
	assert.Less(t, calls, 100)
}

func TestExponential_Config(t *testing.T) {
	cfg := Exponential(5, 10*time.Millisecond, time.Second)
	assert.True(t, cfg.Backoff)
	assert.Equal(t, uint(5), cfg.MaxAttempts)
	assert.Equal(t, 10*time.Millisecond, cfg.Delay)
	assert.Equal(t, time.Second, cfg.MaxDelay)
}
