package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemSleeperWaitsForDuration(t *testing.T) {
	t.Parallel()

	start := time.Now()
	require.NoError(t, SystemSleeper{}.Sleep(context.Background(), 20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSystemSleeperReturnsEarlyOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := SystemSleeper{}.Sleep(ctx, time.Hour)
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Minute)
}

func TestSystemSleeperZeroDurationReportsContextState(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, SystemSleeper{}.Sleep(context.Background(), 0))
	assert.ErrorIs(t, SystemSleeper{}.Sleep(ctx, 0), context.Canceled)
}
