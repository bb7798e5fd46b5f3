package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordWaits replaces the backoff sleep with a recorder for the test.
func recordWaits(t *testing.T) *[]time.Duration {
	t.Helper()
	var waits []time.Duration
	orig := waitBackoff
	waitBackoff = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}
	t.Cleanup(func() { waitBackoff = orig })
	return &waits
}

func retryOpts() TxOptions {
	opts := DefaultTxOptions()
	opts.MaxAttempts = 3
	opts.RetryBackoff = 10 * time.Millisecond
	return opts
}

func TestRetryOnConflict_SucceedsAfterSerializationFailures(t *testing.T) {
	waits := recordWaits(t)

	calls := 0
	err := retryOnConflict(context.Background(), retryOpts(), func(context.Context) error {
		calls++
		if calls < 3 {
			return fmt.Errorf("commit transaction: %w", &pgconn.PgError{Code: "40001"})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, *waits)
}

func TestRetryOnConflict_GivesUpAfterMaxAttempts(t *testing.T) {
	waits := recordWaits(t)
	deadlock := &pgconn.PgError{Code: "40P01"}

	calls := 0
	err := retryOnConflict(context.Background(), retryOpts(), func(context.Context) error {
		calls++
		return deadlock
	})

	assert.ErrorIs(t, err, deadlock)
	assert.Equal(t, 3, calls)
	assert.Len(t, *waits, 2)
}

func TestRetryOnConflict_DoesNotRetryOtherErrors(t *testing.T) {
	waits := recordWaits(t)
	boom := errors.New("boom")

	calls := 0
	err := retryOnConflict(context.Background(), retryOpts(), func(context.Context) error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
	assert.Empty(t, *waits)
}

func TestRetryOnConflict_StopsWhenContextCancelled(t *testing.T) {
	recordWaits(t)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := retryOnConflict(ctx, retryOpts(), func(context.Context) error {
		calls++
		cancel()
		return &pgconn.PgError{Code: "40001"}
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryOnConflict_AtLeastOneAttempt(t *testing.T) {
	recordWaits(t)
	opts := retryOpts()
	opts.MaxAttempts = 0

	calls := 0
	err := retryOnConflict(context.Background(), opts, func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWaitBackoff_ReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := waitBackoff(ctx, time.Hour)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}
