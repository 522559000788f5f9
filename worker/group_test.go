package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupBoundsConcurrency(t *testing.T) {
	g := New(context.Background(), 2, nil)
	defer g.Close()

	var running, peak atomic.Int32
	release := make(chan struct{})
	var finished atomic.Int32

	for i := 0; i < 6; i++ {
		g.Go(func(ctx context.Context) error {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			<-release
			running.Add(-1)
			finished.Add(1)
			return nil
		})
	}

	require.Eventually(t, func() bool { return running.Load() == 2 }, time.Second, time.Millisecond)
	close(release)
	require.Eventually(t, func() bool { return finished.Load() == 6 }, time.Second, time.Millisecond)
	assert.Equal(t, int32(2), peak.Load())
}

func TestFailingTaskDoesNotCancelSiblings(t *testing.T) {
	g := New(context.Background(), 4, nil)
	defer g.Close()

	g.Go(func(ctx context.Context) error { return errors.New("fetch failed") })

	done := make(chan error, 1)
	g.Go(func(ctx context.Context) error {
		time.Sleep(10 * time.Millisecond)
		done <- ctx.Err()
		return nil
	})
	assert.NoError(t, <-done)
}

func TestCloseCancelsAndWaits(t *testing.T) {
	g := New(context.Background(), 1, nil)

	var stopped atomic.Bool
	g.Go(func(ctx context.Context) error {
		<-ctx.Done()
		stopped.Store(true)
		return ctx.Err()
	})
	// queued behind the first task; must still run once with a canceled context
	var queuedRan atomic.Bool
	g.Go(func(ctx context.Context) error {
		queuedRan.Store(ctx.Err() != nil)
		return nil
	})

	require.NoError(t, g.Close())
	assert.True(t, stopped.Load())
	assert.True(t, queuedRan.Load())
	assert.ErrorIs(t, g.Context().Err(), context.Canceled)
}

func TestGoAfterCloseRunsWithCanceledContext(t *testing.T) {
	g := New(context.Background(), 1, nil)
	require.NoError(t, g.Close())
	require.NoError(t, g.Close())

	got := make(chan error, 1)
	g.Go(func(ctx context.Context) error {
		got <- ctx.Err()
		return nil
	})
	select {
	case err := <-got:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
}
