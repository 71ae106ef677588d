package poller

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollsImmediatelyThenOnTicks(t *testing.T) {
	clock := clockwork.NewFakeClock()
	p := New(Config{Interval: 4 * time.Second}, clock)

	polled := make(chan string, 16)
	p.Register("players", func(ctx context.Context) error {
		polled <- "players"
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, p.Start(ctx))
	defer p.Stop()

	assert.Equal(t, "players", waitFor(t, polled), "first poll fires without waiting a tick")

	clock.BlockUntil(1)
	clock.Advance(4 * time.Second)
	assert.Equal(t, "players", waitFor(t, polled))
}

func TestFetchErrorsDoNotStopTheLoop(t *testing.T) {
	clock := clockwork.NewFakeClock()
	p := New(Config{Interval: time.Second}, clock)

	polled := make(chan string, 16)
	p.Register("broken", func(ctx context.Context) error {
		return fmt.Errorf("server unreachable")
	})
	p.Register("healthy", func(ctx context.Context) error {
		polled <- "healthy"
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, p.Start(ctx))
	defer p.Stop()

	assert.Equal(t, "healthy", waitFor(t, polled), "later fetches run even when an earlier one fails")

	clock.BlockUntil(1)
	clock.Advance(time.Second)
	assert.Equal(t, "healthy", waitFor(t, polled), "the loop survives fetch errors")
}

func TestStartTwiceFails(t *testing.T) {
	p := New(DefaultConfig(), clockwork.NewFakeClock())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, p.Start(ctx))
	assert.Error(t, p.Start(ctx))
	require.NoError(t, p.Stop())
	assert.Error(t, p.Stop())
}

func waitFor(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for poll")
		return ""
	}
}
