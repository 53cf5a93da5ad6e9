// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package frame

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoop(t *testing.T) {
	var l Loop
	now := time.Unix(100, 0)
	l.Now = func() time.Time { return now }

	var dts []time.Duration
	sub := l.Subscribe(func(dt time.Duration) { dts = append(dts, dt) })
	require.Equal(t, 1, l.Len())

	l.Tick()
	now = now.Add(16 * time.Millisecond)
	l.Tick()
	require.Equal(t, []time.Duration{0, 16 * time.Millisecond}, dts)
	require.EqualValues(t, 2, l.Ticks())

	l.Unsubscribe(sub)
	l.Unsubscribe(sub)
	require.Zero(t, l.Len())
	l.Tick()
	require.Len(t, dts, 2)
}

func TestLoopPost(t *testing.T) {
	var l Loop
	var order []string
	l.Subscribe(func(time.Duration) { order = append(order, "sub") })

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		l.Post(func() { order = append(order, "posted") })
	}()
	wg.Wait()

	l.Tick()
	require.Equal(t, []string{"posted", "sub"}, order)
	l.Tick()
	require.Equal(t, []string{"posted", "sub", "sub"}, order)
}

func TestLoopSubscribeDuringTick(t *testing.T) {
	var l Loop
	calls := 0
	l.Subscribe(func(time.Duration) {
		if calls == 0 {
			l.Subscribe(func(time.Duration) { calls += 10 })
		}
		calls++
	})
	l.Tick()
	require.Equal(t, 1, calls)
	l.Tick()
	require.Equal(t, 12, calls)
}

func TestLoopRun(t *testing.T) {
	var l Loop
	n := 0
	l.Subscribe(func(time.Duration) { n++ })
	require.NoError(t, l.Run(context.Background(), 1000, 5))
	require.Equal(t, 5, n)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, l.Run(ctx, 1000, 0), context.Canceled)
	require.Error(t, l.Run(context.Background(), 0, 1))
}
