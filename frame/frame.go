// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package frame provides an explicit frame source that
// drives per-frame callbacks on a single logical thread.
package frame

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gviegas/gridcube/internal/idmap"
)

// Sub identifies a subscription to a Loop.
type Sub int

// Loop is a frame source.
// Tick must only be called from one goroutine at a time,
// which is the loop's logical thread: posted tasks and
// subscribers run there. Post may be called from any
// goroutine.
// The zero value is ready for use.
type Loop struct {
	mu     sync.Mutex
	posted []func()

	subs  idmap.Map[Sub, func(time.Duration)]
	funcs []func(time.Duration)
	last  time.Time
	ticks uint64

	// Now returns the current time.
	// Nil means time.Now.
	Now func() time.Time
}

// Post queues f to run on the next Tick, before any
// subscriber.
func (l *Loop) Post(f func()) {
	l.mu.Lock()
	l.posted = append(l.posted, f)
	l.mu.Unlock()
}

// Subscribe registers f to be called on every Tick with
// the time elapsed since the previous Tick.
// It must be called from the loop's thread.
func (l *Loop) Subscribe(f func(dt time.Duration)) Sub {
	return l.subs.Insert(f)
}

// Unsubscribe removes the subscription sub.
// Unsubscribing twice has no effect.
// It must be called from the loop's thread.
func (l *Loop) Unsubscribe(sub Sub) { l.subs.Remove(sub) }

// Len returns the number of subscriptions.
func (l *Loop) Len() int { return l.subs.Len() }

// Ticks returns the number of completed ticks.
func (l *Loop) Ticks() uint64 { return l.ticks }

// Tick runs posted tasks and then every subscriber once.
// Subscriptions added by posted tasks run in the same
// Tick; those added by subscribers wait for the next one.
func (l *Loop) Tick() {
	l.mu.Lock()
	posted := l.posted
	l.posted = nil
	l.mu.Unlock()
	for _, f := range posted {
		f()
	}

	now := l.now()
	var dt time.Duration
	if !l.last.IsZero() {
		dt = now.Sub(l.last)
	}
	l.last = now

	l.funcs = l.subs.Values(l.funcs[:0])
	for _, f := range l.funcs {
		f(dt)
	}
	clear(l.funcs)
	l.ticks++
}

func (l *Loop) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

// Run calls Tick hz times per second until ctx is done
// or, if ticks is not 0, until that many ticks ran.
// The calling goroutine becomes the loop's thread.
func (l *Loop) Run(ctx context.Context, hz int, ticks uint64) error {
	if hz <= 0 {
		return errors.New("frame: non-positive tick rate")
	}
	t := time.NewTicker(time.Second / time.Duration(hz))
	defer t.Stop()
	for n := uint64(0); ticks == 0 || n < ticks; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			l.Tick()
		}
	}
	return nil
}
