// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package viewer_test

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gviegas/gridcube/driver"
	"github.com/gviegas/gridcube/engine"
	"github.com/gviegas/gridcube/frame"
	"github.com/gviegas/gridcube/linear"
	"github.com/gviegas/gridcube/mesh"
	"github.com/gviegas/gridcube/viewer"
	"github.com/gviegas/gridcube/wsi"
)

const (
	waitFor   = 2 * time.Second
	tickEvery = time.Millisecond
)

// source counts the completions posted to a frame.Loop.
type source struct {
	*frame.Loop
	posts atomic.Int32
}

func (s *source) Post(f func()) {
	s.Loop.Post(f)
	s.posts.Add(1)
}

func config() (viewer.Config, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := viewer.DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(&buf, nil))
	return cfg, &buf
}

// await ticks loop until cond holds.
func await(t *testing.T, loop *frame.Loop, cond func() bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		loop.Tick()
		return cond()
	}, waitFor, tickEvery)
}

func TestState(t *testing.T) {
	for _, x := range [...]struct {
		s    viewer.State
		want string
	}{
		{viewer.Uninitialized, "Uninitialized"},
		{viewer.Initializing, "Initializing"},
		{viewer.Running, "Running"},
		{viewer.Disposed, "Disposed"},
	} {
		require.Equal(t, x.want, x.s.String())
	}
}

func TestAttach(t *testing.T) {
	region := wsi.NewMemRegion(1280, 800)
	loop := new(frame.Loop)
	cfg, _ := config()
	s := viewer.Attach(region, loop, cfg)
	require.Equal(t, viewer.Initializing, s.State())
	await(t, loop, func() bool { return s.State() == viewer.Running })
	require.NoError(t, s.Err())

	// wsi.Height gives max(400, 0.45⋅800).
	w, h := s.Renderer().Size()
	require.Equal(t, 1280, w)
	require.Equal(t, 400, h)
	require.InDelta(t, 3.2, s.Camera().Aspect, 1e-6)
	require.InDelta(t, math.Sqrt(68), s.Camera().Distance(), 1e-4)
	require.Equal(t, 36, s.Cube().LineCount())
	require.Equal(t, 12, s.Cube().Edges().Len())
	require.True(t, s.Camera().ContainsSphere(linear.V3{}, s.Cube().BoundingRadius()))

	_, lines := s.Scene().Count(func(p mesh.Primitive) bool {
		_, ok := p.(*mesh.Lines)
		return ok
	})
	require.Equal(t, 36, lines)

	require.Equal(t, 1, loop.Len())
	require.Equal(t, 2, region.Listeners())
	require.NotNil(t, region.Surface())

	frames := region.Frames()
	loop.Tick()
	require.Equal(t, frames+1, region.Frames())
	require.Equal(t, 36, s.Renderer().Stats().Lines)
	require.NotNil(t, region.Last())

	s.Detach()
}

func TestResize(t *testing.T) {
	region := wsi.NewMemRegion(800, 600)
	loop := new(frame.Loop)
	cfg, _ := config()
	s := viewer.Attach(region, loop, cfg)
	await(t, loop, func() bool { return s.State() == viewer.Running })
	require.InDelta(t, 2, s.Camera().Aspect, 1e-6)

	region.SetSize(600, 2000)
	w, h := s.Renderer().Size()
	require.Equal(t, 600, w)
	require.Equal(t, 900, h)
	require.InDelta(t, float32(600)/900, s.Camera().Aspect, 1e-6)
	p := s.Camera().Proj()
	require.InDelta(t, s.Camera().Aspect, p[1][1]/p[0][0], 1e-5)

	loop.Tick()
	b := region.Last().Bounds()
	require.Equal(t, 600, b.Dx())
	require.Equal(t, 900, b.Dy())

	s.Detach()
	// No effect once detached.
	region.SetSize(100, 100)
	require.InDelta(t, float32(600)/900, s.Camera().Aspect, 1e-6)
}

func TestDetach(t *testing.T) {
	region := wsi.NewMemRegion(640, 1000)
	loop := new(frame.Loop)
	cfg, _ := config()
	s := viewer.Attach(region, loop, cfg)
	await(t, loop, func() bool { return s.State() == viewer.Running })

	for range 2 {
		s.Detach()
		require.Equal(t, viewer.Disposed, s.State())
		require.Equal(t, 0, region.Listeners())
		require.Equal(t, 0, loop.Len())
		require.Nil(t, region.Surface())
		require.Nil(t, s.Renderer())
		require.Nil(t, s.Controls())
	}
	frames := region.Frames()
	loop.Tick()
	require.Equal(t, frames, region.Frames())
}

func TestDetachBeforeReady(t *testing.T) {
	region := wsi.NewMemRegion(640, 1000)
	src := &source{Loop: new(frame.Loop)}
	release := make(chan struct{})
	cfg, _ := config()
	cfg.Acquire = func(context.Context) (driver.GPU, error) {
		<-release
		return engine.Load(context.Background(), "")
	}
	s := viewer.Attach(region, src, cfg)
	s.Detach()
	require.Equal(t, viewer.Disposed, s.State())
	close(release)

	await(t, src.Loop, func() bool { return src.posts.Load() == 1 })
	src.Tick()
	require.Equal(t, viewer.Disposed, s.State())
	require.Nil(t, s.Renderer())
	require.Nil(t, region.Surface())
	require.Equal(t, 0, region.Listeners())
	require.Equal(t, 0, src.Len())
}

func TestDetachCancels(t *testing.T) {
	region := wsi.NewMemRegion(640, 1000)
	loop := new(frame.Loop)
	done := make(chan error, 1)
	cfg, _ := config()
	cfg.Acquire = func(ctx context.Context) (driver.GPU, error) {
		<-ctx.Done()
		done <- ctx.Err()
		return nil, ctx.Err()
	}
	s := viewer.Attach(region, loop, cfg)
	loop.Tick()
	require.Equal(t, viewer.Initializing, s.State())
	s.Detach()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(waitFor):
		t.Fatal("Session.Detach: acquisition not cancelled")
	}
	loop.Tick()
	require.Equal(t, viewer.Disposed, s.State())
	require.NoError(t, s.Err())
}

func TestAcquireFailure(t *testing.T) {
	region := wsi.NewMemRegion(640, 1000)
	loop := new(frame.Loop)
	cfg, buf := config()
	cfg.Acquire = func(context.Context) (driver.GPU, error) { return nil, driver.ErrNoDevice }
	s := viewer.Attach(region, loop, cfg)
	await(t, loop, func() bool { return s.Err() != nil })

	require.ErrorIs(t, s.Err(), driver.ErrNoDevice)
	require.Contains(t, buf.String(), "level=ERROR")
	require.Contains(t, buf.String(), driver.ErrNoDevice.Error())
	for range 3 {
		loop.Tick()
	}
	require.Equal(t, viewer.Initializing, s.State())
	require.Equal(t, 0, loop.Len())
	require.Nil(t, region.Surface())

	s.Detach()
	require.Equal(t, viewer.Disposed, s.State())
}

func TestNoDriver(t *testing.T) {
	region := wsi.NewMemRegion(640, 1000)
	loop := new(frame.Loop)
	cfg, _ := config()
	cfg.Driver = "no such driver"
	s := viewer.Attach(region, loop, cfg)
	await(t, loop, func() bool { return s.Err() != nil })
	require.ErrorIs(t, s.Err(), driver.ErrNoDriver)
	require.Equal(t, viewer.Initializing, s.State())
	s.Detach()
}

func TestNoMount(t *testing.T) {
	region := wsi.NewMemRegion(0, 1000)
	loop := new(frame.Loop)
	cfg, _ := config()
	s := viewer.Attach(region, loop, cfg)
	await(t, loop, func() bool { return s.Err() != nil })
	require.ErrorIs(t, s.Err(), viewer.ErrNoMount)
	require.Equal(t, viewer.Initializing, s.State())
	require.Equal(t, 0, region.Listeners())
	s.Detach()
	require.Equal(t, viewer.Disposed, s.State())
}

func TestClosedRegion(t *testing.T) {
	region := wsi.NewMemRegion(640, 1000)
	loop := new(frame.Loop)
	cfg, buf := config()
	s := viewer.Attach(region, loop, cfg)
	await(t, loop, func() bool { return s.State() == viewer.Running })

	region.Close()
	for range 3 {
		loop.Tick()
	}
	// Render errors are logged once.
	require.Equal(t, 1, bytes.Count(buf.Bytes(), []byte(wsi.ErrDetached.Error())))

	s.Detach()
	require.Equal(t, viewer.Disposed, s.State())
	require.Equal(t, 0, region.Listeners())
	require.Equal(t, 0, loop.Len())
	require.NotContains(t, buf.String(), "level=WARN")
}

func TestInvalidConfig(t *testing.T) {
	region := wsi.NewMemRegion(640, 1000)
	loop := new(frame.Loop)
	cfg := viewer.Config{Damping: 7, ZoomRange: [2]float32{10, 1}}
	cfg.Logger = slog.New(slog.NewTextHandler(new(bytes.Buffer), nil))
	s := viewer.Attach(region, loop, cfg)
	await(t, loop, func() bool { return s.State() == viewer.Running })
	require.Equal(t, 36, s.Cube().LineCount())
	require.Equal(t, viewer.DefaultConfig().ZoomRange[1], s.Controls().Params().MaxDistance)
	require.Equal(t, viewer.DefaultConfig().Damping, s.Controls().Params().Damping)
	s.Detach()
}

func TestSessionsIndependent(t *testing.T) {
	loop := new(frame.Loop)
	r1 := wsi.NewMemRegion(640, 1000)
	r2 := wsi.NewMemRegion(320, 1000)
	cfg, _ := config()
	s1 := viewer.Attach(r1, loop, cfg)
	s2 := viewer.Attach(r2, loop, cfg)
	await(t, loop, func() bool {
		return s1.State() == viewer.Running && s2.State() == viewer.Running
	})
	require.NoError(t, s1.Err())
	require.NoError(t, s2.Err())
	require.NotSame(t, s1.Cube(), s2.Cube())
	require.Equal(t, 2, loop.Len())

	s1.Detach()
	require.Equal(t, 1, loop.Len())
	require.Equal(t, 2, r2.Listeners())
	frames := r2.Frames()
	loop.Tick()
	require.Equal(t, frames+1, r2.Frames())
	s2.Detach()
	require.Equal(t, 0, loop.Len())
}

func TestAttachConcurrent(t *testing.T) {
	loop := new(frame.Loop)
	cfg, _ := config()
	var sessions [4]*viewer.Session
	var regions [len(sessions)]*wsi.MemRegion
	for i := range sessions {
		regions[i] = wsi.NewMemRegion(320+80*i, 1000)
		sessions[i] = viewer.Attach(regions[i], loop, cfg)
	}
	await(t, loop, func() bool {
		for _, s := range sessions {
			if s.State() != viewer.Running {
				return false
			}
		}
		return true
	})
	for i, s := range sessions {
		require.NoError(t, s.Err())
		w, _ := s.Renderer().Size()
		require.Equal(t, 320+80*i, w)
	}
	require.Equal(t, len(sessions), loop.Len())
	loop.Tick()
	for _, s := range sessions {
		s.Detach()
	}
	require.Equal(t, 0, loop.Len())
	for _, r := range regions {
		require.Equal(t, 0, r.Listeners())
	}
}
