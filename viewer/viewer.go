// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package viewer manages the lifecycle of an interactive
// grid cube bound to a mount region.
package viewer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gviegas/gridcube"
	"github.com/gviegas/gridcube/driver"
	"github.com/gviegas/gridcube/engine"
	"github.com/gviegas/gridcube/frame"
	"github.com/gviegas/gridcube/linear"
	"github.com/gviegas/gridcube/mesh"
	"github.com/gviegas/gridcube/node"
	"github.com/gviegas/gridcube/orbit"
	"github.com/gviegas/gridcube/scene"
	"github.com/gviegas/gridcube/wsi"
)

// ErrNoMount means that the region had no width when the
// session was about to start rendering.
var ErrNoMount = errors.New("viewer: region has no width")

// State is the state of a Session.
type State int

// Session states.
const (
	Uninitialized State = iota
	Initializing
	Running
	Disposed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Initializing:
		return "Initializing"
	case Running:
		return "Running"
	case Disposed:
		return "Disposed"
	}
	return "State(?)"
}

// FrameSource is the interface that delivers frame ticks
// to a Session.
// Subscribers and posted functions run on the source's
// logical thread. Post may be called from any goroutine.
// *frame.Loop implements FrameSource.
type FrameSource interface {
	Subscribe(f func(dt time.Duration)) frame.Sub
	Unsubscribe(sub frame.Sub)
	Post(f func())
}

// Ground plane placement relative to the cube.
const (
	groundGap     = 0.4
	groundScale   = 4
	groundOpacity = 0.12
)

// Session is a viewer bound to one region.
// Except for Attach, its methods must be called from the
// frame source's thread.
type Session struct {
	cfg    Config
	log    *slog.Logger
	region wsi.Region
	src    FrameSource
	state  State
	err    error
	cancel context.CancelFunc

	rend   *engine.Onscreen
	cam    *engine.Camera
	ctrl   *orbit.Controls
	scn    *scene.Scene
	cube   *gridcube.Cube
	ground *node.Node

	resizeSub wsi.Sub
	frameSub  frame.Sub
	logged    map[string]bool
}

// Attach creates a session for region and starts
// acquiring rendering capabilities.
// The session starts rendering on src once acquisition
// completes, unless Detach was called first.
// region and src must not be nil.
func Attach(region wsi.Region, src FrameSource, cfg Config) *Session {
	cfg.normalize()
	s := &Session{
		cfg:    cfg,
		log:    cfg.Logger,
		region: region,
		src:    src,
		logged: make(map[string]bool),
	}
	acquire := cfg.Acquire
	if acquire == nil {
		acquire = func(ctx context.Context) (driver.GPU, error) {
			return engine.Load(ctx, cfg.Driver)
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.state = Initializing
	go func() {
		gpu, err := acquire(ctx)
		src.Post(func() { s.ready(gpu, err) })
	}()
	return s
}

// ready runs on the frame thread when acquisition
// completes.
func (s *Session) ready(gpu driver.GPU, err error) {
	if s.state != Initializing {
		return
	}
	if err != nil {
		s.fail("capability acquisition failed", err)
		return
	}
	width := s.region.Width()
	if width <= 0 {
		s.fail("cannot start", ErrNoMount)
		return
	}
	height := wsi.Height(s.region)
	rend, err := engine.NewOnscreen(gpu, s.region, width, height)
	if err != nil {
		s.fail("cannot create renderer", err)
		return
	}
	s.rend = rend

	s.cam = engine.NewPerspective(s.cfg.FOVDegrees, float32(width)/float32(height), s.cfg.Near, s.cfg.Far)
	s.cam.LookAt(s.cfg.CameraStart, linear.V3{})
	s.ctrl = orbit.New(s.cam, s.region, orbit.Params{
		Damping:     s.cfg.Damping,
		MinDistance: s.cfg.ZoomRange[0],
		MaxDistance: s.cfg.ZoomRange[1],
		RotateSpeed: 1,
		ZoomSpeed:   1,
	})

	lights := [...]engine.Light{
		(&engine.AmbientLight{Intensity: 0.55, R: 1, G: 1, B: 1}).Light(),
		(&engine.DistantLight{
			Direction: linear.V3{-0.3713907, -0.7427814, -0.557086},
			Intensity: 0.7,
			R:         1, G: 0.98, B: 0.95,
		}).Light(),
	}
	for i := range lights {
		if err := rend.AddLight(lights[i]); err != nil {
			s.log.Warn("light not added", "err", err)
		}
	}

	size := s.cfg.Grid.Size()
	s.ground = node.New()
	s.ground.Name = "ground"
	s.ground.Prims = []mesh.Primitive{&mesh.Triangles{
		Tris: mesh.Plane(size*groundScale, -size/2-groundGap),
		Mat: mesh.Material{
			Color:       linear.V3{0.55, 0.58, 0.62},
			Opacity:     groundOpacity,
			DoubleSided: true,
		},
	}}
	s.cube = gridcube.Build(s.cfg.Grid)
	s.scn = scene.New()
	s.scn.Background = s.cfg.Background
	s.scn.Insert(s.ground)
	s.scn.Insert(s.cube.Node())

	s.resizeSub = s.region.OnResize(s.resize)
	s.frameSub = s.src.Subscribe(s.tick)
	s.state = Running
	s.log.Info("session running", "width", width, "height", height, "grid", s.cfg.Grid.String())
}

func (s *Session) fail(msg string, err error) {
	s.err = err
	s.log.Error(msg, "err", err)
}

// tick renders one frame.
func (s *Session) tick(time.Duration) {
	s.ctrl.Update()
	if err := s.rend.Render(s.scn, s.cam); err != nil {
		if k := err.Error(); !s.logged[k] {
			s.logged[k] = true
			s.log.Error("render failed", "err", err)
		}
	}
}

// resize matches the renderer and camera to the region.
func (s *Session) resize() {
	if s.state != Running {
		return
	}
	width := s.region.Width()
	if width <= 0 {
		return
	}
	height := wsi.Height(s.region)
	if err := s.rend.Resize(width, height); err != nil {
		s.log.Error("resize failed", "err", err)
		return
	}
	s.cam.SetAspect(float32(width) / float32(height))
	s.cam.UpdateProjection()
}

// Detach tears s down and releases everything it holds.
// If acquisition is still pending, it is cancelled and
// its completion has no effect.
// Calling Detach more than once has no effect.
func (s *Session) Detach() {
	if s.state == Disposed {
		return
	}
	if s.state == Running {
		s.region.Remove(s.resizeSub)
		s.src.Unsubscribe(s.frameSub)
		s.ctrl.Dispose()
		if err := s.rend.Free(); err != nil && !errors.Is(err, wsi.ErrDetached) {
			s.log.Warn("unmount failed", "err", err)
		}
		s.rend = nil
		s.ctrl = nil
	}
	s.cancel()
	s.state = Disposed
}

// State returns the current state of s.
func (s *Session) State() State { return s.state }

// Err returns the error that kept s from running, if any.
func (s *Session) Err() error { return s.err }

// Camera returns the camera of s, or nil if s never ran.
func (s *Session) Camera() *engine.Camera { return s.cam }

// Scene returns the scene of s, or nil if s never ran.
func (s *Session) Scene() *scene.Scene { return s.scn }

// Cube returns the cube of s, or nil if s never ran.
func (s *Session) Cube() *gridcube.Cube { return s.cube }

// Renderer returns the renderer of s, or nil if s is not
// running.
func (s *Session) Renderer() *engine.Onscreen { return s.rend }

// Controls returns the orbit controls of s, or nil if s
// is not running.
func (s *Session) Controls() *orbit.Controls { return s.ctrl }
