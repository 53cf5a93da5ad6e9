// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"errors"
	"image"

	"github.com/gviegas/gridcube/driver"
	"github.com/gviegas/gridcube/scene"
	"github.com/gviegas/gridcube/wsi"
)

func newRendErr(s string) error { return errors.New("renderer: " + s) }

// ErrFreed means that a renderer was used after Free.
var ErrFreed = newRendErr("renderer has been freed")

// ErrTooManyDrawables means that a frame exceeded
// Config.MaxDrawable. The farthest drawables in excess
// are not drawn.
var ErrTooManyDrawables = newRendErr("too many drawables")

// Stats describes the last rendered frame.
type Stats struct {
	Triangles int
	Lines     int
	Culled    int
}

// Renderer is a real-time renderer.
type Renderer struct {
	tgt    driver.Target
	lights []Light
	maxLit int
	maxDrw int
	lscale float32
	items  []item
	stats  Stats
}

// init initializes r to target a new width by height
// render target created from gpu.
func (r *Renderer) init(gpu driver.GPU, width, height int) error {
	if gpu == nil {
		return newRendErr("nil driver.GPU")
	}
	tgt, err := gpu.NewTarget(width, height)
	if err != nil {
		return err
	}
	*r = Renderer{
		tgt:    tgt,
		maxLit: cfg.MaxLight,
		maxDrw: cfg.MaxDrawable,
		lscale: cfg.LineScale,
	}
	return nil
}

// AddLight adds a light source to r.
// It fails if r already has Config.MaxLight lights.
func (r *Renderer) AddLight(l Light) error {
	if len(r.lights) >= r.maxLit {
		return newRendErr("too many lights")
	}
	r.lights = append(r.lights, l)
	return nil
}

// Lights returns the light sources of r.
func (r *Renderer) Lights() []Light { return r.lights }

// ClearLights removes every light source from r.
func (r *Renderer) ClearLights() { r.lights = r.lights[:0] }

// Resize resizes the render target.
func (r *Renderer) Resize(width, height int) error {
	if r.tgt == nil {
		return ErrFreed
	}
	return r.tgt.Resize(width, height)
}

// Size returns the size of the render target.
func (r *Renderer) Size() (width, height int) {
	if r.tgt == nil {
		return
	}
	return r.tgt.Width(), r.tgt.Height()
}

// Stats returns statistics for the last rendered frame.
func (r *Renderer) Stats() Stats { return r.stats }

// Render renders s as seen from cam into the target.
func (r *Renderer) Render(s *scene.Scene, cam *Camera) error {
	if r.tgt == nil {
		return ErrFreed
	}
	return r.draw(s, cam)
}

// Free releases the render target.
// Calling Free more than once has no effect.
func (r *Renderer) Free() {
	if r.tgt != nil {
		r.tgt.Destroy()
	}
	*r = Renderer{}
}

// Onscreen is a Renderer that targets a wsi.Region.
type Onscreen struct {
	Renderer
	win  wsi.Region
	surf driver.Target
}

// NewOnscreen creates a new onscreen renderer and mounts
// its surface into win.
func NewOnscreen(gpu driver.GPU, win wsi.Region, width, height int) (*Onscreen, error) {
	if win == nil {
		return nil, newRendErr("nil wsi.Region in call to NewOnscreen")
	}
	r := new(Onscreen)
	if err := r.Renderer.init(gpu, width, height); err != nil {
		return nil, err
	}
	if err := win.Mount(r.tgt); err != nil {
		r.Renderer.Free()
		return nil, err
	}
	r.win = win
	r.surf = r.tgt
	return r, nil
}

// Region returns the wsi.Region associated with r.
func (r *Onscreen) Region() wsi.Region { return r.win }

// Render renders s as seen from cam and presents the
// result to the region.
func (r *Onscreen) Render(s *scene.Scene, cam *Camera) error {
	err := r.Renderer.Render(s, cam)
	if err != nil && !errors.Is(err, ErrTooManyDrawables) {
		return err
	}
	if perr := r.win.Present(r.tgt); perr != nil {
		return perr
	}
	return err
}

// Free releases the render target and then unmounts the
// surface from the region.
// It returns the region's error, if any; wsi.ErrDetached
// means that the region was already gone.
// Calling Free more than once has no effect.
func (r *Onscreen) Free() error {
	if r.win == nil {
		return nil
	}
	r.Renderer.Free()
	err := r.win.Unmount(r.surf)
	r.win = nil
	r.surf = nil
	return err
}

// Offscreen is a Renderer that targets an image.
type Offscreen struct {
	Renderer
}

// NewOffscreen creates a new offscreen renderer.
func NewOffscreen(gpu driver.GPU, width, height int) (*Offscreen, error) {
	r := new(Offscreen)
	if err := r.Renderer.init(gpu, width, height); err != nil {
		return nil, err
	}
	return r, nil
}

// Target returns the image into which r renders.
// It returns nil after Free.
func (r *Offscreen) Target() image.Image {
	if r.tgt == nil {
		return nil
	}
	return r.tgt.Image()
}
