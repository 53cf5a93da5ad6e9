// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package orbit implements damped orbit controls for an
// engine.Camera driven by pointer input.
package orbit

import (
	"github.com/chewxy/math32"

	"github.com/gviegas/gridcube/engine"
	"github.com/gviegas/gridcube/linear"
	"github.com/gviegas/gridcube/wsi"
)

// Epsilon is how close the polar angle may get to
// either pole.
const Epsilon = 1e-6

// Params configures Controls.
type Params struct {
	// Fraction of the pending rotation applied per
	// Update, in (0, 1]. Other values disable damping.
	Damping float32

	// Distance limits from the camera to its target.
	MinDistance float32
	MaxDistance float32

	// Rotation speed factor for pointer drags.
	RotateSpeed float32

	// Zoom speed factor for wheel scrolls.
	ZoomSpeed float32
}

// DefaultParams returns the default parameters.
func DefaultParams() Params {
	return Params{
		Damping:     0.05,
		MinDistance: 0,
		MaxDistance: math32.Inf(1),
		RotateSpeed: 1,
		ZoomSpeed:   1,
	}
}

// Controls rotates a camera around its target and moves
// it closer or farther away.
// Input is accumulated and then applied by Update, which
// is meant to be called once per frame.
type Controls struct {
	cam    *engine.Camera
	region wsi.Region
	sub    wsi.Sub
	p      Params

	dTheta float32
	dPhi   float32
	scale  float32

	dragging bool
	x, y     int
}

// New creates controls for cam.
// If region is not nil, the controls subscribe to its
// pointer events until Dispose is called.
func New(cam *engine.Camera, region wsi.Region, p Params) *Controls {
	c := &Controls{
		cam:   cam,
		p:     p,
		scale: 1,
	}
	if region != nil {
		c.region = region
		c.sub = region.OnPointer(c)
	}
	return c
}

// Params returns the parameters of c.
func (c *Controls) Params() Params { return c.p }

// Rotate adds dTheta radians of azimuth and dPhi radians
// of polar angle to the pending rotation.
func (c *Controls) Rotate(dTheta, dPhi float32) {
	c.dTheta += dTheta
	c.dPhi += dPhi
}

// Zoom multiplies the camera distance by scale on the
// next Update.
func (c *Controls) Zoom(scale float32) {
	if scale > 0 {
		c.scale *= scale
	}
}

// Update applies the pending input to the camera.
func (c *Controls) Update() {
	var off linear.V3
	off.Sub(&c.cam.Position, &c.cam.Target)
	if off.Len() == 0 {
		return
	}
	k := c.p.Damping
	if k <= 0 || k > 1 {
		k = 1
	}

	r, phi, theta := linear.ToSpherical(&off)
	theta += c.dTheta * k
	phi = min(math32.Pi-Epsilon, max(Epsilon, phi+c.dPhi*k))
	r *= c.scale
	if c.p.MaxDistance > 0 {
		r = min(r, c.p.MaxDistance)
	}
	r = max(r, c.p.MinDistance)

	off = linear.Spherical(r, phi, theta)
	var pos linear.V3
	pos.Add(&c.cam.Target, &off)
	c.cam.LookAt(pos, c.cam.Target)

	c.dTheta *= 1 - k
	c.dPhi *= 1 - k
	c.scale = 1
}

// Dispose unsubscribes c from pointer events.
// Calling Dispose more than once has no effect.
func (c *Controls) Dispose() {
	if c.region == nil {
		return
	}
	c.region.Remove(c.sub)
	c.region = nil
	c.dragging = false
}

// PointerMotion implements wsi.PointerHandler.
func (c *Controls) PointerMotion(newX, newY int) {
	if !c.dragging || c.region == nil {
		return
	}
	h := float32(wsi.Height(c.region))
	dx := float32(newX - c.x)
	dy := float32(newY - c.y)
	c.x, c.y = newX, newY
	s := 2 * math32.Pi * c.p.RotateSpeed / h
	c.Rotate(-dx*s, -dy*s)
}

// PointerButton implements wsi.PointerHandler.
// Only the left button is used.
func (c *Controls) PointerButton(btn wsi.Button, pressed bool, x, y int) {
	if btn != wsi.BtnLeft {
		return
	}
	c.dragging = pressed
	c.x, c.y = x, y
}

// PointerScroll implements wsi.PointerHandler.
func (c *Controls) PointerScroll(_, dy float64) {
	s := math32.Pow(0.95, c.p.ZoomSpeed)
	switch {
	case dy > 0:
		c.Zoom(1 / s)
	case dy < 0:
		c.Zoom(s)
	}
}
