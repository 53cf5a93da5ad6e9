// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/chewxy/math32"

	"github.com/gviegas/gridcube/linear"
)

// Camera is a perspective camera.
// Changes to the exported fields take effect after
// UpdateView or UpdateProjection is called.
type Camera struct {
	Position linear.V3
	Target   linear.V3
	Up       linear.V3

	// Vertical field of view in radians.
	FOV    float32
	Aspect float32
	Near   float32
	Far    float32

	view linear.M4
	proj linear.M4
}

// NewPerspective creates a camera at the origin looking
// down -Z. fovDeg is the vertical field of view in degrees.
func NewPerspective(fovDeg, aspect, near, far float32) *Camera {
	c := &Camera{
		Target: linear.V3{0, 0, -1},
		Up:     linear.V3{0, 1, 0},
		FOV:    fovDeg * math32.Pi / 180,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
	c.UpdateView()
	c.UpdateProjection()
	return c
}

// SetAspect sets the width/height ratio of c.
// It does not update the projection.
func (c *Camera) SetAspect(aspect float32) { c.Aspect = aspect }

// UpdateProjection recomputes the projection matrix.
func (c *Camera) UpdateProjection() { c.proj.Perspective(c.FOV, c.Aspect, c.Near, c.Far) }

// UpdateView recomputes the view matrix.
func (c *Camera) UpdateView() { c.view.LookAt(&c.Position, &c.Target, &c.Up) }

// LookAt moves c to pos, aims it at target and updates
// the view matrix.
func (c *Camera) LookAt(pos, target linear.V3) {
	c.Position = pos
	c.Target = target
	c.UpdateView()
}

// View returns the view matrix.
func (c *Camera) View() *linear.M4 { return &c.view }

// Proj returns the projection matrix.
func (c *Camera) Proj() *linear.M4 { return &c.proj }

// ViewProj returns Proj ⋅ View.
func (c *Camera) ViewProj() (m linear.M4) {
	m.Mul(&c.proj, &c.view)
	return
}

// Distance returns the distance between the camera's
// position and its target.
func (c *Camera) Distance() float32 { return c.Position.Dist(&c.Target) }

// ContainsSphere returns whether the sphere with the
// given world-space center and radius lies entirely
// inside the view frustum.
func (c *Camera) ContainsSphere(center linear.V3, radius float32) bool {
	p := c.view.Point(&center)
	depth := -p[2]
	if depth-radius < c.Near || depth+radius > c.Far {
		return false
	}
	sv, cv := math32.Sincos(c.FOV / 2)
	sh, ch := math32.Sincos(math32.Atan(math32.Tan(c.FOV/2) * c.Aspect))
	// Inward normals of the side planes, in view space.
	planes := [4]linear.V3{
		{0, -cv, -sv},
		{0, cv, -sv},
		{-ch, 0, -sh},
		{ch, 0, -sh},
	}
	for i := range planes {
		if planes[i].Dot(&p) < radius {
			return false
		}
	}
	return true
}
