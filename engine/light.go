// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/gviegas/gridcube/linear"
)

const (
	ambientLight = iota
	distantLight
)

// Light defines a light source.
// The zero value for Light is not valid; one must
// call AmbientLight.Light or DistantLight.Light to
// create an initialized Light.
type Light struct {
	typ       int
	dir       linear.V3
	intensity float32
	color     linear.V3
}

// SetDirection sets the direction of l.
// It does not normalize d.
// Only applies to distant lights.
func (l *Light) SetDirection(d *linear.V3) { l.dir = *d }

// Direction returns the direction of l.
// Only applies to distant lights.
func (l *Light) Direction() linear.V3 { return l.dir }

// SetIntensity sets the intensity of l.
func (l *Light) SetIntensity(i float32) { l.intensity = max(0, i) }

// Intensity returns the intensity of l.
func (l *Light) Intensity() float32 { return l.intensity }

// SetColor sets the RGB color of l.
func (l *Light) SetColor(r, g, b float32) { l.color = linear.V3{r, g, b} }

// Color returns the RGB color of l.
func (l *Light) Color() (r, g, b float32) {
	r, g, b = l.color[0], l.color[1], l.color[2]
	return
}

// Ambient returns whether l is an ambient light.
func (l *Light) Ambient() bool { return l.typ == ambientLight }

// irradiance returns the light that l contributes to a
// surface with unit normal n.
func (l *Light) irradiance(n *linear.V3) (e linear.V3) {
	s := l.intensity
	if l.typ == distantLight {
		// Light travels along dir.
		s *= max(0, -n.Dot(&l.dir))
	}
	e.Scale(s, &l.color)
	return
}

// AmbientLight is a light that reaches every surface
// equally, regardless of orientation.
type AmbientLight struct {
	Intensity float32
	R, G, B   float32
}

// Light creates the light source described by t.
// t.R/G/B must be in the range [0, 1].
func (t *AmbientLight) Light() (light Light) {
	light.typ = ambientLight
	light.SetIntensity(t.Intensity)
	light.SetColor(t.R, t.G, t.B)
	return
}

// DistantLight is a directional light.
// The light is emitted in the given Direction.
// It behaves as if located infinitely far way.
type DistantLight struct {
	Direction linear.V3
	Intensity float32
	R, G, B   float32
}

// Light creates the light source described by t.
// t.Direction must have length 1.
// t.R/G/B must be in the range [0, 1].
func (t *DistantLight) Light() (light Light) {
	light.typ = distantLight
	light.SetIntensity(t.Intensity)
	light.SetColor(t.R, t.G, t.B)
	light.SetDirection(&t.Direction)
	return
}
