// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"cmp"
	"image/color"
	"slices"

	"github.com/gviegas/gridcube/driver"
	"github.com/gviegas/gridcube/linear"
	"github.com/gviegas/gridcube/mesh"
	"github.com/gviegas/gridcube/scene"
)

// item is a projected triangle or line segment.
type item struct {
	pts   [3]driver.Point
	line  bool
	depth float32
	width float32
	color color.NRGBA
}

// draw projects every primitive of s, sorts the results
// back to front and draws them. Triangles are drawn
// before lines so that edges stay visible through
// translucent volumes.
func (r *Renderer) draw(s *scene.Scene, cam *Camera) error {
	r.tgt.Clear(toNRGBA(&s.Background, 1))
	r.items = r.items[:0]
	r.stats = Stats{}

	vp := cam.ViewProj()
	w, h := float32(r.tgt.Width()), float32(r.tgt.Height())
	proj := func(p *linear.V3) (pt driver.Point, depth float32, ok bool) {
		v := p.Point()
		v.Mul(&vp, &v)
		// Clip-space w is the view depth.
		if v[3] < cam.Near {
			return
		}
		pt.X = (v[0]/v[3] + 1) * 0.5 * w
		pt.Y = (1 - v[1]/v[3]) * 0.5 * h
		return pt, v[3], true
	}

	s.ForEachPrim(func(world *linear.M4, p mesh.Primitive) {
		mat := p.Material()
		if mat.Opacity <= 0 {
			return
		}
		switch p := p.(type) {
		case *mesh.Triangles:
			for i := range p.Tris {
				var t mesh.Triangle
				for j := range t {
					t[j] = world.Point(&p.Tris[i][j])
				}
				n := t.Normal()
				var eye linear.V3
				eye.Sub(&cam.Position, &t[0])
				if n.Dot(&eye) < 0 {
					if !mat.DoubleSided {
						r.stats.Culled++
						continue
					}
					n.Scale(-1, &n)
				}
				it := item{color: r.shade(mat, &n)}
				ok := true
				for j := range t {
					var d float32
					if it.pts[j], d, ok = proj(&t[j]); !ok {
						break
					}
					it.depth += d / 3
				}
				if !ok {
					r.stats.Culled++
					continue
				}
				r.items = append(r.items, it)
			}
		case *mesh.Lines:
			width := mat.Width
			if width <= 0 {
				width = 1
			}
			c := toNRGBA(&mat.Color, mat.Opacity)
			for i := range p.Segs {
				it := item{line: true, width: width * r.lscale, color: c}
				a := world.Point(&p.Segs[i][0])
				b := world.Point(&p.Segs[i][1])
				var da, db float32
				var oka, okb bool
				it.pts[0], da, oka = proj(&a)
				it.pts[1], db, okb = proj(&b)
				if !oka || !okb {
					r.stats.Culled++
					continue
				}
				it.depth = (da + db) / 2
				r.items = append(r.items, it)
			}
		}
	})

	var err error
	if len(r.items) > r.maxDrw {
		// Keep the nearest.
		slices.SortStableFunc(r.items, func(a, b item) int {
			return cmp.Compare(a.depth, b.depth)
		})
		r.items = r.items[:r.maxDrw]
		err = ErrTooManyDrawables
	}
	slices.SortStableFunc(r.items, func(a, b item) int {
		switch {
		case a.line != b.line:
			if a.line {
				return 1
			}
			return -1
		default:
			return cmp.Compare(b.depth, a.depth)
		}
	})
	for i := range r.items {
		it := &r.items[i]
		if it.line {
			r.tgt.Stroke(it.pts[0], it.pts[1], it.width, it.color)
			r.stats.Lines++
		} else {
			r.tgt.Fill(it.pts[:], it.color)
			r.stats.Triangles++
		}
	}
	return err
}

// shade computes the color of a surface with material
// mat and unit normal n.
func (r *Renderer) shade(mat *mesh.Material, n *linear.V3) color.NRGBA {
	if !mat.Lit || len(r.lights) == 0 {
		return toNRGBA(&mat.Color, mat.Opacity)
	}
	var e linear.V3
	for i := range r.lights {
		li := r.lights[i].irradiance(n)
		e.Add(&e, &li)
	}
	var c linear.V3
	for i := range c {
		c[i] = mat.Color[i] * e[i]
	}
	return toNRGBA(&c, mat.Opacity)
}

// toNRGBA converts a linear color in [0, 1] to 8-bit
// components, clamping out of range values.
func toNRGBA(c *linear.V3, alpha float32) color.NRGBA {
	u8 := func(x float32) uint8 { return uint8(min(1, max(0, x))*255 + 0.5) }
	return color.NRGBA{R: u8(c[0]), G: u8(c[1]), B: u8(c[2]), A: u8(alpha)}
}
