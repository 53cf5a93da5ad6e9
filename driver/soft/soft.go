// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package soft implements a software rendering driver.
// Importing it registers a driver named "software".
package soft

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/chewxy/math32"
	"golang.org/x/image/vector"

	"github.com/gviegas/gridcube/driver"
)

// MaxSize is the maximum width or height of a Target.
const MaxSize = 16384

func init() { driver.Register(&Driver{}) }

// Driver implements driver.Driver.
// It is safe for concurrent use.
type Driver struct {
	mu  sync.Mutex
	gpu *GPU
}

// Open implements driver.Driver.
func (d *Driver) Open() (driver.GPU, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gpu == nil {
		d.gpu = &GPU{drv: d}
	}
	return d.gpu, nil
}

// Name implements driver.Driver.
func (*Driver) Name() string { return "software" }

// Close implements driver.Driver.
func (d *Driver) Close() {
	d.mu.Lock()
	d.gpu = nil
	d.mu.Unlock()
}

// GPU implements driver.GPU.
type GPU struct {
	drv *Driver
}

// Driver implements driver.GPU.
func (g *GPU) Driver() driver.Driver { return g.drv }

// NewTarget implements driver.GPU.
func (g *GPU) NewTarget(width, height int) (driver.Target, error) {
	t := new(Target)
	if err := t.Resize(width, height); err != nil {
		return nil, err
	}
	return t, nil
}

// Target implements driver.Target on an *image.RGBA.
type Target struct {
	img  *image.RGBA
	rast *vector.Rasterizer
	pts  []driver.Point
}

// Resize implements driver.Target.
func (t *Target) Resize(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxSize || height > MaxSize {
		return fmt.Errorf("%w: %dx%d", driver.ErrTargetSize, width, height)
	}
	if t.img != nil && t.img.Rect.Dx() == width && t.img.Rect.Dy() == height {
		return nil
	}
	t.img = image.NewRGBA(image.Rect(0, 0, width, height))
	if t.rast == nil {
		t.rast = vector.NewRasterizer(width, height)
	} else {
		t.rast.Reset(width, height)
	}
	return nil
}

// Width implements driver.Target.
func (t *Target) Width() int { return t.img.Rect.Dx() }

// Height implements driver.Target.
func (t *Target) Height() int { return t.img.Rect.Dy() }

// Clear implements driver.Target.
func (t *Target) Clear(c color.NRGBA) {
	draw.Draw(t.img, t.img.Rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// Fill implements driver.Target.
func (t *Target) Fill(pts []driver.Point, c color.NRGBA) {
	if len(pts) < 3 || c.A == 0 {
		return
	}
	w, h := t.Width(), t.Height()
	t.rast.Reset(w, h)
	t.rast.DrawOp = draw.Over
	t.rast.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		t.rast.LineTo(p.X, p.Y)
	}
	t.rast.ClosePath()
	t.rast.Draw(t.img, t.img.Rect, image.NewUniform(c), image.Point{})
}

// Stroke implements driver.Target.
// The line is drawn as a quad of the given width
// centered on the segment.
func (t *Target) Stroke(a, b driver.Point, width float32, c color.NRGBA) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := dx*dx + dy*dy
	if l == 0 || width <= 0 {
		return
	}
	s := width / 2 / math32.Sqrt(l)
	nx, ny := -dy*s, dx*s
	t.pts = append(t.pts[:0],
		driver.Point{X: a.X + nx, Y: a.Y + ny},
		driver.Point{X: b.X + nx, Y: b.Y + ny},
		driver.Point{X: b.X - nx, Y: b.Y - ny},
		driver.Point{X: a.X - nx, Y: a.Y - ny})
	t.Fill(t.pts, c)
}

// Image implements driver.Target.
func (t *Target) Image() image.Image { return t.img }

// RGBA returns the target's backing image.
func (t *Target) RGBA() *image.RGBA { return t.img }

// Destroy implements driver.Destroyer.
func (t *Target) Destroy() {
	t.img = nil
	t.rast = nil
	t.pts = nil
}
