// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package driver

import (
	"image"
	"image/color"
)

// GPU is the main interface to an underlying driver
// implementation.
// It is used to create render targets.
// A GPU is obtained from a call to Driver.Open.
type GPU interface {
	// Driver returns the Driver that owns the GPU.
	Driver() Driver

	// NewTarget creates a new render target.
	NewTarget(width, height int) (Target, error)
}

// Destroyer is the interface that wraps the Destroy method.
// Types that implement this interface may hold resources
// that are not managed by GC, so Destroy must be called
// explicitly to ensure such resources are released.
type Destroyer interface {
	Destroy()
}

// Point is a position in target space.
// The origin is the top-left corner; Y grows downward.
type Point struct {
	X, Y float32
}

// Target is the interface that defines a 2D render target.
// Draw calls blend over the current contents using the
// color's alpha.
type Target interface {
	Destroyer

	// Resize changes the target's size.
	// Contents are undefined afterwards.
	Resize(width, height int) error

	// Width returns the target's width.
	Width() int

	// Height returns the target's height.
	Height() int

	// Clear fills the whole target with c, replacing
	// its contents.
	Clear(c color.NRGBA)

	// Fill fills the closed polygon pts.
	Fill(pts []Point, c color.NRGBA)

	// Stroke draws a line from a to b with the given
	// width in pixels.
	Stroke(a, b Point, width float32, c color.NRGBA)

	// Image returns the target's contents.
	// The image is only valid until the next call to a
	// Target method.
	Image() image.Image
}
