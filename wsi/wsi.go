// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package wsi provides integration with the host that
// displays rendered frames.
// The host exposes a Region: a measurable rectangle into
// which a renderer mounts its surface, and the source of
// resize and pointer events for that rectangle.
package wsi

import (
	"errors"
	"image"
)

// ErrDetached means that the region was removed by the
// host and can no longer be used.
var ErrDetached = errors.New("wsi: region detached")

// ErrNotMounted means that the surface is not mounted
// in the region.
var ErrNotMounted = errors.New("wsi: surface not mounted")

// Surface is the interface that a rendering surface
// implements so that a Region can display it.
type Surface interface {
	// Image returns the surface's current contents.
	Image() image.Image
}

// Sub identifies a subscription to Region events.
type Sub int

// Region is the interface that defines a display region.
// Methods are called from a single logical thread.
type Region interface {
	// Width returns the region's client width in pixels.
	Width() int

	// ViewportHeight returns the height of the viewport
	// that contains the region, in pixels.
	ViewportHeight() int

	// Mount attaches s to the region.
	// Only one surface can be mounted at a time.
	Mount(s Surface) error

	// Unmount detaches s from the region.
	// It returns ErrDetached if the region was removed.
	Unmount(s Surface) error

	// Present displays the contents of the mounted
	// surface s.
	Present(s Surface) error

	// OnResize registers f to be called whenever the
	// region or viewport size changes.
	OnResize(f func()) Sub

	// OnPointer registers h to receive pointer events.
	OnPointer(h PointerHandler) Sub

	// Remove removes a subscription created by OnResize
	// or OnPointer.
	// Removing twice has no effect.
	Remove(sub Sub)
}

// Button is the type of pointer buttons.
type Button int

// Pointer buttons.
const (
	BtnUnknown Button = iota
	BtnLeft
	BtnRight
	BtnMiddle
)

// PointerHandler is the interface that defines the methods
// for handling pointer events.
// Coordinates are relative to the region's origin.
type PointerHandler interface {
	// PointerMotion is called when the pointer changes position.
	PointerMotion(newX, newY int)

	// PointerButton is called when a button is pressed/released.
	PointerButton(btn Button, pressed bool, x, y int)

	// PointerScroll is called when the wheel is scrolled.
	// Positive dy scrolls towards the user.
	PointerScroll(dx, dy float64)
}

// Height returns the display height used for a region:
// max(MinHeight, ViewportFraction ⋅ viewport height).
func Height(r Region) int {
	return max(MinHeight, int(ViewportFraction*float64(r.ViewportHeight())))
}

// Display height heuristic used by Height.
const (
	MinHeight        = 400
	ViewportFraction = 0.45
)
