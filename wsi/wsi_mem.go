// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"errors"
	"image"

	"github.com/gviegas/gridcube/internal/idmap"
)

// listener is what MemRegion stores per subscription.
// Exactly one field is set.
type listener struct {
	resize  func()
	pointer PointerHandler
}

// MemRegion is an in-memory Region.
// The host side is driven by calling SetSize, Close and
// the Pointer* methods.
type MemRegion struct {
	width   int
	vheight int
	closed  bool
	surface Surface
	last    image.Image
	frames  int
	subs    idmap.Map[Sub, listener]
}

// NewMemRegion creates a MemRegion of the given width
// inside a viewport of the given height.
func NewMemRegion(width, viewportHeight int) *MemRegion {
	return &MemRegion{width: width, vheight: viewportHeight}
}

// Width implements Region.
func (r *MemRegion) Width() int { return r.width }

// ViewportHeight implements Region.
func (r *MemRegion) ViewportHeight() int { return r.vheight }

// Mount implements Region.
func (r *MemRegion) Mount(s Surface) error {
	switch {
	case r.closed:
		return ErrDetached
	case r.surface != nil && r.surface != s:
		return errors.New("wsi: region already has a surface")
	}
	r.surface = s
	return nil
}

// Unmount implements Region.
func (r *MemRegion) Unmount(s Surface) error {
	switch {
	case r.closed:
		return ErrDetached
	case r.surface != s:
		return ErrNotMounted
	}
	r.surface = nil
	return nil
}

// Present implements Region.
func (r *MemRegion) Present(s Surface) error {
	switch {
	case r.closed:
		return ErrDetached
	case r.surface != s || s == nil:
		return ErrNotMounted
	}
	r.last = s.Image()
	r.frames++
	return nil
}

// OnResize implements Region.
func (r *MemRegion) OnResize(f func()) Sub { return r.subs.Insert(listener{resize: f}) }

// OnPointer implements Region.
func (r *MemRegion) OnPointer(h PointerHandler) Sub { return r.subs.Insert(listener{pointer: h}) }

// Remove implements Region.
func (r *MemRegion) Remove(sub Sub) { r.subs.Remove(sub) }

// SetSize changes the region's width and viewport height
// and notifies resize listeners.
func (r *MemRegion) SetSize(width, viewportHeight int) {
	r.width = width
	r.vheight = viewportHeight
	r.each(func(l *listener) {
		if l.resize != nil {
			l.resize()
		}
	})
}

// Close removes the region, as if the host had dropped it.
// The mounted surface, if any, is left dangling.
func (r *MemRegion) Close() { r.closed = true }

// PointerMotion dispatches a motion event.
func (r *MemRegion) PointerMotion(x, y int) {
	r.each(func(l *listener) {
		if l.pointer != nil {
			l.pointer.PointerMotion(x, y)
		}
	})
}

// PointerButton dispatches a button event.
func (r *MemRegion) PointerButton(btn Button, pressed bool, x, y int) {
	r.each(func(l *listener) {
		if l.pointer != nil {
			l.pointer.PointerButton(btn, pressed, x, y)
		}
	})
}

// PointerScroll dispatches a scroll event.
func (r *MemRegion) PointerScroll(dx, dy float64) {
	r.each(func(l *listener) {
		if l.pointer != nil {
			l.pointer.PointerScroll(dx, dy)
		}
	})
}

// each calls f for a snapshot of the current listeners,
// so that f may add or remove subscriptions.
func (r *MemRegion) each(f func(*listener)) {
	for _, l := range r.subs.Values(nil) {
		f(&l)
	}
}

// Surface returns the mounted surface, or nil.
func (r *MemRegion) Surface() Surface { return r.surface }

// Listeners returns the number of subscriptions.
func (r *MemRegion) Listeners() int { return r.subs.Len() }

// Frames returns the number of presented frames.
func (r *MemRegion) Frames() int { return r.frames }

// Last returns the last presented image, or nil.
func (r *MemRegion) Last() image.Image { return r.last }
