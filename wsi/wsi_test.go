// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"errors"
	"fmt"
	"image"
	"testing"
)

type surface struct{ img *image.RGBA }

func (s *surface) Image() image.Image { return s.img }

func TestMemRegion(t *testing.T) {
	r := NewMemRegion(800, 1000)
	if r.Width() != 800 || r.ViewportHeight() != 1000 {
		t.Fatalf("NewMemRegion: size\nhave %dx%d\nwant 800x1000", r.Width(), r.ViewportHeight())
	}
	s := &surface{image.NewRGBA(image.Rect(0, 0, 4, 4))}
	if err := r.Present(s); !errors.Is(err, ErrNotMounted) {
		t.Fatalf("MemRegion.Present: unmounted\nhave %v\nwant %v", err, ErrNotMounted)
	}
	if err := r.Mount(s); err != nil {
		t.Fatal(err)
	}
	if err := r.Mount(&surface{}); err == nil {
		t.Fatal("MemRegion.Mount: second surface should fail")
	}
	if err := r.Present(s); err != nil || r.Frames() != 1 || r.Last() != s.img {
		t.Fatalf("MemRegion.Present\nhave %v, %d frames", err, r.Frames())
	}
	if err := r.Unmount(s); err != nil || r.Surface() != nil {
		t.Fatalf("MemRegion.Unmount\nhave %v", err)
	}
	if err := r.Unmount(s); !errors.Is(err, ErrNotMounted) {
		t.Fatalf("MemRegion.Unmount: twice\nhave %v\nwant %v", err, ErrNotMounted)
	}

	r.Mount(s)
	r.Close()
	if err := r.Unmount(s); !errors.Is(err, ErrDetached) {
		t.Fatalf("MemRegion.Unmount: closed\nhave %v\nwant %v", err, ErrDetached)
	}
	if err := r.Present(s); !errors.Is(err, ErrDetached) {
		t.Fatalf("MemRegion.Present: closed\nhave %v\nwant %v", err, ErrDetached)
	}
}

func TestMemRegionEvents(t *testing.T) {
	r := NewMemRegion(640, 480)
	var e E
	resized := 0
	rs := r.OnResize(func() { resized++ })
	ps := r.OnPointer(&e)
	if r.Listeners() != 2 {
		t.Fatalf("MemRegion.Listeners\nhave %d\nwant 2", r.Listeners())
	}

	r.SetSize(1024, 768)
	r.PointerButton(BtnLeft, true, 10, 20)
	r.PointerMotion(15, 25)
	r.PointerScroll(0, -1)
	r.PointerButton(BtnLeft, false, 15, 25)
	if resized != 1 {
		t.Fatalf("MemRegion.SetSize: resize calls\nhave %d\nwant 1", resized)
	}
	want := []string{
		"button 1 true 10 20",
		"motion 15 25",
		"scroll 0 -1",
		"button 1 false 15 25",
	}
	if fmt.Sprint(e.events) != fmt.Sprint(want) {
		t.Fatalf("MemRegion: pointer events\nhave %q\nwant %q", e.events, want)
	}

	r.Remove(rs)
	r.Remove(ps)
	r.Remove(ps)
	r.SetSize(1, 1)
	r.PointerMotion(0, 0)
	if resized != 1 || len(e.events) != 4 || r.Listeners() != 0 {
		t.Fatal("MemRegion.Remove: listeners should not be called")
	}
}

func TestHeight(t *testing.T) {
	for _, x := range [...]struct {
		vh, want int
	}{
		{0, 400},
		{600, 400},
		{889, 400},
		{1000, 450},
		{2000, 900},
	} {
		if h := Height(NewMemRegion(100, x.vh)); h != x.want {
			t.Fatalf("Height(viewport=%d)\nhave %d\nwant %d", x.vh, h, x.want)
		}
	}
}

type E struct{ events []string }

func (e *E) PointerMotion(newX, newY int) {
	e.events = append(e.events, fmt.Sprintf("motion %d %d", newX, newY))
}

func (e *E) PointerButton(btn Button, pressed bool, x, y int) {
	e.events = append(e.events, fmt.Sprintf("button %d %t %d %d", btn, pressed, x, y))
}

func (e *E) PointerScroll(dx, dy float64) {
	e.events = append(e.events, fmt.Sprintf("scroll %v %v", dx, dy))
}
