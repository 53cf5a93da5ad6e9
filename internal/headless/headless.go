// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package headless runs viewer sessions without a window.
package headless

import (
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"time"

	"github.com/gviegas/gridcube/frame"
	"github.com/gviegas/gridcube/viewer"
	"github.com/gviegas/gridcube/wsi"
)

// Options configures Snapshot.
type Options struct {
	// Region size.
	Width          int
	ViewportHeight int

	// Number of frames to present. The last one is
	// the snapshot.
	Frames int

	// Tick rate of the frame loop.
	Hz int

	// Orbit input applied once the session is running,
	// in radians.
	Yaw   float32
	Pitch float32
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		Width:          1280,
		ViewportHeight: 800,
		Frames:         60,
		Hz:             240,
	}
}

// Snapshot attaches a session to an in-memory region,
// runs it until opt.Frames frames were presented and
// returns the last one.
func Snapshot(ctx context.Context, cfg viewer.Config, opt Options) (image.Image, error) {
	if opt.Width <= 0 || opt.ViewportHeight <= 0 || opt.Frames <= 0 {
		return nil, errors.New("headless: invalid options")
	}
	region := wsi.NewMemRegion(opt.Width, opt.ViewportHeight)
	loop := new(frame.Loop)
	s := viewer.Attach(region, loop, cfg)
	defer s.Detach()

	ctx, stop := context.WithCancel(ctx)
	defer stop()
	var rotated bool
	sub := loop.Subscribe(func(time.Duration) {
		switch {
		case s.Err() != nil, region.Frames() >= opt.Frames:
			stop()
		case !rotated && s.State() == viewer.Running:
			s.Controls().Rotate(opt.Yaw, opt.Pitch)
			rotated = true
		}
	})
	defer loop.Unsubscribe(sub)

	err := loop.Run(ctx, opt.Hz, 0)
	switch {
	case s.Err() != nil:
		return nil, s.Err()
	case region.Frames() >= opt.Frames:
		return region.Last(), nil
	case err != nil:
		return nil, err
	}
	return nil, errors.New("headless: frame loop stopped")
}

// WritePNG encodes img to w as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
