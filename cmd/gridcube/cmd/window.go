// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package cmd

import (
	"errors"
	"image"
	"image/draw"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"

	"github.com/gviegas/gridcube/frame"
	"github.com/gviegas/gridcube/internal/idmap"
	"github.com/gviegas/gridcube/viewer"
	"github.com/gviegas/gridcube/wsi"
)

var (
	windowWidth  int
	windowHeight int
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Show the cube in a window",
	Long: `Show the cube in a resizable window. Drag with the left mouse
button to orbit and scroll to zoom. The window is the mount region: the
cube is drawn at the window's width and at the larger of 400 pixels and
45% of its height.`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	f := windowCmd.Flags()
	f.IntVar(&windowWidth, "width", 1280, "Initial window width")
	f.IntVar(&windowHeight, "height", 900, "Initial window height")
}

func runWindow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	w := &window{width: windowWidth, height: windowHeight}
	s := viewer.Attach(w, &w.loop, cfg)
	defer s.Detach()

	ebiten.SetWindowTitle("gridcube " + cfg.Grid.String())
	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	return ebiten.RunGame(w)
}

// window is an ebiten.Game that serves as a wsi.Region.
// Its Update method is the frame loop's thread.
type window struct {
	loop   frame.Loop
	width  int
	height int

	surface wsi.Surface
	scratch *image.RGBA
	img     *ebiten.Image

	subs idmap.Map[wsi.Sub, any]
	x, y int
}

// Width implements wsi.Region.
func (w *window) Width() int { return w.width }

// ViewportHeight implements wsi.Region.
func (w *window) ViewportHeight() int { return w.height }

// Mount implements wsi.Region.
func (w *window) Mount(s wsi.Surface) error {
	if w.surface != nil && w.surface != s {
		return errors.New("window: region already has a surface")
	}
	w.surface = s
	return nil
}

// Unmount implements wsi.Region.
func (w *window) Unmount(s wsi.Surface) error {
	if w.surface != s {
		return wsi.ErrNotMounted
	}
	w.surface = nil
	if w.img != nil {
		w.img.Deallocate()
		w.img = nil
	}
	return nil
}

// Present implements wsi.Region.
func (w *window) Present(s wsi.Surface) error {
	if w.surface != s || s == nil {
		return wsi.ErrNotMounted
	}
	src := s.Image()
	b := src.Bounds()
	rgba, ok := src.(*image.RGBA)
	if !ok || rgba.Stride != 4*b.Dx() {
		if w.scratch == nil || w.scratch.Bounds() != b {
			w.scratch = image.NewRGBA(b)
		}
		draw.Draw(w.scratch, b, src, b.Min, draw.Src)
		rgba = w.scratch
	}
	if w.img != nil && w.img.Bounds().Size() != b.Size() {
		w.img.Deallocate()
		w.img = nil
	}
	if w.img == nil {
		w.img = ebiten.NewImage(b.Dx(), b.Dy())
	}
	w.img.WritePixels(rgba.Pix)
	return nil
}

// OnResize implements wsi.Region.
func (w *window) OnResize(f func()) wsi.Sub { return w.subs.Insert(f) }

// OnPointer implements wsi.Region.
func (w *window) OnPointer(h wsi.PointerHandler) wsi.Sub { return w.subs.Insert(h) }

// Remove implements wsi.Region.
func (w *window) Remove(sub wsi.Sub) { w.subs.Remove(sub) }

func (w *window) resized() {
	for _, l := range w.subs.Values(nil) {
		if f, ok := l.(func()); ok {
			f()
		}
	}
}

func (w *window) pointer(f func(wsi.PointerHandler)) {
	for _, l := range w.subs.Values(nil) {
		if h, ok := l.(wsi.PointerHandler); ok {
			f(h)
		}
	}
}

// top returns the vertical offset of the drawn region.
func (w *window) top() int {
	if w.img == nil {
		return 0
	}
	return (w.height - w.img.Bounds().Dy()) / 2
}

// Update implements ebiten.Game.
func (w *window) Update() error {
	x, y := ebiten.CursorPosition()
	y -= w.top()
	if x != w.x || y != w.y {
		w.x, w.y = x, y
		w.pointer(func(h wsi.PointerHandler) { h.PointerMotion(x, y) })
	}
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		w.pointer(func(h wsi.PointerHandler) { h.PointerButton(wsi.BtnLeft, true, x, y) })
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		w.pointer(func(h wsi.PointerHandler) { h.PointerButton(wsi.BtnLeft, false, x, y) })
	}
	if dx, dy := ebiten.Wheel(); dx != 0 || dy != 0 {
		// Ebiten reports positive dy when scrolling away.
		w.pointer(func(h wsi.PointerHandler) { h.PointerScroll(dx, -dy) })
	}
	w.loop.Tick()
	return nil
}

// Draw implements ebiten.Game.
func (w *window) Draw(screen *ebiten.Image) {
	if w.img == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(0, float64(w.top()))
	screen.DrawImage(w.img, &op)
}

// Layout implements ebiten.Game.
func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != w.width || outsideHeight != w.height {
		w.width, w.height = outsideWidth, outsideHeight
		w.resized()
	}
	return outsideWidth, outsideHeight
}
