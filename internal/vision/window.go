package vision

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Window is the on-screen vision rectangle in pixels.
type Window struct {
	Center rl.Vector2
	Size   rl.Vector2
	Screen rl.Vector2
}

// WindowFor centres a width x height window on a screen. Non-positive sizes
// clamp to one pixel so the rectangle is never empty.
func WindowFor(screenW, screenH int, width, height float32) Window {
	sw, sh := float32(max(screenW, 1)), float32(max(screenH, 1))
	return Window{
		Center: rl.NewVector2(sw/2, sh/2),
		Size:   rl.NewVector2(max(width, 1), max(height, 1)),
		Screen: rl.NewVector2(sw, sh),
	}
}

func (w Window) Min() rl.Vector2 {
	return rl.NewVector2(w.Center.X-w.Size.X/2, w.Center.Y-w.Size.Y/2)
}

func (w Window) Max() rl.Vector2 {
	return rl.NewVector2(w.Center.X+w.Size.X/2, w.Center.Y+w.Size.Y/2)
}

// Rect is the window as a raylib rectangle (top-left origin).
func (w Window) Rect() rl.Rectangle {
	lo := w.Min()
	return rl.NewRectangle(lo.X, lo.Y, w.Size.X, w.Size.Y)
}

// Contains tests p against the window grown by buffer pixels on every side.
func (w Window) Contains(p rl.Vector2, buffer float32) bool {
	hw, hh := w.Size.X/2+buffer, w.Size.Y/2+buffer
	return p.X >= w.Center.X-hw && p.X <= w.Center.X+hw &&
		p.Y >= w.Center.Y-hh && p.Y <= w.Center.Y+hh
}

// Overlaps reports whether the screen rectangle [lo, hi] intersects the window.
func (w Window) Overlaps(lo, hi rl.Vector2) bool {
	wmin, wmax := w.Min(), w.Max()
	return lo.X <= wmax.X && hi.X >= wmin.X && lo.Y <= wmax.Y && hi.Y >= wmin.Y
}
