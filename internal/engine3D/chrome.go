package engine3D

import (
	"time"

	"portfolio3d/internal/vision"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const chromeFade = 300 * time.Millisecond

// VisionChrome is the frame border and tinted pane drawn around the vision
// window. It implements vision.Chrome; the session only toggles it.
type VisionChrome struct {
	Accent rl.Color

	window    vision.Window
	target    float32
	opacity   float32
	intensity float32
	pulse     float32
}

func NewVisionChrome(accent rl.Color) *VisionChrome {
	return &VisionChrome{Accent: accent}
}

func (c *VisionChrome) Show(w vision.Window) {
	c.window = w
	c.target = 1
}

func (c *VisionChrome) Pulse(intensity, pulse float32) {
	c.intensity = intensity
	c.pulse = pulse
}

// Hide starts the fade out.
func (c *VisionChrome) Hide() {
	c.target = 0
	c.intensity = 0
}

func (c *VisionChrome) Opacity() float32 { return c.opacity }

func (c *VisionChrome) Visible() bool { return c.opacity > 0 }

// Update moves the opacity toward its target over chromeFade.
func (c *VisionChrome) Update(dt time.Duration) {
	step := float32(dt) / float32(chromeFade)
	switch {
	case c.opacity < c.target:
		c.opacity = min(c.target, c.opacity+step)
	case c.opacity > c.target:
		c.opacity = max(c.target, c.opacity-step)
	}
}

// BorderWidth grows with the pulse while a session is running.
func (c *VisionChrome) BorderWidth() float32 {
	return 2 + 2*c.pulse*c.intensity
}

func (c *VisionChrome) Draw() {
	if !c.Visible() {
		return
	}
	rect := c.window.Rect()
	rl.DrawRectangleRec(rect, rl.Fade(c.Accent, 0.06*c.opacity))
	rl.DrawRectangleLinesEx(rect, c.BorderWidth(), rl.Fade(c.Accent, 0.8*c.opacity))

	const arm = 24
	thick := c.BorderWidth() + 2
	col := rl.Fade(c.Accent, c.opacity)
	lo, hi := c.window.Min(), c.window.Max()
	for _, corner := range [4]struct{ p, dir rl.Vector2 }{
		{lo, rl.NewVector2(1, 1)},
		{rl.NewVector2(hi.X, lo.Y), rl.NewVector2(-1, 1)},
		{rl.NewVector2(lo.X, hi.Y), rl.NewVector2(1, -1)},
		{hi, rl.NewVector2(-1, -1)},
	} {
		rl.DrawLineEx(corner.p, rl.NewVector2(corner.p.X+arm*corner.dir.X, corner.p.Y), thick, col)
		rl.DrawLineEx(corner.p, rl.NewVector2(corner.p.X, corner.p.Y+arm*corner.dir.Y), thick, col)
	}
}

var _ vision.Chrome = (*VisionChrome)(nil)
