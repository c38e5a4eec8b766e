// Package config loads the optional TOML settings file. Every key has a
// default, so a missing file yields a fully usable configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"portfolio3d/internal/utils"
	"portfolio3d/internal/vision"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

var ErrInvalid = errors.New("config: invalid value")

type Window struct {
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	Title      string  `toml:"title"`
	TargetFPS  int     `toml:"target_fps"`
	FitDisplay bool    `toml:"fit_display"`
	FOV        float32 `toml:"fov"`
}

type Vision struct {
	DurationMS    int     `toml:"duration_ms"`
	RefreshMS     int     `toml:"refresh_ms"`
	SyncMS        int     `toml:"sync_ms"`
	WindowWidth   float32 `toml:"window_width"`
	WindowHeight  float32 `toml:"window_height"`
	BatchSize     int     `toml:"batch_size"`
	GroundLevel   float32 `toml:"ground_level"`
	Classifier    string  `toml:"classifier"`
	PixelsPerUnit float32 `toml:"pixels_per_unit"`
	Accent        string  `toml:"accent"`
	Outline       string  `toml:"outline"`
	GlowIntensity float32 `toml:"glow_intensity"`
	GlowAlpha     float32 `toml:"glow_alpha"`
}

type Audio struct {
	Enabled       bool    `toml:"enabled"`
	ActivateCue   string  `toml:"activate_cue"`
	DeactivateCue string  `toml:"deactivate_cue"`
	Volume        float32 `toml:"volume"`
}

type World struct {
	Layout        string  `toml:"layout"`
	WatchLayout   bool    `toml:"watch_layout"`
	MinutesPerDay float32 `toml:"minutes_per_day"`
	MoveSpeed     float32 `toml:"move_speed"`
}

type Config struct {
	LogLevel string `toml:"log_level"`
	Window   Window `toml:"window"`
	Vision   Vision `toml:"vision"`
	Audio    Audio  `toml:"audio"`
	World    World  `toml:"world"`
}

func Default() Config {
	return Config{
		LogLevel: "warn",
		Window: Window{
			Width:     1280,
			Height:    720,
			Title:     "Portfolio 3D",
			TargetFPS: 60,
			FOV:       60,
		},
		Vision: Vision{
			DurationMS:    3000,
			RefreshMS:     200,
			SyncMS:        100,
			WindowWidth:   300,
			WindowHeight:  300,
			BatchSize:     5,
			GroundLevel:   0,
			Classifier:    "radius",
			PixelsPerUnit: 50,
			Accent:        "#00ffff",
			Outline:       "#00ffff",
			GlowIntensity: 0.7,
			GlowAlpha:     0.8,
		},
		Audio: Audio{
			Enabled:       true,
			ActivateCue:   "sounds/vision_on.wav",
			DeactivateCue: "sounds/vision_off.wav",
			Volume:        0.6,
		},
		World: World{
			MinutesPerDay: 4,
			MoveSpeed:     4,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	utils.Info("Loaded config from %s", path)
	return cfg, nil
}

// Parse decodes TOML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if _, err := utils.ParseLevel(c.LogLevel); err != nil {
		bad("log_level %q", c.LogLevel)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		bad("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.FOV <= 0 || c.Window.FOV >= 180 {
		bad("window.fov %v", c.Window.FOV)
	}
	v := c.Vision
	if v.DurationMS <= 0 {
		bad("vision.duration_ms %d", v.DurationMS)
	}
	if v.RefreshMS <= 0 || v.SyncMS < 0 {
		bad("vision refresh/sync intervals %d/%d", v.RefreshMS, v.SyncMS)
	}
	if v.BatchSize < 1 {
		bad("vision.batch_size %d", v.BatchSize)
	}
	switch strings.ToLower(v.Classifier) {
	case "radius", "corners":
	default:
		bad("vision.classifier %q", v.Classifier)
	}
	if v.GlowAlpha < 0 || v.GlowAlpha > 1 {
		bad("vision.glow_alpha %v", v.GlowAlpha)
	}
	if _, err := ParseColor(v.Accent); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseColor(v.Outline); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseColor reads a "#rrggbb" hex colour.
func ParseColor(hex string) (rl.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return rl.Color{}, fmt.Errorf("%w: colour %q", ErrInvalid, hex)
	}
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, 255), nil
}

// VisionOptions maps the vision table onto session options.
func (c Config) VisionOptions() vision.Options {
	v := c.Vision
	opts := vision.DefaultOptions()
	opts.Duration = time.Duration(v.DurationMS) * time.Millisecond
	opts.RefreshInterval = time.Duration(v.RefreshMS) * time.Millisecond
	opts.SyncInterval = time.Duration(v.SyncMS) * time.Millisecond
	opts.WindowWidth = v.WindowWidth
	opts.WindowHeight = v.WindowHeight
	opts.BatchSize = v.BatchSize
	opts.GroundLevel = v.GroundLevel
	opts.Classifier = vision.NewClassifier(v.Classifier, v.PixelsPerUnit)
	if accent, err := ParseColor(v.Accent); err == nil {
		opts.Factory.Accent = accent
	}
	if outline, err := ParseColor(v.Outline); err == nil {
		opts.Factory.OutlineColor = outline
	}
	opts.Factory.BaseIntensity = v.GlowIntensity
	opts.Factory.Alpha = v.GlowAlpha
	return opts
}

// ScreenSize returns the configured window size, or the X11 root window
// size when fit_display is set and the display answers.
func (c Config) ScreenSize() (int, int) {
	if !c.Window.FitDisplay {
		return c.Window.Width, c.Window.Height
	}
	w, h, err := utils.DisplaySize()
	if err != nil {
		utils.Warn("fit_display: %v, using %dx%d", err, c.Window.Width, c.Window.Height)
		return c.Window.Width, c.Window.Height
	}
	return w, h
}
