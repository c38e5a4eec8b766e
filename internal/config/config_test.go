package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"portfolio3d/internal/vision"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, Default().Validate())

	opts := Default().VisionOptions()
	assert.Equal(t, 3*time.Second, opts.Duration)
	assert.Equal(t, 200*time.Millisecond, opts.RefreshInterval)
	assert.Equal(t, 100*time.Millisecond, opts.SyncInterval)
	assert.Equal(t, 5, opts.BatchSize)
	assert.Equal(t, vision.RadiusBuffered{PixelsPerUnit: 50}, opts.Classifier)
	assert.Equal(t, rl.NewColor(0, 255, 255, 255), opts.Factory.Accent)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
log_level = "debug"

[window]
width = 1920
height = 1080

[vision]
classifier = "corners"
accent = "#ff8800"
batch_size = 3
`))
	require.NoError(t, err)
	assert.Equal(t, 1920, cfg.Window.Width)
	assert.Equal(t, 60, cfg.Window.TargetFPS)
	assert.Equal(t, 3000, cfg.Vision.DurationMS)

	opts := cfg.VisionOptions()
	assert.IsType(t, vision.CornerProjection{}, opts.Classifier)
	assert.Equal(t, rl.NewColor(255, 136, 0, 255), opts.Factory.Accent)
	assert.Equal(t, 3, opts.BatchSize)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("[vision]\nduraton_ms = 10\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseRejectsBadValues(t *testing.T) {
	for name, doc := range map[string]string{
		"batch":      "[vision]\nbatch_size = 0\n",
		"classifier": "[vision]\nclassifier = \"octree\"\n",
		"colour":     "[vision]\naccent = \"cyan\"\n",
		"level":      "log_level = \"loud\"\n",
		"fov":        "[window]\nfov = 0\n",
	} {
		_, err := Parse([]byte(doc))
		assert.ErrorIs(t, err, ErrInvalid, name)
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte("[vision\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "portfolio.toml")
	require.NoError(t, os.WriteFile(path, []byte("[world]\nminutes_per_day = 1.5\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, cfg.World.MinutesPerDay, 1e-6)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScreenSizeWithoutFit(t *testing.T) {
	w, h := Default().ScreenSize()
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)
}
