package shader

import (
	"strings"
	"testing"

	"portfolio3d/internal/vision"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func byName(us []Uniform) map[string]Uniform {
	out := make(map[string]Uniform, len(us))
	for _, u := range us {
		out[u.Name] = u
	}
	return out
}

func TestGlowUniforms(t *testing.T) {
	m := &vision.GlowMaterial{
		ClipUniforms: vision.ClipFor(vision.WindowFor(1280, 720, 300, 300), 0.25),
		Emissive:     rl.NewColor(0, 255, 255, 255),
		Intensity:    0.35,
		Alpha:        0.8,
	}
	us := byName(GlowUniforms(m))

	assert.Equal(t, []float32{640, 360}, us["windowCenter"].Values)
	assert.Equal(t, []float32{300, 300}, us["windowSize"].Values)
	assert.Equal(t, []float32{1280, 720}, us["screenSize"].Values)
	assert.Equal(t, []float32{0.25}, us["groundLevel"].Values)
	assert.Equal(t, []float32{0, 1, 1}, us["emissive"].Values)
	assert.Equal(t, rl.ShaderUniformVec3, us["emissive"].Type)
	assert.Equal(t, []float32{0.35}, us["intensity"].Values)
}

func TestOutlineUniforms(t *testing.T) {
	us := byName(OutlineUniforms(&vision.OutlineMaterial{Color: rl.White, Opacity: 0.5}))
	assert.Equal(t, []float32{1, 1, 1}, us["lineColor"].Values)
	assert.Equal(t, []float32{0.5}, us["opacity"].Values)
	assert.Contains(t, us, "groundLevel")
}

// Every uniform the code uploads has to be declared in the GLSL.
func TestUniformsAreDeclared(t *testing.T) {
	for src, names := range map[string][]string{
		glowFragment:    glowNames,
		outlineFragment: outlineNames,
	} {
		require.NotEmpty(t, names)
		for _, n := range names {
			assert.True(t, strings.Contains(src, " "+n+";"), n)
		}
	}
	assert.Contains(t, ghostVertex, "worldPos = vertexPosition")
}
