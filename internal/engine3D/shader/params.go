package shader

import (
	"portfolio3d/internal/vision"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Uniform is a value waiting to be uploaded under Name.
type Uniform struct {
	Name   string
	Type   rl.ShaderUniformDataType
	Values []float32
}

func vec2(name string, v rl.Vector2) Uniform {
	return Uniform{Name: name, Type: rl.ShaderUniformVec2, Values: []float32{v.X, v.Y}}
}

func scalar(name string, f float32) Uniform {
	return Uniform{Name: name, Type: rl.ShaderUniformFloat, Values: []float32{f}}
}

// ColorVec3 converts a colour to normalised RGB.
func ColorVec3(c rl.Color) []float32 {
	return []float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

func ClipUniforms(c vision.ClipUniforms) []Uniform {
	return []Uniform{
		vec2("windowCenter", c.WindowCenter),
		vec2("windowSize", c.WindowSize),
		vec2("screenSize", c.ScreenSize),
		scalar("groundLevel", c.GroundLevel),
	}
}

func GlowUniforms(m *vision.GlowMaterial) []Uniform {
	return append(ClipUniforms(m.ClipUniforms),
		Uniform{Name: "emissive", Type: rl.ShaderUniformVec3, Values: ColorVec3(m.Emissive)},
		scalar("intensity", m.Intensity),
		scalar("alpha", m.Alpha),
	)
}

func OutlineUniforms(m *vision.OutlineMaterial) []Uniform {
	return append(ClipUniforms(m.ClipUniforms),
		Uniform{Name: "lineColor", Type: rl.ShaderUniformVec3, Values: ColorVec3(m.Color)},
		scalar("opacity", m.Opacity),
	)
}

var (
	glowNames    = uniformNames(GlowUniforms(&vision.GlowMaterial{}))
	outlineNames = uniformNames(OutlineUniforms(&vision.OutlineMaterial{}))
)

func uniformNames(us []Uniform) []string {
	names := make([]string, len(us))
	for i, u := range us {
		names[i] = u.Name
	}
	return names
}

// ResolveLocations queries the shader once for every named uniform. Missing
// uniforms map to -1 and are skipped on upload.
func ResolveLocations(s rl.Shader, names []string) map[string]int32 {
	locs := make(map[string]int32, len(names))
	for _, n := range names {
		locs[n] = rl.GetShaderLocation(s, n)
	}
	return locs
}
